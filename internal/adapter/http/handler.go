package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/campus-market/listing-service/internal/platform/logger"
	"github.com/campus-market/listing-service/internal/product/domain"
	"github.com/campus-market/listing-service/internal/product/usecase"
)

var tracer = otel.Tracer("listing-service/http-handler")

// maxUploadSize bounds the multipart form held in memory per creation
// request (one photo at most).
const maxUploadSize = 10 << 20

type Handler struct {
	productUsecase *usecase.ProductUsecase
	photoUsecase   *usecase.PhotoUsecase
	logger         *logger.Logger
}

func NewHandler(productUC *usecase.ProductUsecase, photoUC *usecase.PhotoUsecase, log *logger.Logger) *Handler {
	return &Handler{
		productUsecase: productUC,
		photoUsecase:   photoUC,
		logger:         log,
	}
}

func (h *Handler) HandleWelcome(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Welcome to the Campus Marketplace API!"))
}

// HandleCreateProduct accepts a multipart form with the five required fields
// and an optional photo file. The photo is persisted before the record; a
// storage failure aborts the request so no product is created with a
// partial reference.
func (h *Handler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "Handler.CreateProduct")
	defer span.End()

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.logger.Warn("CreateProduct: invalid multipart form", "error", err.Error())
		respondMessage(w, http.StatusBadRequest, msgAllFieldsRequired)
		return
	}

	price, priceErr := strconv.ParseFloat(r.FormValue("price"), 64)
	input := usecase.CreateProductInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       price,
		Seller:      r.FormValue("seller"),
		Contact:     r.FormValue("contact"),
	}
	if priceErr != nil {
		h.logger.Warn("CreateProduct: price is not a number", "price", r.FormValue("price"))
		respondMessage(w, http.StatusBadRequest, msgAllFieldsRequired)
		return
	}
	span.SetAttributes(attribute.String("title", input.Title), attribute.Float64("price", input.Price))

	file, header, err := r.FormFile("photo")
	switch {
	case err == nil:
		data, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			h.logger.Error("CreateProduct: failed to read photo upload", "error", readErr.Error())
			respondMessage(w, http.StatusInternalServerError, msgInternalError)
			return
		}
		ref, upErr := h.photoUsecase.UploadPhoto(ctx, header.Filename, data)
		if upErr != nil {
			h.logger.Error("CreateProduct: photo upload failed", "file_name", header.Filename, "error", upErr.Error())
			span.RecordError(upErr)
			respondMessage(w, http.StatusInternalServerError, msgInternalError)
			return
		}
		input.Photo = ref
	case errors.Is(err, http.ErrMissingFile):
		// No photo supplied; the product is created without a reference.
	default:
		h.logger.Warn("CreateProduct: bad photo field", "error", err.Error())
		respondMessage(w, http.StatusBadRequest, msgAllFieldsRequired)
		return
	}

	product, err := h.productUsecase.CreateProduct(ctx, input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProductData) {
			respondMessage(w, http.StatusBadRequest, msgAllFieldsRequired)
			return
		}
		h.logger.Error("CreateProduct: usecase failed", "title", input.Title, "error", err.Error())
		span.RecordError(err)
		respondMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	span.SetAttributes(attribute.String("created_product_id", product.ID))

	respondJSON(w, http.StatusCreated, messageResponse{Message: msgProductAdded, Product: toProductResponse(product)})
}

// HandleListProducts returns the full matching set, ordered. Filter, search
// and sort compose conjunctively and are evaluated by the store query.
func (h *Handler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "Handler.ListProducts")
	defer span.End()

	q := r.URL.Query()
	filter := domain.Filter{
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
	}
	// A supplied maxPrice is always a bound, "0" included; only an absent
	// parameter leaves the price unconstrained.
	if raw := q.Get("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.logger.Warn("ListProducts: maxPrice is not a number", "maxPrice", raw)
			respondMessage(w, http.StatusBadRequest, "maxPrice must be a number")
			return
		}
		filter.MaxPrice = &maxPrice
	}
	if filter.MaxPrice != nil {
		span.SetAttributes(attribute.Float64("max_price", *filter.MaxPrice))
	}
	span.SetAttributes(
		attribute.String("search", filter.Search),
		attribute.String("sort", filter.Sort),
	)

	products, err := h.productUsecase.ListProducts(ctx, filter)
	if err != nil {
		h.logger.Error("ListProducts: usecase failed", "error", err.Error())
		span.RecordError(err)
		respondMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	span.SetAttributes(attribute.Int("result_count", len(products)))

	respondJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *Handler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span := tracer.Start(r.Context(), "Handler.GetProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product_id", id))

	product, err := h.productUsecase.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondMessage(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		h.logger.Error("GetProduct: usecase failed", "product_id", id, "error", err.Error())
		span.RecordError(err)
		respondMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondJSON(w, http.StatusOK, toProductResponse(product))
}

// HandleDeleteProduct runs behind the admin gate; by the time it executes
// the request is authorized. Returns the removed record's prior state.
func (h *Handler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span := tracer.Start(r.Context(), "Handler.DeleteProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product_id", id))

	product, err := h.productUsecase.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondMessage(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		h.logger.Error("DeleteProduct: usecase failed", "product_id", id, "error", err.Error())
		span.RecordError(err)
		respondMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: msgProductDeleted, Product: toProductResponse(product)})
}
