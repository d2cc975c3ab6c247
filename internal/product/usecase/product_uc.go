package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campus-market/listing-service/internal/platform/logger"
	"github.com/campus-market/listing-service/internal/product/domain"
)

// ProductEvent is the payload emitted when a listing is created or removed.
type ProductEvent struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// Publisher emits marketplace listing events; failures are logged, never
// surfaced to the caller.
type Publisher interface {
	ProductCreated(ctx context.Context, event ProductEvent) error
	ProductDeleted(ctx context.Context, event ProductEvent) error
}

// Cache is a best-effort product-by-id cache.
type Cache interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// EmailSender notifies sellers about administrative actions.
type EmailSender interface {
	SendEmail(to []string, subject, body string) error
}

type CreateProductInput struct {
	Title       string
	Description string
	Price       float64
	Seller      string
	Contact     string
	Photo       string
}

type ProductUsecase struct {
	repo      domain.ProductRepository
	cache     Cache
	publisher Publisher
	mailer    EmailSender
	logger    *logger.Logger
}

func NewProductUsecase(repo domain.ProductRepository, cache Cache, publisher Publisher, mailer EmailSender, log *logger.Logger) *ProductUsecase {
	return &ProductUsecase{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		mailer:    mailer,
		logger:    log,
	}
}

// CreateProduct validates the input and persists a new product. Nothing is
// written when validation fails.
func (uc *ProductUsecase) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	uc.logger.Info("ProductUsecase.CreateProduct: creating product",
		"title", input.Title, "seller", input.Seller)

	product := &domain.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Seller:      input.Seller,
		Contact:     input.Contact,
		Photo:       input.Photo,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := product.Validate(); err != nil {
		uc.logger.Warn("ProductUsecase.CreateProduct: validation failed", "title", input.Title, "error", err.Error())
		return nil, err
	}

	if err := uc.repo.Create(ctx, product); err != nil {
		uc.logger.Error("ProductUsecase.CreateProduct: failed to create product", "error", err.Error())
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetProduct(ctx, product); err != nil {
			uc.logger.Warn("ProductUsecase.CreateProduct: cache set failed", "product_id", product.ID, "error", err.Error())
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.ProductCreated(ctx, ProductEvent{ID: product.ID, Title: product.Title}); err != nil {
			uc.logger.Warn("ProductUsecase.CreateProduct: publish failed", "product_id", product.ID, "error", err.Error())
		}
	}

	uc.logger.Info("ProductUsecase.CreateProduct: successful", "product_id", product.ID)
	return product, nil
}

// ListProducts is a pure read; the repository applies the filter as a store
// query with the same semantics as domain.Apply.
func (uc *ProductUsecase) ListProducts(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	uc.logger.Info("ProductUsecase.ListProducts: listing products", "filter", fmt.Sprintf("%+v", filter))
	products, err := uc.repo.FindByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("ProductUsecase.ListProducts: failed to list products", "error", err.Error())
		return nil, err
	}
	return products, nil
}

// GetProduct is a cache-aside read through by id.
func (uc *ProductUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.GetProduct(ctx, id); err != nil {
			uc.logger.Warn("ProductUsecase.GetProduct: cache get failed", "product_id", id, "error", err.Error())
		} else if cached != nil {
			uc.logger.Debug("ProductUsecase.GetProduct: cache hit", "product_id", id)
			return cached, nil
		}
	}

	product, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			uc.logger.Warn("ProductUsecase.GetProduct: product not found", "product_id", id)
			return nil, domain.ErrProductNotFound
		}
		uc.logger.Error("ProductUsecase.GetProduct: failed to find product", "product_id", id, "error", err.Error())
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetProduct(ctx, product); err != nil {
			uc.logger.Warn("ProductUsecase.GetProduct: cache set failed", "product_id", id, "error", err.Error())
		}
	}
	return product, nil
}

// DeleteProduct permanently removes the product and returns its prior state.
// The seller is notified by email on a best-effort basis after the delete
// has committed.
func (uc *ProductUsecase) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	uc.logger.Info("ProductUsecase.DeleteProduct: deleting product", "product_id", id)

	product, err := uc.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			uc.logger.Warn("ProductUsecase.DeleteProduct: product not found", "product_id", id)
			return nil, domain.ErrProductNotFound
		}
		uc.logger.Error("ProductUsecase.DeleteProduct: failed to delete product", "product_id", id, "error", err.Error())
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.DeleteProduct(ctx, id); err != nil {
			uc.logger.Warn("ProductUsecase.DeleteProduct: cache invalidation failed", "product_id", id, "error", err.Error())
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.ProductDeleted(ctx, ProductEvent{ID: id, Title: product.Title}); err != nil {
			uc.logger.Warn("ProductUsecase.DeleteProduct: publish failed", "product_id", id, "error", err.Error())
		}
	}
	uc.notifySeller(product)

	uc.logger.Info("ProductUsecase.DeleteProduct: successful", "product_id", id)
	return product, nil
}

func (uc *ProductUsecase) notifySeller(product *domain.Product) {
	if uc.mailer == nil || product.Contact == "" {
		return
	}
	subject := fmt.Sprintf("Your listing was removed: %s", product.Title)
	body := fmt.Sprintf("Hello %s,\n\nYour listing '%s' has been removed from the campus marketplace by an administrator.", product.Seller, product.Title)
	if err := uc.mailer.SendEmail([]string{product.Contact}, subject, body); err != nil {
		uc.logger.Warn("ProductUsecase.notifySeller: failed to send email", "product_id", product.ID, "error", err.Error())
	}
}
