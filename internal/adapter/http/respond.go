package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/campus-market/listing-service/internal/product/domain"
)

// Messages surfaced to API callers. Internal failure detail never leaks; it
// is logged server-side only.
const (
	msgAllFieldsRequired = "All fields are required"
	msgProductNotFound   = "Product not found"
	msgProductAdded      = "Product added successfully"
	msgProductDeleted    = "Product deleted successfully"
	msgInternalError     = "Internal Server Error"
)

type productResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Seller      string    `json:"seller"`
	Contact     string    `json:"contact"`
	Photo       string    `json:"photo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type messageResponse struct {
	Message string           `json:"message"`
	Product *productResponse `json:"product,omitempty"`
}

func toProductResponse(p *domain.Product) *productResponse {
	if p == nil {
		return nil
	}
	return &productResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Seller:      p.Seller,
		Contact:     p.Contact,
		Photo:       p.Photo,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(products []*domain.Product) []*productResponse {
	out := make([]*productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}
