package mongodb

import (
	"fmt"
	"time"

	"github.com/campus-market/listing-service/internal/product/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// productDocument is the persisted shape of a Product.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Seller      string             `bson:"seller"`
	Contact     string             `bson:"contact"`
	Photo       string             `bson:"photo,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// toProductDocument converts the domain model to its stored form. An empty
// domain ID leaves the ObjectID unset so Mongo assigns one on insert.
func toProductDocument(p *domain.Product) (*productDocument, error) {
	if p == nil {
		return nil, nil
	}

	docID := primitive.NilObjectID
	if p.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, fmt.Errorf("toProductDocument: invalid ID format '%s': %w", p.ID, err)
		}
	}

	return &productDocument{
		ID:          docID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Seller:      p.Seller,
		Contact:     p.Contact,
		Photo:       p.Photo,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func toDomainProduct(d *productDocument) *domain.Product {
	if d == nil {
		return nil
	}
	return &domain.Product{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Seller:      d.Seller,
		Contact:     d.Contact,
		Photo:       d.Photo,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDomainProducts(docs []*productDocument) []*domain.Product {
	out := make([]*domain.Product, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDomainProduct(doc))
	}
	return out
}
