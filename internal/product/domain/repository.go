package domain

import "context"

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) (*Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Product, error)
	EnsureIndexes(ctx context.Context) error
}
