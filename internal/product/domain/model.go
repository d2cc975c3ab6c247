package domain

import "time"

// Product is a single marketplace listing. ID is assigned by the store on
// insert and never changes; Photo is empty when no file was supplied.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Seller      string
	Contact     string
	Photo       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	SortNone = ""
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Filter describes the list query. MaxPrice is an inclusive upper bound
// applied whenever the caller supplied one, nil meaning absent; a zero bound
// is a real bound and matches only zero-priced records. Search matches the
// title case-insensitively, Sort orders by price (SortNone keeps the
// store's natural order).
type Filter struct {
	MaxPrice *float64
	Search   string
	Sort     string
}

// PriceBound wraps a literal bound for Filter.MaxPrice.
func PriceBound(v float64) *float64 {
	return &v
}
