package client

import (
	"context"

	"github.com/campus-market/listing-service/internal/product/domain"
)

// ViewState is the explicit, serializable client view model: the cached
// snapshot from the last full fetch plus the filter inputs. The displayed
// sequence is never stored; it is recomputed by Derive from the cache, so
// the derivation stays deterministic and independently testable.
type ViewState struct {
	Cached      []*domain.Product `json:"cachedProducts"`
	SortOrder   string            `json:"sortOrder"`
	MaxPrice    *float64          `json:"maxPrice"`
	SearchQuery string            `json:"searchQuery"`
	SelectedID  string            `json:"selectedProduct,omitempty"`
}

// Refresh replaces the cached snapshot with a fresh full fetch. On failure
// the prior cache is left untouched and the server's message is returned.
func (s *ViewState) Refresh(ctx context.Context, c *Client) error {
	products, err := c.FetchProducts(ctx)
	if err != nil {
		return err
	}
	s.Cached = products
	return nil
}

// Derive recomputes the displayed sequence from the cached snapshot, in
// fixed order: price bound, price sort, title search. It shares
// domain.Apply with the server's query translation, so a local refilter and
// a server-side query always agree.
func (s *ViewState) Derive() []*domain.Product {
	return domain.Apply(s.Cached, domain.Filter{
		MaxPrice: s.MaxPrice,
		Search:   s.SearchQuery,
		Sort:     s.SortOrder,
	})
}

// Select switches to the single-item detail view.
func (s *ViewState) Select(id string) {
	s.SelectedID = id
}

// ClearSelection returns to the grid view.
func (s *ViewState) ClearSelection() {
	s.SelectedID = ""
}

// Selected resolves the detail-view record from the cache, or nil when no
// selection is active or the record is gone from the snapshot.
func (s *ViewState) Selected() *domain.Product {
	if s.SelectedID == "" {
		return nil
	}
	for _, p := range s.Cached {
		if p.ID == s.SelectedID {
			return p
		}
	}
	return nil
}
