package domain

import (
	"sort"
	"strings"
)

// Apply evaluates a Filter against an in-memory product sequence, in a fixed
// order: price bound, then price sort, then title search. The Mongo
// repository translates the same Filter into a store query; both paths must
// stay semantically identical, so Apply is the single reference
// implementation and the client's view derivation calls it directly.
//
// Apply never mutates its input and re-running it on an unchanged input
// yields an identical ordered sequence.
func Apply(products []*Product, filter Filter) []*Product {
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		if MatchesPrice(p, filter.MaxPrice) {
			out = append(out, p)
		}
	}

	switch filter.Sort {
	case SortAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}

	if filter.Search != "" {
		filtered := out[:0]
		for _, p := range out {
			if MatchesSearch(p, filter.Search) {
				filtered = append(filtered, p)
			}
		}
		out = filtered
	}
	return out
}

// MatchesPrice reports whether the product satisfies the inclusive upper
// bound. A nil bound means the caller supplied none; zero is a real bound.
func MatchesPrice(p *Product, maxPrice *float64) bool {
	return maxPrice == nil || p.Price <= *maxPrice
}

// MatchesSearch reports whether the title contains the query,
// case-insensitively. An empty query matches everything.
func MatchesSearch(p *Product, query string) bool {
	return query == "" || strings.Contains(strings.ToLower(p.Title), strings.ToLower(query))
}

// Validate checks the creation invariants: the five required fields
// non-empty and a non-negative price.
func (p *Product) Validate() error {
	if p.Title == "" || p.Description == "" || p.Seller == "" || p.Contact == "" || p.Price < 0 {
		return ErrInvalidProductData
	}
	return nil
}
