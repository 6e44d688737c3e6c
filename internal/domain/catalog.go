package domain

import (
	"sort"
	"strings"
)

type SortKey string

const (
	SortPopularity SortKey = "pop"
	SortNewest     SortKey = "new"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
)

func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortNewest, SortPriceAsc, SortPriceDesc:
		return SortKey(s)
	}
	return SortPopularity
}

// CatalogQuery selects the storefront-visible subset of the catalog.
// Inactive products are excluded unconditionally. Zero values mean "no
// filter" for every field. The filter stages commute; the sort runs last and
// is stable, with ties broken by the product's position in the catalog.
type CatalogQuery struct {
	Category    Category
	MinCents    int64
	MaxCents    int64
	InStockOnly bool
	Search      string
	Sort        SortKey
}

func (q CatalogQuery) matches(p Product) bool {
	if !p.IsActive {
		return false
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.MinCents > 0 && p.PriceCents < q.MinCents {
		return false
	}
	if q.MaxCents > 0 && p.PriceCents > q.MaxCents {
		return false
	}
	if q.InStockOnly && !p.InStock() {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		if !strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Brand), term) {
			return false
		}
	}
	return true
}

// filter runs the filter stages only, preserving catalog order. Filter
// stages commute, so composing partial queries yields the same set and
// order as the combined query.
func (q CatalogQuery) filter(all []Product) []Product {
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if q.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Apply runs the pipeline over the full catalog, which is ordered
// newest-first as the stores keep it: filter stages first, then the sort
// stage exactly once. "Newest" preserves catalog order; popularity
// reverses it, treating the longest-listed products as the best sellers.
func (q CatalogQuery) Apply(all []Product) []Product {
	out := q.filter(all)

	switch q.Sort {
	case SortNewest:
		// catalog order is already newest-first
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceCents < out[j].PriceCents })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceCents > out[j].PriceCents })
	default:
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// ProductFilter is the back-office product list pipeline: substring match
// against title, brand or SKU, category filter, and an active/out-of-stock
// status filter. Unlike the storefront it sees inactive products.
type ProductFilter struct {
	Search   string
	Category Category
	Status   string // "", "active" or "out"
}

func (f ProductFilter) Apply(all []Product) []Product {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Brand), term) &&
			!strings.Contains(strings.ToLower(p.SKU), term) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Status == "active" && !p.IsActive {
			continue
		}
		if f.Status == "out" && p.InStock() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// OrderFilter is the back-office order list pipeline: substring match against
// id, customer name or phone, plus a fulfillment-status filter.
type OrderFilter struct {
	Search string
	Status OrderStatus
}

func (f OrderFilter) Apply(all []Order) []Order {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Order, 0, len(all))
	for _, o := range all {
		if term != "" &&
			!strings.Contains(strings.ToLower(o.ID), term) &&
			!strings.Contains(strings.ToLower(o.Name), term) &&
			!strings.Contains(strings.ToLower(o.Phone), term) {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Paginate returns the fixed-size window for a 1-based page number. Pages
// past the end are empty, not an error.
func Paginate[T any](items []T, page, perPage int) []T {
	if perPage <= 0 {
		perPage = 10
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
