package models

import (
	"strings"

	"partshop/internal/apperr"

	"github.com/shopspring/decimal"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ProductFilters shapes a product listing query. Build it with NewProductFilters.
type ProductFilters struct {
	Search     string
	CategoryID string
	Brand      string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Page       int
	Limit      int
}

// NewProductFilters trims text filters, fills in the default page and limit
// when they are zero, and rejects out-of-range values.
func NewProductFilters(raw ProductFilters) (ProductFilters, error) {
	f := raw
	f.Search = strings.TrimSpace(f.Search)
	f.CategoryID = strings.TrimSpace(f.CategoryID)
	f.Brand = strings.TrimSpace(f.Brand)
	if f.Page == 0 {
		f.Page = DefaultPage
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}

	fields := make(map[string]string)
	if f.Page < 1 {
		fields["page"] = "must be at least 1"
	}
	if f.Limit < 1 || f.Limit > MaxLimit {
		fields["limit"] = "must be between 1 and 100"
	}
	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		fields["minPrice"] = "must not be negative"
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		fields["maxPrice"] = "must not be below minPrice"
	}
	if len(fields) > 0 {
		return ProductFilters{}, apperr.Validation("invalid listing parameters", fields)
	}
	return f, nil
}

// Offset is the number of matching records skipped before this page.
func (f ProductFilters) Offset() int {
	return (f.Page - 1) * f.Limit
}

// WithFilters replaces the filter criteria and returns to the first page.
// The page size is kept.
func (f ProductFilters) WithFilters(search, categoryID, brand string, minPrice, maxPrice *decimal.Decimal) ProductFilters {
	f.Search = search
	f.CategoryID = categoryID
	f.Brand = brand
	f.MinPrice = minPrice
	f.MaxPrice = maxPrice
	f.Page = DefaultPage
	return f
}

// Cleared drops every filter and returns to the first page.
func (f ProductFilters) Cleared() ProductFilters {
	return ProductFilters{Page: DefaultPage, Limit: f.Limit}
}
