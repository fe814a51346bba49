package repositories

import (
	"sort"
	"strings"

	"partshop/internal/models"
)

// MatchProduct reports whether p satisfies every filter that is set.
func MatchProduct(p models.Product, f models.ProductFilters) bool {
	if f.Search != "" && !containsFold(p.Name, f.Search) && !containsFold(p.Description, f.Search) {
		return false
	}
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.Brand != "" && strings.ToLower(p.Brand) != strings.ToLower(f.Brand) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// SortNewestFirst orders products by creation time descending, then id descending.
func SortNewestFirst(products []models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

// Paginate returns the slice of products that falls on the filters' page.
func Paginate(products []models.Product, f models.ProductFilters) []models.Product {
	start := f.Offset()
	if start < 0 || start >= len(products) {
		return []models.Product{}
	}
	end := start + f.Limit
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// likePattern turns a search term into a case-folded LIKE pattern with
// wildcards escaped, for use with ESCAPE '\'.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(term))
	return "%" + escaped + "%"
}
