package repositories

import (
	"context"
	"errors"

	"partshop/internal/models"
)

// ErrNotFound is wrapped by every repository when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns one page of products matching filters, newest first, and
	// the total number of matches.
	List(ctx context.Context, filters models.ProductFilters) ([]models.Product, int64, error)
	ListByCategories(ctx context.Context, categoryIDs []string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	// CountByCategory maps each category id to its number of products.
	// Categories without products are absent from the result.
	CountByCategory(ctx context.Context, categoryIDs []string) (map[string]int64, error)
	Stats(ctx context.Context, lowStockThreshold int) (models.ProductStats, error)
}
