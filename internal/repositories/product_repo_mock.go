package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"partshop/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// List filters, orders and pages the stored products.
func (r *MockProductRepository) List(_ context.Context, filters models.ProductFilters) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if MatchProduct(p, filters) {
			matched = append(matched, p)
		}
	}
	SortNewestFirst(matched)
	return Paginate(matched, filters), int64(len(matched)), nil
}

// ListByCategories returns all products of the given categories, newest first.
func (r *MockProductRepository) ListByCategories(_ context.Context, categoryIDs []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = struct{}{}
	}
	productList := make([]models.Product, 0)
	for _, p := range r.products {
		if _, ok := wanted[p.CategoryID]; ok {
			productList = append(productList, p)
		}
	}
	SortNewestFirst(productList)
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	stored := *product
	stored.Category = nil
	r.products[product.ID] = stored
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s not found for update: %w", product.ID, ErrNotFound)
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()

	stored := *product
	stored.Category = nil
	r.products[product.ID] = stored
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// CountByCategory counts products per requested category.
func (r *MockProductRepository) CountByCategory(_ context.Context, categoryIDs []string) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = struct{}{}
	}
	counts := make(map[string]int64)
	for _, p := range r.products {
		if _, ok := wanted[p.CategoryID]; ok {
			counts[p.CategoryID]++
		}
	}
	return counts, nil
}

// Stats counts all, active and low-stock products.
func (r *MockProductRepository) Stats(_ context.Context, lowStockThreshold int) (models.ProductStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats models.ProductStats
	for _, p := range r.products {
		stats.Total++
		if p.IsActive {
			stats.Active++
		}
		if p.Stock <= lowStockThreshold {
			stats.LowStock++
		}
	}
	return stats, nil
}
