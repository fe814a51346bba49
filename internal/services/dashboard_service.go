package services

import (
	"context"

	"partshop/internal/apperr"
	"partshop/internal/models"
	"partshop/internal/repositories"
)

// DashboardService computes the admin summary figures.
type DashboardService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(products repositories.ProductRepository, categories repositories.CategoryRepository) *DashboardService {
	return &DashboardService{products: products, categories: categories}
}

// Stats counts products, categories, active products and products at or
// below the low-stock threshold.
func (s *DashboardService) Stats(ctx context.Context) (models.DashboardStats, error) {
	productStats, err := s.products.Stats(ctx, models.LowStockThreshold)
	if err != nil {
		return models.DashboardStats{}, apperr.Unexpected("failed to compute product stats", err)
	}
	categories, err := s.categories.Count(ctx)
	if err != nil {
		return models.DashboardStats{}, apperr.Unexpected("failed to count categories", err)
	}
	return models.DashboardStats{ProductStats: productStats, TotalCategories: categories}, nil
}
