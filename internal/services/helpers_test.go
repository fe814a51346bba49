package services_test

import (
	"io"
	"log/slog"
	"testing"

	"partshop/internal/apperr"
	"partshop/internal/models"
	"partshop/internal/repositories"
	"partshop/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type catalog struct {
	categories *services.CategoryService
	products   *services.ProductService
	dashboard  *services.DashboardService
}

func newCatalog() catalog {
	categoryRepo := repositories.NewMockCategoryRepository()
	productRepo := repositories.NewMockProductRepository()
	return catalog{
		categories: services.NewCategoryService(categoryRepo, productRepo, nil, discardLogger),
		products:   services.NewProductService(productRepo, categoryRepo, nil, discardLogger),
		dashboard:  services.NewDashboardService(productRepo, categoryRepo),
	}
}

func categoryInput(t *testing.T, name string) models.CategoryInput {
	t.Helper()
	in, err := models.NewCategoryInput(name, true)
	require.NoError(t, err)
	return in
}

func productInput(t *testing.T, name, price string, stock int, categoryID string) models.ProductInput {
	t.Helper()
	in, err := models.NewProductInput(models.ProductInput{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
		CategoryID: categoryID,
		IsActive:   true,
	})
	require.NoError(t, err)
	return in
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperr.KindOf(err), "unexpected error: %v", err)
}
