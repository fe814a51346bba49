package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"partshop/internal/apperr"
	"partshop/internal/models"
	"partshop/internal/repositories"
	"partshop/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_CreateRequiresExistingCategory(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()

	_, err := c.products.Create(ctx, productInput(t, "Wrench", "19.90", 5, "no-such-category"))
	requireKind(t, err, apperr.KindReferential)

	page, err := c.products.List(ctx, listingFilters(t, models.ProductFilters{}))
	require.NoError(t, err)
	assert.Empty(t, page.Products, "nothing is stored")
}

func TestProductService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	tools, err := c.categories.Create(ctx, categoryInput(t, "Tools"))
	require.NoError(t, err)

	created, err := c.products.Create(ctx, productInput(t, "  Wrench ", "19.90", 5, tools.ID))
	require.NoError(t, err)
	assert.Equal(t, "Wrench", created.Name)
	require.NotNil(t, created.Category)
	assert.Equal(t, "Tools", created.Category.Name)

	assert.Equal(t, int64(1), created.Category.ProductCount)

	got, err := c.products.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "19.9", got.Price.String())
	require.NotNil(t, got.Category)
	assert.Equal(t, tools.ID, got.Category.ID)
	assert.Equal(t, int64(1), got.Category.ProductCount)
	assert.Equal(t, models.LowStock, got.StockStatus())

	_, err = c.products.Get(ctx, "missing")
	requireKind(t, err, apperr.KindNotFound)
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	tools, err := c.categories.Create(ctx, categoryInput(t, "Tools"))
	require.NoError(t, err)
	garden, err := c.categories.Create(ctx, categoryInput(t, "Garden"))
	require.NoError(t, err)
	created, err := c.products.Create(ctx, productInput(t, "Wrench", "19.90", 5, tools.ID))
	require.NoError(t, err)

	updated, err := c.products.Update(ctx, created.ID, productInput(t, "Rake", "24.50", 0, garden.ID))
	require.NoError(t, err)
	assert.Equal(t, "Rake", updated.Name)
	assert.Equal(t, garden.ID, updated.Category.ID)
	assert.Equal(t, int64(1), updated.Category.ProductCount)
	assert.Equal(t, models.OutOfStock, updated.StockStatus())

	_, err = c.products.Update(ctx, created.ID, productInput(t, "Rake", "24.50", 0, "gone"))
	requireKind(t, err, apperr.KindReferential)

	_, err = c.products.Update(ctx, "missing", productInput(t, "Rake", "24.50", 0, garden.ID))
	requireKind(t, err, apperr.KindNotFound)

	require.NoError(t, c.products.Delete(ctx, created.ID))
	requireKind(t, c.products.Delete(ctx, created.ID), apperr.KindNotFound)
}

func TestProductService_ListPagination(t *testing.T) {
	ctx := context.Background()
	productRepo := repositories.NewMockProductRepository()
	categoryRepo := repositories.NewMockCategoryRepository()
	service := services.NewProductService(productRepo, categoryRepo, nil, discardLogger)

	tools := &models.Category{Name: "Tools", IsActive: true}
	require.NoError(t, categoryRepo.Create(ctx, tools))
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		require.NoError(t, productRepo.Create(ctx, &models.Product{
			Name:       fmt.Sprintf("Tool %02d", i),
			Price:      decimal.NewFromInt(10),
			CategoryID: tools.ID,
			CreatedAt:  start.Add(time.Duration(i) * time.Minute),
		}))
	}

	page, err := service.List(ctx, listingFilters(t, models.ProductFilters{Page: 2, Limit: 10}))
	require.NoError(t, err)
	require.Len(t, page.Products, 10)
	assert.Equal(t, models.Pagination{Page: 2, Limit: 10, Total: 25, TotalPages: 3}, page.Pagination)
	assert.Equal(t, "Tool 14", page.Products[0].Name)
	for _, p := range page.Products {
		require.NotNil(t, p.Category)
		assert.Equal(t, "Tools", p.Category.Name)
		assert.Equal(t, int64(25), p.Category.ProductCount)
	}

	page, err = service.List(ctx, listingFilters(t, models.ProductFilters{Page: 5, Limit: 10}))
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, int64(25), page.Pagination.Total)
}

func TestProductService_RepositoryFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	t.Run("list", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := services.NewProductService(productRepo, new(MockCategoryRepository), nil, discardLogger)
		filters := listingFilters(t, models.ProductFilters{})
		productRepo.On("List", ctx, filters).Return(nil, int64(0), boom).Once()

		_, err := service.List(ctx, filters)
		requireKind(t, err, apperr.KindUnexpected)
		productRepo.AssertExpectations(t)
	})

	t.Run("category lookup", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := services.NewProductService(productRepo, categoryRepo, nil, discardLogger)
		categoryRepo.On("GetByID", ctx, "c1").Return(nil, boom).Once()

		_, err := service.Create(ctx, productInput(t, "Wrench", "19.90", 5, "c1"))
		requireKind(t, err, apperr.KindUnexpected)
		productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("create publishes", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		publisher := new(MockPublisher)
		service := services.NewProductService(productRepo, categoryRepo, publisher, discardLogger)
		categoryRepo.On("GetByID", ctx, "c1").Return(&models.Category{ID: "c1", Name: "Tools"}, nil).Once()
		productRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).
			Run(func(args mock.Arguments) { args.Get(1).(*models.Product).ID = "p1" }).
			Return(nil).Once()
		productRepo.On("CountByCategory", ctx, []string{"c1"}).Return(map[string]int64{"c1": 4}, nil).Once()
		publisher.On("Publish", ctx, services.EventProductCreated, mock.Anything).Return(nil).Once()

		product, err := service.Create(ctx, productInput(t, "Wrench", "19.90", 5, "c1"))
		require.NoError(t, err)
		assert.Equal(t, "p1", product.ID)
		assert.Equal(t, int64(4), product.Category.ProductCount)
		productRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})
}

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()
	tools, err := c.categories.Create(ctx, categoryInput(t, "Tools"))
	require.NoError(t, err)
	_, err = c.categories.Create(ctx, categoryInput(t, "Garden"))
	require.NoError(t, err)

	for i, stock := range []int{0, 10, 11, 50} {
		in := productInput(t, fmt.Sprintf("Item %d", i), "5", stock, tools.ID)
		in.IsActive = i%2 == 0
		_, err := c.products.Create(ctx, in)
		require.NoError(t, err)
	}

	stats, err := c.dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{
		ProductStats:    models.ProductStats{Total: 4, Active: 2, LowStock: 2},
		TotalCategories: 2,
	}, stats)
}

func TestDashboardService_StatsFailure(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	productRepo.On("Stats", ctx, models.LowStockThreshold).Return(models.ProductStats{Total: 1}, nil).Once()
	categoryRepo.On("Count", ctx).Return(int64(0), errors.New("timeout")).Once()

	_, err := services.NewDashboardService(productRepo, categoryRepo).Stats(ctx)
	requireKind(t, err, apperr.KindUnexpected)
}

func listingFilters(t *testing.T, raw models.ProductFilters) models.ProductFilters {
	t.Helper()
	f, err := models.NewProductFilters(raw)
	require.NoError(t, err)
	return f
}
