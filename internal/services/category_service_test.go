package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"partshop/internal/apperr"
	"partshop/internal/models"
	"partshop/internal/repositories"
	"partshop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_CreateRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()

	tools, err := c.categories.Create(ctx, categoryInput(t, "Tools"))
	require.NoError(t, err)
	assert.NotEmpty(t, tools.ID)

	_, err = c.categories.Create(ctx, categoryInput(t, "  Tools "))
	requireKind(t, err, apperr.KindDuplicate)

	// Names are compared exactly.
	_, err = c.categories.Create(ctx, categoryInput(t, "tools"))
	assert.NoError(t, err)

	list, err := c.categories.List(ctx, services.CategoryListOptions{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()

	brakes, err := c.categories.Create(ctx, categoryInput(t, "Fren"))
	require.NoError(t, err)
	_, err = c.categories.Create(ctx, categoryInput(t, "Filtre"))
	require.NoError(t, err)

	t.Run("same name is not a duplicate", func(t *testing.T) {
		in, err := models.NewCategoryInput("Fren", false)
		require.NoError(t, err)
		updated, err := c.categories.Update(ctx, brakes.ID, in)
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
	})

	t.Run("rename onto another category", func(t *testing.T) {
		_, err := c.categories.Update(ctx, brakes.ID, categoryInput(t, "Filtre"))
		requireKind(t, err, apperr.KindDuplicate)
	})

	t.Run("rename", func(t *testing.T) {
		updated, err := c.categories.Update(ctx, brakes.ID, categoryInput(t, "Fren Sistemi"))
		require.NoError(t, err)
		assert.Equal(t, "Fren Sistemi", updated.Name)

		got, err := c.categories.Get(ctx, brakes.ID)
		require.NoError(t, err)
		assert.Equal(t, "Fren Sistemi", got.Name)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := c.categories.Update(ctx, "missing", categoryInput(t, "Yeni"))
		requireKind(t, err, apperr.KindNotFound)
	})
}

func TestCategoryService_DeleteBlockedByProducts(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()

	tools, err := c.categories.Create(ctx, categoryInput(t, "Tools"))
	require.NoError(t, err)
	wrench, err := c.products.Create(ctx, productInput(t, "Wrench", "19.90", 5, tools.ID))
	require.NoError(t, err)

	err = c.categories.Delete(ctx, tools.ID)
	requireKind(t, err, apperr.KindReferential)
	_, err = c.categories.Get(ctx, tools.ID)
	require.NoError(t, err, "category survives a rejected delete")

	require.NoError(t, c.products.Delete(ctx, wrench.ID))
	require.NoError(t, c.categories.Delete(ctx, tools.ID))

	_, err = c.categories.Get(ctx, tools.ID)
	requireKind(t, err, apperr.KindNotFound)
	requireKind(t, c.categories.Delete(ctx, tools.ID), apperr.KindNotFound)
}

func TestCategoryService_ListCountsAndProducts(t *testing.T) {
	ctx := context.Background()
	c := newCatalog()

	brakes, err := c.categories.Create(ctx, categoryInput(t, "Fren"))
	require.NoError(t, err)
	empty, err := c.categories.Create(ctx, categoryInput(t, "Aydınlatma"))
	require.NoError(t, err)
	for _, name := range []string{"Balata", "Disk", "Kaliper"} {
		_, err := c.products.Create(ctx, productInput(t, name, "100", 3, brakes.ID))
		require.NoError(t, err)
	}

	list, err := c.categories.List(ctx, services.CategoryListOptions{})
	require.NoError(t, err)
	counts := map[string]int64{}
	for _, category := range list {
		counts[category.ID] = category.ProductCount
		assert.Nil(t, category.Products)
	}
	assert.Equal(t, map[string]int64{brakes.ID: 3, empty.ID: 0}, counts)

	list, err = c.categories.List(ctx, services.CategoryListOptions{Search: "fren", IncludeProducts: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Products, 3)

	got, err := c.categories.Get(ctx, empty.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Products)
	assert.Empty(t, got.Products)
}

func TestCategoryService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	publisher := new(MockPublisher)
	categoryRepo := repositories.NewMockCategoryRepository()
	service := services.NewCategoryService(categoryRepo, repositories.NewMockProductRepository(), publisher, discardLogger)

	isEvent := func(eventType, name string) interface{} {
		return mock.MatchedBy(func(body []byte) bool {
			var event services.CatalogEvent
			return json.Unmarshal(body, &event) == nil && event.Type == eventType && event.Name == name
		})
	}
	publisher.On("Publish", mock.Anything, services.EventCategoryCreated, isEvent(services.EventCategoryCreated, "Tools")).Return(nil).Once()
	// A broker failure does not fail the write.
	publisher.On("Publish", mock.Anything, services.EventCategoryDeleted, isEvent(services.EventCategoryDeleted, "Tools")).Return(errors.New("broker down")).Once()

	tools, err := service.Create(ctx, categoryInput(t, "Tools"))
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, tools.ID))

	publisher.AssertExpectations(t)
}

func TestCategoryService_RepositoryFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	t.Run("list", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := services.NewCategoryService(categoryRepo, new(MockProductRepository), nil, discardLogger)
		categoryRepo.On("List", ctx, "").Return(nil, boom).Once()

		_, err := service.List(ctx, services.CategoryListOptions{})
		requireKind(t, err, apperr.KindUnexpected)
		assert.ErrorIs(t, err, boom)
		categoryRepo.AssertExpectations(t)
	})

	t.Run("name check", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := services.NewCategoryService(categoryRepo, new(MockProductRepository), nil, discardLogger)
		categoryRepo.On("GetByName", ctx, "Tools").Return(nil, boom).Once()

		_, err := service.Create(ctx, categoryInput(t, "Tools"))
		requireKind(t, err, apperr.KindUnexpected)
		categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("count before delete", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		service := services.NewCategoryService(categoryRepo, productRepo, nil, discardLogger)
		categoryRepo.On("GetByID", ctx, "c1").Return(&models.Category{ID: "c1", Name: "Tools"}, nil).Once()
		productRepo.On("CountByCategory", ctx, []string{"c1"}).Return(nil, boom).Once()

		requireKind(t, service.Delete(ctx, "c1"), apperr.KindUnexpected)
		categoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("delete race", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		service := services.NewCategoryService(categoryRepo, productRepo, nil, discardLogger)
		categoryRepo.On("GetByID", ctx, "c1").Return(&models.Category{ID: "c1", Name: "Tools"}, nil).Once()
		productRepo.On("CountByCategory", ctx, []string{"c1"}).Return(map[string]int64{}, nil).Once()
		categoryRepo.On("Delete", ctx, "c1").Return(repositories.ErrNotFound).Once()

		requireKind(t, service.Delete(ctx, "c1"), apperr.KindNotFound)
	})
}
