package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"partshop/internal/apperr"
	"partshop/internal/models"
	"partshop/internal/repositories"
)

// CategoryListOptions narrows and enriches a category listing.
type CategoryListOptions struct {
	Search          string
	IncludeProducts bool
}

// CategoryService handles business logic related to categories.
type CategoryService struct {
	categories repositories.CategoryRepository
	products   repositories.ProductRepository
	events     eventEmitter
}

// NewCategoryService creates a new CategoryService. A nil publisher disables events.
func NewCategoryService(categories repositories.CategoryRepository, products repositories.ProductRepository, publisher EventPublisher, log *slog.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
		events:     newEventEmitter(publisher, log),
	}
}

// List returns categories newest first, each with its product count.
func (s *CategoryService) List(ctx context.Context, opts CategoryListOptions) ([]models.Category, error) {
	categories, err := s.categories.List(ctx, strings.TrimSpace(opts.Search))
	if err != nil {
		return nil, apperr.Unexpected("failed to list categories", err)
	}
	if err := s.attachProducts(ctx, categories, opts.IncludeProducts); err != nil {
		return nil, err
	}
	return categories, nil
}

// Get returns a category with its products and product count.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "category")
	}
	list := []models.Category{*category}
	if err := s.attachProducts(ctx, list, true); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// Create stores a new category. Names are unique.
func (s *CategoryService) Create(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	if err := s.ensureNameFree(ctx, in.Name, ""); err != nil {
		return nil, err
	}
	category := &models.Category{Name: in.Name, IsActive: in.IsActive}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperr.Unexpected("failed to create category", err)
	}
	s.events.emit(ctx, EventCategoryCreated, category.ID, category.Name)
	return category, nil
}

// Update rewrites a category. The duplicate check only runs when the name changes.
func (s *CategoryService) Update(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "category")
	}
	if in.Name != category.Name {
		if err := s.ensureNameFree(ctx, in.Name, id); err != nil {
			return nil, err
		}
	}
	category.Name = in.Name
	category.IsActive = in.IsActive
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, writeError(err, "update", "category")
	}

	counts, err := s.products.CountByCategory(ctx, []string{id})
	if err != nil {
		return nil, apperr.Unexpected("failed to count products", err)
	}
	category.ProductCount = counts[id]
	s.events.emit(ctx, EventCategoryUpdated, category.ID, category.Name)
	return category, nil
}

// Delete removes a category that has no products.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return lookupError(err, "category")
	}
	counts, err := s.products.CountByCategory(ctx, []string{id})
	if err != nil {
		return apperr.Unexpected("failed to count products", err)
	}
	if n := counts[id]; n > 0 {
		return apperr.Referential("category %q still has %d products; delete or move them first", category.Name, n)
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "category")
	}
	s.events.emit(ctx, EventCategoryDeleted, category.ID, category.Name)
	return nil
}

// ensureNameFree fails with a duplicate error when another category is
// already called name. selfID is excluded from the check.
func (s *CategoryService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.categories.GetByName(ctx, name)
	switch {
	case err == nil && existing.ID != selfID:
		return apperr.Duplicate("a category named %q already exists", name)
	case err == nil, errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return apperr.Unexpected("failed to check category name", err)
	}
}

func (s *CategoryService) attachProducts(ctx context.Context, categories []models.Category, withProducts bool) error {
	if len(categories) == 0 {
		return nil
	}
	ids := make([]string, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}

	counts, err := s.products.CountByCategory(ctx, ids)
	if err != nil {
		return apperr.Unexpected("failed to count products", err)
	}
	var byCategory map[string][]models.Product
	if withProducts {
		products, err := s.products.ListByCategories(ctx, ids)
		if err != nil {
			return apperr.Unexpected("failed to load category products", err)
		}
		byCategory = make(map[string][]models.Product, len(categories))
		for _, p := range products {
			byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
		}
	}

	for i := range categories {
		categories[i].ProductCount = counts[categories[i].ID]
		if withProducts {
			categories[i].Products = byCategory[categories[i].ID]
			if categories[i].Products == nil {
				categories[i].Products = []models.Product{}
			}
		}
	}
	return nil
}
