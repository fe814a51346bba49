package services

import (
	"context"
	"errors"
	"log/slog"

	"partshop/internal/apperr"
	"partshop/internal/models"
	"partshop/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	events     eventEmitter
}

// NewProductService creates a new ProductService. A nil publisher disables events.
func NewProductService(products repositories.ProductRepository, categories repositories.CategoryRepository, publisher EventPublisher, log *slog.Logger) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		events:     newEventEmitter(publisher, log),
	}
}

// List returns one page of products matching filters, each with its category.
func (s *ProductService) List(ctx context.Context, filters models.ProductFilters) (models.ProductPage, error) {
	products, total, err := s.products.List(ctx, filters)
	if err != nil {
		return models.ProductPage{}, apperr.Unexpected("failed to list products", err)
	}
	if err := s.attachCategories(ctx, products); err != nil {
		return models.ProductPage{}, err
	}
	return models.ProductPage{
		Products:   products,
		Pagination: models.NewPagination(filters.Page, filters.Limit, total),
	}, nil
}

// Get returns a product with its category.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "product")
	}
	list := []models.Product{*product}
	if err := s.attachCategories(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// Create stores a new product under an existing category.
func (s *ProductService) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	category, err := s.category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	product := &models.Product{}
	in.Apply(product)
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperr.Unexpected("failed to create product", err)
	}
	if err := s.countProducts(ctx, category); err != nil {
		return nil, err
	}
	product.Category = category
	s.events.emit(ctx, EventProductCreated, product.ID, product.Name)
	return product, nil
}

// Update rewrites a product. The target category must exist.
func (s *ProductService) Update(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "product")
	}
	category, err := s.category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	in.Apply(product)
	product.Category = nil
	if err := s.products.Update(ctx, product); err != nil {
		return nil, writeError(err, "update", "product")
	}
	if err := s.countProducts(ctx, category); err != nil {
		return nil, err
	}
	product.Category = category
	s.events.emit(ctx, EventProductUpdated, product.ID, product.Name)
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return lookupError(err, "product")
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return writeError(err, "delete", "product")
	}
	s.events.emit(ctx, EventProductDeleted, product.ID, product.Name)
	return nil
}

// category resolves a product's category reference.
func (s *ProductService) category(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.Referential("category %s not found", id)
	}
	if err != nil {
		return nil, apperr.Unexpected("failed to load category", err)
	}
	return category, nil
}

func (s *ProductService) attachCategories(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, p := range products {
		if !seen[p.CategoryID] {
			seen[p.CategoryID] = true
			ids = append(ids, p.CategoryID)
		}
	}
	categories, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		return apperr.Unexpected("failed to load product categories", err)
	}
	counts, err := s.products.CountByCategory(ctx, ids)
	if err != nil {
		return apperr.Unexpected("failed to count category products", err)
	}
	byID := make(map[string]*models.Category, len(categories))
	for i := range categories {
		categories[i].ProductCount = counts[categories[i].ID]
		byID[categories[i].ID] = &categories[i]
	}
	for i := range products {
		products[i].Category = byID[products[i].CategoryID]
	}
	return nil
}

// countProducts fills in the product count of an embedded category.
func (s *ProductService) countProducts(ctx context.Context, category *models.Category) error {
	counts, err := s.products.CountByCategory(ctx, []string{category.ID})
	if err != nil {
		return apperr.Unexpected("failed to count category products", err)
	}
	category.ProductCount = counts[category.ID]
	return nil
}
