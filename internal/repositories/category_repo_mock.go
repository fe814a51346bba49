package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"partshop/internal/models"

	"github.com/google/uuid"
)

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	categories map[string]models.Category
	mu         sync.RWMutex
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[string]models.Category),
	}
}

// List returns categories newest first.
func (r *MockCategoryRepository) List(_ context.Context, search string) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categoryList := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if search == "" || containsFold(c.Name, search) {
			categoryList = append(categoryList, c)
		}
	}
	sort.SliceStable(categoryList, func(i, j int) bool {
		a, b := categoryList[i], categoryList[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return categoryList, nil
}

// GetByID returns a category by its ID.
func (r *MockCategoryRepository) GetByID(_ context.Context, id string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
	}
	return &category, nil
}

// GetByName returns the category whose name equals name exactly.
func (r *MockCategoryRepository) GetByName(_ context.Context, name string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category with name %q: %w", name, ErrNotFound)
}

// FindByIDs returns the categories that exist among ids.
func (r *MockCategoryRepository) FindByIDs(_ context.Context, ids []string) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			found = append(found, c)
		}
	}
	return found, nil
}

// Create adds a new category.
func (r *MockCategoryRepository) Create(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now
	r.categories[category.ID] = stripCategory(*category)
	return nil
}

// Update modifies an existing category.
func (r *MockCategoryRepository) Update(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.categories[category.ID]
	if !ok {
		return fmt.Errorf("category with ID %s not found for update: %w", category.ID, ErrNotFound)
	}
	category.CreatedAt = existing.CreatedAt
	category.UpdatedAt = time.Now()
	r.categories[category.ID] = stripCategory(*category)
	return nil
}

// Delete removes a category by its ID.
func (r *MockCategoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return fmt.Errorf("category with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	delete(r.categories, id)
	return nil
}

// Count returns the number of stored categories.
func (r *MockCategoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.categories)), nil
}

// stripCategory drops derived fields before a category is stored.
func stripCategory(c models.Category) models.Category {
	c.Products = nil
	c.ProductCount = 0
	return c
}
