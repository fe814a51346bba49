package repositories

import (
	"context"
	"errors"
	"fmt"

	"partshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// List retrieves categories newest first.
func (r *GORMCategoryRepository) List(ctx context.Context, search string) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	q := r.db.WithContext(ctx).Scopes(newestFirst)
	if search != "" {
		q = q.Where(`search_text LIKE ? ESCAPE '\'`, likePattern(search))
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return r.first(ctx, fmt.Sprintf("ID %s", id), "id = ?", id)
}

// GetByName retrieves the category whose stored name equals name.
func (r *GORMCategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return r.first(ctx, fmt.Sprintf("name %q", name), "name = ?", name)
}

func (r *GORMCategoryRepository) first(ctx context.Context, desc string, query string, arg string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category with %s: %w", desc, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by %s: %w", desc, err)
	}
	return &category, nil
}

// FindByIDs retrieves the categories that exist among ids.
func (r *GORMCategoryRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	return categories, nil
}

// Create creates a new category in the database.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.FoldSearchFields()
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update writes the editable columns of an existing category.
func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	category.FoldSearchFields()
	res := r.db.WithContext(ctx).
		Model(category).
		Select("name", "is_active", "search_text", "updated_at").
		Updates(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %s not found for update: %w", category.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a category by its ID.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of categories.
func (r *GORMCategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}
