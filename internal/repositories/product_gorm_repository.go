package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"partshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// productFilterScope narrows a product query to the rows matched by f.
func productFilterScope(f models.ProductFilters) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Search != "" {
			db = db.Where(`search_text LIKE ? ESCAPE '\'`, likePattern(f.Search))
		}
		if f.CategoryID != "" {
			db = db.Where("category_id = ?", f.CategoryID)
		}
		if f.Brand != "" {
			db = db.Where("brand_key = ?", strings.ToLower(f.Brand))
		}
		if f.MinPrice != nil {
			db = db.Where("price >= ?", f.MinPrice.InexactFloat64())
		}
		if f.MaxPrice != nil {
			db = db.Where("price <= ?", f.MaxPrice.InexactFloat64())
		}
		return db
	}
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

// List retrieves one page of matching products and the total match count.
func (r *GORMProductRepository) List(ctx context.Context, filters models.ProductFilters) ([]models.Product, int64, error) {
	scope := productFilterScope(filters)

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := make([]models.Product, 0, filters.Limit)
	err := r.db.WithContext(ctx).
		Scopes(scope, newestFirst).
		Offset(filters.Offset()).
		Limit(filters.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// ListByCategories retrieves every product of the given categories.
func (r *GORMProductRepository) ListByCategories(ctx context.Context, categoryIDs []string) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if len(categoryIDs) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(newestFirst).
		Where("category_id IN ?", categoryIDs).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.FoldSearchFields()
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes every editable column of an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.FoldSearchFields()
	res := r.db.WithContext(ctx).
		Model(product).
		Select("name", "description", "price", "stock", "brand", "part_number", "image", "is_active", "category_id", "search_text", "brand_key", "updated_at").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

type categoryCount struct {
	CategoryID string
	Count      int64
}

// CountByCategory runs a single grouped count over the requested categories.
func (r *GORMProductRepository) CountByCategory(ctx context.Context, categoryIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return counts, nil
	}

	var rows []categoryCount
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("category_id, COUNT(*) AS count").
		Where("category_id IN ?", categoryIDs).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}

// Stats counts all, active and low-stock products.
func (r *GORMProductRepository) Stats(ctx context.Context, lowStockThreshold int) (models.ProductStats, error) {
	var stats models.ProductStats
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Product{}).Count(&stats.Total).Error; err != nil {
		return stats, fmt.Errorf("failed to count products: %w", err)
	}
	if err := db.Model(&models.Product{}).Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return stats, fmt.Errorf("failed to count active products: %w", err)
	}
	if err := db.Model(&models.Product{}).Where("stock <= ?", lowStockThreshold).Count(&stats.LowStock).Error; err != nil {
		return stats, fmt.Errorf("failed to count low-stock products: %w", err)
	}
	return stats, nil
}
