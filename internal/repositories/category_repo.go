package repositories

import (
	"context"

	"partshop/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	// List returns categories newest first, optionally narrowed to names
	// containing search (case-insensitive).
	List(ctx context.Context, search string) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	// GetByName matches the stored name exactly.
	GetByName(ctx context.Context, name string) (*models.Category, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
