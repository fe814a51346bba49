package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a part offered by the store.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null"`
	Description string          `json:"description" gorm:"type:varchar(500)"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int             `json:"stock" gorm:"not null"`
	Brand       string          `json:"brand" gorm:"type:varchar(100);index"`
	PartNumber  string          `json:"partNumber" gorm:"type:varchar(100)"`
	Image       string          `json:"image" gorm:"type:varchar(255)"`
	IsActive    bool            `json:"isActive" gorm:"not null"`
	CategoryID  string          `json:"categoryId" gorm:"type:varchar(36);not null;index"`
	Category    *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Case-folded copies of the searchable columns.
	SearchText string `json:"-" gorm:"type:text"`
	BrandKey   string `json:"-" gorm:"type:varchar(200);index"`
}

// FoldSearchFields refreshes SearchText and BrandKey from the product's fields.
func (p *Product) FoldSearchFields() {
	p.SearchText = foldSearch(p.Name, p.Description)
	p.BrandKey = foldSearch(p.Brand)
}

// StockStatus returns the availability bucket for the product's stock.
func (p Product) StockStatus() StockStatus {
	return StockStatusOf(p.Stock)
}
