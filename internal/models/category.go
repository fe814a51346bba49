package models

import (
	"strings"
	"time"
)

// Category groups products. Its name is unique across the store.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(50);not null"`
	IsActive  bool      `json:"isActive" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	// SearchText is the case-folded name matched by search.
	SearchText string `json:"-" gorm:"type:text"`

	Products     []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	ProductCount int64     `json:"productCount" gorm:"-"`
}

// FoldSearchFields refreshes SearchText from the category name.
func (c *Category) FoldSearchFields() {
	c.SearchText = foldSearch(c.Name)
}

// foldSearch lower-cases text in Go so that non-ASCII letters fold the same
// way on every database.
func foldSearch(parts ...string) string {
	return strings.ToLower(strings.Join(parts, "\n"))
}
