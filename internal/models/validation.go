package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"partshop/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	MinPrice = decimal.RequireFromString("0.01")
	MaxPrice = decimal.RequireFromString("999999.99")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name so messages match the request payload.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// CategoryInput is a validated category create/update payload.
type CategoryInput struct {
	Name     string `json:"name" validate:"min=2,max=50"`
	IsActive bool   `json:"isActive"`
}

// NewCategoryInput trims name and checks its length.
func NewCategoryInput(name string, isActive bool) (CategoryInput, error) {
	in := CategoryInput{Name: strings.TrimSpace(name), IsActive: isActive}
	fields := fieldErrors(validate.Struct(in))
	if len(fields) > 0 {
		return CategoryInput{}, apperr.Validation("invalid category data", fields)
	}
	return in, nil
}

// ProductInput is a validated product create/update payload.
type ProductInput struct {
	Name        string          `json:"name" validate:"min=2,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price" validate:"-"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Brand       string          `json:"brand" validate:"max=100"`
	PartNumber  string          `json:"partNumber" validate:"max=100"`
	Image       string          `json:"image" validate:"max=255"`
	CategoryID  string          `json:"categoryId" validate:"required"`
	IsActive    bool            `json:"isActive"`
}

// NewProductInput normalizes raw and validates field bounds.
// The category reference is only checked for presence here.
func NewProductInput(raw ProductInput) (ProductInput, error) {
	in := raw
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Brand = strings.TrimSpace(in.Brand)
	in.PartNumber = strings.TrimSpace(in.PartNumber)
	in.Image = strings.TrimSpace(in.Image)
	in.CategoryID = strings.TrimSpace(in.CategoryID)

	fields := fieldErrors(validate.Struct(in))
	if fields == nil {
		fields = make(map[string]string)
	}
	if in.Price.LessThan(MinPrice) || in.Price.GreaterThan(MaxPrice) {
		fields["price"] = fmt.Sprintf("must be between %s and %s", MinPrice.StringFixed(2), MaxPrice.StringFixed(2))
	} else if !in.Price.Equal(in.Price.Round(2)) {
		fields["price"] = "must have at most 2 decimal places"
	}
	if len(fields) > 0 {
		return ProductInput{}, apperr.Validation("invalid product data", fields)
	}
	return in, nil
}

// Apply copies the input onto p, leaving identity and timestamps untouched.
func (in ProductInput) Apply(p *Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	p.Brand = in.Brand
	p.PartNumber = in.PartNumber
	p.Image = in.Image
	p.CategoryID = in.CategoryID
	p.IsActive = in.IsActive
}

func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"_": err.Error()}
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("failed on the '%s' tag", e.Tag())
	}
	return fields
}
