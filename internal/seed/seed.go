// Package seed loads catalog fixtures from YAML into the record services.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"partshop/internal/models"
	"partshop/internal/services"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File is the top-level fixture document.
type File struct {
	Categories []Category `yaml:"categories"`
}

type Category struct {
	Name     string    `yaml:"name"`
	IsActive *bool     `yaml:"isActive"`
	Products []Product `yaml:"products"`
}

type Product struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Price is kept as text so fixtures never pass through a float.
	Price      string `yaml:"price"`
	Stock      int    `yaml:"stock"`
	Brand      string `yaml:"brand"`
	PartNumber string `yaml:"partNumber"`
	Image      string `yaml:"image"`
	IsActive   *bool  `yaml:"isActive"`
}

// Result counts the records created by Apply.
type Result struct {
	Categories int
	Products   int
}

// Decode parses a fixture document. Unknown keys are rejected.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return f, nil
}

// LoadFile reads and decodes the fixture at path.
func LoadFile(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

// Apply creates every category and product of f in order. It stops at the
// first rejected record; records created before it are kept.
func Apply(ctx context.Context, f File, categories *services.CategoryService, products *services.ProductService) (Result, error) {
	var res Result
	for _, c := range f.Categories {
		in, err := models.NewCategoryInput(c.Name, flag(c.IsActive))
		if err != nil {
			return res, fmt.Errorf("category %q: %w", c.Name, err)
		}
		category, err := categories.Create(ctx, in)
		if err != nil {
			return res, fmt.Errorf("category %q: %w", c.Name, err)
		}
		res.Categories++

		for _, p := range c.Products {
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				return res, fmt.Errorf("product %q: invalid price %q", p.Name, p.Price)
			}
			in, err := models.NewProductInput(models.ProductInput{
				Name:        p.Name,
				Description: p.Description,
				Price:       price,
				Stock:       p.Stock,
				Brand:       p.Brand,
				PartNumber:  p.PartNumber,
				Image:       p.Image,
				CategoryID:  category.ID,
				IsActive:    flag(p.IsActive),
			})
			if err != nil {
				return res, fmt.Errorf("product %q: %w", p.Name, err)
			}
			if _, err := products.Create(ctx, in); err != nil {
				return res, fmt.Errorf("product %q: %w", p.Name, err)
			}
			res.Products++
		}
	}
	return res, nil
}

// flag treats a missing boolean as true.
func flag(b *bool) bool {
	return b == nil || *b
}
