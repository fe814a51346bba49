package handlers

import (
	"log/slog"
	"strconv"

	"partshop/internal/models"
	"partshop/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Brand       string          `json:"brand"`
	PartNumber  string          `json:"partNumber"`
	Image       string          `json:"image"`
	CategoryID  string          `json:"categoryId"`
	IsActive    *bool           `json:"isActive"`
}

func (r productRequest) input() (models.ProductInput, error) {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return models.NewProductInput(models.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Brand:       r.Brand,
		PartNumber:  r.PartNumber,
		Image:       r.Image,
		CategoryID:  r.CategoryID,
		IsActive:    active,
	})
}

// parseProductFilters reads the listing query string. Malformed numbers are
// reported per parameter.
func parseProductFilters(c *fiber.Ctx) (models.ProductFilters, map[string]string) {
	raw := models.ProductFilters{
		Search:     c.Query("search"),
		CategoryID: c.Query("categoryId"),
		Brand:      c.Query("brand"),
	}
	fields := make(map[string]string)

	intParam := func(name string, dst *int) {
		v := c.Query(name)
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			fields[name] = "must be an integer"
		case n < 1:
			// Zero would otherwise fall back to the default.
			fields[name] = "must be at least 1"
		default:
			*dst = n
		}
	}
	priceParam := func(name string) *decimal.Decimal {
		v := c.Query(name)
		if v == "" {
			return nil
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			fields[name] = "must be a number"
			return nil
		}
		return &d
	}

	intParam("page", &raw.Page)
	intParam("limit", &raw.Limit)
	raw.MinPrice = priceParam("minPrice")
	raw.MaxPrice = priceParam("maxPrice")
	return raw, fields
}

// HandleListProducts lists one page of products.
// Query: search, categoryId, brand, minPrice, maxPrice, page, limit.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	raw, fields := parseProductFilters(c)
	if len(fields) > 0 {
		return badRequest(c, "Invalid query parameters", fields)
	}
	filters, err := models.NewProductFilters(raw)
	if err != nil {
		return respondError(c, h.log, err)
	}

	page, err := h.service.List(c.UserContext(), filters)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, page, "")
}

// HandleGetProduct retrieves a single product with its category.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, product, "")
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}
	in, err := req.input()
	if err != nil {
		return respondError(c, h.log, err)
	}

	product, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusCreated, product, "Product created successfully")
}

// HandleUpdateProduct rewrites an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}
	in, err := req.input()
	if err != nil {
		return respondError(c, h.log, err)
	}

	product, err := h.service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, product, "Product updated successfully")
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, nil, "Product deleted successfully")
}
