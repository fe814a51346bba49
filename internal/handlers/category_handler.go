package handlers

import (
	"log/slog"
	"strconv"

	"partshop/internal/models"
	"partshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
	log     *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, log *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleListCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategory)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

type categoryRequest struct {
	Name string `json:"name"`
	// IsActive defaults to true when omitted.
	IsActive *bool `json:"isActive"`
}

func (r categoryRequest) input() (models.CategoryInput, error) {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return models.NewCategoryInput(r.Name, active)
}

// HandleListCategories lists categories. Query: search, includeProducts.
func (h *CategoryHandler) HandleListCategories(c *fiber.Ctx) error {
	opts := services.CategoryListOptions{Search: c.Query("search")}
	if raw := c.Query("includeProducts"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "Invalid query parameters", map[string]string{"includeProducts": "must be true or false"})
		}
		opts.IncludeProducts = include
	}

	categories, err := h.service.List(c.UserContext(), opts)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, categories, "")
}

// HandleGetCategory retrieves a category with its products.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, category, "")
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}
	in, err := req.input()
	if err != nil {
		return respondError(c, h.log, err)
	}

	category, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusCreated, category, "Category created successfully")
}

// HandleUpdateCategory rewrites an existing category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}
	in, err := req.input()
	if err != nil {
		return respondError(c, h.log, err)
	}

	category, err := h.service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, category, "Category updated successfully")
}

// HandleDeleteCategory deletes a category without products.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, nil, "Category deleted successfully")
}
