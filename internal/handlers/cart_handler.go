package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"partshop/internal/cart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CartHandler exposes the storefront carts over HTTP.
type CartHandler struct {
	carts    *cart.Registry
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *cart.Registry) *CartHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	})
	return &CartHandler{
		carts:    carts,
		validate: v,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/carts")
	cartRoutes.Post("/", h.HandleCreateCart)
	cartRoutes.Get("/:id", h.HandleGetCart)
	cartRoutes.Delete("/:id", h.HandleDeleteCart)
	cartRoutes.Post("/:id/items", h.HandleAddItem)
	cartRoutes.Delete("/:id/items", h.HandleClearCart)
	cartRoutes.Patch("/:id/items/:itemId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/:id/items/:itemId", h.HandleRemoveItem)
}

type cartItemRequest struct {
	ID         int             `json:"id" validate:"gt=0"`
	Name       string          `json:"name" validate:"required,max=100"`
	Price      decimal.Decimal `json:"price" validate:"-"`
	PartNumber string          `json:"partNumber" validate:"max=100"`
	Image      string          `json:"image" validate:"max=255"`
	// Quantity defaults to 1 when zero or negative.
	Quantity int `json:"quantity" validate:"lte=999"`
}

type quantityRequest struct {
	Quantity int `json:"quantity" validate:"lte=999"`
}

// CartResponse pairs a cart id with its contents.
type CartResponse struct {
	ID string `json:"id"`
	cart.State
}

// HandleCreateCart opens an empty cart.
func (h *CartHandler) HandleCreateCart(c *fiber.Ctx) error {
	id := h.carts.Create()
	return respond(c, fiber.StatusCreated, CartResponse{ID: id, State: cart.Empty()}, "Cart created")
}

// HandleGetCart returns the cart contents.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	id := c.Params("id")
	state, ok := h.carts.Get(id)
	if !ok {
		return cartNotFound(c, id)
	}
	return respond(c, fiber.StatusOK, CartResponse{ID: id, State: state}, "")
}

// HandleAddItem adds a line or increases its quantity.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}
	fields, err := h.check(req)
	if err != nil {
		return badRequest(c, "Invalid request body", nil)
	}
	if req.Price.IsNegative() {
		fields["price"] = "must not be negative"
	}
	if len(fields) > 0 {
		return badRequest(c, "Validation failed", fields)
	}

	item := cart.Item{
		ID:         req.ID,
		Name:       strings.TrimSpace(req.Name),
		Price:      req.Price,
		PartNumber: req.PartNumber,
		Image:      req.Image,
	}
	return h.dispatch(c, cart.Add{Item: item, Quantity: req.Quantity})
}

// HandleUpdateQuantity sets a line's quantity. Non-positive values leave the cart unchanged.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return badRequest(c, "Invalid item id", nil)
	}
	var req quantityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}
	fields, err := h.check(req)
	if err != nil {
		return badRequest(c, "Invalid request body", nil)
	}
	if len(fields) > 0 {
		return badRequest(c, "Validation failed", fields)
	}
	return h.dispatch(c, cart.UpdateQuantity{ID: itemID, Quantity: req.Quantity})
}

// check validates req and returns the failed fields keyed by JSON name.
func (h *CartHandler) check(req any) (map[string]string, error) {
	fields := make(map[string]string)
	err := h.validate.Struct(req)
	if err == nil {
		return fields, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("failed on the '%s' tag", e.Tag())
	}
	return fields, nil
}

// HandleRemoveItem drops a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return badRequest(c, "Invalid item id", nil)
	}
	return h.dispatch(c, cart.Remove{ID: itemID})
}

// HandleClearCart empties the cart but keeps it open.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	return h.dispatch(c, cart.Clear{})
}

// HandleDeleteCart discards the cart.
func (h *CartHandler) HandleDeleteCart(c *fiber.Ctx) error {
	id := c.Params("id")
	if !h.carts.Delete(id) {
		return cartNotFound(c, id)
	}
	return respond(c, fiber.StatusOK, nil, "Cart deleted")
}

func (h *CartHandler) dispatch(c *fiber.Ctx, action cart.Action) error {
	id := c.Params("id")
	state, ok := h.carts.Dispatch(id, action)
	if !ok {
		return cartNotFound(c, id)
	}
	return respond(c, fiber.StatusOK, CartResponse{ID: id, State: state}, "")
}

func cartNotFound(c *fiber.Ctx, id string) error {
	return c.Status(fiber.StatusNotFound).JSON(Response{Error: fmt.Sprintf("cart %s not found", id)})
}
