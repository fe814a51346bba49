package handlers

import (
	"errors"
	"log/slog"

	"partshop/internal/apperr"
	"partshop/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(Response{Success: true, Data: data, Message: message})
}

func badRequest(c *fiber.Ctx, message string, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Response{Error: message, Fields: fields})
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindDuplicate, apperr.KindReferential:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err in the envelope. Unexpected failures are logged
// and hidden behind a generic message.
func respondError(c *fiber.Ctx, log *slog.Logger, err error) error {
	status := StatusOf(err)
	if status == fiber.StatusInternalServerError {
		middleware.Logger(c, log).Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(status).JSON(Response{Error: "Internal server error"})
	}

	body := Response{Error: err.Error()}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		body.Error = appErr.Message
		body.Fields = appErr.Fields
	}
	return c.Status(status).JSON(body)
}
