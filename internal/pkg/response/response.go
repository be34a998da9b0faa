package response

import (
	"errors"

	"susu-dashboard/internal/adapters/backend"
	"susu-dashboard/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// Response represents a standard API response
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Invalid sends a 422 response listing the failing fields
func Invalid(c *fiber.Ctx, errs domain.ValidationErrors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(Response{
		Success: false,
		Error:   "Validation failed",
		Fields:  errs,
	})
}

// StatusFor maps an error from the backend or the domain to an HTTP status
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, backend.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, backend.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, backend.ErrNotFound), errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrCycleNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, backend.ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, backend.ErrConflict), errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, backend.ErrUnavailable):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// FromError sends err as an error response with the mapped status
func FromError(c *fiber.Ctx, err error) error {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return Invalid(c, verrs)
	}
	return Error(c, StatusFor(err), backend.UserMessage(err))
}
