package middleware

import (
	"errors"
	"log"
	"strings"

	"susu-dashboard/internal/adapters/backend"
	"susu-dashboard/internal/config"
	"susu-dashboard/internal/core/session"
	"susu-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler returns the application's error handler. It is the one
// place where a backend 401 turns into a forced logout.
func NewErrorHandler(store *session.Store, cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		api := strings.HasPrefix(c.Path(), "/api/")

		if errors.Is(err, backend.ErrUnauthorized) {
			if id := SessionID(c, cfg); id != "" {
				if clearErr := store.Clear(c.UserContext(), id); clearErr != nil {
					log.Printf("⚠️  Failed to clear rejected session: %v", clearErr)
				}
			}
			ClearSessionCookie(c, cfg)
			if api {
				return response.Unauthorized(c, "Session expired")
			}
			return c.Redirect("/login")
		}

		code := response.StatusFor(err)
		message := backend.UserMessage(err)
		var fe *fiber.Error
		if errors.As(err, &fe) {
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
		}

		if api {
			return response.Error(c, code, message)
		}

		c.Status(code)
		if renderErr := c.Render("error", fiber.Map{
			"title":   "Error",
			"code":    code,
			"message": message,
			"user":    CurrentUser(c),
			"nav":     c.Locals(LocalNav),
		}); renderErr != nil {
			return c.SendString(message)
		}
		return nil
	}
}
