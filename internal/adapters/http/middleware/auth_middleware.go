package middleware

import (
	"errors"
	"log"
	"strings"
	"time"

	"susu-dashboard/internal/adapters/backend"
	"susu-dashboard/internal/config"
	"susu-dashboard/internal/core/access"
	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/core/session"
	"susu-dashboard/internal/pkg/jwt"
	"susu-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by Guard
const (
	LocalUser      = "user"
	LocalNav       = "nav"
	LocalSessionID = "sessionID"
)

// SessionID returns the session id carried by the signed session cookie,
// or "" when the cookie is missing, expired or forged.
func SessionID(c *fiber.Ctx, cfg *config.Config) string {
	token := c.Cookies(cfg.Cookie.Name)
	if token == "" {
		return ""
	}
	claims, err := jwt.ValidateSessionToken(token, cfg.Session.Secret)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			log.Printf("⚠️  Rejected session cookie from %s: %v", c.IP(), err)
		}
		return ""
	}
	return claims.SessionID
}

// SetSessionCookie issues the signed session cookie
func SetSessionCookie(c *fiber.Ctx, cfg *config.Config, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.Cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		Secure:   cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
	})
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
	})
}

// Guard protects a route. It resolves the session and then:
// loading renders a retrying spinner, no session redirects to /login, a role
// outside allow redirects to /, and an authorized user continues with the
// identity, menu and backend credentials attached to the request.
func Guard(store *session.Store, cfg *config.Config, allow ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := store.Current(c.UserContext(), SessionID(c, cfg))
		if err != nil {
			return err
		}

		api := strings.HasPrefix(c.Path(), "/api/")
		switch access.Decide(state.Loading, state.User, allow...) {
		case access.Loading:
			c.Set(fiber.HeaderRetryAfter, "1")
			if api {
				return response.Error(c, fiber.StatusServiceUnavailable, "Session store is starting")
			}
			return c.Status(fiber.StatusServiceUnavailable).Render("loading", fiber.Map{
				"title": "Loading",
			}, "layouts/auth")
		case access.Unauthenticated:
			ClearSessionCookie(c, cfg)
			if api {
				return response.Unauthorized(c, "Sign in required")
			}
			return c.Redirect("/login")
		case access.Unauthorized:
			if api {
				return response.Forbidden(c, "You don't have permission to access this resource")
			}
			return c.Redirect("/")
		}

		c.Locals(LocalUser, state.User)
		c.Locals(LocalNav, access.Menu(state.User.Role))
		c.Locals(LocalSessionID, state.ID)
		c.SetUserContext(backend.WithCredentials(c.UserContext(), state.Credentials))

		return c.Next()
	}
}

// RequireCapability sends users whose role may not perform need back home
func RequireCapability(need access.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !access.CanWrite(user.Role, need) {
			return c.Redirect("/")
		}
		return c.Next()
	}
}

// CurrentUser returns the identity set by Guard
func CurrentUser(c *fiber.Ctx) *domain.Identity {
	user, _ := c.Locals(LocalUser).(*domain.Identity)
	return user
}
