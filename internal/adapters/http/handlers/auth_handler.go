package handlers

import (
	"log"
	"strings"

	"susu-dashboard/internal/adapters/http/middleware"
	"susu-dashboard/internal/config"
	"susu-dashboard/internal/core/access"
	"susu-dashboard/internal/core/session"
	"susu-dashboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const authLayout = "layouts/auth"

// AuthHandler handles sign-in and sign-out
type AuthHandler struct {
	store *session.Store
	cfg   *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store *session.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		store: store,
		cfg:   cfg,
	}
}

// LoginPage shows the sign-in form; signed-in users go to the dashboard
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	state, err := h.store.Current(c.UserContext(), middleware.SessionID(c, h.cfg))
	if err == nil && state.Authenticated() {
		return c.Redirect("/")
	}
	return h.loginForm(c, fiber.StatusOK, "", c.Query("error"))
}

// Login handles the sign-in form
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	if username == "" || password == "" {
		return h.loginForm(c, fiber.StatusBadRequest, username, "Username and password are required")
	}

	result := h.store.Login(c.UserContext(), username, password)
	if !result.Success {
		return h.loginForm(c, fiber.StatusUnauthorized, username, result.Message)
	}

	token, err := jwt.GenerateSessionToken(result.SessionID, string(result.User.Role), h.cfg.Session.Secret, h.store.TTL())
	if err != nil {
		log.Printf("❌ Failed to sign session cookie: %v", err)
		_ = h.store.Clear(c.UserContext(), result.SessionID)
		return h.loginForm(c, fiber.StatusInternalServerError, username, "Unable to start a session. Please try again.")
	}
	middleware.SetSessionCookie(c, h.cfg, token, result.ExpiresAt)

	log.Printf("✅ %s signed in as %s", result.User.Username, result.User.Role)
	return c.Redirect(access.HomeFor(result.User.Role))
}

// Logout ends the session locally and, best-effort, on the backend
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.store.Logout(c.UserContext(), middleware.SessionID(c, h.cfg))
	middleware.ClearSessionCookie(c, h.cfg)
	return c.Redirect("/login")
}

func (h *AuthHandler) loginForm(c *fiber.Ctx, status int, username, message string) error {
	return c.Status(status).Render("auth/login", fiber.Map{
		"title":    "Sign in",
		"username": username,
		"error":    message,
	}, authLayout)
}
