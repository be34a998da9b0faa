package handlers

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"susu-dashboard/internal/adapters/backend"
	"susu-dashboard/internal/adapters/http/middleware"
	"susu-dashboard/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// identity returns the signed-in user. Only called behind the guard.
func identity(c *fiber.Ctx) domain.Identity {
	if u := middleware.CurrentUser(c); u != nil {
		return *u
	}
	return domain.Identity{}
}

// render fills the values every page expects and renders name in the layout
func render(c *fiber.Ctx, name, title string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["title"] = title
	if _, ok := bind["notice"]; !ok {
		bind["notice"] = c.Query("notice")
	}
	if _, ok := bind["error"]; !ok {
		bind["error"] = c.Query("error")
	}
	if _, ok := bind["errors"]; !ok {
		bind["errors"] = domain.ValidationErrors{}
	}
	return c.Render(name, bind)
}

// redirectNotice redirects to path with a success banner
func redirectNotice(c *fiber.Ctx, path, notice string) error {
	return c.Redirect(withParam(path, "notice", notice))
}

// redirectError redirects to path with an error banner. A rejected backend
// session is returned instead so the error handler can log the user out.
func redirectError(c *fiber.Ctx, path string, err error) error {
	if errors.Is(err, backend.ErrUnauthorized) {
		return err
	}
	return c.Redirect(withParam(path, "error", errorMessage(err)))
}

// passUnauthorized returns err only when the backend rejected the session
func passUnauthorized(err error) error {
	if errors.Is(err, backend.ErrUnauthorized) {
		return err
	}
	return nil
}

func withParam(path, key, value string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + key + "=" + url.QueryEscape(value)
}

// errorMessage is the banner text for err
func errorMessage(err error) string {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return "Please correct the highlighted fields."
	case errors.Is(err, domain.ErrCycleNotFound):
		return "The selected cycle could not be found."
	case errors.Is(err, domain.ErrCycleWithoutOwner):
		return "The selected cycle is not linked to a client."
	case errors.Is(err, domain.ErrInvalidTransition):
		return "This withdrawal request has already been decided."
	}
	return backend.UserMessage(err)
}

// fieldErrors extracts per-field messages, or nil when err is not a validation error
func fieldErrors(err error) domain.ValidationErrors {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}

func formInt64(c *fiber.Ctx, key string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(c.FormValue(key)), 10, 64)
	return n
}

func queryInt64(c *fiber.Ctx, key string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(c.Query(key)), 10, 64)
	return n
}

// formAmount parses a money field; an unparseable value reads as zero and
// fails the positive-amount checks downstream.
func formAmount(c *fiber.Ctx, key string) domain.Amount {
	a, err := domain.ParseAmount(strings.TrimSpace(c.FormValue(key)))
	if err != nil {
		return domain.Amount{}
	}
	return a
}

func formString(c *fiber.Ctx, key string) string {
	return strings.TrimSpace(c.FormValue(key))
}

// currentQuery copies the request query string for pagination links
func currentQuery(c *fiber.Ctx) url.Values {
	q, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	return q
}
