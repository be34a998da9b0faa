package handlers

import (
	"context"
	"fmt"

	"susu-dashboard/internal/core/access"
	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/core/services"
	"susu-dashboard/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management pages
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List shows users, optionally narrowed to one role
func (h *UserHandler) List(c *fiber.Ctx) error {
	user := identity(c)
	role := domain.Role(c.Query("role"))
	if !role.Valid() {
		role = ""
	}

	page, err := h.userService.List(c.UserContext(), role, pagination.GetParams(c))
	if err != nil {
		return err
	}

	return render(c, "users/index", "Users", fiber.Map{
		"users":  page.Items,
		"pager":  pagination.NewControl(page, "/users", currentQuery(c)),
		"role":   role,
		"roles":  domain.Roles,
		"manage": access.ButtonFor(user.Role, access.ManageUsers),
	})
}

// Show renders one user with the password form
func (h *UserHandler) Show(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	u, err := h.userService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return render(c, "users/detail", u.FullName(), fiber.Map{
		"account": u,
		"manage":  access.ButtonFor(identity(c).Role, access.ManageUsers),
	})
}

// New renders an empty user form
func (h *UserHandler) New(c *fiber.Ctx) error {
	return h.form(c, fiber.StatusOK, 0, domain.UserInput{Role: domain.RoleCollector, IsActive: true}, nil, "")
}

// Edit renders the user form filled from the backend
func (h *UserHandler) Edit(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	u, err := h.userService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	in := domain.UserInput{
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		IsActive:    u.IsActive,
	}
	return h.form(c, fiber.StatusOK, id, in, nil, "")
}

// Create handles the new user form
func (h *UserHandler) Create(c *fiber.Ctx) error {
	in := userInput(c)
	if err := in.Validate(true); err != nil {
		return h.form(c, fiber.StatusUnprocessableEntity, 0, in, fieldErrors(err), errorMessage(err))
	}
	if _, err := h.userService.Create(c.UserContext(), in); err != nil {
		if err := passUnauthorized(err); err != nil {
			return err
		}
		return h.form(c, fiber.StatusOK, 0, in, nil, errorMessage(err))
	}
	return redirectNotice(c, "/users", "User created successfully")
}

// Update handles the edit user form; a blank password keeps the old one
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	in := userInput(c)
	if err := in.Validate(false); err != nil {
		return h.form(c, fiber.StatusUnprocessableEntity, id, in, fieldErrors(err), errorMessage(err))
	}
	if _, err := h.userService.Update(c.UserContext(), id, in); err != nil {
		if err := passUnauthorized(err); err != nil {
			return err
		}
		return h.form(c, fiber.StatusOK, id, in, nil, errorMessage(err))
	}
	return redirectNotice(c, "/users", "User updated successfully")
}

// ChangePassword handles the password form on the user page
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	back := fmt.Sprintf("/users/%d", id)
	in := domain.PasswordInput{
		Password:        c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirmPassword"),
	}
	if err := in.Validate(); err != nil {
		return redirectError(c, back, err)
	}
	if err := h.userService.ChangePassword(c.UserContext(), id, in); err != nil {
		return redirectError(c, back, err)
	}
	return redirectNotice(c, back, "Password changed successfully")
}

// Activate re-enables a user account
func (h *UserHandler) Activate(c *fiber.Ctx) error {
	return h.action(c, h.userService.Activate, "User activated")
}

// Deactivate disables a user account
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	return h.action(c, h.userService.Deactivate, "User deactivated")
}

// Delete removes a user account
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	return h.action(c, h.userService.Delete, "User deleted successfully")
}

func (h *UserHandler) action(c *fiber.Ctx, do func(ctx context.Context, id int64) error, notice string) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := do(c.UserContext(), id); err != nil {
		return redirectError(c, "/users", err)
	}
	return redirectNotice(c, "/users", notice)
}

func (h *UserHandler) form(c *fiber.Ctx, status int, id int64, in domain.UserInput, errs domain.ValidationErrors, message string) error {
	title := "New User"
	action := "/users"
	if id > 0 {
		title = "Edit User"
		action = fmt.Sprintf("/users/%d", id)
	}
	if errs == nil {
		errs = domain.ValidationErrors{}
	}
	c.Status(status)
	return render(c, "users/form", title, fiber.Map{
		"form":    in,
		"id":      id,
		"action":  action,
		"editing": id > 0,
		"roles":   domain.Roles,
		"errors":  errs,
		"error":   message,
	})
}

func userInput(c *fiber.Ctx) domain.UserInput {
	return domain.UserInput{
		Username:        formString(c, "username"),
		FirstName:       formString(c, "firstName"),
		LastName:        formString(c, "lastName"),
		Email:           formString(c, "email"),
		PhoneNumber:     formString(c, "phoneNumber"),
		Role:            domain.Role(c.FormValue("role")),
		IsActive:        c.FormValue("isActive") != "",
		Password:        c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirmPassword"),
	}
}
