package handlers

import (
	"fmt"

	"susu-dashboard/internal/core/access"
	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/core/services"
	"susu-dashboard/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// ClientHandler handles client pages
type ClientHandler struct {
	clientService *services.ClientService
	cycleService  *services.CycleService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *services.ClientService, cycleService *services.CycleService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		cycleService:  cycleService,
	}
}

// List shows the clients visible to the user with an optional search
func (h *ClientHandler) List(c *fiber.Ctx) error {
	user := identity(c)
	query := c.Query("q")

	page, err := h.clientService.ForUser(c.UserContext(), user, query, pagination.GetParams(c))
	if err != nil {
		return err
	}

	return render(c, "clients/index", "Clients", fiber.Map{
		"clients":       page.Items,
		"pager":         pagination.NewControl(page, "/clients", currentQuery(c)),
		"q":             query,
		"showCollector": access.Can(user.Role, access.ViewAllCollectors),
		"create":        access.ButtonFor(user.Role, access.CreateClient),
		"edit":          access.ButtonFor(user.Role, access.EditClient),
		"delete":        access.ButtonFor(user.Role, access.DeleteClient),
	})
}

// Show renders a client with their cycles
func (h *ClientHandler) Show(c *fiber.Ctx) error {
	user := identity(c)
	id, err := paramID(c)
	if err != nil {
		return err
	}

	client, err := h.clientService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	cycles, err := h.cycleService.ByClient(c.UserContext(), id, pagination.All)
	if err := passUnauthorized(err); err != nil {
		return err
	}

	return render(c, "clients/detail", client.FullName(), fiber.Map{
		"client":        client,
		"cycles":        cycles.Items,
		"showCollector": access.Can(user.Role, access.ViewAllCollectors),
		"edit":          access.ButtonFor(user.Role, access.EditClient),
		"delete":        access.ButtonFor(user.Role, access.DeleteClient),
		"newCycle":      access.ButtonFor(user.Role, access.CreateCycle),
	})
}

// New renders an empty client form
func (h *ClientHandler) New(c *fiber.Ctx) error {
	return h.form(c, fiber.StatusOK, 0, domain.ClientInput{}, nil, "")
}

// Edit renders the client form filled from the backend
func (h *ClientHandler) Edit(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	cl, err := h.clientService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	in := domain.ClientInput{
		FirstName:             cl.FirstName,
		LastName:              cl.LastName,
		PhoneNumber:           cl.PhoneNumber,
		NationalID:            cl.NationalID,
		DateOfBirth:           cl.DateOfBirth,
		Occupation:            cl.Occupation,
		Address:               cl.Address,
		EmergencyContactName:  cl.EmergencyContactName,
		EmergencyContactPhone: cl.EmergencyContactPhone,
		RegistrationFeePaid:   cl.RegistrationFeePaid,
	}
	return h.form(c, fiber.StatusOK, id, in, nil, "")
}

// Create handles the new client form
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	in := clientInput(c)
	if err := in.Validate(); err != nil {
		return h.form(c, fiber.StatusUnprocessableEntity, 0, in, fieldErrors(err), errorMessage(err))
	}
	created, err := h.clientService.Create(c.UserContext(), in)
	if err != nil {
		if err := passUnauthorized(err); err != nil {
			return err
		}
		return h.form(c, fiber.StatusOK, 0, in, nil, errorMessage(err))
	}
	return redirectNotice(c, fmt.Sprintf("/clients/%d", created.ID), "Client created successfully")
}

// Update handles the edit client form
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	in := clientInput(c)
	if err := in.Validate(); err != nil {
		return h.form(c, fiber.StatusUnprocessableEntity, id, in, fieldErrors(err), errorMessage(err))
	}
	if _, err := h.clientService.Update(c.UserContext(), id, in); err != nil {
		if err := passUnauthorized(err); err != nil {
			return err
		}
		return h.form(c, fiber.StatusOK, id, in, nil, errorMessage(err))
	}
	return redirectNotice(c, fmt.Sprintf("/clients/%d", id), "Client updated successfully")
}

// Delete removes a client
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.clientService.Delete(c.UserContext(), id); err != nil {
		return redirectError(c, "/clients", err)
	}
	return redirectNotice(c, "/clients", "Client deleted successfully")
}

func (h *ClientHandler) form(c *fiber.Ctx, status int, id int64, in domain.ClientInput, errs domain.ValidationErrors, message string) error {
	title := "New Client"
	action := "/clients"
	if id > 0 {
		title = "Edit Client"
		action = fmt.Sprintf("/clients/%d", id)
	}
	if errs == nil {
		errs = domain.ValidationErrors{}
	}
	c.Status(status)
	return render(c, "clients/form", title, fiber.Map{
		"form":    in,
		"id":      id,
		"action":  action,
		"editing": id > 0,
		"errors":  errs,
		"error":   message,
	})
}

func clientInput(c *fiber.Ctx) domain.ClientInput {
	return domain.ClientInput{
		FirstName:             formString(c, "firstName"),
		LastName:              formString(c, "lastName"),
		PhoneNumber:           formString(c, "phoneNumber"),
		NationalID:            formString(c, "nationalId"),
		DateOfBirth:           formString(c, "dateOfBirth"),
		Occupation:            formString(c, "occupation"),
		Address:               formString(c, "address"),
		EmergencyContactName:  formString(c, "emergencyContactName"),
		EmergencyContactPhone: formString(c, "emergencyContactPhone"),
		RegistrationFeePaid:   c.FormValue("registrationFeePaid") != "",
	}
}
