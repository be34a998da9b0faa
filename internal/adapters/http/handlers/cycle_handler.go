package handlers

import (
	"fmt"

	"susu-dashboard/internal/core/access"
	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/core/services"
	"susu-dashboard/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// CycleHandler handles savings cycle pages
type CycleHandler struct {
	cycleService      *services.CycleService
	clientService     *services.ClientService
	depositService    *services.DepositService
	withdrawalService *services.WithdrawalService
}

// NewCycleHandler creates a new cycle handler
func NewCycleHandler(
	cycleService *services.CycleService,
	clientService *services.ClientService,
	depositService *services.DepositService,
	withdrawalService *services.WithdrawalService,
) *CycleHandler {
	return &CycleHandler{
		cycleService:      cycleService,
		clientService:     clientService,
		depositService:    depositService,
		withdrawalService: withdrawalService,
	}
}

// cycleRow is a cycle with its per-row controls
type cycleRow struct {
	domain.Cycle
	Complete access.Button
}

// List shows the cycles visible to the user
func (h *CycleHandler) List(c *fiber.Ctx) error {
	user := identity(c)

	page, err := h.cycleService.ForUser(c.UserContext(), user, pagination.GetParams(c))
	if err != nil {
		return err
	}

	complete := access.ButtonFor(user.Role, access.CompleteCycle)
	rows := make([]cycleRow, 0, len(page.Items))
	for _, cy := range page.Items {
		rows = append(rows, cycleRow{Cycle: cy, Complete: complete.Only(cy.Status == domain.CycleActive).EnabledIf(cy.CanComplete())})
	}

	return render(c, "cycles/index", "Cycles", fiber.Map{
		"cycles": rows,
		"pager":  pagination.NewControl(page, "/cycles", currentQuery(c)),
		"create": access.ButtonFor(user.Role, access.CreateCycle),
		"edit":   access.ButtonFor(user.Role, access.EditCycle),
		"delete": access.ButtonFor(user.Role, access.DeleteCycle),
	})
}

// Show renders a cycle with its progress, deposits and withdrawal requests.
// Totals are recomputed from the deposits when they could be fetched.
func (h *CycleHandler) Show(c *fiber.Ctx) error {
	user := identity(c)
	id, err := paramID(c)
	if err != nil {
		return err
	}

	cycle, err := h.cycleService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	deposits, depErr := h.depositService.ByCycle(c.UserContext(), id, pagination.All)
	if err := passUnauthorized(depErr); err != nil {
		return err
	}
	withdrawals, wErr := h.withdrawalService.ByCycle(c.UserContext(), id, pagination.All)
	if err := passUnauthorized(wErr); err != nil {
		return err
	}

	metrics := domain.MetricsFor(*cycle, deposits.Items, depErr == nil)
	current := *cycle
	current.TotalDeposits = metrics.TotalDeposits
	current.TotalAmount = metrics.TotalAmount

	return render(c, "cycles/detail", "Cycle "+cycle.CycleCode, fiber.Map{
		"cycle":       cycle,
		"metrics":     metrics,
		"deposits":    deposits.Items,
		"withdrawals": withdrawals.Items,
		"addDeposit":  access.ButtonFor(user.Role, access.CreateDeposit).Only(cycle.Status == domain.CycleActive),
		"request":     access.WithdrawalRequestButton(user.Role, current, withdrawals.Items),
		"edit":        access.ButtonFor(user.Role, access.EditCycle),
		"complete":    access.ButtonFor(user.Role, access.CompleteCycle).Only(cycle.Status == domain.CycleActive).EnabledIf(metrics.CanComplete),
		"delete":      access.ButtonFor(user.Role, access.DeleteCycle),
	})
}

// New renders an empty cycle form, optionally preselecting a client
func (h *CycleHandler) New(c *fiber.Ctx) error {
	in := domain.CycleInput{ClientID: queryInt64(c, "clientId")}
	return h.form(c, fiber.StatusOK, 0, in, nil, "")
}

// Edit renders the cycle form filled from the backend
func (h *CycleHandler) Edit(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	cy, err := h.cycleService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	in := domain.CycleInput{
		ClientID:    cy.OwnerID(),
		DailyTarget: cy.DailyTargetDeposit,
		StartDate:   dateOnly(cy.StartDate),
		EndDate:     dateOnly(cy.EndDate),
	}
	return h.form(c, fiber.StatusOK, id, in, nil, "")
}

// Create handles the new cycle form
func (h *CycleHandler) Create(c *fiber.Ctx) error {
	in := cycleInput(c)
	if err := in.Validate(); err != nil {
		return h.form(c, fiber.StatusUnprocessableEntity, 0, in, fieldErrors(err), errorMessage(err))
	}
	created, err := h.cycleService.Create(c.UserContext(), in)
	if err != nil {
		if err := passUnauthorized(err); err != nil {
			return err
		}
		return h.form(c, fiber.StatusOK, 0, in, nil, errorMessage(err))
	}
	return redirectNotice(c, fmt.Sprintf("/cycles/%d", created.ID), "Cycle created successfully")
}

// Update handles the edit cycle form
func (h *CycleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	in := cycleInput(c)
	if err := in.Validate(); err != nil {
		return h.form(c, fiber.StatusUnprocessableEntity, id, in, fieldErrors(err), errorMessage(err))
	}
	if _, err := h.cycleService.Update(c.UserContext(), id, in); err != nil {
		if err := passUnauthorized(err); err != nil {
			return err
		}
		return h.form(c, fiber.StatusOK, id, in, nil, errorMessage(err))
	}
	return redirectNotice(c, fmt.Sprintf("/cycles/%d", id), "Cycle updated successfully")
}

// Complete closes a cycle that collected every deposit
func (h *CycleHandler) Complete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	back := fmt.Sprintf("/cycles/%d", id)
	if err := h.cycleService.Complete(c.UserContext(), id); err != nil {
		return redirectError(c, back, err)
	}
	return redirectNotice(c, back, "Cycle completed successfully")
}

// Delete removes a cycle
func (h *CycleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.cycleService.Delete(c.UserContext(), id); err != nil {
		return redirectError(c, "/cycles", err)
	}
	return redirectNotice(c, "/cycles", "Cycle deleted successfully")
}

func (h *CycleHandler) form(c *fiber.Ctx, status int, id int64, in domain.CycleInput, errs domain.ValidationErrors, message string) error {
	user := identity(c)
	clients, err := h.clientService.ForUser(c.UserContext(), user, "", pagination.All)
	if err != nil {
		return err
	}

	title := "New Cycle"
	action := "/cycles"
	if id > 0 {
		title = "Edit Cycle"
		action = fmt.Sprintf("/cycles/%d", id)
	}
	if errs == nil {
		errs = domain.ValidationErrors{}
	}
	c.Status(status)
	return render(c, "cycles/form", title, fiber.Map{
		"form":    in,
		"id":      id,
		"action":  action,
		"editing": id > 0,
		"clients": clients.Items,
		"errors":  errs,
		"error":   message,
	})
}

func cycleInput(c *fiber.Ctx) domain.CycleInput {
	return domain.CycleInput{
		ClientID:    formInt64(c, "clientId"),
		DailyTarget: formAmount(c, "dailyTarget"),
		StartDate:   formString(c, "startDate"),
		EndDate:     formString(c, "endDate"),
	}
}

// dateOnly trims a timestamp to the value an <input type="date"> accepts
func dateOnly(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
