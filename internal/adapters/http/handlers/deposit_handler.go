package handlers

import (
	"errors"
	"fmt"
	"time"

	"susu-dashboard/internal/adapters/backend"
	"susu-dashboard/internal/core/access"
	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/core/services"
	"susu-dashboard/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// DepositHandler handles deposit pages
type DepositHandler struct {
	depositService *services.DepositService
	cycleService   *services.CycleService
}

// NewDepositHandler creates a new deposit handler
func NewDepositHandler(depositService *services.DepositService, cycleService *services.CycleService) *DepositHandler {
	return &DepositHandler{
		depositService: depositService,
		cycleService:   cycleService,
	}
}

// List shows deposits filtered by cycle or by a date range
func (h *DepositHandler) List(c *fiber.Ctx) error {
	user := identity(c)
	filter := services.DepositFilter{
		CycleID:   queryInt64(c, "cycleId"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	page, err := h.depositService.Find(c.UserContext(), filter, pagination.GetParams(c))
	if err != nil {
		return err
	}
	cycles, err := h.cycleService.ForUser(c.UserContext(), user, pagination.All)
	if err := passUnauthorized(err); err != nil {
		return err
	}

	return render(c, "deposits/index", "Deposits", fiber.Map{
		"deposits":      page.Items,
		"total":         domain.TotalAmount(page.Items),
		"pager":         pagination.NewControl(page, "/deposits", currentQuery(c)),
		"filter":        filter,
		"cycles":        cycles.Items,
		"showCollector": access.Can(user.Role, access.ViewAllCollectors),
		"create":        access.ButtonFor(user.Role, access.CreateDeposit),
		"edit":          access.ButtonFor(user.Role, access.EditDeposit),
		"delete":        access.ButtonFor(user.Role, access.DeleteDeposit),
	})
}

// Show renders one deposit
func (h *DepositHandler) Show(c *fiber.Ctx) error {
	user := identity(c)
	id, err := paramID(c)
	if err != nil {
		return err
	}
	d, err := h.depositService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return render(c, "deposits/detail", "Deposit", fiber.Map{
		"deposit":       d,
		"showCollector": access.Can(user.Role, access.ViewAllCollectors),
		"edit":          access.ButtonFor(user.Role, access.EditDeposit),
		"delete":        access.ButtonFor(user.Role, access.DeleteDeposit),
	})
}

// New renders an empty deposit form dated today
func (h *DepositHandler) New(c *fiber.Ctx) error {
	in := domain.DepositInput{
		CycleID:     queryInt64(c, "cycleId"),
		DepositDate: time.Now().Format("2006-01-02"),
	}
	return h.form(c, fiber.StatusOK, 0, in, nil, "")
}

// Edit renders the deposit form filled from the backend
func (h *DepositHandler) Edit(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	d, err := h.depositService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	in := domain.DepositInput{
		ClientID:    d.ClientID,
		CycleID:     d.CycleID,
		Amount:      d.Amount,
		DepositDate: dateOnly(d.DepositDate),
		Notes:       d.Notes,
	}
	return h.form(c, fiber.StatusOK, id, in, nil, "")
}

// Create handles the new deposit form
func (h *DepositHandler) Create(c *fiber.Ctx) error {
	in := depositInput(c)
	if err := h.prepare(c, &in); err != nil {
		return h.invalid(c, 0, in, err)
	}
	if _, err := h.depositService.Create(c.UserContext(), in); err != nil {
		return h.invalid(c, 0, in, err)
	}
	return redirectNotice(c, fmt.Sprintf("/cycles/%d", in.CycleID), "Deposit recorded successfully")
}

// Update handles the edit deposit form
func (h *DepositHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	in := depositInput(c)
	if err := h.prepare(c, &in); err != nil {
		return h.invalid(c, id, in, err)
	}
	if _, err := h.depositService.Update(c.UserContext(), id, in); err != nil {
		return h.invalid(c, id, in, err)
	}
	return redirectNotice(c, fmt.Sprintf("/deposits/%d", id), "Deposit updated successfully")
}

// Delete removes a deposit
func (h *DepositHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.depositService.Delete(c.UserContext(), id); err != nil {
		return redirectError(c, "/deposits", err)
	}
	return redirectNotice(c, "/deposits", "Deposit deleted successfully")
}

// prepare validates the form and resolves the client from the selected cycle
func (h *DepositHandler) prepare(c *fiber.Ctx, in *domain.DepositInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	cycle, err := h.cycleService.Get(c.UserContext(), in.CycleID)
	if errors.Is(err, backend.ErrNotFound) {
		cycle, err = nil, nil
	}
	if err != nil {
		return err
	}
	return in.ResolveClient(cycle)
}

func (h *DepositHandler) invalid(c *fiber.Ctx, id int64, in domain.DepositInput, err error) error {
	if err := passUnauthorized(err); err != nil {
		return err
	}
	status := fiber.StatusOK
	if fieldErrors(err) != nil {
		status = fiber.StatusUnprocessableEntity
	}
	return h.form(c, status, id, in, fieldErrors(err), errorMessage(err))
}

func (h *DepositHandler) form(c *fiber.Ctx, status int, id int64, in domain.DepositInput, errs domain.ValidationErrors, message string) error {
	cycles, err := h.openCycles(c)
	if err != nil {
		return err
	}

	title := "New Deposit"
	action := "/deposits"
	if id > 0 {
		title = "Edit Deposit"
		action = fmt.Sprintf("/deposits/%d", id)
	}
	if errs == nil {
		errs = domain.ValidationErrors{}
	}
	c.Status(status)
	return render(c, "deposits/form", title, fiber.Map{
		"form":    in,
		"id":      id,
		"action":  action,
		"editing": id > 0,
		"cycles":  cycles,
		"errors":  errs,
		"error":   message,
	})
}

// openCycles are the cycles a deposit can be recorded against
func (h *DepositHandler) openCycles(c *fiber.Ctx) ([]domain.Cycle, error) {
	page, err := h.cycleService.ForUser(c.UserContext(), identity(c), pagination.All)
	if err != nil {
		return nil, err
	}
	open := make([]domain.Cycle, 0, len(page.Items))
	for _, cy := range page.Items {
		if cy.Status == domain.CycleActive {
			open = append(open, cy)
		}
	}
	return open, nil
}

func depositInput(c *fiber.Ctx) domain.DepositInput {
	return domain.DepositInput{
		CycleID:     formInt64(c, "cycleId"),
		Amount:      formAmount(c, "amount"),
		DepositDate: formString(c, "depositDate"),
		Notes:       formString(c, "notes"),
	}
}
