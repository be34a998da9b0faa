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

var errCannotRequest = errors.New("a withdrawal cannot be requested for this cycle")

var withdrawalTabs = []domain.WithdrawalStatus{"", domain.WithdrawalPending, domain.WithdrawalApproved, domain.WithdrawalRejected}

// WithdrawalHandler handles withdrawal request pages
type WithdrawalHandler struct {
	withdrawalService *services.WithdrawalService
	cycleService      *services.CycleService
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalService *services.WithdrawalService, cycleService *services.CycleService) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
		cycleService:      cycleService,
	}
}

// withdrawalRow is a request with its per-row controls
type withdrawalRow struct {
	domain.WithdrawalRequest
	Approve access.Button
	Reject  access.Button
	Delete  access.Button
}

// List shows requests for the selected status tab
func (h *WithdrawalHandler) List(c *fiber.Ctx) error {
	user := identity(c)
	status := domain.WithdrawalStatus(c.Query("status"))
	switch status {
	case domain.WithdrawalPending, domain.WithdrawalApproved, domain.WithdrawalRejected:
	default:
		status = ""
	}

	page, err := h.withdrawalService.ForUser(c.UserContext(), user, status, pagination.GetParams(c))
	if err != nil {
		return err
	}

	rows := make([]withdrawalRow, 0, len(page.Items))
	for _, w := range page.Items {
		rows = append(rows, withdrawalRow{
			WithdrawalRequest: w,
			Approve:           access.DecisionButton(user.Role, access.ApproveWithdrawal, w),
			Reject:            access.DecisionButton(user.Role, access.RejectWithdrawal, w),
			Delete:            access.WithdrawalDeleteButton(user.Role, w),
		})
	}

	return render(c, "withdrawals/index", "Withdrawals", fiber.Map{
		"withdrawals":   rows,
		"pager":         pagination.NewControl(page, "/withdrawals", currentQuery(c)),
		"status":        status,
		"tabs":          withdrawalTabs,
		"showCollector": access.Can(user.Role, access.ViewAllCollectors),
		"create":        access.ButtonFor(user.Role, access.RequestWithdrawal),
	})
}

// Show renders a request with the approve and reject forms
func (h *WithdrawalHandler) Show(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	w, err := h.withdrawalService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return h.detail(c, fiber.StatusOK, w, domain.ApprovalInput{ApprovedAmount: w.RequestedAmount}, domain.RejectionInput{}, nil, "")
}

// New renders the request form. The amount is prefilled from the selected
// cycle and recomputed whenever the selection changes.
func (h *WithdrawalHandler) New(c *fiber.Ctx) error {
	in := domain.WithdrawalInput{
		CycleID:     queryInt64(c, "cycleId"),
		RequestDate: time.Now().Format("2006-01-02"),
	}
	if in.CycleID > 0 {
		cycle, err := h.cycleService.Get(c.UserContext(), in.CycleID)
		if err := passUnauthorized(err); err != nil {
			return err
		}
		if cycle != nil {
			in.RequestedAmount = domain.PrefillAmount(*cycle)
		}
	}
	return h.form(c, fiber.StatusOK, 0, in, nil, "")
}

// Edit renders the form for a pending request without recomputing the amount
func (h *WithdrawalHandler) Edit(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	w, err := h.withdrawalService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if w.Status != domain.WithdrawalPending {
		return redirectError(c, fmt.Sprintf("/withdrawals/%d", id), domain.ErrInvalidTransition)
	}
	in := domain.WithdrawalInput{
		CycleID:         w.CycleID,
		RequestedAmount: w.RequestedAmount,
		RequestDate:     dateOnly(w.RequestDate),
		Reason:          w.Reason,
	}
	if in.CycleID == 0 && w.Cycle != nil {
		in.CycleID = w.Cycle.ID
	}
	return h.form(c, fiber.StatusOK, id, in, nil, "")
}

// Create handles the request form
func (h *WithdrawalHandler) Create(c *fiber.Ctx) error {
	in := withdrawalInput(c)
	if err := in.Validate(); err != nil {
		return h.invalid(c, 0, in, err)
	}
	if err := h.checkRequestable(c, in.CycleID); err != nil {
		return h.invalid(c, 0, in, err)
	}
	created, err := h.withdrawalService.Create(c.UserContext(), in)
	if err != nil {
		return h.invalid(c, 0, in, err)
	}
	return redirectNotice(c, fmt.Sprintf("/withdrawals/%d", created.ID), "Withdrawal request submitted successfully")
}

// Update handles the edit form of a pending request
func (h *WithdrawalHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	in := withdrawalInput(c)
	if err := in.Validate(); err != nil {
		return h.invalid(c, id, in, err)
	}
	if _, err := h.withdrawalService.Update(c.UserContext(), id, in); err != nil {
		return h.invalid(c, id, in, err)
	}
	return redirectNotice(c, fmt.Sprintf("/withdrawals/%d", id), "Withdrawal request updated successfully")
}

// Approve moves a pending request to APPROVED
func (h *WithdrawalHandler) Approve(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	w, err := h.withdrawalService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	in := domain.ApprovalInput{
		ApprovedAmount: formAmount(c, "approvedAmount"),
		ApprovalNotes:  formString(c, "approvalNotes"),
	}
	if err := w.Approve(in); err != nil {
		return h.decisionFailed(c, w, in, domain.RejectionInput{}, err)
	}
	if err := h.withdrawalService.Approve(c.UserContext(), id, in); err != nil {
		return h.decisionFailed(c, w, in, domain.RejectionInput{}, err)
	}
	return redirectNotice(c, fmt.Sprintf("/withdrawals/%d", id), "Withdrawal request approved")
}

// Reject moves a pending request to REJECTED
func (h *WithdrawalHandler) Reject(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	w, err := h.withdrawalService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	in := domain.RejectionInput{RejectionReason: formString(c, "rejectionReason")}
	approval := domain.ApprovalInput{ApprovedAmount: w.RequestedAmount}
	if err := w.Reject(in); err != nil {
		return h.decisionFailed(c, w, approval, in, err)
	}
	if err := h.withdrawalService.Reject(c.UserContext(), id, in); err != nil {
		return h.decisionFailed(c, w, approval, in, err)
	}
	return redirectNotice(c, fmt.Sprintf("/withdrawals/%d", id), "Withdrawal request rejected")
}

// Delete removes a request; collectors may only remove pending ones
func (h *WithdrawalHandler) Delete(c *fiber.Ctx) error {
	user := identity(c)
	id, err := paramID(c)
	if err != nil {
		return err
	}
	w, err := h.withdrawalService.Get(c.UserContext(), id)
	if err != nil {
		return redirectError(c, "/withdrawals", err)
	}
	if !domain.CanDeleteWithdrawal(user.Role, *w) {
		return redirectError(c, "/withdrawals", backend.ErrForbidden)
	}
	if err := h.withdrawalService.Delete(c.UserContext(), id); err != nil {
		return redirectError(c, "/withdrawals", err)
	}
	return redirectNotice(c, "/withdrawals", "Withdrawal request deleted successfully")
}

// checkRequestable applies the request gating rules to the selected cycle
func (h *WithdrawalHandler) checkRequestable(c *fiber.Ctx, cycleID int64) error {
	cycle, err := h.cycleService.Get(c.UserContext(), cycleID)
	if errors.Is(err, backend.ErrNotFound) {
		return domain.ErrCycleNotFound
	}
	if err != nil {
		return err
	}
	existing, err := h.withdrawalService.ByCycle(c.UserContext(), cycleID, pagination.All)
	if err != nil {
		return err
	}
	if !domain.CanRequestWithdrawal(identity(c).Role, *cycle, existing.Items) {
		return errCannotRequest
	}
	return nil
}

func (h *WithdrawalHandler) decisionFailed(c *fiber.Ctx, w *domain.WithdrawalRequest, approval domain.ApprovalInput, rejection domain.RejectionInput, err error) error {
	if err := passUnauthorized(err); err != nil {
		return err
	}
	status := fiber.StatusOK
	if fieldErrors(err) != nil {
		status = fiber.StatusUnprocessableEntity
	}
	return h.detail(c, status, w, approval, rejection, fieldErrors(err), errorMessage(err))
}

func (h *WithdrawalHandler) detail(c *fiber.Ctx, status int, w *domain.WithdrawalRequest, approval domain.ApprovalInput, rejection domain.RejectionInput, errs domain.ValidationErrors, message string) error {
	user := identity(c)
	if errs == nil {
		errs = domain.ValidationErrors{}
	}
	c.Status(status)
	return render(c, "withdrawals/detail", "Withdrawal Request", fiber.Map{
		"withdrawal":    w,
		"approval":      approval,
		"rejection":     rejection,
		"showCollector": access.Can(user.Role, access.ViewAllCollectors),
		"approve":       access.DecisionButton(user.Role, access.ApproveWithdrawal, *w),
		"reject":        access.DecisionButton(user.Role, access.RejectWithdrawal, *w),
		"edit":          access.ButtonFor(user.Role, access.EditWithdrawal).Only(w.Status == domain.WithdrawalPending),
		"delete":        access.WithdrawalDeleteButton(user.Role, *w),
		"errors":        errs,
		"error":         message,
	})
}

func (h *WithdrawalHandler) invalid(c *fiber.Ctx, id int64, in domain.WithdrawalInput, err error) error {
	if err := passUnauthorized(err); err != nil {
		return err
	}
	message := errorMessage(err)
	if errors.Is(err, errCannotRequest) {
		message = "A withdrawal cannot be requested for this cycle. It may be closed, empty or already have a pending request."
	}
	status := fiber.StatusOK
	if fieldErrors(err) != nil {
		status = fiber.StatusUnprocessableEntity
	}
	return h.form(c, status, id, in, fieldErrors(err), message)
}

func (h *WithdrawalHandler) form(c *fiber.Ctx, status int, id int64, in domain.WithdrawalInput, errs domain.ValidationErrors, message string) error {
	page, err := h.cycleService.ForUser(c.UserContext(), identity(c), pagination.All)
	if err != nil {
		return err
	}
	cycles := make([]domain.Cycle, 0, len(page.Items))
	for _, cy := range page.Items {
		if cy.Status != domain.CycleClosed || cy.ID == in.CycleID {
			cycles = append(cycles, cy)
		}
	}

	title := "New Withdrawal Request"
	action := "/withdrawals"
	if id > 0 {
		title = "Edit Withdrawal Request"
		action = fmt.Sprintf("/withdrawals/%d", id)
	}
	if errs == nil {
		errs = domain.ValidationErrors{}
	}
	c.Status(status)
	return render(c, "withdrawals/form", title, fiber.Map{
		"form":    in,
		"id":      id,
		"action":  action,
		"editing": id > 0,
		"cycles":  cycles,
		"errors":  errs,
		"error":   message,
	})
}

func withdrawalInput(c *fiber.Ctx) domain.WithdrawalInput {
	return domain.WithdrawalInput{
		CycleID:         formInt64(c, "cycleId"),
		RequestedAmount: formAmount(c, "requestedAmount"),
		RequestDate:     formString(c, "requestDate"),
		Reason:          formString(c, "reason"),
	}
}
