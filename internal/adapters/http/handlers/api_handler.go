package handlers

import (
	"susu-dashboard/internal/core/access"
	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/core/services"
	"susu-dashboard/internal/pkg/pagination"
	"susu-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// APIHandler serves the small JSON API used by the pages' scripts
type APIHandler struct {
	cycleService   *services.CycleService
	depositService *services.DepositService
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(cycleService *services.CycleService, depositService *services.DepositService) *APIHandler {
	return &APIHandler{
		cycleService:   cycleService,
		depositService: depositService,
	}
}

// SessionInfo is the signed-in user with the sections and actions open to them
type SessionInfo struct {
	User         domain.Identity  `json:"user"`
	Home         string           `json:"home"`
	Menu         []access.NavItem `json:"menu"`
	Capabilities access.Set       `json:"capabilities"`
}

// PrefillInfo is the suggested amount for a new withdrawal request
type PrefillInfo struct {
	CycleID int64         `json:"cycleId"`
	Amount  domain.Amount `json:"amount"`
}

// Session returns the current session
// @Summary Current session
// @Description Returns the signed-in user, their menu and capabilities
// @Tags Session
// @Produce json
// @Success 200 {object} response.Response{data=SessionInfo}
// @Failure 401 {object} response.Response
// @Router /session [get]
func (h *APIHandler) Session(c *fiber.Ctx) error {
	user := identity(c)
	return response.Success(c, "Session retrieved successfully", SessionInfo{
		User:         user,
		Home:         access.HomeFor(user.Role),
		Menu:         access.Menu(user.Role),
		Capabilities: access.For(user.Role),
	})
}

// CycleMetrics returns the derived progress figures of a cycle
// @Summary Cycle metrics
// @Description Progress, remaining deposits, totals and withdrawal prefill for a cycle
// @Tags Cycles
// @Produce json
// @Param id path int true "Cycle ID"
// @Success 200 {object} response.Response{data=domain.CycleMetrics}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cycles/{id}/metrics [get]
func (h *APIHandler) CycleMetrics(c *fiber.Ctx) error {
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
	return response.Success(c, "Cycle metrics retrieved successfully", domain.MetricsFor(*cycle, deposits.Items, depErr == nil))
}

// Prefill returns the suggested withdrawal amount for a cycle
// @Summary Withdrawal prefill
// @Description Cycle balance minus one daily target, never below zero
// @Tags Withdrawals
// @Produce json
// @Param id path int true "Cycle ID"
// @Success 200 {object} response.Response{data=PrefillInfo}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cycles/{id}/prefill [get]
func (h *APIHandler) Prefill(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	cycle, err := h.cycleService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.Success(c, "Prefill computed successfully", PrefillInfo{
		CycleID: cycle.ID,
		Amount:  domain.PrefillAmount(*cycle),
	})
}
