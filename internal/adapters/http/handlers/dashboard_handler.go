package handlers

import (
	"time"

	"susu-dashboard/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the landing page
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Index renders the statistics visible to the signed-in user
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	user := identity(c)

	stats, err := h.dashboardService.GetDashboard(c.UserContext(), user, time.Now())
	if err != nil {
		return err
	}

	return render(c, "dashboard/index", "Dashboard", fiber.Map{
		"stats": stats,
	})
}
