package services

import (
	"context"
	"log"
	"regexp"
	"time"

	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/pkg/pagination"
)

var feeNotes = regexp.MustCompile(`(?i)registration fee|renewal fee`)

// DashboardService aggregates the landing page statistics
type DashboardService struct {
	clients     *ClientService
	cycles      *CycleService
	deposits    *DepositService
	commissions *CommissionService
	reports     *ReportService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	clients *ClientService,
	cycles *CycleService,
	deposits *DepositService,
	commissions *CommissionService,
	reports *ReportService,
) *DashboardService {
	return &DashboardService{
		clients:     clients,
		cycles:      cycles,
		deposits:    deposits,
		commissions: commissions,
		reports:     reports,
	}
}

// ============================================================
// Dashboard
// ============================================================

// DashboardData represents dashboard statistics
type DashboardData struct {
	TotalClients      int64         `json:"totalClients"`
	ActiveCycles      int64         `json:"activeCycles"`
	TodaysCollections domain.Amount `json:"todaysCollections"`

	// Admin-like roles only
	ShowFees              bool          `json:"showFees"`
	TotalCommissionFees   domain.Amount `json:"totalCommissionFees"`
	TotalRegistrationFees domain.Amount `json:"totalRegistrationFees"`
	TodayRegistrationFees domain.Amount `json:"todayRegistrationFees"`
}

// GetDashboard returns the statistics visible to user. A failing sub-fetch
// leaves its figure at zero; only a rejected session aborts.
func (s *DashboardService) GetDashboard(ctx context.Context, user domain.Identity, now time.Time) (*DashboardData, error) {
	data := &DashboardData{}
	today := now.Format("2006-01-02")

	var firstErr error
	warn := func(what string, err error) {
		log.Printf("⚠️  dashboard: %s unavailable: %v", what, err)
		if firstErr == nil {
			firstErr = err
		}
	}

	if n, err := s.clients.Count(ctx, user); err != nil {
		warn("client count", err)
	} else {
		data.TotalClients = n
	}

	if n, err := s.cycles.CountActive(ctx, user); err != nil {
		warn("active cycles", err)
	} else {
		data.ActiveCycles = n
	}

	if page, err := s.deposits.ByDateRange(ctx, today, today, pagination.All); err != nil {
		warn("today's deposits", err)
	} else {
		data.TodaysCollections = domain.TotalAmount(page.Items)
	}

	if user.Role == domain.RoleCollector {
		return data, fatal(firstErr)
	}
	data.ShowFees = true

	if total, err := s.commissions.Total(ctx); err != nil {
		warn("commissions", err)
	} else {
		data.TotalCommissionFees = total
	}

	if page, err := s.deposits.List(ctx, pagination.All); err != nil {
		warn("registration fees", err)
	} else {
		data.TotalRegistrationFees = RegistrationFeeTotal(page.Items)
	}

	if total, err := s.reports.TodayRegistrationFees(ctx); err != nil {
		warn("today's registration fees", err)
	} else {
		data.TodayRegistrationFees = total
	}

	return data, fatal(firstErr)
}

// RegistrationFeeTotal sums deposits noted as registration or renewal fees
func RegistrationFeeTotal(deposits []domain.Deposit) domain.Amount {
	total := domain.Amount{}
	for _, d := range deposits {
		if feeNotes.MatchString(d.Notes) {
			total = total.Plus(d.Amount)
		}
	}
	return total
}
