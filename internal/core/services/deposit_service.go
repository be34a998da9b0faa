package services

import (
	"context"
	"net/url"

	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/pkg/pagination"
)

// DepositService manages daily collections
type DepositService struct {
	api Doer
}

// NewDepositService creates a new deposit service
func NewDepositService(api Doer) *DepositService {
	return &DepositService{api: api}
}

// DepositFilter narrows the deposit list. Cycle wins over the date range.
type DepositFilter struct {
	CycleID   int64
	StartDate string
	EndDate   string
}

func (s *DepositService) List(ctx context.Context, p pagination.Params) (pagination.Page[domain.Deposit], error) {
	return fetchPage[domain.Deposit](ctx, s.api, paged("/deposits", p), p)
}

func (s *DepositService) ByCycle(ctx context.Context, cycleID int64, p pagination.Params) (pagination.Page[domain.Deposit], error) {
	return fetchPage[domain.Deposit](ctx, s.api, paged(pathf("/deposits/cycle/%d", cycleID), p), p)
}

func (s *DepositService) ByClient(ctx context.Context, clientID int64, p pagination.Params) (pagination.Page[domain.Deposit], error) {
	return fetchPage[domain.Deposit](ctx, s.api, paged(pathf("/deposits/client/%d", clientID), p), p)
}

func (s *DepositService) ByDateRange(ctx context.Context, start, end string, p pagination.Params) (pagination.Page[domain.Deposit], error) {
	q := p.Query()
	q.Set("startDate", start)
	q.Set("endDate", end)
	return fetchPage[domain.Deposit](ctx, s.api, get("/deposits/date-range", q), p)
}

// Find applies a DepositFilter
func (s *DepositService) Find(ctx context.Context, f DepositFilter, p pagination.Params) (pagination.Page[domain.Deposit], error) {
	switch {
	case f.CycleID > 0:
		return s.ByCycle(ctx, f.CycleID, p)
	case f.StartDate != "" && f.EndDate != "":
		return s.ByDateRange(ctx, f.StartDate, f.EndDate, p)
	}
	return s.List(ctx, p)
}

// Query renders the filter for pagination links
func (f DepositFilter) Query() url.Values {
	q := url.Values{}
	if f.CycleID > 0 {
		q.Set("cycleId", pathf("%d", f.CycleID))
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	return q
}

func (s *DepositService) Summary(ctx context.Context, cycleID int64) (*domain.DepositSummary, error) {
	return fetch[domain.DepositSummary](ctx, s.api, get(pathf("/deposits/summary/cycle/%d", cycleID), nil))
}

func (s *DepositService) Get(ctx context.Context, id int64) (*domain.Deposit, error) {
	return fetch[domain.Deposit](ctx, s.api, get(pathf("/deposits/%d", id), nil))
}

func (s *DepositService) Create(ctx context.Context, in domain.DepositInput) (*domain.Deposit, error) {
	return fetch[domain.Deposit](ctx, s.api, post("/deposits", in))
}

func (s *DepositService) Update(ctx context.Context, id int64, in domain.DepositInput) (*domain.Deposit, error) {
	return fetch[domain.Deposit](ctx, s.api, put(pathf("/deposits/%d", id), in))
}

func (s *DepositService) Delete(ctx context.Context, id int64) error {
	return send(ctx, s.api, del(pathf("/deposits/%d", id)))
}
