package services

import (
	"context"

	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/pkg/pagination"
)

// CommissionService reads and settles collector commissions
type CommissionService struct {
	api Doer
}

// NewCommissionService creates a new commission service
func NewCommissionService(api Doer) *CommissionService {
	return &CommissionService{api: api}
}

func (s *CommissionService) list(ctx context.Context, path string, p pagination.Params) (pagination.Page[domain.Commission], error) {
	return fetchPage[domain.Commission](ctx, s.api, paged(path, p), p)
}

func (s *CommissionService) List(ctx context.Context, p pagination.Params) (pagination.Page[domain.Commission], error) {
	return s.list(ctx, "/commissions", p)
}

func (s *CommissionService) ByCollector(ctx context.Context, collectorID int64, p pagination.Params) (pagination.Page[domain.Commission], error) {
	return s.list(ctx, pathf("/commissions/collector/%d", collectorID), p)
}

func (s *CommissionService) ByCycle(ctx context.Context, cycleID int64, p pagination.Params) (pagination.Page[domain.Commission], error) {
	return s.list(ctx, pathf("/commissions/cycle/%d", cycleID), p)
}

func (s *CommissionService) ByDateRange(ctx context.Context, start, end string, p pagination.Params) (pagination.Page[domain.Commission], error) {
	q := p.Query()
	q.Set("startDate", start)
	q.Set("endDate", end)
	return fetchPage[domain.Commission](ctx, s.api, get("/commissions/date-range", q), p)
}

func (s *CommissionService) Pending(ctx context.Context, p pagination.Params) (pagination.Page[domain.Commission], error) {
	return s.list(ctx, "/commissions/pending", p)
}

func (s *CommissionService) Paid(ctx context.Context, p pagination.Params) (pagination.Page[domain.Commission], error) {
	return s.list(ctx, "/commissions/paid", p)
}

func (s *CommissionService) Summary(ctx context.Context, collectorID int64) (*domain.CommissionSummary, error) {
	return fetch[domain.CommissionSummary](ctx, s.api, get(pathf("/commissions/summary/collector/%d", collectorID), nil))
}

func (s *CommissionService) Get(ctx context.Context, id int64) (*domain.Commission, error) {
	return fetch[domain.Commission](ctx, s.api, get(pathf("/commissions/%d", id), nil))
}

func (s *CommissionService) Create(ctx context.Context, in domain.CommissionInput) (*domain.Commission, error) {
	return fetch[domain.Commission](ctx, s.api, post("/commissions", in))
}

func (s *CommissionService) Update(ctx context.Context, id int64, in domain.CommissionInput) (*domain.Commission, error) {
	return fetch[domain.Commission](ctx, s.api, put(pathf("/commissions/%d", id), in))
}

func (s *CommissionService) Pay(ctx context.Context, id int64) error {
	return send(ctx, s.api, put(pathf("/commissions/%d/pay", id), nil))
}

func (s *CommissionService) Delete(ctx context.Context, id int64) error {
	return send(ctx, s.api, del(pathf("/commissions/%d", id)))
}

// Total sums every commission amount
func (s *CommissionService) Total(ctx context.Context) (domain.Amount, error) {
	page, err := s.List(ctx, pagination.All)
	if err != nil {
		return domain.Amount{}, err
	}
	total := domain.Amount{}
	for _, c := range page.Items {
		total = total.Plus(c.CommissionAmount)
	}
	return total, nil
}
