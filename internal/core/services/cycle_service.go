package services

import (
	"context"

	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/pkg/pagination"
)

// CycleService manages savings cycles
type CycleService struct {
	api Doer
}

// NewCycleService creates a new cycle service
func NewCycleService(api Doer) *CycleService {
	return &CycleService{api: api}
}

func (s *CycleService) List(ctx context.Context, p pagination.Params) (pagination.Page[domain.Cycle], error) {
	return fetchPage[domain.Cycle](ctx, s.api, paged("/cycles", p), p)
}

// Mine lists the cycles of the signed-in collector's clients
func (s *CycleService) Mine(ctx context.Context, p pagination.Params) (pagination.Page[domain.Cycle], error) {
	return fetchPage[domain.Cycle](ctx, s.api, paged("/cycles/my-clients", p), p)
}

func (s *CycleService) Active(ctx context.Context, p pagination.Params) (pagination.Page[domain.Cycle], error) {
	return fetchPage[domain.Cycle](ctx, s.api, paged("/cycles/active", p), p)
}

func (s *CycleService) ByClient(ctx context.Context, clientID int64, p pagination.Params) (pagination.Page[domain.Cycle], error) {
	return fetchPage[domain.Cycle](ctx, s.api, paged(pathf("/cycles/client/%d", clientID), p), p)
}

// ForUser lists my-clients cycles for collectors and all cycles otherwise
func (s *CycleService) ForUser(ctx context.Context, user domain.Identity, p pagination.Params) (pagination.Page[domain.Cycle], error) {
	if user.Role == domain.RoleCollector {
		return s.Mine(ctx, p)
	}
	return s.List(ctx, p)
}

// CountActive counts ACTIVE cycles visible to user
func (s *CycleService) CountActive(ctx context.Context, user domain.Identity) (int64, error) {
	if user.Role != domain.RoleCollector {
		page, err := s.Active(ctx, pagination.All)
		if err != nil {
			return 0, err
		}
		return page.TotalElements, nil
	}
	page, err := s.Mine(ctx, pagination.All)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, c := range page.Items {
		if c.Status == domain.CycleActive {
			n++
		}
	}
	return n, nil
}

func (s *CycleService) Get(ctx context.Context, id int64) (*domain.Cycle, error) {
	return fetch[domain.Cycle](ctx, s.api, get(pathf("/cycles/%d", id), nil))
}

func (s *CycleService) Create(ctx context.Context, in domain.CycleInput) (*domain.Cycle, error) {
	return fetch[domain.Cycle](ctx, s.api, post("/cycles", in))
}

func (s *CycleService) Update(ctx context.Context, id int64, in domain.CycleInput) (*domain.Cycle, error) {
	return fetch[domain.Cycle](ctx, s.api, put(pathf("/cycles/%d", id), in))
}

func (s *CycleService) Complete(ctx context.Context, id int64) error {
	return send(ctx, s.api, put(pathf("/cycles/%d/complete", id), nil))
}

func (s *CycleService) Delete(ctx context.Context, id int64) error {
	return send(ctx, s.api, del(pathf("/cycles/%d", id)))
}
