package services

import (
	"context"

	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/pkg/pagination"
)

// WithdrawalService manages withdrawal requests and their approval
type WithdrawalService struct {
	api Doer
}

// NewWithdrawalService creates a new withdrawal service
func NewWithdrawalService(api Doer) *WithdrawalService {
	return &WithdrawalService{api: api}
}

func (s *WithdrawalService) list(ctx context.Context, path string, p pagination.Params) (pagination.Page[domain.WithdrawalRequest], error) {
	return fetchPage[domain.WithdrawalRequest](ctx, s.api, paged(path, p), p)
}

func (s *WithdrawalService) List(ctx context.Context, p pagination.Params) (pagination.Page[domain.WithdrawalRequest], error) {
	return s.list(ctx, "/withdrawals", p)
}

func (s *WithdrawalService) Mine(ctx context.Context, p pagination.Params) (pagination.Page[domain.WithdrawalRequest], error) {
	return s.list(ctx, "/withdrawals/my", p)
}

func (s *WithdrawalService) Pending(ctx context.Context, p pagination.Params) (pagination.Page[domain.WithdrawalRequest], error) {
	return s.list(ctx, "/withdrawals/pending", p)
}

func (s *WithdrawalService) MyPending(ctx context.Context, p pagination.Params) (pagination.Page[domain.WithdrawalRequest], error) {
	return s.list(ctx, "/withdrawals/my/pending", p)
}

func (s *WithdrawalService) Approved(ctx context.Context, p pagination.Params) (pagination.Page[domain.WithdrawalRequest], error) {
	return s.list(ctx, "/withdrawals/approved", p)
}

func (s *WithdrawalService) MyApproved(ctx context.Context, p pagination.Params) (pagination.Page[domain.WithdrawalRequest], error) {
	return s.list(ctx, "/withdrawals/my/approved", p)
}

func (s *WithdrawalService) ByClient(ctx context.Context, clientID int64, p pagination.Params) (pagination.Page[domain.WithdrawalRequest], error) {
	return s.list(ctx, pathf("/withdrawals/client/%d", clientID), p)
}

func (s *WithdrawalService) ByCycle(ctx context.Context, cycleID int64, p pagination.Params) (pagination.Page[domain.WithdrawalRequest], error) {
	return s.list(ctx, pathf("/withdrawals/cycle/%d", cycleID), p)
}

// ForUser selects the list endpoint by role and status filter. Collectors
// see their own requests. REJECTED has no endpoint and is filtered locally.
func (s *WithdrawalService) ForUser(ctx context.Context, user domain.Identity, status domain.WithdrawalStatus, p pagination.Params) (pagination.Page[domain.WithdrawalRequest], error) {
	mine := user.Role == domain.RoleCollector
	switch status {
	case domain.WithdrawalPending:
		if mine {
			return s.MyPending(ctx, p)
		}
		return s.Pending(ctx, p)
	case domain.WithdrawalApproved:
		if mine {
			return s.MyApproved(ctx, p)
		}
		return s.Approved(ctx, p)
	case domain.WithdrawalRejected:
		all := s.List
		if mine {
			all = s.Mine
		}
		page, err := all(ctx, pagination.All)
		if err != nil {
			return pagination.Page[domain.WithdrawalRequest]{}, err
		}
		rejected := make([]domain.WithdrawalRequest, 0, len(page.Items))
		for _, w := range page.Items {
			if w.Status == domain.WithdrawalRejected {
				rejected = append(rejected, w)
			}
		}
		return pagination.FromSlice(rejected, p), nil
	}
	if mine {
		return s.Mine(ctx, p)
	}
	return s.List(ctx, p)
}

func (s *WithdrawalService) Get(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	return fetch[domain.WithdrawalRequest](ctx, s.api, get(pathf("/withdrawals/%d", id), nil))
}

func (s *WithdrawalService) Create(ctx context.Context, in domain.WithdrawalInput) (*domain.WithdrawalRequest, error) {
	return fetch[domain.WithdrawalRequest](ctx, s.api, post("/withdrawals", in))
}

func (s *WithdrawalService) Update(ctx context.Context, id int64, in domain.WithdrawalInput) (*domain.WithdrawalRequest, error) {
	return fetch[domain.WithdrawalRequest](ctx, s.api, put(pathf("/withdrawals/%d", id), in))
}

func (s *WithdrawalService) Approve(ctx context.Context, id int64, in domain.ApprovalInput) error {
	return send(ctx, s.api, put(pathf("/withdrawals/%d/approve", id), in))
}

func (s *WithdrawalService) Reject(ctx context.Context, id int64, in domain.RejectionInput) error {
	return send(ctx, s.api, put(pathf("/withdrawals/%d/reject", id), in))
}

func (s *WithdrawalService) Delete(ctx context.Context, id int64) error {
	return send(ctx, s.api, del(pathf("/withdrawals/%d", id)))
}
