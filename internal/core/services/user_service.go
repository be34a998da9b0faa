package services

import (
	"context"

	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/pkg/pagination"
)

// UserService manages dashboard accounts
type UserService struct {
	api Doer
}

// NewUserService creates a new user service
func NewUserService(api Doer) *UserService {
	return &UserService{api: api}
}

// List lists all users, or only those with role when it is set
func (s *UserService) List(ctx context.Context, role domain.Role, p pagination.Params) (pagination.Page[domain.User], error) {
	if role != "" {
		return fetchPage[domain.User](ctx, s.api, paged(pathf("/users/role/%s", role), p), p)
	}
	return fetchPage[domain.User](ctx, s.api, paged("/users", p), p)
}

func (s *UserService) Active(ctx context.Context) ([]domain.User, error) {
	return fetchAll[domain.User](ctx, s.api, get("/users/active", nil))
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return fetch[domain.User](ctx, s.api, get(pathf("/users/%d", id), nil))
}

func (s *UserService) Create(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	return fetch[domain.User](ctx, s.api, post("/users", in))
}

// Update sends the password only when one was typed
func (s *UserService) Update(ctx context.Context, id int64, in domain.UserInput) (*domain.User, error) {
	return fetch[domain.User](ctx, s.api, put(pathf("/users/%d", id), in))
}

func (s *UserService) ChangePassword(ctx context.Context, id int64, in domain.PasswordInput) error {
	return send(ctx, s.api, put(pathf("/users/%d/password", id), in))
}

func (s *UserService) Activate(ctx context.Context, id int64) error {
	return send(ctx, s.api, put(pathf("/users/%d/activate", id), nil))
}

func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	return send(ctx, s.api, put(pathf("/users/%d/deactivate", id), nil))
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return send(ctx, s.api, del(pathf("/users/%d", id)))
}
