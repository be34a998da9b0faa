package services

import (
	"context"
	"strings"

	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/pkg/pagination"
)

// ClientService manages savers
type ClientService struct {
	api Doer
}

// NewClientService creates a new client service
func NewClientService(api Doer) *ClientService {
	return &ClientService{api: api}
}

func (s *ClientService) List(ctx context.Context, p pagination.Params) (pagination.Page[domain.Client], error) {
	return fetchPage[domain.Client](ctx, s.api, paged("/clients", p), p)
}

func (s *ClientService) ByCollector(ctx context.Context, collectorID int64, p pagination.Params) (pagination.Page[domain.Client], error) {
	return fetchPage[domain.Client](ctx, s.api, paged(pathf("/clients/collector/%d", collectorID), p), p)
}

func (s *ClientService) Search(ctx context.Context, query string, p pagination.Params) (pagination.Page[domain.Client], error) {
	q := p.Query()
	q.Set("query", query)
	return fetchPage[domain.Client](ctx, s.api, get("/clients/search", q), p)
}

// ForUser picks the list a user may see. Collectors get their own clients,
// searched locally; everyone else uses the global list or server search.
func (s *ClientService) ForUser(ctx context.Context, user domain.Identity, query string, p pagination.Params) (pagination.Page[domain.Client], error) {
	query = strings.TrimSpace(query)
	if user.Role == domain.RoleCollector {
		if query == "" {
			return s.ByCollector(ctx, user.ID, p)
		}
		all, err := s.ByCollector(ctx, user.ID, pagination.All)
		if err != nil {
			return pagination.Page[domain.Client]{}, err
		}
		matched := make([]domain.Client, 0, len(all.Items))
		for _, c := range all.Items {
			if c.Matches(query) {
				matched = append(matched, c)
			}
		}
		return pagination.FromSlice(matched, p), nil
	}
	if query != "" {
		return s.Search(ctx, query, p)
	}
	return s.List(ctx, p)
}

func (s *ClientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	return fetch[domain.Client](ctx, s.api, get(pathf("/clients/%d", id), nil))
}

func (s *ClientService) Create(ctx context.Context, in domain.ClientInput) (*domain.Client, error) {
	return fetch[domain.Client](ctx, s.api, post("/clients", in))
}

func (s *ClientService) Update(ctx context.Context, id int64, in domain.ClientInput) (*domain.Client, error) {
	return fetch[domain.Client](ctx, s.api, put(pathf("/clients/%d", id), in))
}

func (s *ClientService) Delete(ctx context.Context, id int64) error {
	return send(ctx, s.api, del(pathf("/clients/%d", id)))
}

// Count returns the number of clients visible to user
func (s *ClientService) Count(ctx context.Context, user domain.Identity) (int64, error) {
	page, err := s.ForUser(ctx, user, "", pagination.All)
	if err != nil {
		return 0, err
	}
	return page.TotalElements, nil
}
