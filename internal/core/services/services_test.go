package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"susu-dashboard/internal/adapters/backend"
	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/pkg/pagination"
)

type stubBackend struct {
	requests []backend.Request
	replies  map[string]string
	failures map[string]error
	cookies  []*http.Cookie
}

func newStubBackend() *stubBackend {
	return &stubBackend{replies: map[string]string{}, failures: map[string]error{}}
}

func (s *stubBackend) Do(ctx context.Context, req backend.Request) (*backend.Response, error) {
	s.requests = append(s.requests, req)
	key := req.Method + " " + req.Path
	if err, ok := s.failures[key]; ok {
		return nil, err
	}
	return &backend.Response{Status: http.StatusOK, Body: []byte(s.replies[key]), Cookies: s.cookies}, nil
}

func (s *stubBackend) last() backend.Request {
	return s.requests[len(s.requests)-1]
}

var (
	admin     = domain.Identity{ID: 1, Username: "admin", Role: domain.RoleAdmin}
	collector = domain.Identity{ID: 9, Username: "col", Role: domain.RoleCollector}
)

func TestAuthLogin(t *testing.T) {
	api := newStubBackend()
	api.replies["POST /auth/login"] = `{"id":9,"username":"col","role":"COLLECTOR"}`
	api.cookies = []*http.Cookie{{Name: "JSESSIONID", Value: "xyz"}}

	user, creds, err := NewAuthService(api).Login(context.Background(), "col", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleCollector || len(creds) != 1 || creds[0].Value != "xyz" {
		t.Fatalf("unexpected login result %+v %+v", user, creds)
	}
	body, _ := json.Marshal(api.last().Body)
	if string(body) != `{"username":"col","password":"pw"}` {
		t.Fatalf("unexpected login body %s", body)
	}
}

func TestAuthLoginWithoutRole(t *testing.T) {
	api := newStubBackend()
	api.replies["POST /auth/login"] = `{"id":9}`

	if _, _, err := NewAuthService(api).Login(context.Background(), "x", "y"); !errors.Is(err, ErrMissingRole) {
		t.Fatalf("expected ErrMissingRole, got %v", err)
	}
}

func TestClientsForCollectorFilterLocally(t *testing.T) {
	api := newStubBackend()
	api.replies["GET /clients/collector/9"] = `[
		{"id":1,"firstName":"Amina","lastName":"Nakato","phoneNumber":"+256700000001","personalCode":"AN01"},
		{"id":2,"firstName":"Brian","lastName":"Okello","phoneNumber":"+256700000002","personalCode":"BO02"},
		{"id":3,"firstName":"Grace","lastName":"Amin","phoneNumber":"+256700000003","personalCode":"GA03"}
	]`

	page, err := NewClientService(api).ForUser(context.Background(), collector, "amin", pagination.Params{Page: 0, Size: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalElements != 2 || page.Items[0].ID != 1 || page.Items[1].ID != 3 {
		t.Fatalf("expected Amina and Grace, got %+v", page.Items)
	}
	if len(api.last().Query) != 0 {
		t.Fatalf("local search must fetch the whole list, got query %v", api.last().Query)
	}
}

func TestClientsForAdminUseServerSearch(t *testing.T) {
	api := newStubBackend()
	api.replies["GET /clients/search"] = `{"content":[{"id":4}],"totalElements":1,"totalPages":1}`

	page, err := NewClientService(api).ForUser(context.Background(), admin, "okello", pagination.Params{Page: 0, Size: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := api.last()
	if req.Query.Get("query") != "okello" || req.Query.Get("size") != "20" || req.Query.Get("page") != "0" {
		t.Fatalf("unexpected search query %v", req.Query)
	}
	if page.TotalElements != 1 {
		t.Fatalf("expected one result, got %d", page.TotalElements)
	}
}

func TestWithdrawalListEndpoints(t *testing.T) {
	tests := []struct {
		user   domain.Identity
		status domain.WithdrawalStatus
		path   string
	}{
		{collector, "", "/withdrawals/my"},
		{collector, domain.WithdrawalPending, "/withdrawals/my/pending"},
		{collector, domain.WithdrawalApproved, "/withdrawals/my/approved"},
		{admin, "", "/withdrawals"},
		{admin, domain.WithdrawalPending, "/withdrawals/pending"},
		{admin, domain.WithdrawalApproved, "/withdrawals/approved"},
		{domain.Identity{Role: domain.RoleAccountant}, domain.WithdrawalPending, "/withdrawals/pending"},
	}

	for _, tt := range tests {
		t.Run(string(tt.user.Role)+"/"+string(tt.status), func(t *testing.T) {
			api := newStubBackend()
			if _, err := NewWithdrawalService(api).ForUser(context.Background(), tt.user, tt.status, pagination.Params{Size: 10}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := api.last().Path; got != tt.path {
				t.Errorf("path = %s, want %s", got, tt.path)
			}
		})
	}
}

func TestWithdrawalRejectedFilteredLocally(t *testing.T) {
	api := newStubBackend()
	api.replies["GET /withdrawals/my"] = `[{"id":1,"status":"PENDING"},{"id":2,"status":"REJECTED"},{"id":3,"status":"APPROVED"}]`

	page, err := NewWithdrawalService(api).ForUser(context.Background(), collector, domain.WithdrawalRejected, pagination.Params{Size: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != 2 {
		t.Fatalf("expected only the rejected request, got %+v", page.Items)
	}
}

func TestWithdrawalDecisions(t *testing.T) {
	api := newStubBackend()
	svc := NewWithdrawalService(api)
	ctx := context.Background()

	if err := svc.Approve(ctx, 5, domain.ApprovalInput{ApprovedAmount: domain.NewAmount(4500), ApprovalNotes: "ok"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := api.last()
	body, _ := json.Marshal(req.Body)
	if req.Method != http.MethodPut || req.Path != "/withdrawals/5/approve" || string(body) != `{"approvedAmount":4500,"approvalNotes":"ok"}` {
		t.Fatalf("unexpected approve request %s %s %s", req.Method, req.Path, body)
	}

	if err := svc.Reject(ctx, 6, domain.RejectionInput{RejectionReason: "duplicate"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, _ = json.Marshal(api.last().Body)
	if api.last().Path != "/withdrawals/6/reject" || string(body) != `{"rejectionReason":"duplicate"}` {
		t.Fatalf("unexpected reject request %s %s", api.last().Path, body)
	}
}

func TestDepositFind(t *testing.T) {
	tests := []struct {
		name   string
		filter DepositFilter
		path   string
	}{
		{"Cycle filter", DepositFilter{CycleID: 3, StartDate: "2024-01-01", EndDate: "2024-01-31"}, "/deposits/cycle/3"},
		{"Date range", DepositFilter{StartDate: "2024-01-01", EndDate: "2024-01-31"}, "/deposits/date-range"},
		{"Half range", DepositFilter{StartDate: "2024-01-01"}, "/deposits"},
		{"No filter", DepositFilter{}, "/deposits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newStubBackend()
			if _, err := NewDepositService(api).Find(context.Background(), tt.filter, pagination.Params{Size: 10}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if api.last().Path != tt.path {
				t.Errorf("path = %s, want %s", api.last().Path, tt.path)
			}
		})
	}
}

func TestCountActiveCyclesForCollector(t *testing.T) {
	api := newStubBackend()
	api.replies["GET /cycles/my-clients"] = `[{"id":1,"status":"ACTIVE"},{"id":2,"status":"COMPLETED"},{"id":3,"status":"ACTIVE"}]`

	n, err := NewCycleService(api).CountActive(context.Background(), collector)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 active cycles, got %d (%v)", n, err)
	}
}

func TestReportRowsFilteredLocally(t *testing.T) {
	api := newStubBackend()
	api.replies["GET /reports"] = `[
		{"id":1,"type":"Deposit","date":"2024-01-05","user":"col","amount":100},
		{"id":2,"type":"Withdrawal","date":"2024-01-06","user":"col","amount":50},
		{"id":3,"type":"Deposit","date":"2024-02-01T10:00:00","user":"col","amount":70}
	]`

	rows, err := NewReportService(api).Rows(context.Background(), domain.ReportFilter{Type: "Deposit", EndDate: "2024-01-31"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != 1 {
		t.Fatalf("expected only row 1, got %+v", rows)
	}
	if q := api.last().Query; q.Get("type") != "Deposit" || q.Has("startDate") {
		t.Fatalf("unexpected report query %v", q)
	}
}

func TestTodayRegistrationFeesShapes(t *testing.T) {
	for _, body := range []string{`25000`, `{"totalAmount":25000,"count":5}`} {
		api := newStubBackend()
		api.replies["GET /reports/registration-fees/today"] = body

		total, err := NewReportService(api).TodayRegistrationFees(context.Background())
		if err != nil || total.String() != "25000" {
			t.Fatalf("body %s: expected 25000, got %s (%v)", body, total, err)
		}
	}
}

func newDashboard(api Doer) *DashboardService {
	return NewDashboardService(NewClientService(api), NewCycleService(api), NewDepositService(api), NewCommissionService(api), NewReportService(api))
}

func TestDashboardForAdmin(t *testing.T) {
	api := newStubBackend()
	api.replies["GET /clients"] = `{"content":[],"totalElements":12,"totalPages":1}`
	api.replies["GET /cycles/active"] = `[{"id":1},{"id":2}]`
	api.replies["GET /deposits/date-range"] = `[{"amount":1000},{"amount":"500.5"}]`
	api.replies["GET /commissions"] = `[{"commissionAmount":300},{"commissionAmount":200}]`
	api.replies["GET /deposits"] = `[{"amount":5000,"notes":"Registration Fee"},{"amount":3000,"notes":"renewal fee paid"},{"amount":900,"notes":"daily"}]`
	api.replies["GET /reports/registration-fees/today"] = `5000`

	now := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	data, err := newDashboard(api).GetDashboard(context.Background(), admin, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.TotalClients != 12 || data.ActiveCycles != 2 {
		t.Fatalf("unexpected counts %+v", data)
	}
	if data.TodaysCollections.String() != "1500.5" {
		t.Fatalf("unexpected today's collections %s", data.TodaysCollections)
	}
	if !data.ShowFees || data.TotalCommissionFees.String() != "500" || data.TotalRegistrationFees.String() != "8000" || data.TodayRegistrationFees.String() != "5000" {
		t.Fatalf("unexpected fees %+v", data)
	}

	for _, req := range api.requests {
		if req.Path == "/deposits/date-range" && (req.Query.Get("startDate") != "2024-03-14" || req.Query.Get("endDate") != "2024-03-14") {
			t.Fatalf("unexpected date range %v", req.Query)
		}
	}
}

func TestDashboardDegradesOnFailure(t *testing.T) {
	api := newStubBackend()
	api.replies["GET /clients/collector/9"] = `[{"id":1},{"id":2}]`
	api.failures["GET /cycles/my-clients"] = backend.ErrUnavailable

	data, err := newDashboard(api).GetDashboard(context.Background(), collector, time.Now())
	if err != nil {
		t.Fatalf("sub-fetch failures must not abort, got %v", err)
	}
	if data.TotalClients != 2 || data.ActiveCycles != 0 || data.ShowFees {
		t.Fatalf("unexpected collector dashboard %+v", data)
	}
	for _, req := range api.requests {
		if req.Path == "/commissions" {
			t.Fatalf("collectors must not fetch commissions")
		}
	}
}

func TestDashboardPropagatesRejectedSession(t *testing.T) {
	api := newStubBackend()
	api.failures["GET /clients/collector/9"] = &backend.APIError{Status: http.StatusUnauthorized}

	if _, err := newDashboard(api).GetDashboard(context.Background(), collector, time.Now()); !errors.Is(err, backend.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

type countingPurger struct {
	calls int
}

func (p *countingPurger) Purge(ctx context.Context, now time.Time) (int64, error) {
	p.calls++
	return 3, nil
}

func TestCronServicePurge(t *testing.T) {
	purger := &countingPurger{}
	svc := NewCronService(purger, "")
	if svc.spec != DefaultPurgeSpec {
		t.Fatalf("expected default spec, got %s", svc.spec)
	}
	svc.PurgeSessions()
	if purger.calls != 1 {
		t.Fatalf("expected one purge, got %d", purger.calls)
	}

	if err := NewCronService(purger, "not a spec").Start(); err == nil {
		t.Fatalf("expected invalid spec to fail")
	}
}
