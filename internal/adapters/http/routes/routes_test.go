package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"susu-dashboard/internal/adapters/backend"
	"susu-dashboard/internal/config"
	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/core/session"
	"susu-dashboard/internal/pkg/jwt"
	"susu-dashboard/internal/pkg/secret"

	"github.com/gofiber/fiber/v2"
)

const clientsJSON = `[{"id":1,"firstName":"Jane","lastName":"Doe","phoneNumber":"0700000001","personalCode":"JD01","collector":{"id":3,"username":"col","firstName":"Carl","lastName":"Collector"}}]`

type fixedAuth struct {
	user *domain.Identity
}

func (a fixedAuth) Login(ctx context.Context, username, password string) (*domain.Identity, backend.Credentials, error) {
	return a.user, backend.Credentials{{Name: "JSESSIONID", Value: "upstream"}}, nil
}

func (a fixedAuth) Logout(ctx context.Context) error { return nil }

type harness struct {
	app     *fiber.App
	cfg     *config.Config
	storage *session.MemoryStorage
	store   *session.Store
	token   string
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		AppMode: "dev",
		Backend: config.BackendConfig{BaseURL: baseURL, Timeout: time.Second},
		Session: config.SessionConfig{Secret: "routes-test-secret", TTL: time.Hour, Store: config.SessionStoreMemory},
		Cookie:  config.CookieConfig{Name: "susu_session", SameSite: "Lax"},
	}
}

// newHarness wires the full app against backendHandler. When role is empty
// nobody is signed in; when warm is false the session store is still loading.
func newHarness(t *testing.T, backendHandler http.HandlerFunc, role domain.Role, warm bool) *harness {
	t.Helper()

	srv := httptest.NewServer(backendHandler)
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	user := &domain.Identity{ID: 3, Username: strings.ToLower(string(role)), FirstName: "Test", Role: role}
	storage := session.NewMemoryStorage()
	store := session.NewStore(storage, fixedAuth{user: user}, secret.NewSealer(cfg.Session.Secret), cfg.Session.TTL)

	app := NewApp(cfg, store)
	Setup(app, cfg, store, backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout))

	h := &harness{app: app, cfg: cfg, storage: storage, store: store}
	if !warm {
		return h
	}
	if err := store.Warm(context.Background()); err != nil {
		t.Fatalf("warm: %v", err)
	}
	if role == "" {
		return h
	}

	res := store.Login(context.Background(), user.Username, "secret")
	if !res.Success {
		t.Fatalf("login failed: %s", res.Message)
	}
	token, err := jwt.GenerateSessionToken(res.SessionID, string(role), cfg.Session.Secret, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	h.token = token
	return h
}

func (h *harness) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if h.token != "" {
		req.AddCookie(&http.Cookie{Name: h.cfg.Cookie.Name, Value: h.token})
	}
	resp, err := h.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func clientsBackend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/clients", "/clients/collector/3":
		_, _ = w.Write([]byte(clientsJSON))
	case "/reports":
		_, _ = w.Write([]byte(`[{"id":1,"type":"Deposit","date":"2024-01-15","user":"Jane Doe","amount":5000},{"id":2,"type":"Withdrawal","date":"2024-02-01","user":"Jane Doe","amount":1200.5}]`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	}
}

func TestClientsPageByRole(t *testing.T) {
	tests := []struct {
		name          string
		role          domain.Role
		wantCollector bool
		wantDelete    string
		noDelete      []string
	}{
		{
			name:       "Collector sees own clients only",
			role:       domain.RoleCollector,
			noDelete:   []string{`action="/clients/1/delete"`, `disabled>Delete`},
			wantDelete: "",
		},
		{
			name:          "Accountant sees disabled actions",
			role:          domain.RoleAccountant,
			wantCollector: true,
			wantDelete:    `<button class="btn btn-danger" disabled>Delete</button>`,
			noDelete:      []string{`action="/clients/1/delete"`},
		},
		{
			name:          "Admin can delete",
			role:          domain.RoleAdmin,
			wantCollector: true,
			wantDelete:    `action="/clients/1/delete"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, clientsBackend, tt.role, true)
			resp, body := h.get(t, "/clients")

			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
			}
			if !strings.Contains(body, "Jane Doe") {
				t.Fatalf("expected the client row to be rendered")
			}
			if got := strings.Contains(body, "<th>Collector</th>"); got != tt.wantCollector {
				t.Errorf("collector column rendered = %v, want %v", got, tt.wantCollector)
			}
			if tt.wantDelete != "" && !strings.Contains(body, tt.wantDelete) {
				t.Errorf("expected %q in body", tt.wantDelete)
			}
			for _, s := range tt.noDelete {
				if strings.Contains(body, s) {
					t.Errorf("unexpected %q in body", s)
				}
			}
		})
	}
}

func TestGuardRedirects(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		path     string
		wantCode int
		wantLoc  string
	}{
		{"Unauthenticated page", "", "/clients", fiber.StatusFound, "/login"},
		{"Collector on admin route", domain.RoleCollector, "/users", fiber.StatusFound, "/"},
		{"Collector on reports", domain.RoleCollector, "/reports", fiber.StatusFound, "/"},
		{"Unknown path", domain.RoleAdmin, "/nowhere", fiber.StatusFound, "/"},
		{"Signed in user on login", domain.RoleCollector, "/login", fiber.StatusFound, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, clientsBackend, tt.role, true)
			resp, _ := h.get(t, tt.path)
			if resp.StatusCode != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, resp.StatusCode)
			}
			if loc := resp.Header.Get("Location"); loc != tt.wantLoc {
				t.Errorf("expected redirect to %s, got %s", tt.wantLoc, loc)
			}
		})
	}
}

func TestAPIGuardReturnsJSON(t *testing.T) {
	h := newHarness(t, clientsBackend, "", true)
	resp, body := h.get(t, "/api/v1/session")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"success":false`) {
		t.Errorf("expected a JSON error body, got %s", body)
	}
}

func TestLoadingStateRendersSpinner(t *testing.T) {
	h := newHarness(t, clientsBackend, domain.RoleAdmin, false)
	resp, body := h.get(t, "/clients")
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503 while loading, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Errorf("expected Retry-After header")
	}
	if !strings.Contains(body, "spinner") {
		t.Errorf("expected the loading page, got %s", body)
	}
}

func TestBackendUnauthorizedForcesLogout(t *testing.T) {
	expired := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"session expired"}`))
	}
	h := newHarness(t, expired, domain.RoleAdmin, true)
	if h.storage.Len() != 1 {
		t.Fatalf("expected a stored session before the request")
	}

	resp, _ := h.get(t, "/clients")
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %s", resp.StatusCode, resp.Header.Get("Location"))
	}
	if h.storage.Len() != 0 {
		t.Errorf("expected the session to be cleared")
	}
	cleared := false
	for _, c := range resp.Cookies() {
		if c.Name == h.cfg.Cookie.Name && c.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Errorf("expected the session cookie to be cleared")
	}
}

func TestReportExport(t *testing.T) {
	h := newHarness(t, clientsBackend, domain.RoleAdmin, true)

	resp, body := h.get(t, "/reports/export.csv?type=Deposit")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(resp.Header.Get(fiber.HeaderContentDisposition), "report.csv") {
		t.Errorf("expected report.csv attachment, got %q", resp.Header.Get(fiber.HeaderContentDisposition))
	}
	want := "id,type,date,user,amount\n1,\"Deposit\",\"2024-01-15\",\"Jane Doe\",5000"
	if body != want {
		t.Errorf("unexpected CSV:\n%s\nwant:\n%s", body, want)
	}

	resp, body = h.get(t, "/reports/export.pdf")
	if resp.StatusCode != fiber.StatusOK || !strings.HasPrefix(body, "%PDF-") {
		t.Fatalf("expected a PDF document, got %d", resp.StatusCode)
	}
}

func TestReportExportWithoutRows(t *testing.T) {
	h := newHarness(t, clientsBackend, domain.RoleAdmin, true)

	resp, _ := h.get(t, "/reports/export.csv?type=Commission")
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); !strings.HasPrefix(loc, "/reports?") || !strings.Contains(loc, "error=") {
		t.Errorf("expected redirect back to reports with an error, got %s", loc)
	}
}
