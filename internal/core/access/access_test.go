package access

import (
	"testing"

	"susu-dashboard/internal/core/domain"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name  string
		role  domain.Role
		allow []domain.Role
		want  bool
	}{
		{"No allow-list", domain.RoleCollector, nil, true},
		{"Admin on admin route", domain.RoleAdmin, []domain.Role{domain.RoleAdmin}, true},
		{"Accountant on admin route", domain.RoleAccountant, []domain.Role{domain.RoleAdmin}, true},
		{"Collector on admin route", domain.RoleCollector, []domain.Role{domain.RoleAdmin}, false},
		{"Accountant on collector route", domain.RoleAccountant, []domain.Role{domain.RoleCollector}, false},
		{"Unknown role", domain.Role("GUEST"), []domain.Role{domain.RoleAdmin}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.role, tt.allow...); got != tt.want {
				t.Errorf("Allowed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecide(t *testing.T) {
	admin := &domain.Identity{ID: 1, Role: domain.RoleAdmin}
	collector := &domain.Identity{ID: 2, Role: domain.RoleCollector}

	tests := []struct {
		name    string
		loading bool
		user    *domain.Identity
		allow   []domain.Role
		want    Decision
	}{
		{"Loading wins", true, admin, nil, Loading},
		{"No session", false, nil, nil, Unauthenticated},
		{"Wrong role", false, collector, []domain.Role{domain.RoleAdmin}, Unauthorized},
		{"Open route", false, collector, nil, Authorized},
		{"Admin route", false, admin, []domain.Role{domain.RoleAdmin}, Authorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.loading, tt.user, tt.allow...); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccountantHasAdminReadsOnly(t *testing.T) {
	for _, c := range For(domain.RoleAdmin).Read {
		if !Can(domain.RoleAccountant, c) {
			t.Errorf("accountant missing admin read capability %s", c)
		}
	}
	if len(For(domain.RoleAccountant).Write) != 0 {
		t.Fatalf("accountant must not have write capabilities")
	}
}

func TestButtonFor(t *testing.T) {
	tests := []struct {
		name       string
		role       domain.Role
		capability Capability
		want       Button
	}{
		{"Admin deletes clients", domain.RoleAdmin, DeleteClient, Button{Visible: true, Enabled: true}},
		{"Accountant sees disabled delete", domain.RoleAccountant, DeleteClient, Button{Visible: true}},
		{"Collector cannot delete clients", domain.RoleCollector, DeleteClient, Button{}},
		{"Collector creates clients", domain.RoleCollector, CreateClient, Button{Visible: true, Enabled: true}},
		{"Accountant does not see collector actions", domain.RoleAccountant, CreateClient, Button{}},
		{"Accountant sees disabled approve", domain.RoleAccountant, ApproveWithdrawal, Button{Visible: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ButtonFor(tt.role, tt.capability); got != tt.want {
				t.Errorf("ButtonFor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWithdrawalButtons(t *testing.T) {
	cycle := domain.Cycle{ID: 5, Status: domain.CycleActive, TotalDeposits: 3}
	pending := []domain.WithdrawalRequest{{ID: 1, CycleID: 5, Status: domain.WithdrawalPending}}

	if b := WithdrawalRequestButton(domain.RoleCollector, cycle, nil); !b.Visible || !b.Enabled {
		t.Fatalf("expected enabled request button, got %+v", b)
	}
	if b := WithdrawalRequestButton(domain.RoleCollector, cycle, pending); b.Visible {
		t.Fatalf("expected hidden request button with a pending request, got %+v", b)
	}
	empty := domain.Cycle{ID: 5, Status: domain.CycleActive}
	if b := WithdrawalRequestButton(domain.RoleCollector, empty, nil); !b.Visible || b.Enabled {
		t.Fatalf("expected disabled request button without deposits, got %+v", b)
	}
	if b := WithdrawalRequestButton(domain.RoleAdmin, cycle, nil); b.Visible {
		t.Fatalf("admins never request withdrawals, got %+v", b)
	}

	approved := domain.WithdrawalRequest{Status: domain.WithdrawalApproved}
	if b := WithdrawalDeleteButton(domain.RoleCollector, approved); b.Visible {
		t.Fatalf("collector must not delete approved requests, got %+v", b)
	}
	if b := WithdrawalDeleteButton(domain.RoleAdmin, approved); !b.Enabled {
		t.Fatalf("admin deletes any request, got %+v", b)
	}
	if b := DecisionButton(domain.RoleAdmin, ApproveWithdrawal, approved); b.Visible {
		t.Fatalf("approve hidden on settled request, got %+v", b)
	}
}

func TestHomeFor(t *testing.T) {
	tests := map[domain.Role]string{
		domain.RoleAdmin:      "/users",
		domain.RoleAccountant: "/cycles",
		domain.RoleCollector:  "/clients",
		domain.Role(""):       "/",
	}
	for role, want := range tests {
		if got := HomeFor(role); got != want {
			t.Errorf("HomeFor(%q) = %s, want %s", role, got, want)
		}
	}
}

func TestMenu(t *testing.T) {
	collector := Menu(domain.RoleCollector)
	for _, item := range collector {
		if item.Path == "/users" || item.Path == "/reports" {
			t.Fatalf("collector menu must not include %s", item.Path)
		}
	}
	if len(Menu(domain.RoleAccountant)) != len(Menu(domain.RoleAdmin)) {
		t.Fatalf("accountant menu should match admin menu")
	}
}
