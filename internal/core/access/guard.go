package access

import "susu-dashboard/internal/core/domain"

// Decision is the outcome of guarding a protected route
type Decision int

const (
	Loading Decision = iota
	Unauthenticated
	Unauthorized
	Authorized
)

func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case Unauthenticated:
		return "unauthenticated"
	case Unauthorized:
		return "unauthorized"
	}
	return "authorized"
}

// Decide evaluates the guard state machine for one request
func Decide(loading bool, user *domain.Identity, allow ...domain.Role) Decision {
	switch {
	case loading:
		return Loading
	case user == nil:
		return Unauthenticated
	case !Allowed(user.Role, allow...):
		return Unauthorized
	}
	return Authorized
}

// HomeFor is where a role lands after signing in
func HomeFor(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "/users"
	case domain.RoleAccountant:
		return "/cycles"
	case domain.RoleCollector:
		return "/clients"
	}
	return "/"
}

// NavItem is one entry of the application menu
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Menu lists the sections role can open, in menu order
func Menu(role domain.Role) []NavItem {
	items := []struct {
		NavItem
		need Capability
	}{
		{NavItem{"Dashboard", "/"}, ViewDashboard},
		{NavItem{"Users", "/users"}, ViewUsers},
		{NavItem{"Clients", "/clients"}, ViewClients},
		{NavItem{"Cycles", "/cycles"}, ViewCycles},
		{NavItem{"Deposits", "/deposits"}, ViewDeposits},
		{NavItem{"Withdrawals", "/withdrawals"}, ViewWithdrawals},
		{NavItem{"Reports", "/reports"}, ViewReports},
	}
	var menu []NavItem
	for _, it := range items {
		if Can(role, it.need) {
			menu = append(menu, it.NavItem)
		}
	}
	return menu
}
