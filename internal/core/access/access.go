// Package access holds the role capability table shared by the route guard
// and the views.
package access

import "susu-dashboard/internal/core/domain"

// Capability names one action or view in the dashboard
type Capability string

const (
	ViewDashboard     Capability = "dashboard:view"
	ViewAllCollectors Capability = "collectors:view-all"

	ViewUsers   Capability = "users:view"
	ManageUsers Capability = "users:manage"

	ViewClients  Capability = "clients:view"
	CreateClient Capability = "clients:create"
	EditClient   Capability = "clients:edit"
	DeleteClient Capability = "clients:delete"

	ViewCycles    Capability = "cycles:view"
	CreateCycle   Capability = "cycles:create"
	EditCycle     Capability = "cycles:edit"
	CompleteCycle Capability = "cycles:complete"
	DeleteCycle   Capability = "cycles:delete"

	ViewDeposits  Capability = "deposits:view"
	CreateDeposit Capability = "deposits:create"
	EditDeposit   Capability = "deposits:edit"
	DeleteDeposit Capability = "deposits:delete"

	ViewWithdrawals   Capability = "withdrawals:view"
	RequestWithdrawal Capability = "withdrawals:request"
	EditWithdrawal    Capability = "withdrawals:edit"
	ApproveWithdrawal Capability = "withdrawals:approve"
	RejectWithdrawal  Capability = "withdrawals:reject"
	DeleteWithdrawal  Capability = "withdrawals:delete"

	ViewCommissions   Capability = "commissions:view"
	ManageCommissions Capability = "commissions:manage"

	ViewReports   Capability = "reports:view"
	ExportReports Capability = "reports:export"
)

// Set is the read and write capabilities of one role
type Set struct {
	Read  []Capability `json:"read"`
	Write []Capability `json:"write"`
}

var adminReads = []Capability{
	ViewDashboard, ViewAllCollectors, ViewUsers, ViewClients, ViewCycles,
	ViewDeposits, ViewWithdrawals, ViewCommissions, ViewReports, ExportReports,
}

var table = map[domain.Role]Set{
	domain.RoleAdmin: {
		Read: adminReads,
		Write: []Capability{
			ManageUsers, DeleteClient, DeleteCycle, CompleteCycle, DeleteDeposit,
			ApproveWithdrawal, RejectWithdrawal, DeleteWithdrawal, ManageCommissions,
		},
	},
	// Accountants read everything an admin reads and change nothing.
	domain.RoleAccountant: {
		Read: adminReads,
	},
	domain.RoleCollector: {
		Read: []Capability{ViewDashboard, ViewClients, ViewCycles, ViewDeposits, ViewWithdrawals},
		Write: []Capability{
			CreateClient, EditClient, CreateCycle, EditCycle, CompleteCycle,
			CreateDeposit, EditDeposit, RequestWithdrawal, EditWithdrawal, DeleteWithdrawal,
		},
	},
}

// For returns the capability set of role; unknown roles get nothing
func For(role domain.Role) Set {
	return table[role]
}

// Can reports whether role may read or perform c
func Can(role domain.Role, c Capability) bool {
	s := table[role]
	return contains(s.Read, c) || contains(s.Write, c)
}

// CanWrite reports whether role may perform the mutating action c
func CanWrite(role domain.Role, c Capability) bool {
	return contains(table[role].Write, c)
}

// Allowed checks role against a route allow-list. An empty list admits every
// role; ADMIN in the list also admits ACCOUNTANT for reading.
func Allowed(role domain.Role, allow ...domain.Role) bool {
	if len(allow) == 0 {
		return true
	}
	for _, r := range allow {
		if r == role || (r == domain.RoleAdmin && role == domain.RoleAccountant) {
			return true
		}
	}
	return false
}

// Button is the render state of an action control
type Button struct {
	Visible bool
	Enabled bool
}

var (
	hidden   = Button{}
	enabled  = Button{Visible: true, Enabled: true}
	disabled = Button{Visible: true}
)

// ButtonFor: enabled when role may perform c, shown disabled to accountants
// for admin actions, hidden otherwise.
func ButtonFor(role domain.Role, c Capability) Button {
	switch {
	case CanWrite(role, c):
		return enabled
	case role == domain.RoleAccountant && CanWrite(domain.RoleAdmin, c):
		return disabled
	}
	return hidden
}

// Only restricts a button to a condition on the resource
func (b Button) Only(cond bool) Button {
	if !cond {
		return hidden
	}
	return b
}

// EnabledIf keeps the button visible but disables it when cond is false
func (b Button) EnabledIf(cond bool) Button {
	b.Enabled = b.Enabled && cond
	return b
}

// WithdrawalDeleteButton applies the per-status delete rule
func WithdrawalDeleteButton(role domain.Role, w domain.WithdrawalRequest) Button {
	b := ButtonFor(role, DeleteWithdrawal)
	if role == domain.RoleAccountant {
		return b
	}
	return b.Only(domain.CanDeleteWithdrawal(role, w))
}

// WithdrawalRequestButton is shown to collectors on open cycles without a
// pending request and enabled once the cycle has a balance.
func WithdrawalRequestButton(role domain.Role, c domain.Cycle, ws []domain.WithdrawalRequest) Button {
	b := ButtonFor(role, RequestWithdrawal).Only(c.Status != domain.CycleClosed && !domain.HasPending(c.ID, ws))
	return b.EnabledIf(domain.CanRequestWithdrawal(role, c, ws))
}

// DecisionButton gates approve and reject on a pending request
func DecisionButton(role domain.Role, c Capability, w domain.WithdrawalRequest) Button {
	return ButtonFor(role, c).Only(w.Status == domain.WithdrawalPending)
}

func contains(list []Capability, c Capability) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}
