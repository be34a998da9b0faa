package domain

import "strings"

// Role represents user role in the system
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleAccountant Role = "ACCOUNTANT"
	RoleCollector  Role = "COLLECTOR"
)

// Roles lists every role in display order
var Roles = []Role{RoleAdmin, RoleAccountant, RoleCollector}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAccountant, RoleCollector:
		return true
	}
	return false
}

// Identity is the signed-in user as cached in the session
type Identity struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role"`
}

// User represents a dashboard account managed by administrators
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        Role   `json:"role"`
	IsActive    bool   `json:"isActive"`
	CreatedDate string `json:"createdDate,omitempty"`
}

func (u User) FullName() string {
	return joinName(u.FirstName, u.LastName)
}

// UserRef is the collector reference embedded in other resources
type UserRef struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

func (u *UserRef) DisplayName() string {
	if u == nil {
		return ""
	}
	if name := joinName(u.FirstName, u.LastName); name != "" {
		return name
	}
	return u.Username
}

// Client is a saver registered by a collector
type Client struct {
	ID                    int64    `json:"id"`
	FirstName             string   `json:"firstName"`
	LastName              string   `json:"lastName"`
	PhoneNumber           string   `json:"phoneNumber"`
	NationalID            string   `json:"nationalId,omitempty"`
	DateOfBirth           string   `json:"dateOfBirth,omitempty"`
	Occupation            string   `json:"occupation,omitempty"`
	Address               string   `json:"address,omitempty"`
	EmergencyContactName  string   `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string   `json:"emergencyContactPhone,omitempty"`
	PersonalCode          string   `json:"personalCode,omitempty"`
	RegistrationFeePaid   bool     `json:"registrationFeePaid"`
	Collector             *UserRef `json:"collector,omitempty"`
}

func (c Client) FullName() string {
	return joinName(c.FirstName, c.LastName)
}

// Matches reports whether query occurs in the client's name, phone or personal code.
// Matching is case-insensitive.
func (c Client) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{c.FirstName, c.LastName, c.PhoneNumber, c.PersonalCode} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// ClientRef is the client reference embedded in cycles and withdrawals
type ClientRef struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	PersonalCode string `json:"personalCode,omitempty"`
}

func (c *ClientRef) FullName() string {
	if c == nil {
		return ""
	}
	return joinName(c.FirstName, c.LastName)
}

// CycleRef is the cycle reference embedded in withdrawals and commissions
type CycleRef struct {
	ID        int64       `json:"id"`
	CycleCode string      `json:"cycleCode,omitempty"`
	Status    CycleStatus `json:"status,omitempty"`
}

// Deposit is a single daily collection against a cycle
type Deposit struct {
	ID            int64    `json:"id"`
	ClientID      int64    `json:"clientId"`
	CycleID       int64    `json:"cycleId"`
	Amount        Amount   `json:"amount"`
	DepositDate   string   `json:"depositDate"`
	Notes         string   `json:"notes,omitempty"`
	CreatedDate   string   `json:"createdDate,omitempty"`
	ClientName    string   `json:"clientName,omitempty"`
	CycleCode     string   `json:"cycleCode,omitempty"`
	CollectorName string   `json:"collectorName,omitempty"`
	Collector     *UserRef `json:"collector,omitempty"`
}

// CommissionStatus is the payout state of a commission
type CommissionStatus string

const (
	CommissionPending CommissionStatus = "PENDING"
	CommissionPaid    CommissionStatus = "PAID"
)

// Commission is the fee earned by a collector on a cycle
type Commission struct {
	ID               int64            `json:"id"`
	Collector        *UserRef         `json:"collector,omitempty"`
	Cycle            *CycleRef        `json:"cycle,omitempty"`
	CommissionAmount Amount           `json:"commissionAmount"`
	Status           CommissionStatus `json:"status"`
	PaidDate         string           `json:"paidDate,omitempty"`
	PeriodStart      string           `json:"periodStart,omitempty"`
	PeriodEnd        string           `json:"periodEnd,omitempty"`
}

// CommissionSummary is the per-collector commission aggregate
type CommissionSummary struct {
	CollectorID  int64  `json:"collectorId"`
	TotalAmount  Amount `json:"totalAmount"`
	PaidAmount   Amount `json:"paidAmount"`
	PendingCount int    `json:"pendingCount"`
	PaidCount    int    `json:"paidCount"`
}

// DepositSummary is the per-cycle deposit aggregate
type DepositSummary struct {
	CycleID       int64  `json:"cycleId"`
	TotalDeposits int    `json:"totalDeposits"`
	TotalAmount   Amount `json:"totalAmount"`
}

// ReportType classifies report rows
type ReportType string

const (
	ReportDeposit    ReportType = "Deposit"
	ReportWithdrawal ReportType = "Withdrawal"
	ReportCommission ReportType = "Commission"
)

// ReportRow is one line of the administrator report
type ReportRow struct {
	ID     int64      `json:"id"`
	Type   ReportType `json:"type"`
	Date   string     `json:"date"`
	User   string     `json:"user"`
	Amount Amount     `json:"amount"`
}

// ReportFilter narrows the administrator report
type ReportFilter struct {
	Type      string
	StartDate string
	EndDate   string
}

// Match applies the filter locally. Dates compare as ISO strings on their date part.
func (f ReportFilter) Match(r ReportRow) bool {
	if f.Type != "" && !strings.EqualFold(f.Type, string(r.Type)) {
		return false
	}
	day := r.Date
	if len(day) > 10 {
		day = day[:10]
	}
	if f.StartDate != "" && day < f.StartDate {
		return false
	}
	if f.EndDate != "" && day > f.EndDate {
		return false
	}
	return true
}

// RegistrationFees is the backend's daily registration fee aggregate
type RegistrationFees struct {
	Date        string `json:"date,omitempty"`
	TotalAmount Amount `json:"totalAmount"`
	Count       int    `json:"count"`
}

func joinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
