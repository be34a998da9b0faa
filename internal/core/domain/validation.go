package domain

import (
	"regexp"
	"strings"
)

var (
	gmailPattern = regexp.MustCompile(`(?i)^[^\s@]+@gmail\.com$`)
	phonePattern = regexp.MustCompile(`^\+256\d{9}$`)
)

const minPasswordLength = 6

// UserInput is the body of user create and update calls
type UserInput struct {
	Username        string `json:"username"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Role            Role   `json:"role"`
	IsActive        bool   `json:"isActive"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"-"`
}

// Validate checks the form. A password is mandatory only when creating.
func (in UserInput) Validate(creating bool) error {
	errs := ValidationErrors{}
	if strings.TrimSpace(in.Username) == "" {
		errs.Add("username", "Username is required")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		errs.Add("firstName", "First name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		errs.Add("lastName", "Last name is required")
	}
	if email := strings.TrimSpace(in.Email); email != "" && !gmailPattern.MatchString(email) {
		errs.Add("email", "Email must end with @gmail.com or be left empty")
	}
	if in.Role != "" && !in.Role.Valid() {
		errs.Add("role", "Role is invalid")
	}
	switch {
	case creating && in.Password == "":
		errs.Add("password", "Password is required")
	case in.Password != "" && len(in.Password) < minPasswordLength:
		errs.Add("password", "Password must be at least 6 characters")
	}
	if (creating || in.Password != "") && in.Password != in.ConfirmPassword {
		errs.Add("confirmPassword", "Passwords do not match")
	}
	if phone := strings.TrimSpace(in.PhoneNumber); phone != "" {
		if len(phone) != 13 {
			errs.Add("phoneNumber", "Phone number must be exactly 13 characters (e.g., +256XXXXXXXXX)")
		} else if !phonePattern.MatchString(phone) {
			errs.Add("phoneNumber", "Phone number must start with +256 followed by 9 digits")
		}
	}
	return errs.Err()
}

// PasswordInput changes a user's password
type PasswordInput struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

func (in PasswordInput) Validate() error {
	errs := ValidationErrors{}
	if len(in.Password) < minPasswordLength {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if in.Password != in.ConfirmPassword {
		errs.Add("confirmPassword", "Passwords do not match")
	}
	return errs.Err()
}

// ClientInput is the body of client create and update calls
type ClientInput struct {
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	PhoneNumber           string `json:"phoneNumber"`
	NationalID            string `json:"nationalId,omitempty"`
	DateOfBirth           string `json:"dateOfBirth,omitempty"`
	Occupation            string `json:"occupation,omitempty"`
	Address               string `json:"address,omitempty"`
	EmergencyContactName  string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string `json:"emergencyContactPhone,omitempty"`
	RegistrationFeePaid   bool   `json:"registrationFeePaid"`
}

func (in ClientInput) Validate() error {
	errs := ValidationErrors{}
	if strings.TrimSpace(in.FirstName) == "" {
		errs.Add("firstName", "First name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		errs.Add("lastName", "Last name is required")
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		errs.Add("phoneNumber", "Phone number is required")
	}
	return errs.Err()
}

// CycleInput is the body of cycle create and update calls
type CycleInput struct {
	ClientID    int64  `json:"clientId"`
	DailyTarget Amount `json:"dailyTarget"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
}

func (in CycleInput) Validate() error {
	errs := ValidationErrors{}
	if in.ClientID <= 0 {
		errs.Add("clientId", "Client is required")
	}
	if !in.DailyTarget.IsPositive() {
		errs.Add("dailyTarget", "Daily target must be greater than 0")
	}
	if in.StartDate == "" {
		errs.Add("startDate", "Start date is required")
	}
	if in.StartDate != "" && in.EndDate != "" && in.EndDate <= in.StartDate {
		errs.Add("endDate", "End date must be after start date")
	}
	return errs.Err()
}

// DepositInput is the body of deposit create and update calls
type DepositInput struct {
	ClientID    int64  `json:"clientId"`
	CycleID     int64  `json:"cycleId"`
	Amount      Amount `json:"amount"`
	DepositDate string `json:"depositDate"`
	Notes       string `json:"notes"`
}

func (in DepositInput) Validate() error {
	errs := ValidationErrors{}
	if in.CycleID <= 0 {
		errs.Add("cycleId", "Cycle is required")
	}
	if !in.Amount.IsPositive() {
		errs.Add("amount", "Amount must be greater than 0")
	}
	if in.DepositDate == "" {
		errs.Add("depositDate", "Deposit date is required")
	}
	return errs.Err()
}

// ResolveClient fills ClientID from the selected cycle
func (in *DepositInput) ResolveClient(selected *Cycle) error {
	if selected == nil {
		return ErrCycleNotFound
	}
	owner := selected.OwnerID()
	if owner == 0 {
		return ErrCycleWithoutOwner
	}
	in.ClientID = owner
	return nil
}

// WithdrawalInput is the body of withdrawal request create and update calls
type WithdrawalInput struct {
	CycleID         int64  `json:"cycleId"`
	RequestedAmount Amount `json:"requestedAmount"`
	RequestDate     string `json:"requestDate"`
	Reason          string `json:"reason"`
}

func (in WithdrawalInput) Validate() error {
	errs := ValidationErrors{}
	if in.CycleID <= 0 {
		errs.Add("cycleId", "Cycle is required")
	}
	if !in.RequestedAmount.IsPositive() {
		errs.Add("requestedAmount", "Requested amount must be greater than 0")
	}
	if in.RequestDate == "" {
		errs.Add("requestDate", "Request date is required")
	}
	return errs.Err()
}

// ApprovalInput is the body of the approve call
type ApprovalInput struct {
	ApprovedAmount Amount `json:"approvedAmount"`
	ApprovalNotes  string `json:"approvalNotes"`
}

func (in ApprovalInput) Validate() error {
	if !in.ApprovedAmount.IsPositive() {
		return ValidationErrors{"approvedAmount": "Approved amount must be greater than 0"}
	}
	return nil
}

// RejectionInput is the body of the reject call
type RejectionInput struct {
	RejectionReason string `json:"rejectionReason"`
}

func (in RejectionInput) Validate() error {
	if strings.TrimSpace(in.RejectionReason) == "" {
		return ValidationErrors{"rejectionReason": "Rejection reason is required"}
	}
	return nil
}

// CommissionInput is the body of commission create and update calls
type CommissionInput struct {
	CollectorID      int64  `json:"collectorId"`
	CycleID          int64  `json:"cycleId"`
	CommissionAmount Amount `json:"commissionAmount"`
	PeriodStart      string `json:"periodStart,omitempty"`
	PeriodEnd        string `json:"periodEnd,omitempty"`
}
