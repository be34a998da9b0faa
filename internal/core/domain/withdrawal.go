package domain

// WithdrawalStatus is the approval state of a withdrawal request
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

// Terminal reports whether no further transition is possible
func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalApproved || s == WithdrawalRejected
}

// CanTransitionTo encodes PENDING -> APPROVED | REJECTED
func (s WithdrawalStatus) CanTransitionTo(next WithdrawalStatus) bool {
	return s == WithdrawalPending && next.Terminal()
}

// WithdrawalRequest asks to pay out part of a cycle balance
type WithdrawalRequest struct {
	ID              int64            `json:"id"`
	CycleID         int64            `json:"cycleId"`
	Cycle           *CycleRef        `json:"cycle,omitempty"`
	ClientName      string           `json:"clientName,omitempty"`
	Client          *ClientRef       `json:"client,omitempty"`
	RequestedAmount Amount           `json:"requestedAmount"`
	ApprovedAmount  Amount           `json:"approvedAmount"`
	RequestDate     string           `json:"requestDate"`
	Reason          string           `json:"reason,omitempty"`
	Status          WithdrawalStatus `json:"status"`
	ApprovalDate    string           `json:"approvalDate,omitempty"`
	ApprovalNotes   string           `json:"approvalNotes,omitempty"`
	RejectionReason string           `json:"rejectionReason,omitempty"`
	Collector       *UserRef         `json:"collector,omitempty"`
}

func (w WithdrawalRequest) OwnerName() string {
	if w.ClientName != "" {
		return w.ClientName
	}
	return w.Client.FullName()
}

// Approve checks that w may move to APPROVED with the given input
func (w WithdrawalRequest) Approve(in ApprovalInput) error {
	if !w.Status.CanTransitionTo(WithdrawalApproved) {
		return ErrInvalidTransition
	}
	return in.Validate()
}

// Reject checks that w may move to REJECTED with the given input
func (w WithdrawalRequest) Reject(in RejectionInput) error {
	if !w.Status.CanTransitionTo(WithdrawalRejected) {
		return ErrInvalidTransition
	}
	return in.Validate()
}

// HasPending reports whether any request for cycleID is still pending
func HasPending(cycleID int64, ws []WithdrawalRequest) bool {
	for _, w := range ws {
		if w.Status == WithdrawalPending && (w.CycleID == cycleID || (w.Cycle != nil && w.Cycle.ID == cycleID)) {
			return true
		}
	}
	return false
}

// CanRequestWithdrawal: only collectors, on an open cycle with a balance and
// no request still awaiting a decision.
func CanRequestWithdrawal(role Role, c Cycle, ws []WithdrawalRequest) bool {
	return role == RoleCollector &&
		c.Status != CycleClosed &&
		!HasPending(c.ID, ws) &&
		c.TotalDeposits > 0
}

// CanDeleteWithdrawal: admins delete anything, collectors only pending requests
func CanDeleteWithdrawal(role Role, w WithdrawalRequest) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleCollector:
		return w.Status == WithdrawalPending
	}
	return false
}
