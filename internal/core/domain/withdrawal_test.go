package domain

import (
	"errors"
	"testing"
)

func TestWithdrawalTransitions(t *testing.T) {
	tests := []struct {
		from WithdrawalStatus
		to   WithdrawalStatus
		want bool
	}{
		{WithdrawalPending, WithdrawalApproved, true},
		{WithdrawalPending, WithdrawalRejected, true},
		{WithdrawalPending, WithdrawalPending, false},
		{WithdrawalApproved, WithdrawalRejected, false},
		{WithdrawalApproved, WithdrawalPending, false},
		{WithdrawalRejected, WithdrawalApproved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApproveAndReject(t *testing.T) {
	pending := WithdrawalRequest{ID: 1, Status: WithdrawalPending, RequestedAmount: NewAmount(5000)}

	if err := pending.Approve(ApprovalInput{ApprovedAmount: NewAmount(4000)}); err != nil {
		t.Fatalf("expected approval to pass, got %v", err)
	}
	if err := pending.Approve(ApprovalInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
	if err := pending.Reject(RejectionInput{RejectionReason: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected validation error for blank reason, got %v", err)
	}

	approved := WithdrawalRequest{ID: 2, Status: WithdrawalApproved}
	if err := approved.Reject(RejectionInput{RejectionReason: "late"}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	rejected := WithdrawalRequest{ID: 3, Status: WithdrawalRejected}
	if err := rejected.Approve(ApprovalInput{ApprovedAmount: NewAmount(1)}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCanRequestWithdrawal(t *testing.T) {
	active := Cycle{ID: 10, Status: CycleActive, TotalDeposits: 5}
	pendingOnCycle := []WithdrawalRequest{{ID: 1, CycleID: 10, Status: WithdrawalPending}}
	pendingNested := []WithdrawalRequest{{ID: 2, Cycle: &CycleRef{ID: 10}, Status: WithdrawalPending}}
	settled := []WithdrawalRequest{{ID: 3, CycleID: 10, Status: WithdrawalApproved}, {ID: 4, CycleID: 11, Status: WithdrawalPending}}

	tests := []struct {
		name string
		role Role
		c    Cycle
		ws   []WithdrawalRequest
		want bool
	}{
		{"Collector on active cycle", RoleCollector, active, nil, true},
		{"Admin never requests", RoleAdmin, active, nil, false},
		{"Accountant never requests", RoleAccountant, active, nil, false},
		{"Closed cycle", RoleCollector, Cycle{ID: 10, Status: CycleClosed, TotalDeposits: 5}, nil, false},
		{"Pending on this cycle", RoleCollector, active, pendingOnCycle, false},
		{"Pending via nested cycle", RoleCollector, active, pendingNested, false},
		{"Settled or other cycle", RoleCollector, active, settled, true},
		{"No deposits yet", RoleCollector, Cycle{ID: 10, Status: CycleActive}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanRequestWithdrawal(tt.role, tt.c, tt.ws); got != tt.want {
				t.Errorf("CanRequestWithdrawal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanDeleteWithdrawal(t *testing.T) {
	tests := []struct {
		role   Role
		status WithdrawalStatus
		want   bool
	}{
		{RoleAdmin, WithdrawalApproved, true},
		{RoleAdmin, WithdrawalPending, true},
		{RoleCollector, WithdrawalPending, true},
		{RoleCollector, WithdrawalRejected, false},
		{RoleAccountant, WithdrawalPending, false},
	}

	for _, tt := range tests {
		if got := CanDeleteWithdrawal(tt.role, WithdrawalRequest{Status: tt.status}); got != tt.want {
			t.Errorf("CanDeleteWithdrawal(%s, %s) = %v, want %v", tt.role, tt.status, got, tt.want)
		}
	}
}
