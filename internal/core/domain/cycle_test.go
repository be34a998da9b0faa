package domain

import (
	"encoding/json"
	"testing"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		deposits int
		want     float64
	}{
		{"Empty cycle", 0, 0},
		{"Negative counter", -3, 0},
		{"Full cycle", 31, 100},
		{"Over full", 40, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressPercent(Cycle{TotalDeposits: tt.deposits})
			if got != tt.want {
				t.Errorf("ProgressPercent(%d) = %v, want %v", tt.deposits, got, tt.want)
			}
		})
	}
}

func TestProgressPercentMonotonic(t *testing.T) {
	prev := -1.0
	for n := 0; n <= 35; n++ {
		p := ProgressPercent(Cycle{TotalDeposits: n})
		if p < prev {
			t.Fatalf("progress dropped at %d deposits: %v < %v", n, p, prev)
		}
		if p < 0 || p > 100 {
			t.Fatalf("progress %v out of range at %d deposits", p, n)
		}
		prev = p
	}
}

func TestRemainingDeposits(t *testing.T) {
	tests := []struct {
		deposits int
		want     int
	}{
		{0, 31},
		{10, 21},
		{31, 0},
		{45, 0},
	}

	for _, tt := range tests {
		if got := RemainingDeposits(Cycle{TotalDeposits: tt.deposits}); got != tt.want {
			t.Errorf("RemainingDeposits(%d) = %d, want %d", tt.deposits, got, tt.want)
		}
	}
}

func TestPrefillAmount(t *testing.T) {
	tests := []struct {
		name   string
		total  float64
		target float64
		want   string
	}{
		{"Balance above target", 500000, 20000, "480000.00"},
		{"Balance below target", 10000, 20000, "0.00"},
		{"Balance equals target", 20000, 20000, "0.00"},
		{"Rounds to cents", 100.456, 0.001, "100.46"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cycle{TotalAmount: NewAmount(tt.total), DailyTargetDeposit: NewAmount(tt.target)}
			if got := PrefillAmount(c).Fixed(); got != tt.want {
				t.Errorf("PrefillAmount() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTotalAmountTreatsMissingAsZero(t *testing.T) {
	var deposits []Deposit
	raw := `[{"id":1,"amount":1500.5},{"id":2,"amount":null},{"id":3},{"id":4,"amount":"abc"},{"id":5,"amount":"499.5"}]`
	if err := json.Unmarshal([]byte(raw), &deposits); err != nil {
		t.Fatalf("failed to decode deposits: %v", err)
	}

	if got := TotalAmount(deposits).String(); got != "2000" {
		t.Fatalf("expected total 2000, got %s", got)
	}
}

func TestMetricsForRecomputesFromDeposits(t *testing.T) {
	c := Cycle{ID: 7, Status: CycleActive, TotalDeposits: 2, TotalAmount: NewAmount(100), DailyTargetDeposit: NewAmount(10)}
	deposits := []Deposit{{Amount: NewAmount(10)}, {Amount: NewAmount(10)}, {Amount: NewAmount(10)}}

	m := MetricsFor(c, deposits, true)
	if m.TotalDeposits != 3 || m.TotalAmount.String() != "30" {
		t.Fatalf("expected 3 deposits totalling 30, got %d / %s", m.TotalDeposits, m.TotalAmount)
	}
	if m.Remaining != 28 {
		t.Fatalf("expected 28 remaining, got %d", m.Remaining)
	}
	if m.Prefill.Fixed() != "20.00" {
		t.Fatalf("expected prefill 20.00, got %s", m.Prefill.Fixed())
	}

	m = MetricsFor(c, nil, false)
	if m.TotalDeposits != 2 || m.TotalAmount.String() != "100" {
		t.Fatalf("expected cycle counters when deposits were not fetched, got %d / %s", m.TotalDeposits, m.TotalAmount)
	}
}

func TestCanComplete(t *testing.T) {
	tests := []struct {
		name string
		c    Cycle
		want bool
	}{
		{"Active and full", Cycle{Status: CycleActive, TotalDeposits: 31}, true},
		{"Active not full", Cycle{Status: CycleActive, TotalDeposits: 30}, false},
		{"Completed", Cycle{Status: CycleCompleted, TotalDeposits: 31}, false},
		{"Closed", Cycle{Status: CycleClosed, TotalDeposits: 31}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.CanComplete(); got != tt.want {
				t.Errorf("CanComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCycleOwner(t *testing.T) {
	c := Cycle{Client: &ClientRef{ID: 4, FirstName: "Amina", LastName: "Nakato"}}
	if c.OwnerID() != 4 {
		t.Fatalf("expected owner 4 from nested client, got %d", c.OwnerID())
	}
	if c.OwnerName() != "Amina Nakato" {
		t.Fatalf("unexpected owner name %q", c.OwnerName())
	}
	c.ClientID = 9
	if c.OwnerID() != 9 {
		t.Fatalf("expected flat client id to win, got %d", c.OwnerID())
	}
}
