package domain

// CycleLength is the number of deposits that fill a cycle
const CycleLength = 31

// CycleStatus is the lifecycle state of a savings cycle
type CycleStatus string

const (
	CycleActive    CycleStatus = "ACTIVE"
	CycleCompleted CycleStatus = "COMPLETED"
	CycleClosed    CycleStatus = "CLOSED"
)

// Cycle is a 31-deposit savings period for one client
type Cycle struct {
	ID                 int64       `json:"id"`
	CycleCode          string      `json:"cycleCode"`
	ClientID           int64       `json:"clientId"`
	ClientName         string      `json:"clientName,omitempty"`
	Client             *ClientRef  `json:"client,omitempty"`
	Status             CycleStatus `json:"status"`
	DailyTargetDeposit Amount      `json:"dailyTargetDeposit"`
	TotalDeposits      int         `json:"totalDeposits"`
	TotalAmount        Amount      `json:"totalAmount"`
	StartDate          string      `json:"startDate"`
	EndDate            string      `json:"endDate,omitempty"`
	CreatedDate        string      `json:"createdDate,omitempty"`
}

// OwnerID returns the client id from the flat field or the nested reference
func (c Cycle) OwnerID() int64 {
	if c.ClientID != 0 {
		return c.ClientID
	}
	if c.Client != nil {
		return c.Client.ID
	}
	return 0
}

func (c Cycle) OwnerName() string {
	if c.ClientName != "" {
		return c.ClientName
	}
	return c.Client.FullName()
}

// CanComplete reports whether an active cycle has collected every deposit
func (c Cycle) CanComplete() bool {
	return c.Status == CycleActive && c.TotalDeposits >= CycleLength
}

// TotalAmount sums deposit amounts
func TotalAmount(deposits []Deposit) Amount {
	total := Amount{}
	for _, d := range deposits {
		total = total.Plus(d.Amount)
	}
	return total
}

// ProgressPercent is totalDeposits/31 as a percentage clamped to [0, 100]
func ProgressPercent(c Cycle) float64 {
	p := float64(c.TotalDeposits) / CycleLength * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// RemainingDeposits never goes below zero
func RemainingDeposits(c Cycle) int {
	return max(CycleLength-c.TotalDeposits, 0)
}

// PrefillAmount is the default withdrawal amount: the balance minus one
// daily target, floored at zero and rounded to cents.
func PrefillAmount(c Cycle) Amount {
	v := c.TotalAmount.Minus(c.DailyTargetDeposit)
	if !v.IsPositive() {
		return Amount{}
	}
	return Amount{d: v.d.Round(2)}
}

// CycleMetrics are the derived figures shown on a cycle page
type CycleMetrics struct {
	TotalDeposits int     `json:"totalDeposits"`
	TotalAmount   Amount  `json:"totalAmount"`
	Progress      float64 `json:"progress"`
	Remaining     int     `json:"remaining"`
	Prefill       Amount  `json:"prefill"`
	CanComplete   bool    `json:"canComplete"`
}

// MetricsFor derives cycle metrics. When the deposit list was fetched the
// totals are recomputed from it instead of trusting the cycle's counters.
func MetricsFor(c Cycle, deposits []Deposit, fetched bool) CycleMetrics {
	if fetched {
		c.TotalDeposits = len(deposits)
		c.TotalAmount = TotalAmount(deposits)
	}
	return CycleMetrics{
		TotalDeposits: c.TotalDeposits,
		TotalAmount:   c.TotalAmount,
		Progress:      ProgressPercent(c),
		Remaining:     RemainingDeposits(c),
		Prefill:       PrefillAmount(c),
		CanComplete:   c.CanComplete(),
	}
}
