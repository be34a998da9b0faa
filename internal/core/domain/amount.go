package domain

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a money value. Decoding is lenient: missing, null, empty or
// non-numeric JSON values read as zero.
type Amount struct {
	d decimal.Decimal
}

// NewAmount builds an Amount from a float
func NewAmount(v float64) Amount {
	return Amount{d: decimal.NewFromFloat(v)}
}

// AmountFromDecimal wraps a decimal value
func AmountFromDecimal(d decimal.Decimal) Amount {
	return Amount{d: d}
}

// ParseAmount parses user input such as "1,500.25"
func ParseAmount(s string) (Amount, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return Amount{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	return Amount{d: d}, nil
}

func (a Amount) Decimal() decimal.Decimal { return a.d }

func (a Amount) Float64() float64 { return a.d.InexactFloat64() }

func (a Amount) IsPositive() bool { return a.d.IsPositive() }

func (a Amount) IsZero() bool { return a.d.IsZero() }

func (a Amount) Plus(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }

func (a Amount) Minus(b Amount) Amount { return Amount{d: a.d.Sub(b.d)} }

func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

// Fixed renders the amount with exactly two decimals, as form inputs expect
func (a Amount) Fixed() string { return a.d.StringFixed(2) }

func (a Amount) String() string { return a.d.String() }

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(b), `"`))
	if s == "" || s == "null" {
		a.d = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		a.d = decimal.Zero
		return nil
	}
	a.d = d
	return nil
}

// SumAmounts adds amounts together
func SumAmounts(amounts ...Amount) Amount {
	total := Amount{}
	for _, a := range amounts {
		total = total.Plus(a)
	}
	return total
}
