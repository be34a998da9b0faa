package format

import (
	"testing"

	"susu-dashboard/internal/core/domain"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"150000.50", "150,000.5"},
		{"480000", "480,000"},
		{"0", "0"},
		{"1234.567", "1,234.57"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, err := domain.ParseAmount(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := Amount(a); got != tt.want {
				t.Errorf("Amount(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMoney(t *testing.T) {
	if got := Money(domain.NewAmount(2500)); got != "2,500 UGX" {
		t.Fatalf("Money() = %q", got)
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-15", "1/15/2024"},
		{"2024-03-05T10:30:00", "3/5/2024"},
		{"2024-03-05T10:30:00Z", "3/5/2024"},
		{"", "N/A"},
		{"soon", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Date(tt.in); got != tt.want {
				t.Errorf("Date(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDateTime(t *testing.T) {
	if got := DateTime("2024-03-05T14:07:09"); got != "3/5/2024, 2:07:09 PM" {
		t.Fatalf("DateTime() = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(100.0 / 31 * 10); got != "32.3%" {
		t.Fatalf("Percent() = %q", got)
	}
}
