// Package format renders numbers and dates for the dashboard views.
package format

import (
	"fmt"
	"strings"
	"time"

	"susu-dashboard/internal/core/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is appended to money values
const Currency = "UGX"

const (
	dateLayout     = "1/2/2006"
	dateTimeLayout = "1/2/2006, 3:04:05 PM"
)

var printer = message.NewPrinter(language.English)

// Amount groups thousands and drops trailing zeros: 150000.50 -> "150,000.5"
func Amount(a domain.Amount) string {
	return Number(a.Float64())
}

// Number formats f with grouping and at most two fraction digits
func Number(f float64) string {
	return printer.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(2)))
}

// Money is Amount followed by the currency code
func Money(a domain.Amount) string {
	return Amount(a) + " " + Currency
}

// Percent renders a progress value with one decimal place
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// Date renders an ISO date or timestamp as a short US date. Empty input
// renders as "N/A"; unparseable input is returned unchanged.
func Date(s string) string {
	t, ok := parse(s)
	if !ok {
		return fallback(s)
	}
	return t.Format(dateLayout)
}

// DateTime is Date with the time of day
func DateTime(s string) string {
	t, ok := parse(s)
	if !ok {
		return fallback(s)
	}
	return t.Format(dateTimeLayout)
}

// Timestamp formats t the way DateTime formats strings
func Timestamp(t time.Time) string {
	return t.Format(dateTimeLayout)
}

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func fallback(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
