package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO-8601 calendar date layout used everywhere a date
// crosses a text boundary.
const DateLayout = "2006-01-02"

const (
	Income  TxType = "INCOME"
	Expense TxType = "EXPENSE"
)

type (
	TxType string

	Date struct {
		time.Time
	}

	// Transaction is an immutable record of a single income or expense event.
	Transaction struct {
		ID         string
		UserID     string
		Amount     decimal.Decimal
		Category   string
		OccurredOn Date
		Note       string
		Type       TxType
	}

	// MonthlyTotals is derived from the stored transactions on every query.
	MonthlyTotals struct {
		Income  decimal.Decimal
		Expense decimal.Decimal
		Net     decimal.Decimal
	}
)

// ParseTxType matches the type label case-insensitively.
func ParseTxType(s string) (TxType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Income):
		return Income, nil
	case string(Expense):
		return Expense, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// IsIncome reports whether the type label is INCOME, ignoring case.
func (t TxType) IsIncome() bool {
	return strings.EqualFold(string(t), string(Income))
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseISODate parses a strict YYYY-MM-DD date.
func ParseISODate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MonthLabel returns the "YYYY-MM" label of the month containing the date.
func (d Date) MonthLabel() string {
	return MonthLabel(d.Year(), d.Month())
}

// MonthLabel formats a year and month as "YYYY-MM".
func MonthLabel(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// InMonth reports whether the date falls in the given year and month.
func (d Date) InMonth(year, month int) bool {
	return d.Year() == year && d.Month() == month
}

// ZeroTotals returns totals with every field at zero.
func ZeroTotals() MonthlyTotals {
	return MonthlyTotals{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}
}
