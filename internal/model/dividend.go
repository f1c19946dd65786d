package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiAnnual Frequency = "semi-annual"
	FrequencyAnnual     Frequency = "annual"
)

func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(s))); f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencySemiAnnual, FrequencyAnnual:
		return f, nil
	default:
		return "", fmt.Errorf("unknown dividend frequency %q", s)
	}
}

// OccurrencesPerYear returns how many payments a year the frequency implies.
// Unknown values are treated as annual.
func (f Frequency) OccurrencesPerYear() int64 {
	switch f {
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	case FrequencySemiAnnual:
		return 2
	default:
		return 1
	}
}

// IntervalMonths is the number of months between two payments.
func (f Frequency) IntervalMonths() int {
	return 12 / int(f.OccurrencesPerYear())
}

// NextOccurrence advances last by whole frequency intervals until the result
// is not before from. Every step is taken from last, so a month-end date stays
// on the last day of shorter months instead of drifting into the next one.
func (f Frequency) NextOccurrence(last, from time.Time) time.Time {
	step := f.IntervalMonths()
	next := last
	for k := 1; next.Before(from); k++ {
		next = addMonthsClamped(last, k*step)
	}
	return next
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if lastDay := first.AddDate(0, 1, -1).Day(); d > lastDay {
		d = lastDay
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DividendRecord is a dividend payment recorded by the user.
type DividendRecord struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"-"`
	StockSymbol string          `json:"stockSymbol"`
	StockName   string          `json:"stockName"`
	Amount      decimal.Decimal `json:"amount"`
	ExDate      time.Time       `json:"exDate"`
	PaymentDate time.Time       `json:"paymentDate"`
	Frequency   Frequency       `json:"frequency"`
	Currency    string          `json:"currency"`
}

// DividendPayment is one historical payment reported by a market data provider.
type DividendPayment struct {
	Symbol      string
	Amount      decimal.Decimal
	ExDate      time.Time
	PaymentDate time.Time
	Currency    string
}

// DividendMeta describes the expected dividend of one symbol.
type DividendMeta struct {
	Symbol         string          `json:"symbol"`
	AnnualPerShare decimal.Decimal `json:"annualPerShare"`
	Frequency      Frequency       `json:"frequency"`
	Currency       string          `json:"currency"`
	LastDate       *time.Time      `json:"lastDate,omitempty"`
	NextDate       *time.Time      `json:"nextDate,omitempty"`
	Source         string          `json:"source"`
}
