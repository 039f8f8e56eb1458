package domain

import (
	"encoding/json"
	"time"
)

// Granularity is the calendar precision of a Period.
type Granularity int

const (
	GranularityMonth Granularity = iota + 1
	GranularityDay
)

// Layouts for the two period encodings.
const (
	MonthLayout = "2006-01"
	DayLayout   = "2006-01-02"
)

// String returns "month" or "day".
func (g Granularity) String() string {
	switch g {
	case GranularityMonth:
		return "month"
	case GranularityDay:
		return "day"
	default:
		return "unknown"
	}
}

// Period is a calendar tag derived from a source name, either YYYY-MM or
// YYYY-MM-DD. Both encodings are fixed width and zero padded, so comparing
// Value strings orders periods chronologically.
//
// A day period is never coarsened to its month.
type Period struct {
	Value       string
	Granularity Granularity
}

// String returns the encoded period.
func (p Period) String() string {
	return p.Value
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool {
	return p.Value == ""
}

// Start returns the first instant of the period. Month periods start on the
// first day of the month.
func (p Period) Start() time.Time {
	layout := MonthLayout
	if p.Granularity == GranularityDay {
		layout = DayLayout
	}
	t, err := time.Parse(layout, p.Value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Year returns the calendar year of the period.
func (p Period) Year() int {
	return p.Start().Year()
}

// Month returns the calendar month of the period.
func (p Period) Month() time.Month {
	return p.Start().Month()
}

// Before reports whether p sorts before other.
func (p Period) Before(other Period) bool {
	return p.Value < other.Value
}

// MarshalJSON renders the period as its encoded string.
func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Value)
}
