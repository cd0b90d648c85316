package payroll

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// TIME POINT - Day-granularity calendar date
// =============================================================================

// TimePoint is a calendar date. Payroll arithmetic never needs anything
// finer than a day, so the time-of-day component is always midnight UTC.
type TimePoint struct {
	Time time.Time
}

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "dd/MM/yyyy" date. It applies the structural checks of
// the external contract (three slash-separated integers, day 1-31, month
// 1-12, no February day above 29) before verifying the date exists on the
// calendar, so 31/04/2024 and 29/02/2023 are both rejected.
func ParseDate(s string) (TimePoint, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return TimePoint{}, ErrInvalidDate
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return TimePoint{}, ErrInvalidDate
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return TimePoint{}, ErrInvalidDate
	}
	if month == 2 && day > 29 {
		return TimePoint{}, ErrInvalidDate
	}
	tp := NewTimePoint(year, time.Month(month), day)
	// time.Date normalizes overflow (31/04 becomes 01/05); a round-trip
	// mismatch means the day does not exist in that month.
	if tp.Day() != day || tp.Month() != time.Month(month) || tp.Year() != year {
		return TimePoint{}, ErrInvalidDate
	}
	return tp, nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.Time.Before(other.Time) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.Time.Equal(other.Time) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.Time.After(other.Time) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint   { return TimePoint{Time: tp.Time.AddDate(0, 0, n)} }
func (tp TimePoint) AddMonths(n int) TimePoint { return TimePoint{Time: tp.Time.AddDate(0, n, 0)} }

// Properties
func (tp TimePoint) Year() int         { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month { return tp.Time.Month() }
func (tp TimePoint) Day() int          { return tp.Time.Day() }
func (tp TimePoint) IsZero() bool      { return tp.Time.IsZero() }

func (tp TimePoint) String() string {
	return tp.Time.Format("2006-01-02")
}

// FormatBR renders the date back in the external "dd/MM/yyyy" form.
func (tp TimePoint) FormatBR() string {
	return fmt.Sprintf("%02d/%02d/%04d", tp.Day(), int(tp.Month()), tp.Year())
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

func DaysBetween(from, to TimePoint) int {
	return int(to.Time.Sub(from.Time).Hours() / 24)
}

func StartOfMonth(tp TimePoint) TimePoint {
	return NewTimePoint(tp.Year(), tp.Month(), 1)
}

func EndOfMonth(tp TimePoint) TimePoint {
	return TimePoint{Time: time.Date(tp.Year(), tp.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
}
