/*
period.go - Pay-period windows and payday alignment

PURPOSE:
  Pure calendar arithmetic deciding, for a pay date and an employee
  category, whether the date is a payday and which inclusive window of
  ledger entries counts toward it.

ALIGNMENT RULES:
  - Hourly: weekly. A run on D tallies [D-6, D]; the employee appears only
    when D falls within the first eight days of its month.
  - Salaried: monthly. The employee appears only when D falls within the
    last eight days of its month; deductions span the whole month.
  - Commissioned: bi-weekly, anchored to the employee's last paid date
    (or a fixed epoch when never paid), not to the calendar.

RANGE CONVENTION:
  Period is inclusive on both ends. External range queries [start, end]
  follow the half-open convention of the original system: the end day
  itself is excluded, so they map to Period{start, end-1} via QueryPeriod.

SEE ALSO:
  - ledger.go: range sums over a Period
  - payrun.go: eligibility gating during a payroll run
*/
package payroll

import "time"

// =============================================================================
// PERIOD - Inclusive date range
// =============================================================================

type Period struct {
	Start TimePoint
	End   TimePoint
}

// Contains returns true if the time point is within [Start, End].
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// QueryPeriod maps an external [from, to] range query onto the inclusive
// Period the ledgers understand. The external convention excludes the end
// day itself, so the period runs through to-1. Callers must have rejected
// to < from already.
func QueryPeriod(from, to TimePoint) Period {
	return Period{Start: from, End: to.AddDays(-1)}
}

// PeriodThrough is the unbounded-start period ending at d, used by the
// whole-history pay calculations.
func PeriodThrough(d TimePoint) Period {
	return Period{Start: TimePoint{}, End: d}
}

// =============================================================================
// HOURLY - Weekly, first eight days of the month
// =============================================================================

// HourlyWindow is the seven-day tally window for a run on payDate.
func HourlyWindow(payDate TimePoint) Period {
	return Period{Start: payDate.AddDays(-6), End: payDate}
}

// IsHourlyPayday reports whether hourly employees appear in a run on d:
// d must lie between the first day of its month and that day plus seven.
func IsHourlyPayday(d TimePoint) bool {
	first := StartOfMonth(d)
	return d.AfterOrEqual(first) && d.BeforeOrEqual(first.AddDays(7))
}

// =============================================================================
// SALARIED - Monthly, last eight days of the month
// =============================================================================

// IsSalariedPayday reports whether salaried employees appear in a run on d:
// d must lie between lastDayOfMonth-7 and lastDayOfMonth.
func IsSalariedPayday(d TimePoint) bool {
	last := EndOfMonth(d)
	return d.AfterOrEqual(last.AddDays(-7)) && d.BeforeOrEqual(last)
}

// MonthWindow is the calendar month containing d, used for salaried
// service-charge deductions.
func MonthWindow(d TimePoint) Period {
	return Period{Start: StartOfMonth(d), End: EndOfMonth(d)}
}

// =============================================================================
// COMMISSIONED - Bi-weekly, anchored to the last payment
// =============================================================================

// commissionEpoch anchors employees that have never been paid.
var commissionEpoch = NewTimePoint(2005, time.January, 1)

// commissionAnchor is the date the next pay period counts from: the last
// paid date, or the epoch when there has been no payment yet.
func commissionAnchor(lastPaid TimePoint) TimePoint {
	if lastPaid.IsZero() {
		return commissionEpoch
	}
	return lastPaid
}

// IsCommissionPayday reports whether d is the payday for an employee whose
// last payment was lastPaid: exactly fourteen days after the anchor.
func IsCommissionPayday(lastPaid, d TimePoint) bool {
	return DaysBetween(commissionAnchor(lastPaid), d) == 14
}

// CommissionWindow is the sales window for a payment on payDate: from the
// day after the last payment (or the epoch itself when never paid) through
// the pay date.
func CommissionWindow(lastPaid, payDate TimePoint) Period {
	start := commissionEpoch
	if !lastPaid.IsZero() {
		start = lastPaid.AddDays(1)
	}
	return Period{Start: start, End: payDate}
}
