/*
ledger.go - Append-only dated amount ledgers

PURPOSE:
  Each employee carries up to two category ledgers (timecards for hourly,
  sales for commissioned) plus a union service-charge ledger. A Ledger is
  an append-only, date-ordered sequence of (date, amount) entries; every
  payroll figure is computed by summing over a Period, never cached.

INVARIANTS:
  1. Entries stay sorted by date (ties keep insertion order).
  2. Multiple entries on one date are legal and are summed per day before
     the hourly 8-hour cap is applied.
  3. Ledgers are cloned whole when the snapshot stack checkpoints, so a
     checkpoint never shares entry storage with live state.

SEE ALSO:
  - period.go: the Period type the range queries take
  - employee.go: which variant owns which ledger
*/
package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LEDGER - Date-ordered (date, amount) entries
// =============================================================================

type Entry struct {
	Date   TimePoint
	Amount decimal.Decimal
}

type Ledger struct {
	entries []Entry
}

// Append inserts an entry keeping the ledger date-ordered. Binary search
// for the insertion point; entries on the same date keep arrival order.
func (l *Ledger) Append(e Entry) {
	i := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].Date.After(e.Date)
	})
	l.entries = append(l.entries, Entry{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = e
}

func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns a copy of the entry slice, oldest first.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clone returns a ledger with independent entry storage.
func (l *Ledger) Clone() Ledger {
	return Ledger{entries: l.Entries()}
}

// =============================================================================
// RANGE QUERIES
// =============================================================================

// SumIn totals the amounts of all entries inside the period.
func (l *Ledger) SumIn(p Period) decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.entries {
		if e.Date.After(p.End) {
			break
		}
		if p.Contains(e.Date) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// =============================================================================
// HOUR CAPPING - Normal vs overtime
// =============================================================================

var dailyCap = decimal.NewFromInt(8)

// NormalHours sums, for each day in the period, the day's hours capped at
// eight. Entries on the same date are combined before capping.
func (l *Ledger) NormalHours(p Period) decimal.Decimal {
	total := decimal.Zero
	l.eachDay(p, func(day decimal.Decimal) {
		total = total.Add(decimal.Min(day, dailyCap))
	})
	return total
}

// OvertimeHours sums each day's excess above eight hours.
func (l *Ledger) OvertimeHours(p Period) decimal.Decimal {
	total := decimal.Zero
	l.eachDay(p, func(day decimal.Decimal) {
		if day.GreaterThan(dailyCap) {
			total = total.Add(day.Sub(dailyCap))
		}
	})
	return total
}

// eachDay walks the period's entries grouped per calendar day. The ledger
// is date-ordered, so one pass with a run accumulator suffices.
func (l *Ledger) eachDay(p Period, fn func(dayTotal decimal.Decimal)) {
	var (
		current TimePoint
		day     decimal.Decimal
		open    bool
	)
	for _, e := range l.entries {
		if e.Date.After(p.End) {
			break
		}
		if !p.Contains(e.Date) {
			continue
		}
		if open && !e.Date.Equal(current) {
			fn(day)
			open = false
		}
		if !open {
			current = e.Date
			day = decimal.Zero
			open = true
		}
		day = day.Add(e.Amount)
	}
	if open {
		fn(day)
	}
}
