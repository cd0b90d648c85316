/*
postings.go - Ledger postings and range queries

PURPOSE:
  Timecards go to hourly employees, sales to commissioned ones, service
  charges to union members addressed by union id. The matching queries
  sum over an external [start, end] range after validating its ordering;
  the ledgers themselves assume a valid period.

VALIDATION ORDER:
  Existence before type before value: unknown id first, wrong variant
  next, then the date, then the amount. Range queries validate both dates
  before the ordering check.

SEE ALSO:
  - ledger.go: the sums and the hourly 8-hour capping
  - period.go: QueryPeriod's end-exclusive mapping
*/
package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// POSTINGS
// =============================================================================

// PostTimecard records worked hours for an hourly employee.
func (e *Engine) PostTimecard(id, date, hours string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkpoint()

	emp, err := e.lookup(id)
	if err != nil {
		return err
	}
	h, ok := emp.(*HourlyEmployee)
	if !ok {
		return ErrNotHourly
	}
	if hours == "" {
		return ErrHoursRequired
	}
	d, err := ParseDate(date)
	if err != nil {
		return err
	}
	qty, perr := ParseMoney(hours)
	if perr != nil {
		return ErrHoursNotNumeric
	}
	if !qty.IsPositive() {
		return ErrHoursNotPositive
	}

	h.Timecards.Append(Entry{Date: d, Amount: qty})
	return nil
}

// PostSale records a sale for a commissioned employee.
func (e *Engine) PostSale(id, date, amount string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkpoint()

	emp, err := e.lookup(id)
	if err != nil {
		return err
	}
	c, ok := emp.(*CommissionedEmployee)
	if !ok {
		return ErrNotCommissioned
	}
	d, err := ParseDate(date)
	if err != nil {
		return err
	}
	v, perr := ParseMoney(amount)
	if perr != nil {
		return ErrValueNotNumeric
	}
	if !v.IsPositive() {
		return ErrValueNotPositive
	}

	c.Sales.Append(Entry{Date: d, Amount: v})
	return nil
}

// PostServiceCharge records a union service charge against the member
// holding the given union id.
func (e *Engine) PostServiceCharge(memberID, date, amount string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkpoint()

	if memberID == "" {
		return ErrMemberIDRequired
	}
	id, ok := e.roster.UnionMember(UnionID(memberID))
	if !ok {
		return ErrMemberNotFound
	}
	emp, _ := e.roster.Get(id)

	d, err := ParseDate(date)
	if err != nil {
		return err
	}
	v, perr := ParseMoney(amount)
	if perr != nil {
		return ErrValueNotNumeric
	}
	if !v.IsPositive() {
		return ErrValueNotPositive
	}

	emp.Profile().ServiceCharges.Append(Entry{Date: d, Amount: v})
	return nil
}

// =============================================================================
// RANGE QUERIES
// =============================================================================

// parseRange validates and parses an external [from, to] query range.
func parseRange(from, to string) (Period, error) {
	start, err := ParseDate(from)
	if err != nil {
		return Period{}, &DateFieldError{Field: "initial"}
	}
	end, err := ParseDate(to)
	if err != nil {
		return Period{}, &DateFieldError{Field: "final"}
	}
	if end.Before(start) {
		return Period{}, ErrStartAfterEnd
	}
	return QueryPeriod(start, end), nil
}

// NormalHours sums an hourly employee's per-day capped hours over the
// range, rendered in the hours format.
func (e *Engine) NormalHours(id, from, to string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	emp, err := e.lookup(id)
	if err != nil {
		return "", err
	}
	h, ok := emp.(*HourlyEmployee)
	if !ok {
		return "", ErrNotHourly
	}
	p, err := parseRange(from, to)
	if err != nil {
		return "", err
	}
	return FormatHours(h.Timecards.NormalHours(p)), nil
}

// OvertimeHours sums the per-day excess above eight hours. A non-hourly
// employee reports zero rather than an error, matching the external
// contract.
func (e *Engine) OvertimeHours(id, from, to string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	emp, err := e.lookup(id)
	if err != nil {
		return "", err
	}
	h, ok := emp.(*HourlyEmployee)
	if !ok {
		return "0", nil
	}
	p, err := parseRange(from, to)
	if err != nil {
		return "", err
	}
	return FormatHours(h.Timecards.OvertimeHours(p)), nil
}

// Sales sums a commissioned employee's sales over the range.
func (e *Engine) Sales(id, from, to string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	emp, err := e.lookup(id)
	if err != nil {
		return "", err
	}
	c, ok := emp.(*CommissionedEmployee)
	if !ok {
		return "", ErrNotCommissioned
	}
	p, err := parseRange(from, to)
	if err != nil {
		return "", err
	}
	return FormatMoney(c.Sales.SumIn(p)), nil
}

// ServiceCharges sums a union member's service charges over the range,
// addressed by employee id.
func (e *Engine) ServiceCharges(id, from, to string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	emp, err := e.lookup(id)
	if err != nil {
		return "", err
	}
	if !emp.Profile().Unionized() {
		return "", ErrNotUnionized
	}
	p, err := parseRange(from, to)
	if err != nil {
		return "", err
	}
	return FormatMoney(emp.Profile().ServiceCharges.SumIn(p)), nil
}

// chargesIn is the internal deduction helper used by the payroll run.
func chargesIn(emp Employee, p Period) decimal.Decimal {
	if !emp.Profile().Unionized() {
		return decimal.Zero
	}
	return emp.Profile().ServiceCharges.SumIn(p)
}
