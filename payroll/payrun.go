/*
payrun.go - Payroll totals and the payroll run

PURPOSE:
  Two deliberately different computations live here:

  1. TotalPayroll(date): the aggregate figure. Category-dispatched
     whole-history pay (Employee.PayOn) summed over the entire roster,
     ignoring eligibility windows.

  2. BuildRun/RunPayroll(date): the formatted run. Employees are gated by
     their category's payday rule, figures are windowed, sections are
     sorted by name under pt-BR primary-strength collation, and a
     successful run advances each paid commissioned employee's last-paid
     date.

  The two paths can disagree for the same employee and date; both
  behaviors are part of the external contract.

STATE SAFETY:
  The report is rendered into memory and written in one pass. Nothing,
  including last-paid dates, changes unless the write succeeds.

SEE ALSO:
  - period.go: the payday/window rules
  - report.go: the fixed column layout
*/
package payroll

import (
	"bytes"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// nameCollator orders section rows the way the original system did:
// pt-BR collation at primary strength (case and accents ignored).
var nameCollator = collate.New(language.BrazilianPortuguese, collate.Loose)

// =============================================================================
// TOTAL PAYROLL
// =============================================================================

// TotalPayroll sums every employee's whole-history pay through the given
// date, rendered with two places and a comma.
func (e *Engine) TotalPayroll(date string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, err := ParseDate(date)
	if err != nil {
		return "", &DateFieldError{Field: "totalPayroll"}
	}

	total := decimal.Zero
	e.roster.Each(func(_ EmployeeID, emp Employee) {
		total = total.Add(emp.PayOn(d))
	})
	return FormatMoney(total), nil
}

// =============================================================================
// RUN MODEL
// =============================================================================

type HourlyLine struct {
	Name      string
	Hours     int64
	Overtime  int64
	Gross     decimal.Decimal
	Deduction decimal.Decimal
	Net       decimal.Decimal
	Method    string
}

type SalariedLine struct {
	Name      string
	Gross     decimal.Decimal
	Deduction decimal.Decimal
	Net       decimal.Decimal
	Method    string
}

type CommissionedLine struct {
	Name       string
	Fixed      decimal.Decimal
	Sales      decimal.Decimal
	Commission decimal.Decimal
	Gross      decimal.Decimal
	Deduction  decimal.Decimal
	Net        decimal.Decimal
	Method     string
}

// Run holds one payroll run's computed rows and totals.
type Run struct {
	Date TimePoint

	Hourly        []HourlyLine
	HourlyHours   int64
	HourlyOvertime int64

	Salaried     []SalariedLine
	Commissioned []CommissionedLine

	HourlyGross, HourlyDeduction, HourlyNet             decimal.Decimal
	SalariedGross, SalariedDeduction, SalariedNet       decimal.Decimal
	CommissionedFixed, CommissionedSales                decimal.Decimal
	CommissionedCommission                              decimal.Decimal
	CommissionedGross, CommissionedDeduction, CommissionedNet decimal.Decimal

	// paid tracks the commissioned employees whose last-paid date moves
	// to Date once the run commits.
	paid []*CommissionedEmployee
}

// GrandTotal is the sum of the three sections' gross figures.
func (r *Run) GrandTotal() decimal.Decimal {
	return r.HourlyGross.Add(r.SalariedGross).Add(r.CommissionedGross)
}

// PaymentDescription renders how an employee receives pay, in the fixed
// external wording.
func PaymentDescription(p *Profile) string {
	switch {
	case p.Method == MethodBank && p.Bank != nil:
		return p.Bank.Bank + ", Ag. " + p.Bank.Branch + " CC " + p.Bank.Account
	case p.Method == MethodMail:
		return "Correios, " + p.Address
	default:
		return "Em maos"
	}
}

// =============================================================================
// RUN CONSTRUCTION
// =============================================================================

// buildRun computes the run for a pay date. Callers hold e.mu.
func (e *Engine) buildRun(d TimePoint) *Run {
	run := &Run{
		Date:                   d,
		HourlyGross:            decimal.Zero,
		HourlyDeduction:        decimal.Zero,
		HourlyNet:              decimal.Zero,
		SalariedGross:          decimal.Zero,
		SalariedDeduction:      decimal.Zero,
		SalariedNet:            decimal.Zero,
		CommissionedFixed:      decimal.Zero,
		CommissionedSales:      decimal.Zero,
		CommissionedCommission: decimal.Zero,
		CommissionedGross:      decimal.Zero,
		CommissionedDeduction:  decimal.Zero,
		CommissionedNet:        decimal.Zero,
	}

	e.buildHourly(run, d)
	e.buildSalaried(run, d)
	e.buildCommissioned(run, d)
	return run
}

func (e *Engine) buildHourly(run *Run, d TimePoint) {
	if !IsHourlyPayday(d) {
		return
	}
	window := HourlyWindow(d)

	var workers []*HourlyEmployee
	e.roster.Each(func(_ EmployeeID, emp Employee) {
		if h, ok := emp.(*HourlyEmployee); ok {
			workers = append(workers, h)
		}
	})
	sortByName(workers, func(h *HourlyEmployee) string { return h.profile.Name })

	for _, h := range workers {
		gross := h.PayOn(d)
		deduction := decimal.Zero
		if gross.IsPositive() {
			deduction = chargesIn(h, window)
		}
		line := HourlyLine{
			Name:      h.profile.Name,
			Hours:     h.Timecards.NormalHours(window).IntPart(),
			Overtime:  h.Timecards.OvertimeHours(window).IntPart(),
			Gross:     gross,
			Deduction: deduction,
			Net:       gross.Sub(deduction),
			Method:    PaymentDescription(&h.profile),
		}
		run.Hourly = append(run.Hourly, line)
		run.HourlyHours += line.Hours
		run.HourlyOvertime += line.Overtime
		run.HourlyGross = run.HourlyGross.Add(line.Gross)
		run.HourlyDeduction = run.HourlyDeduction.Add(line.Deduction)
		run.HourlyNet = run.HourlyNet.Add(line.Net)
	}
}

func (e *Engine) buildSalaried(run *Run, d TimePoint) {
	if !IsSalariedPayday(d) {
		return
	}
	month := MonthWindow(d)

	var staff []*SalariedEmployee
	e.roster.Each(func(_ EmployeeID, emp Employee) {
		if s, ok := emp.(*SalariedEmployee); ok {
			staff = append(staff, s)
		}
	})
	sortByName(staff, func(s *SalariedEmployee) string { return s.profile.Name })

	for _, s := range staff {
		gross := s.MonthlySalary
		deduction := chargesIn(s, month)
		line := SalariedLine{
			Name:      s.profile.Name,
			Gross:     gross,
			Deduction: deduction,
			Net:       gross.Sub(deduction),
			Method:    PaymentDescription(&s.profile),
		}
		run.Salaried = append(run.Salaried, line)
		run.SalariedGross = run.SalariedGross.Add(line.Gross)
		run.SalariedDeduction = run.SalariedDeduction.Add(line.Deduction)
		run.SalariedNet = run.SalariedNet.Add(line.Net)
	}
}

func (e *Engine) buildCommissioned(run *Run, d TimePoint) {
	var sellers []*CommissionedEmployee
	e.roster.Each(func(_ EmployeeID, emp Employee) {
		if c, ok := emp.(*CommissionedEmployee); ok {
			sellers = append(sellers, c)
		}
	})
	sortByName(sellers, func(c *CommissionedEmployee) string { return c.profile.Name })

	for _, c := range sellers {
		if !IsCommissionPayday(c.LastPaid, d) {
			continue
		}
		window := CommissionWindow(c.LastPaid, d)
		sales := c.Sales.SumIn(window)
		commission := sales.Mul(c.Rate)
		fixed := c.FixedPortion()
		gross := fixed.Add(commission)
		deduction := chargesIn(c, window)
		line := CommissionedLine{
			Name:       c.profile.Name,
			Fixed:      fixed,
			Sales:      sales,
			Commission: commission,
			Gross:      gross,
			Deduction:  deduction,
			Net:        gross.Sub(deduction),
			Method:     PaymentDescription(&c.profile),
		}
		run.Commissioned = append(run.Commissioned, line)
		run.CommissionedFixed = run.CommissionedFixed.Add(line.Fixed)
		run.CommissionedSales = run.CommissionedSales.Add(line.Sales)
		run.CommissionedCommission = run.CommissionedCommission.Add(line.Commission)
		run.CommissionedGross = run.CommissionedGross.Add(line.Gross)
		run.CommissionedDeduction = run.CommissionedDeduction.Add(line.Deduction)
		run.CommissionedNet = run.CommissionedNet.Add(line.Net)
		run.paid = append(run.paid, c)
	}
}

// sortByName orders a section's employees by trimmed name under the
// locale collator.
func sortByName[T any](items []T, name func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return nameCollator.CompareString(
			strings.TrimSpace(name(items[i])),
			strings.TrimSpace(name(items[j])),
		) < 0
	})
}

// =============================================================================
// RUN EXECUTION
// =============================================================================

// RunPayroll computes the run for the date, writes the formatted report
// to the destination path, and - only on a successful write - advances
// the last-paid date of every commissioned employee included.
func (e *Engine) RunPayroll(date, destination string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkpoint()

	d, err := ParseDate(date)
	if err != nil {
		return &DateFieldError{Field: "payroll run"}
	}

	run := e.buildRun(d)

	var buf bytes.Buffer
	if err := WriteReport(&buf, run); err != nil {
		return err
	}
	if err := os.WriteFile(destination, buf.Bytes(), 0o644); err != nil {
		return &ReportWriteError{Destination: destination, Err: err}
	}

	for _, c := range run.paid {
		c.LastPaid = d
	}
	return nil
}

// PreviewRun computes a run without writing anything or advancing state.
func (e *Engine) PreviewRun(date string) (*Run, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, err := ParseDate(date)
	if err != nil {
		return nil, &DateFieldError{Field: "payroll run"}
	}
	return e.buildRun(d), nil
}
