/*
employee.go - The polymorphic employee model

PURPOSE:
  Three employee variants share one Profile (name, address, union
  membership, payment method, service-charge ledger) and differ in how
  they accrue pay:
    - Hourly: hourly wage + a timecard ledger, overtime at 1.5x past
      eight hours a day
    - Salaried: fixed monthly salary, no ledger
    - Commissioned: fixed base salary + commission rate over a sales
      ledger, plus the date of the last commission payment issued

CATEGORY CHANGE:
  A category change never mutates a variant in place. A fresh variant is
  constructed from the old profile (ledgers discarded) and stored under
  the same id; see Roster.Replace.

VALUE SEMANTICS:
  Clone produces a deep copy. The snapshot stack relies on this: a
  checkpointed employee must not share ledger or profile storage with
  the live one.

SEE ALSO:
  - roster.go: ownership and the union secondary index
  - payrun.go: how each variant is windowed during a run
*/
package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// EMPLOYEE - Common capability set
// =============================================================================

type Employee interface {
	// Profile gives access to the shared, category-independent attributes.
	Profile() *Profile

	Category() Category

	// Salary is the variant's base rate: hourly wage, monthly salary, or
	// the commissioned base salary.
	Salary() decimal.Decimal
	SetSalary(decimal.Decimal)

	// PayOn computes the whole-history gross pay through the given date.
	// This is the figure the aggregate payroll total uses; the formatted
	// run applies its own windowing on top (see payrun.go).
	PayOn(at TimePoint) decimal.Decimal

	// Clone returns a deep copy sharing no mutable state.
	Clone() Employee
}

// =============================================================================
// PROFILE - Shared attributes
// =============================================================================

type Profile struct {
	Name    string
	Address string
	Union   *UnionMembership
	Method  PaymentMethod
	Bank    *BankAccount

	// ServiceCharges is the union fee ledger. Only unionized employees
	// receive postings, but the ledger lives here so payroll deductions
	// read it uniformly.
	ServiceCharges Ledger
}

func newProfile(name, address string) Profile {
	return Profile{Name: name, Address: address, Method: MethodInHand}
}

func (p *Profile) Unionized() bool { return p.Union != nil }

// carryOver copies the shared attributes into a fresh profile for a
// category change: name, address, union membership and payment method
// survive; the service-charge ledger does not.
func (p *Profile) carryOver() Profile {
	out := Profile{Name: p.Name, Address: p.Address, Method: p.Method}
	if p.Union != nil {
		u := *p.Union
		out.Union = &u
	}
	if p.Bank != nil {
		b := *p.Bank
		out.Bank = &b
	}
	return out
}

func (p *Profile) clone() Profile {
	out := p.carryOver()
	out.ServiceCharges = p.ServiceCharges.Clone()
	return out
}

// =============================================================================
// HOURLY
// =============================================================================

var overtimeFactor = decimal.RequireFromString("1.5")

type HourlyEmployee struct {
	profile   Profile
	Wage      decimal.Decimal
	Timecards Ledger
}

func NewHourlyEmployee(name, address string, wage decimal.Decimal) *HourlyEmployee {
	return &HourlyEmployee{profile: newProfile(name, address), Wage: wage}
}

func (h *HourlyEmployee) Profile() *Profile          { return &h.profile }
func (h *HourlyEmployee) Category() Category         { return CategoryHourly }
func (h *HourlyEmployee) Salary() decimal.Decimal    { return h.Wage }
func (h *HourlyEmployee) SetSalary(d decimal.Decimal) { h.Wage = d }

// PayOn is the whole-history rule: normal hours at the wage plus overtime
// at 1.5x, over every timecard through the reference date.
func (h *HourlyEmployee) PayOn(at TimePoint) decimal.Decimal {
	p := PeriodThrough(at)
	normal := h.Timecards.NormalHours(p)
	overtime := h.Timecards.OvertimeHours(p)
	return normal.Mul(h.Wage).Add(overtime.Mul(h.Wage).Mul(overtimeFactor))
}

func (h *HourlyEmployee) Clone() Employee {
	return &HourlyEmployee{profile: h.profile.clone(), Wage: h.Wage, Timecards: h.Timecards.Clone()}
}

// =============================================================================
// SALARIED
// =============================================================================

type SalariedEmployee struct {
	profile       Profile
	MonthlySalary decimal.Decimal
}

func NewSalariedEmployee(name, address string, salary decimal.Decimal) *SalariedEmployee {
	return &SalariedEmployee{profile: newProfile(name, address), MonthlySalary: salary}
}

func (s *SalariedEmployee) Profile() *Profile           { return &s.profile }
func (s *SalariedEmployee) Category() Category          { return CategorySalaried }
func (s *SalariedEmployee) Salary() decimal.Decimal     { return s.MonthlySalary }
func (s *SalariedEmployee) SetSalary(d decimal.Decimal) { s.MonthlySalary = d }

// PayOn for salaried employees is the fixed salary, unconditionally.
func (s *SalariedEmployee) PayOn(TimePoint) decimal.Decimal {
	return s.MonthlySalary
}

func (s *SalariedEmployee) Clone() Employee {
	return &SalariedEmployee{profile: s.profile.clone(), MonthlySalary: s.MonthlySalary}
}

// =============================================================================
// COMMISSIONED
// =============================================================================

var (
	twelve   = decimal.NewFromInt(12)
	fiftyTwo = decimal.NewFromInt(52)
	two      = decimal.NewFromInt(2)
)

type CommissionedEmployee struct {
	profile    Profile
	BaseSalary decimal.Decimal
	Rate       decimal.Decimal
	Sales      Ledger

	// LastPaid anchors the next bi-weekly pay period. Zero means the
	// employee has never been paid and the epoch applies.
	LastPaid TimePoint
}

func NewCommissionedEmployee(name, address string, salary, rate decimal.Decimal) *CommissionedEmployee {
	return &CommissionedEmployee{profile: newProfile(name, address), BaseSalary: salary, Rate: rate}
}

func (c *CommissionedEmployee) Profile() *Profile           { return &c.profile }
func (c *CommissionedEmployee) Category() Category          { return CategoryCommissioned }
func (c *CommissionedEmployee) Salary() decimal.Decimal     { return c.BaseSalary }
func (c *CommissionedEmployee) SetSalary(d decimal.Decimal) { c.BaseSalary = d }

// FixedPortion is the salary-derived part of a bi-weekly payment:
// annual-equivalent salary spread over 52 weeks, two weeks' worth.
func (c *CommissionedEmployee) FixedPortion() decimal.Decimal {
	return c.BaseSalary.Mul(twelve).Div(fiftyTwo).Mul(two)
}

// PayOn is the whole-history rule: fixed portion plus commission on every
// sale through the reference date.
func (c *CommissionedEmployee) PayOn(at TimePoint) decimal.Decimal {
	sales := c.Sales.SumIn(PeriodThrough(at))
	return c.FixedPortion().Add(sales.Mul(c.Rate))
}

func (c *CommissionedEmployee) Clone() Employee {
	return &CommissionedEmployee{
		profile:    c.profile.clone(),
		BaseSalary: c.BaseSalary,
		Rate:       c.Rate,
		Sales:      c.Sales.Clone(),
		LastPaid:   c.LastPaid,
	}
}

// =============================================================================
// CATEGORY CHANGE - Construct, never mutate the tag
// =============================================================================

// convertCategory builds a fresh variant of the target category from an
// existing employee. Name, address, union membership and payment method
// carry over; ledgers and the old category's fields are discarded. The
// base rate carries verbatim (an hourly wage becomes a monthly salary
// figure and vice versa, as the external contract requires).
func convertCategory(e Employee, target Category, rate decimal.Decimal) Employee {
	profile := e.Profile().carryOver()
	switch target {
	case CategoryHourly:
		out := &HourlyEmployee{profile: profile, Wage: rate}
		return out
	case CategorySalaried:
		out := &SalariedEmployee{profile: profile, MonthlySalary: rate}
		return out
	default:
		out := &CommissionedEmployee{profile: profile, BaseSalary: e.Salary(), Rate: rate}
		return out
	}
}
