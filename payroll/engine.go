/*
engine.go - The operation surface of the payroll engine

PURPOSE:
  Engine is what callers talk to. It owns the roster and the snapshot
  stack, serializes every operation behind one mutex (the undo stack and
  the maps are not independently synchronized), and performs the final
  semantic validation: existence before type before value.

STRING IN, STRING OUT:
  Numeric and date arguments arrive as the external contract delivers
  them - comma-decimal numbers, dd/MM/yyyy dates - and results render the
  same way. Parsing failures surface as the typed errors of errors.go.

CHECKPOINT DISCIPLINE:
  Every mutating operation pushes a checkpoint on entry, before any
  validation. A call that then fails leaves a duplicate of the unchanged
  state on the stack, so undo after a rejected call restores an identical
  state. Reset clears the stack instead of pushing.

SEE ALSO:
  - mutate.go: attribute updates, union enrolment, category changes
  - postings.go: ledger postings and range queries
  - payrun.go: totalPayroll and the formatted run
*/
package payroll

import (
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENGINE
// =============================================================================

type Engine struct {
	mu      sync.Mutex
	roster  *Roster
	history History
}

func NewEngine() *Engine {
	return &Engine{roster: NewRoster()}
}

// checkpoint pushes the pre-mutation state. Callers hold e.mu.
func (e *Engine) checkpoint() {
	e.history.Checkpoint(e.roster)
}

// lookup resolves an employee id, applying the shared existence checks.
func (e *Engine) lookup(id string) (Employee, error) {
	if id == "" {
		return nil, ErrEmployeeIDRequired
	}
	emp, ok := e.roster.Get(EmployeeID(id))
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return emp, nil
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Reset clears all employees, the union index and the snapshot stack, and
// restarts id generation.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.roster = NewRoster()
	e.history.Clear()
}

// Undo pops the most recent checkpoint and restores it verbatim.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, err := e.history.Undo()
	if err != nil {
		return err
	}
	e.roster = prev
	return nil
}

// HistoryDepth reports how many checkpoints are stacked.
func (e *Engine) HistoryDepth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Depth()
}

// =============================================================================
// CREATION
// =============================================================================

// CreateEmployee creates an hourly or salaried employee and returns its id.
// The commissioned category needs a rate and must go through
// CreateCommissioned.
func (e *Engine) CreateEmployee(name, address, category, salary string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkpoint()

	wage, err := validateCreation(name, address, category, salary)
	if err != nil {
		return "", err
	}
	if Category(category) == CategoryCommissioned {
		return "", ErrCategoryNotApplicable
	}

	var emp Employee
	if Category(category) == CategoryHourly {
		emp = NewHourlyEmployee(name, address, wage)
	} else {
		emp = NewSalariedEmployee(name, address, wage)
	}
	return string(e.roster.Add(emp)), nil
}

// CreateCommissioned creates a commissioned employee and returns its id.
func (e *Engine) CreateCommissioned(name, address, category, salary, commission string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkpoint()

	base, err := validateCreation(name, address, category, salary)
	if err != nil {
		return "", err
	}
	if Category(category) != CategoryCommissioned {
		return "", ErrCategoryNotApplicable
	}
	if commission == "" {
		return "", ErrCommissionRequired
	}
	rate, err := ParseMoney(commission)
	if err != nil {
		return "", ErrCommissionNotNumeric
	}
	if rate.IsNegative() {
		return "", ErrCommissionNegative
	}

	return string(e.roster.Add(NewCommissionedEmployee(name, address, base, rate))), nil
}

// validateCreation runs the checks shared by both creation paths and
// returns the parsed salary. Creation accepts a zero salary but not a
// negative one; updates are stricter (see mutate.go).
func validateCreation(name, address, category, salary string) (decimal.Decimal, error) {
	if name == "" {
		return decimal.Zero, ErrNameRequired
	}
	if address == "" {
		return decimal.Zero, ErrAddressRequired
	}
	if !ValidCategory(category) {
		return decimal.Zero, ErrInvalidCategory
	}
	if salary == "" {
		return decimal.Zero, ErrSalaryRequired
	}
	parsed, perr := ParseMoney(salary)
	if perr != nil {
		return decimal.Zero, ErrSalaryNotNumeric
	}
	if parsed.IsNegative() {
		return decimal.Zero, ErrSalaryNegative
	}
	return parsed, nil
}

// =============================================================================
// REMOVAL, COUNT, SEARCH
// =============================================================================

// RemoveEmployee deletes an employee, releasing its union id if any.
func (e *Engine) RemoveEmployee(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkpoint()

	if _, err := e.lookup(id); err != nil {
		return err
	}
	e.roster.Remove(EmployeeID(id))
	return nil
}

// EmployeeCount returns the number of employees on the roster.
func (e *Engine) EmployeeCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roster.Count()
}

// FindByName returns the id of the index-th employee (1-based) whose name
// contains the given substring, in insertion order.
func (e *Engine) FindByName(name string, index int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if name == "" {
		return "", ErrNameRequired
	}
	id, ok := e.roster.FindByName(name, index)
	if !ok {
		return "", ErrNameNotFound
	}
	return string(id), nil
}

// =============================================================================
// ATTRIBUTE READS
// =============================================================================

// Attribute reads one attribute of an employee by its contract key.
// Category-specific keys on the wrong variant are type mismatches, not
// unknown attributes.
func (e *Engine) Attribute(id, key string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	emp, err := e.lookup(id)
	if err != nil {
		return "", err
	}
	p := emp.Profile()

	switch key {
	case AttrName:
		return p.Name, nil
	case AttrAddress:
		return p.Address, nil
	case AttrCategory:
		return string(emp.Category()), nil
	case AttrSalary:
		return FormatMoney(emp.Salary()), nil
	case AttrCommission:
		c, ok := emp.(*CommissionedEmployee)
		if !ok {
			return "", ErrNotCommissioned
		}
		return FormatMoney(c.Rate), nil
	case AttrUnionized:
		return strconv.FormatBool(p.Unionized()), nil
	case AttrPaymentMethod:
		return string(p.Method), nil
	case AttrBank, AttrBranch, AttrAccount:
		if p.Method != MethodBank || p.Bank == nil {
			return "", ErrNoBankAccount
		}
		switch key {
		case AttrBank:
			return p.Bank.Bank, nil
		case AttrBranch:
			return p.Bank.Branch, nil
		default:
			return p.Bank.Account, nil
		}
	case AttrUnionID:
		if !p.Unionized() {
			return "", ErrNotUnionized
		}
		return string(p.Union.ID), nil
	case AttrUnionFee:
		if !p.Unionized() {
			return "", ErrNotUnionized
		}
		return FormatMoney(p.Union.MonthlyFee), nil
	default:
		return "", ErrUnknownAttribute
	}
}
