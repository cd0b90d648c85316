/*
mutate.go - Attribute updates, union enrolment and category changes

PURPOSE:
  The write half of the employee model. Everything here checkpoints on
  entry (see engine.go for the discipline) and keeps the union secondary
  index consistent with whatever it touches.

CATEGORY CHANGES:
  Changing "tipo" constructs a new variant from the old one's shared
  attributes and replaces the record under the same id. UpdateAttribute
  covers the plain form (commission rate starts at zero, base rate
  carries over); ConvertCategory covers the form that supplies the new
  rate explicitly.

SEE ALSO:
  - employee.go: convertCategory
  - roster.go: BindUnion / ReleaseUnion
*/
package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// ATTRIBUTE UPDATES
// =============================================================================

// UpdateAttribute mutates one attribute by its contract key.
//
// "sindicalizado" only accepts "false" here; enrolment needs the union id
// and fee and goes through SetUnionMembership. "metodoPagamento" only
// accepts the detail-free methods; bank deposit needs coordinates and
// goes through SetBankAccount.
func (e *Engine) UpdateAttribute(id, key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkpoint()

	emp, err := e.lookup(id)
	if err != nil {
		return err
	}
	p := emp.Profile()

	switch key {
	case AttrName:
		if value == "" {
			return ErrNameRequired
		}
		p.Name = value
		return nil

	case AttrAddress:
		if value == "" {
			return ErrAddressRequired
		}
		p.Address = value
		return nil

	case AttrCategory:
		return e.changeCategory(EmployeeID(id), emp, value, nil)

	case AttrSalary:
		if value == "" {
			return ErrSalaryRequired
		}
		salary, perr := ParseMoney(value)
		if perr != nil {
			return ErrSalaryNotNumeric
		}
		if !salary.IsPositive() {
			return ErrSalaryNegative
		}
		emp.SetSalary(salary)
		return nil

	case AttrCommission:
		c, ok := emp.(*CommissionedEmployee)
		if !ok {
			return ErrNotCommissioned
		}
		if value == "" {
			return ErrCommissionRequired
		}
		rate, perr := ParseMoney(value)
		if perr != nil {
			return ErrCommissionNotNumeric
		}
		if !rate.IsPositive() {
			return ErrCommissionNegative
		}
		c.Rate = rate
		return nil

	case AttrUnionized:
		switch value {
		case "false":
			if p.Unionized() {
				e.roster.ReleaseUnion(p.Union.ID)
				p.Union = nil
			}
			return nil
		case "true":
			// Enrolment carries a union id and fee.
			return ErrUnionIDRequired
		default:
			return ErrValueNotBoolean
		}

	case AttrPaymentMethod:
		switch PaymentMethod(value) {
		case MethodInHand, MethodMail:
			p.Method = PaymentMethod(value)
			p.Bank = nil
			return nil
		case MethodBank:
			// Bank deposit carries bank/branch/account.
			return ErrBankDetailsRequired
		default:
			return ErrInvalidPaymentMethod
		}

	default:
		return ErrUnknownAttribute
	}
}

// =============================================================================
// UNION ENROLMENT
// =============================================================================

// SetUnionMembership enrols an employee in a union. The union id must not
// be held by a different employee; the fee must be strictly positive.
// Re-enrolling under a new id releases the old binding.
func (e *Engine) SetUnionMembership(id, unionID, fee string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkpoint()

	emp, err := e.lookup(id)
	if err != nil {
		return err
	}
	if unionID == "" {
		return ErrUnionIDRequired
	}
	if fee == "" {
		return ErrUnionFeeRequired
	}
	if holder, ok := e.roster.UnionMember(UnionID(unionID)); ok && holder != EmployeeID(id) {
		return &DuplicateUnionIDError{UnionID: UnionID(unionID), HeldBy: holder}
	}
	rate, perr := ParseMoney(fee)
	if perr != nil {
		return ErrUnionFeeNotNumeric
	}
	if !rate.IsPositive() {
		return ErrUnionFeeNotPositive
	}

	// Bind first: BindUnion reads the current membership to release a
	// previous id, so the profile must still hold the old one.
	e.roster.BindUnion(UnionID(unionID), EmployeeID(id))
	emp.Profile().Union = &UnionMembership{ID: UnionID(unionID), MonthlyFee: rate}
	return nil
}

// =============================================================================
// BANK ACCOUNT
// =============================================================================

// SetBankAccount switches an employee to bank-deposit payment.
func (e *Engine) SetBankAccount(id, bank, branch, account string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkpoint()

	emp, err := e.lookup(id)
	if err != nil {
		return err
	}
	if bank == "" || branch == "" || account == "" {
		return ErrBankDetailsRequired
	}

	p := emp.Profile()
	p.Method = MethodBank
	p.Bank = &BankAccount{Bank: bank, Branch: branch, Account: account}
	return nil
}

// =============================================================================
// CATEGORY CHANGES
// =============================================================================

// ConvertCategory changes an employee's category supplying the new rate:
// the commission rate when converting to commissioned, the hourly wage
// when converting to hourly. Salaried conversions carry the base rate
// over and go through UpdateAttribute instead.
func (e *Engine) ConvertCategory(id, category, rate string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkpoint()

	emp, err := e.lookup(id)
	if err != nil {
		return err
	}
	switch Category(category) {
	case CategoryCommissioned:
		parsed, perr := ParseMoney(rate)
		if perr != nil {
			return ErrCommissionNotNumeric
		}
		return e.changeCategory(EmployeeID(id), emp, category, &parsed)
	case CategoryHourly:
		parsed, perr := ParseMoney(rate)
		if perr != nil {
			return ErrSalaryNotNumeric
		}
		return e.changeCategory(EmployeeID(id), emp, category, &parsed)
	default:
		return ErrInvalidCategory
	}
}

// changeCategory replaces the record under the same id with a fresh
// variant. rate overrides the carried base rate (hourly wage) or sets the
// commission rate; nil means the plain form (base rate carries over,
// commission starts at zero). Callers hold e.mu.
func (e *Engine) changeCategory(id EmployeeID, emp Employee, category string, rate *decimal.Decimal) error {
	if !ValidCategory(category) || Category(category) == emp.Category() {
		return ErrInvalidCategory
	}

	var next Employee
	switch Category(category) {
	case CategoryHourly:
		wage := emp.Salary()
		if rate != nil {
			wage = *rate
		}
		next = convertCategory(emp, CategoryHourly, wage)
	case CategorySalaried:
		next = convertCategory(emp, CategorySalaried, emp.Salary())
	case CategoryCommissioned:
		commission := decimal.Zero
		if rate != nil {
			commission = *rate
		}
		next = convertCategory(emp, CategoryCommissioned, commission)
	}

	e.roster.Replace(id, next)
	return nil
}
