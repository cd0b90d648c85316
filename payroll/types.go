/*
Package payroll implements the payroll computation and employee-state engine.

PURPOSE:
  This package contains the in-memory model and algorithms for managing a
  roster of hourly, salaried and commissioned employees: dated ledgers of
  timecards, sales and union service charges, the pay-period arithmetic
  that decides what falls inside a pay run, the payroll aggregation itself,
  and a snapshot stack that lets every mutation be undone.

KEY CONCEPTS IN THIS FILE (types.go):
  - Category: the three employee variants (hourly, salaried, commissioned)
  - PaymentMethod / BankAccount: how an employee is paid
  - UnionMembership: optional union binding (id + monthly fee rate)
  - Money helpers: comma-decimal parsing and two-place rendering

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal everywhere, no floating-point money
  2. Value semantics: everything the snapshot stack copies is cloneable
  3. Fixed vocabulary: category, payment-method and attribute names are the
     Portuguese tokens of the external contract ("horista", "emMaos", ...)

SEE ALSO:
  - employee.go: the three employee variants
  - ledger.go: dated amount ledgers and hour capping
  - engine.go: the operation surface exposed to callers
*/
package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CATEGORY - Employee variant tag
// =============================================================================

type Category string

const (
	CategoryHourly       Category = "horista"
	CategorySalaried     Category = "assalariado"
	CategoryCommissioned Category = "comissionado"
)

// ValidCategory reports whether s is one of the three known categories.
func ValidCategory(s string) bool {
	switch Category(s) {
	case CategoryHourly, CategorySalaried, CategoryCommissioned:
		return true
	}
	return false
}

// =============================================================================
// PAYMENT METHOD
// =============================================================================

type PaymentMethod string

const (
	MethodInHand PaymentMethod = "emMaos"
	MethodMail   PaymentMethod = "correios"
	MethodBank   PaymentMethod = "banco"
)

// BankAccount holds the deposit coordinates for MethodBank.
type BankAccount struct {
	Bank    string
	Branch  string
	Account string
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type UnionID string

// =============================================================================
// UNION MEMBERSHIP
// =============================================================================

// UnionMembership binds an employee to a union. The id is unique among
// active memberships; MonthlyFee must be strictly positive.
type UnionMembership struct {
	ID         UnionID
	MonthlyFee decimal.Decimal
}

// =============================================================================
// ATTRIBUTE KEYS - External contract, carried verbatim
// =============================================================================

const (
	AttrName          = "nome"
	AttrAddress       = "endereco"
	AttrCategory      = "tipo"
	AttrSalary        = "salario"
	AttrCommission    = "comissao"
	AttrUnionized     = "sindicalizado"
	AttrPaymentMethod = "metodoPagamento"
	AttrBank          = "banco"
	AttrBranch        = "agencia"
	AttrAccount       = "contaCorrente"
	AttrUnionID       = "idSindicato"
	AttrUnionFee      = "taxaSindical"
)

// =============================================================================
// MONEY - Comma-decimal parsing and rendering
// =============================================================================

// ParseMoney parses a decimal that may use a comma as separator ("1234,56").
func ParseMoney(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
}

// FormatMoney renders a decimal with exactly two places and a comma
// separator ("1234,56").
func FormatMoney(d decimal.Decimal) string {
	return strings.ReplaceAll(d.StringFixed(2), ".", ",")
}

// FormatHours renders an hour figure rounded to two places: integral values
// without a decimal point, fractional values with trailing zeros stripped
// and a comma separator ("16", "7,5").
func FormatHours(d decimal.Decimal) string {
	r := d.Round(2)
	if r.IsInteger() {
		return r.Truncate(0).String()
	}
	return strings.ReplaceAll(r.String(), ".", ",")
}
