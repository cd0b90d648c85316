/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All error values in one place for consistency and discoverability.
  The engine raises every error at the point of detection and never
  recovers locally; the caller (HTTP facade, CLI, tests) maps each
  kind to whatever message its users should see.

ERROR CATEGORIES:
  1. Missing fields  - required string arguments that arrived empty
  2. Invalid values  - unknown enums, non-numeric or non-positive numbers
  3. Lookup failures - unknown employee, union member, name occurrence
  4. Type mismatches - attribute access invalid for the current variant
  5. Date errors     - malformed dates, end-before-start ranges
  6. State errors    - duplicate union ids, empty undo history
  7. IO              - report file could not be written

USAGE:
  if errors.Is(err, payroll.ErrEmployeeNotFound) { ... }

SEE ALSO:
  - engine.go, mutate.go, postings.go: where these are raised
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// Missing required fields.
	ErrEmployeeIDRequired = errors.New("employee id is required")
	ErrMemberIDRequired   = errors.New("union member id is required")
	ErrNameRequired       = errors.New("name is required")
	ErrAddressRequired    = errors.New("address is required")
	ErrSalaryRequired     = errors.New("salary is required")
	ErrCommissionRequired = errors.New("commission rate is required")
	ErrHoursRequired      = errors.New("hours value is required")
	ErrUnionIDRequired    = errors.New("union id is required")
	ErrUnionFeeRequired   = errors.New("union fee is required")
	ErrBankDetailsRequired = errors.New("bank, branch and account are required")

	// Invalid enumerations and attribute keys.
	ErrInvalidCategory       = errors.New("invalid employee category")
	ErrCategoryNotApplicable = errors.New("category not applicable for this operation")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrUnknownAttribute      = errors.New("attribute does not exist")
	ErrValueNotBoolean       = errors.New("value must be true or false")

	// Numeric parse and range failures.
	ErrSalaryNotNumeric     = errors.New("salary must be numeric")
	ErrSalaryNegative       = errors.New("salary must not be negative")
	ErrCommissionNotNumeric = errors.New("commission rate must be numeric")
	ErrCommissionNegative   = errors.New("commission rate must not be negative")
	ErrHoursNotNumeric      = errors.New("hours must be numeric")
	ErrHoursNotPositive     = errors.New("hours must be positive")
	ErrValueNotNumeric      = errors.New("value must be numeric")
	ErrValueNotPositive     = errors.New("value must be positive")
	ErrUnionFeeNotNumeric   = errors.New("union fee must be numeric")
	ErrUnionFeeNotPositive  = errors.New("union fee must be positive")

	// Lookups.
	ErrEmployeeNotFound = errors.New("employee does not exist")
	ErrMemberNotFound   = errors.New("union member does not exist")
	ErrNameNotFound     = errors.New("no employee with that name")

	// Variant / attribute mismatches.
	ErrNotHourly       = errors.New("employee is not hourly")
	ErrNotCommissioned = errors.New("employee is not commissioned")
	ErrNotUnionized    = errors.New("employee is not a union member")
	ErrNoBankAccount   = errors.New("employee is not paid by bank deposit")

	// Dates.
	ErrInvalidDate   = errors.New("invalid date")
	ErrStartAfterEnd = errors.New("start date is after end date")

	// State.
	ErrDuplicateUnionID = errors.New("union id already bound to another employee")
	ErrEmptyHistory     = errors.New("nothing to undo")

	// IO.
	ErrReportWrite = errors.New("payroll report could not be written")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DateFieldError qualifies which date argument was malformed ("initial",
// "final", or the operation name for single-date arguments).
type DateFieldError struct {
	Field string
}

func (e *DateFieldError) Error() string {
	return fmt.Sprintf("invalid %s date", e.Field)
}

func (e *DateFieldError) Unwrap() error { return ErrInvalidDate }

// DuplicateUnionIDError reports which employee already holds the id.
type DuplicateUnionIDError struct {
	UnionID UnionID
	HeldBy  EmployeeID
}

func (e *DuplicateUnionIDError) Error() string {
	return fmt.Sprintf("union id %q already bound to employee %s", e.UnionID, e.HeldBy)
}

func (e *DuplicateUnionIDError) Unwrap() error { return ErrDuplicateUnionID }

// ReportWriteError carries the destination path and underlying IO failure.
type ReportWriteError struct {
	Destination string
	Err         error
}

func (e *ReportWriteError) Error() string {
	return fmt.Sprintf("payroll report could not be written to %s: %v", e.Destination, e.Err)
}

func (e *ReportWriteError) Unwrap() error { return ErrReportWrite }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrMemberNotFound) ||
		errors.Is(err, ErrNameNotFound)
}

// IsConflict returns true for uniqueness violations.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateUnionID)
}

// IsClientError returns true if the error is due to invalid caller input
// rather than an engine failure.
func IsClientError(err error) bool {
	if IsNotFound(err) || IsConflict(err) {
		return true
	}
	return !errors.Is(err, ErrReportWrite) && err != nil
}
