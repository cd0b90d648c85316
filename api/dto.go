/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the in-memory engine model from the external API contract: numeric and
  date fields cross the wire as strings in the engine's own external
  formats (comma-decimal numbers, dd/MM/yyyy dates), so the facade never
  reinterprets values the engine already knows how to validate.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Handlers pass strings straight through; the engine owns validation and
  the error taxonomy. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CreateEmployeeRequest is the request to create an employee. Commission
// is required when category is "comissionado" and rejected otherwise.
type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Category   string `json:"category"`
	Salary     string `json:"salary"`
	Commission string `json:"commission,omitempty"`
}

// EmployeeCreatedDTO carries the generated employee id.
type EmployeeCreatedDTO struct {
	ID string `json:"id"`
}

// AttributeDTO is the response for a single attribute read.
type AttributeDTO struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UpdateAttributeRequest is the request body for an attribute update.
// Union enrolment carries union_id and union_fee; switching to bank
// deposit carries bank, branch and account; category changes may carry
// the new rate.
type UpdateAttributeRequest struct {
	Value    string `json:"value"`
	UnionID  string `json:"union_id,omitempty"`
	UnionFee string `json:"union_fee,omitempty"`
	Bank     string `json:"bank,omitempty"`
	Branch   string `json:"branch,omitempty"`
	Account  string `json:"account,omitempty"`
	Rate     string `json:"rate,omitempty"`
}

// PostingRequest is the request body for timecards, sales and service
// charges: a date and an amount, both in external string form.
type PostingRequest struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

// RangeSumDTO is the response for a ledger range query.
type RangeSumDTO struct {
	ID    string `json:"id"`
	From  string `json:"from"`
	To    string `json:"to"`
	Total string `json:"total"`
}

// CountDTO is the response for the employee count.
type CountDTO struct {
	Count int `json:"count"`
}

// SearchResultDTO is the response for a name search.
type SearchResultDTO struct {
	ID string `json:"id"`
}

// TotalPayrollDTO is the response for the aggregate payroll figure.
type TotalPayrollDTO struct {
	Date  string `json:"date"`
	Total string `json:"total"`
}

// RunPayrollRequest asks for a payroll run on a date, written to the
// given output path.
type RunPayrollRequest struct {
	Date   string `json:"date"`
	Output string `json:"output"`
}

// RunPayrollDTO reports a completed run.
type RunPayrollDTO struct {
	RunID  string `json:"run_id"`
	Date   string `json:"date"`
	Output string `json:"output"`
	Total  string `json:"total"`
}

// PayslipRequest asks for one employee's payslip PDF.
type PayslipRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Output     string `json:"output"`
}

// PayslipDTO reports the computed payslip figures alongside the file.
type PayslipDTO struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	Gross      string `json:"gross"`
	Deduction  string `json:"deduction"`
	Net        string `json:"net"`
	Method     string `json:"method"`
	Output     string `json:"output,omitempty"`
}

// HistoryDTO reports the undo stack depth.
type HistoryDTO struct {
	Depth int `json:"depth"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
