/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates every decision to the engine.

ENDPOINTS:
  Employees:
    POST   /api/employees                         Create employee
    DELETE /api/employees/{id}                    Remove employee
    GET    /api/employees/count                   Employee count
    GET    /api/employees/search?name=&index=     Find by name occurrence
    GET    /api/employees/{id}/attributes/{key}   Read one attribute
    PUT    /api/employees/{id}/attributes/{key}   Update one attribute

  Ledger postings:
    POST   /api/employees/{id}/timecards          Hourly timecard
    POST   /api/employees/{id}/sales              Commissioned sale
    POST   /api/union/{memberID}/charges          Union service charge

  Range queries (?from=&to=):
    GET    /api/employees/{id}/hours/normal
    GET    /api/employees/{id}/hours/overtime
    GET    /api/employees/{id}/sales
    GET    /api/employees/{id}/charges

  Payroll:
    GET    /api/payroll/total?date=               Aggregate figure
    POST   /api/payroll/run                       Formatted run to a file
    POST   /api/payroll/payslip                   One-employee payslip PDF

  System:
    POST   /api/undo                              Pop one checkpoint
    POST   /api/reset                             Full reset
    GET    /api/history                           Undo stack depth

ERROR HANDLING:
  The engine's error kinds map onto HTTP status:
  - 404: unknown employee / union member / name occurrence
  - 409: union id already bound to another employee
  - 422: nothing to undo
  - 400: every other validation failure
  - 500: report or payslip file could not be written

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the engine behind the HTTP facade.
type Handler struct {
	Engine *payroll.Engine
}

// NewHandler creates a new handler around the given engine.
func NewHandler(engine *payroll.Engine) *Handler {
	return &Handler{Engine: engine}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var (
		id  string
		err error
	)
	if req.Category == string(payroll.CategoryCommissioned) {
		id, err = h.Engine.CreateCommissioned(req.Name, req.Address, req.Category, req.Salary, req.Commission)
	} else {
		id, err = h.Engine.CreateEmployee(req.Name, req.Address, req.Category, req.Salary)
	}
	if err != nil {
		writeEngineError(w, "Failed to create employee", err)
		return
	}

	writeJSON(w, http.StatusCreated, EmployeeCreatedDTO{ID: id})
}

// RemoveEmployee deletes an employee.
func (h *Handler) RemoveEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Engine.RemoveEmployee(id); err != nil {
		writeEngineError(w, "Failed to remove employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EmployeeCount returns the number of employees.
func (h *Handler) EmployeeCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CountDTO{Count: h.Engine.EmployeeCount()})
}

// SearchByName returns the id of the index-th employee whose name
// contains the query, in insertion order. index defaults to 1.
func (h *Handler) SearchByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	index := 1
	if raw := r.URL.Query().Get("index"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "Invalid index", err)
			return
		}
		index = parsed
	}

	id, err := h.Engine.FindByName(name, index)
	if err != nil {
		writeEngineError(w, "Search failed", err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResultDTO{ID: id})
}

// GetAttribute reads one attribute of an employee.
func (h *Handler) GetAttribute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	key := chi.URLParam(r, "key")

	value, err := h.Engine.Attribute(id, key)
	if err != nil {
		writeEngineError(w, "Failed to read attribute", err)
		return
	}
	writeJSON(w, http.StatusOK, AttributeDTO{ID: id, Key: key, Value: value})
}

// UpdateAttribute updates one attribute of an employee. Union enrolment
// and bank details route to their dedicated engine operations; a category
// change with an explicit rate routes to the conversion form.
func (h *Handler) UpdateAttribute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	key := chi.URLParam(r, "key")

	var req UpdateAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := h.dispatchUpdate(id, key, &req)
	if err != nil {
		writeEngineError(w, "Failed to update attribute", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) dispatchUpdate(id, key string, req *UpdateAttributeRequest) error {
	switch {
	case key == payroll.AttrUnionized && req.Value == "true" && req.UnionID != "":
		return h.Engine.SetUnionMembership(id, req.UnionID, req.UnionFee)
	case key == payroll.AttrPaymentMethod && req.Value == string(payroll.MethodBank) && req.Bank != "":
		return h.Engine.SetBankAccount(id, req.Bank, req.Branch, req.Account)
	case key == payroll.AttrCategory && req.Rate != "":
		return h.Engine.ConvertCategory(id, req.Value, req.Rate)
	default:
		return h.Engine.UpdateAttribute(id, key, req.Value)
	}
}

// =============================================================================
// LEDGER POSTINGS
// =============================================================================

// PostTimecard records worked hours for an hourly employee.
func (h *Handler) PostTimecard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Engine.PostTimecard(id, req.Date, req.Amount); err != nil {
		writeEngineError(w, "Failed to post timecard", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostSale records a sale for a commissioned employee.
func (h *Handler) PostSale(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Engine.PostSale(id, req.Date, req.Amount); err != nil {
		writeEngineError(w, "Failed to post sale", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostServiceCharge records a union service charge by union member id.
func (h *Handler) PostServiceCharge(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")

	var req PostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Engine.PostServiceCharge(memberID, req.Date, req.Amount); err != nil {
		writeEngineError(w, "Failed to post service charge", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RANGE QUERIES
// =============================================================================

type rangeQuery func(id, from, to string) (string, error)

func (h *Handler) rangeSum(w http.ResponseWriter, r *http.Request, query rangeQuery) {
	id := chi.URLParam(r, "id")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	total, err := query(id, from, to)
	if err != nil {
		writeEngineError(w, "Range query failed", err)
		return
	}
	writeJSON(w, http.StatusOK, RangeSumDTO{ID: id, From: from, To: to, Total: total})
}

// GetNormalHours sums capped hours over a range.
func (h *Handler) GetNormalHours(w http.ResponseWriter, r *http.Request) {
	h.rangeSum(w, r, h.Engine.NormalHours)
}

// GetOvertimeHours sums hours above the daily cap over a range.
func (h *Handler) GetOvertimeHours(w http.ResponseWriter, r *http.Request) {
	h.rangeSum(w, r, h.Engine.OvertimeHours)
}

// GetSales sums sales over a range.
func (h *Handler) GetSales(w http.ResponseWriter, r *http.Request) {
	h.rangeSum(w, r, h.Engine.Sales)
}

// GetServiceCharges sums service charges over a range.
func (h *Handler) GetServiceCharges(w http.ResponseWriter, r *http.Request) {
	h.rangeSum(w, r, h.Engine.ServiceCharges)
}

// =============================================================================
// PAYROLL
// =============================================================================

// GetTotalPayroll returns the aggregate payroll figure for a date.
func (h *Handler) GetTotalPayroll(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	total, err := h.Engine.TotalPayroll(date)
	if err != nil {
		writeEngineError(w, "Failed to compute total payroll", err)
		return
	}
	writeJSON(w, http.StatusOK, TotalPayrollDTO{Date: date, Total: total})
}

// RunPayroll executes a payroll run, writing the report file.
func (h *Handler) RunPayroll(w http.ResponseWriter, r *http.Request) {
	var req RunPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Output == "" {
		writeError(w, http.StatusBadRequest, "Output path is required", nil)
		return
	}

	if err := h.Engine.RunPayroll(req.Date, req.Output); err != nil {
		writeEngineError(w, "Payroll run failed", err)
		return
	}
	total, err := h.Engine.TotalPayroll(req.Date)
	if err != nil {
		writeEngineError(w, "Payroll run failed", err)
		return
	}

	writeJSON(w, http.StatusOK, RunPayrollDTO{
		RunID:  uuid.NewString(),
		Date:   req.Date,
		Output: req.Output,
		Total:  total,
	})
}

// GeneratePayslip renders one employee's payslip. With an output path the
// PDF is written; without one only the figures are returned.
func (h *Handler) GeneratePayslip(w http.ResponseWriter, r *http.Request) {
	var req PayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	slip, err := h.Engine.BuildPayslip(req.EmployeeID, req.Date)
	if err != nil {
		writeEngineError(w, "Failed to build payslip", err)
		return
	}
	if req.Output != "" {
		if err := h.Engine.GeneratePayslip(req.EmployeeID, req.Date, req.Output); err != nil {
			writeEngineError(w, "Failed to write payslip", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, PayslipDTO{
		EmployeeID: string(slip.EmployeeID),
		Name:       slip.Name,
		Date:       slip.Date.FormatBR(),
		Gross:      payroll.FormatMoney(slip.Gross),
		Deduction:  payroll.FormatMoney(slip.Deduction),
		Net:        payroll.FormatMoney(slip.Net),
		Method:     slip.Method,
		Output:     req.Output,
	})
}

// =============================================================================
// SYSTEM
// =============================================================================

// Undo pops one checkpoint.
func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.Undo(); err != nil {
		writeEngineError(w, "Undo failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset clears all state.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Engine.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// GetHistory reports the undo stack depth.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HistoryDTO{Depth: h.Engine.HistoryDepth()})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps the engine's error kinds onto HTTP status codes.
func writeEngineError(w http.ResponseWriter, message string, err error) {
	switch {
	case payroll.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case payroll.IsConflict(err):
		writeError(w, http.StatusConflict, message, err)
	case errors.Is(err, payroll.ErrEmptyHistory):
		writeError(w, http.StatusUnprocessableEntity, message, err)
	case payroll.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
