package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := api.NewHandler(payroll.NewEngine())
	srv := httptest.NewServer(api.NewRouter(handler, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createHourly(t *testing.T, srv *httptest.Server, name, wage string) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", api.CreateEmployeeRequest{
		Name: name, Address: "Rua A, 1", Category: "horista", Salary: wage,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[api.EmployeeCreatedDTO](t, resp).ID
}

// =============================================================================
// EMPLOYEE ENDPOINTS
// =============================================================================

func TestAPI_CreateAndReadEmployee(t *testing.T) {
	srv := newTestServer(t)

	id := createHourly(t, srv, "Maria", "10,00")
	assert.Equal(t, "emp1", id)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/employees/"+id+"/attributes/salario", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dto := decode[api.AttributeDTO](t, resp)
	assert.Equal(t, "10,00", dto.Value)
}

func TestAPI_CreateCommissionedRoutesOnCategory(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", api.CreateEmployeeRequest{
		Name: "Carlos", Address: "Rua C, 3", Category: "comissionado",
		Salary: "2600,00", Commission: "0,10",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[api.EmployeeCreatedDTO](t, resp).ID

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/employees/"+id+"/attributes/comissao", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0,10", decode[api.AttributeDTO](t, resp).Value)
}

func TestAPI_ValidationErrorsAre400(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", api.CreateEmployeeRequest{
		Name: "", Address: "Rua A", Category: "horista", Salary: "10,00",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_UnknownEmployeeIs404(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/employees/emp99/attributes/nome", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_DuplicateUnionIDIs409(t *testing.T) {
	srv := newTestServer(t)
	a := createHourly(t, srv, "Maria", "10,00")
	b := createHourly(t, srv, "Joana", "12,00")

	enrol := api.UpdateAttributeRequest{Value: "true", UnionID: "s1", UnionFee: "25,00"}
	resp := doJSON(t, http.MethodPut, srv.URL+"/api/employees/"+a+"/attributes/sindicalizado", enrol)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/employees/"+b+"/attributes/sindicalizado", enrol)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_RemoveEmployee(t *testing.T) {
	srv := newTestServer(t)
	id := createHourly(t, srv, "Maria", "10,00")

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/employees/"+id, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/employees/count", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[api.CountDTO](t, resp).Count)
}

func TestAPI_SearchByName(t *testing.T) {
	srv := newTestServer(t)
	createHourly(t, srv, "Joao Pereira", "10,00")
	second := createHourly(t, srv, "Joao Souza", "12,00")

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/employees/search?name=Joao&index=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, second, decode[api.SearchResultDTO](t, resp).ID)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/employees/search?name=Ana", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// POSTINGS AND RANGE QUERIES
// =============================================================================

func TestAPI_TimecardsAndHours(t *testing.T) {
	srv := newTestServer(t)
	id := createHourly(t, srv, "Maria", "10,00")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees/"+id+"/timecards",
		api.PostingRequest{Date: "05/01/2024", Amount: "8,0"})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/employees/"+id+"/timecards",
		api.PostingRequest{Date: "06/01/2024", Amount: "12,0"})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet,
		srv.URL+"/api/employees/"+id+"/hours/normal?from=01/01/2024&to=10/01/2024", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "16", decode[api.RangeSumDTO](t, resp).Total)

	resp = doJSON(t, http.MethodGet,
		srv.URL+"/api/employees/"+id+"/hours/overtime?from=01/01/2024&to=10/01/2024", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "4", decode[api.RangeSumDTO](t, resp).Total)
}

func TestAPI_ServiceChargesByUnionID(t *testing.T) {
	srv := newTestServer(t)
	id := createHourly(t, srv, "Maria", "10,00")

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/employees/"+id+"/attributes/sindicalizado",
		api.UpdateAttributeRequest{Value: "true", UnionID: "s1", UnionFee: "25,00"})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/union/s1/charges",
		api.PostingRequest{Date: "05/01/2024", Amount: "30,00"})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet,
		srv.URL+"/api/employees/"+id+"/charges?from=01/01/2024&to=10/01/2024", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "30,00", decode[api.RangeSumDTO](t, resp).Total)
}

// =============================================================================
// PAYROLL ENDPOINTS
// =============================================================================

func TestAPI_TotalPayroll(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees", api.CreateEmployeeRequest{
		Name: "Joana", Address: "Rua B, 2", Category: "assalariado", Salary: "3000,00",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/payroll/total?date=10/01/2024", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3000,00", decode[api.TotalPayrollDTO](t, resp).Total)
}

func TestAPI_RunPayroll(t *testing.T) {
	srv := newTestServer(t)
	id := createHourly(t, srv, "Maria", "10,00")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees/"+id+"/timecards",
		api.PostingRequest{Date: "05/01/2024", Amount: "8,0"})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	out := filepath.Join(t.TempDir(), "folha.txt")
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/payroll/run",
		api.RunPayrollRequest{Date: "06/01/2024", Output: out})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dto := decode[api.RunPayrollDTO](t, resp)
	assert.NotEmpty(t, dto.RunID)
	assert.Equal(t, "80,00", dto.Total)
	assert.FileExists(t, out)
}

func TestAPI_RunPayrollRequiresOutput(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/payroll/run",
		api.RunPayrollRequest{Date: "06/01/2024"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Payslip(t *testing.T) {
	srv := newTestServer(t)
	id := createHourly(t, srv, "Maria", "10,00")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/employees/"+id+"/timecards",
		api.PostingRequest{Date: "05/01/2024", Amount: "8,0"})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/payroll/payslip",
		api.PayslipRequest{EmployeeID: id, Date: "06/01/2024"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dto := decode[api.PayslipDTO](t, resp)
	assert.Equal(t, "80,00", dto.Gross)
	assert.Equal(t, "Em maos", dto.Method)
}

// =============================================================================
// SYSTEM ENDPOINTS
// =============================================================================

func TestAPI_UndoAndReset(t *testing.T) {
	srv := newTestServer(t)
	createHourly(t, srv, "Maria", "10,00")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/undo", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/employees/count", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[api.CountDTO](t, resp).Count)

	// Undo with nothing stacked.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/undo", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	createHourly(t, srv, "Joana", "12,00")
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/reset", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/history", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[api.HistoryDTO](t, resp).Depth)
}
