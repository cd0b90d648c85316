package payroll_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func runToString(t *testing.T, e *payroll.Engine, date string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folha.txt")
	require.NoError(t, e.RunPayroll(date, path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// =============================================================================
// TOTAL PAYROLL
// =============================================================================

func TestTotalPayroll_EmptyRoster(t *testing.T) {
	e := payroll.NewEngine()
	total, err := e.TotalPayroll("01/01/2024")
	require.NoError(t, err)
	assert.Equal(t, "0,00", total)
}

func TestTotalPayroll_IgnoresPaydayAlignment(t *testing.T) {
	// The aggregate figure sums whole-history pay for everyone, on any
	// date, payday or not.

	e := payroll.NewEngine()
	newSalaried(t, e, "Joana", "3000,00")

	total, err := e.TotalPayroll("10/01/2024")
	require.NoError(t, err)
	assert.Equal(t, "3000,00", total)
}

func TestTotalPayroll_HourlyWithOvertime(t *testing.T) {
	e := payroll.NewEngine()
	id := newHourly(t, e, "Maria", "10,00")
	require.NoError(t, e.PostTimecard(id, "05/01/2024", "8,0"))
	require.NoError(t, e.PostTimecard(id, "06/01/2024", "12,0"))

	// 16 normal at 10 + 4 overtime at 15.
	total, err := e.TotalPayroll("10/01/2024")
	require.NoError(t, err)
	assert.Equal(t, "220,00", total)
}

func TestTotalPayroll_InvalidDate(t *testing.T) {
	e := payroll.NewEngine()
	_, err := e.TotalPayroll("31/04/2024")
	assert.ErrorIs(t, err, payroll.ErrInvalidDate)
}

// =============================================================================
// PAYROLL RUN - HOURLY SECTION
// =============================================================================

func TestRunPayroll_HourlySection(t *testing.T) {
	// GIVEN: an hourly employee with a normal and an overtime card
	// WHEN: running payroll on a day within the first week of the month
	// THEN: the report carries the exact formatted row and totals

	e := payroll.NewEngine()
	id := newHourly(t, e, "Maria", "10,00")
	require.NoError(t, e.PostTimecard(id, "05/01/2024", "8,0"))
	require.NoError(t, e.PostTimecard(id, "06/01/2024", "12,0"))

	report := runToString(t, e, "06/01/2024")

	assert.Contains(t, report, "FOLHA DE PAGAMENTO DO DIA 2024-01-06")
	assert.Contains(t, report, "===================== HORISTAS ===")

	wantRow := fmt.Sprintf("%-36s %5d %5d %13s %9s %15s %s",
		"Maria", 16, 4, "220,00", "0,00", "220,00", "Em maos")
	assert.Contains(t, report, wantRow)

	wantTotals := fmt.Sprintf("TOTAL HORISTAS%28d %5d %13s %9s %15s",
		16, 4, "220,00", "0,00", "220,00")
	assert.Contains(t, report, wantTotals)

	assert.Contains(t, report, "TOTAL FOLHA: 220,00")
}

func TestRunPayroll_HourlyDeductions(t *testing.T) {
	e := payroll.NewEngine()
	id := newHourly(t, e, "Maria", "10,00")
	require.NoError(t, e.SetUnionMembership(id, "s1", "25,00"))
	require.NoError(t, e.PostTimecard(id, "05/01/2024", "8,0"))
	require.NoError(t, e.PostServiceCharge("s1", "03/01/2024", "5,00"))

	report := runToString(t, e, "06/01/2024")

	wantRow := fmt.Sprintf("%-36s %5d %5d %13s %9s %15s %s",
		"Maria", 8, 0, "80,00", "5,00", "75,00", "Em maos")
	assert.Contains(t, report, wantRow)
}

func TestRunPayroll_ZeroGrossSkipsDeduction(t *testing.T) {
	// An hourly employee with no pay owes no service charges this run.

	e := payroll.NewEngine()
	id := newHourly(t, e, "Maria", "10,00")
	require.NoError(t, e.SetUnionMembership(id, "s1", "25,00"))
	require.NoError(t, e.PostServiceCharge("s1", "03/01/2024", "5,00"))

	report := runToString(t, e, "06/01/2024")

	wantRow := fmt.Sprintf("%-36s %5d %5d %13s %9s %15s %s",
		"Maria", 0, 0, "0,00", "0,00", "0,00", "Em maos")
	assert.Contains(t, report, wantRow)
}

func TestRunPayroll_HourlyOffPayday(t *testing.T) {
	e := payroll.NewEngine()
	id := newHourly(t, e, "Maria", "10,00")
	require.NoError(t, e.PostTimecard(id, "05/01/2024", "8,0"))

	// Day 10 is outside the first week of the month.
	report := runToString(t, e, "10/01/2024")
	assert.NotContains(t, report, "Maria")
	assert.Contains(t, report, "TOTAL FOLHA: 0,00")
}

// =============================================================================
// PAYROLL RUN - SALARIED SECTION
// =============================================================================

func TestRunPayroll_SalariedSection(t *testing.T) {
	e := payroll.NewEngine()
	id := newSalaried(t, e, "Joana", "3000,00")
	require.NoError(t, e.SetUnionMembership(id, "s1", "25,00"))
	require.NoError(t, e.PostServiceCharge("s1", "15/01/2024", "40,00"))

	report := runToString(t, e, "31/01/2024")

	wantRow := fmt.Sprintf("%-48s %13s %9s %15s %s",
		"Joana", "3000,00", "40,00", "2960,00", "Em maos")
	assert.Contains(t, report, wantRow)
	assert.Contains(t, report, "TOTAL FOLHA: 3000,00")
}

func TestRunPayroll_SalariedOnlyAtMonthEnd(t *testing.T) {
	e := payroll.NewEngine()
	newSalaried(t, e, "Joana", "3000,00")

	report := runToString(t, e, "15/01/2024")
	assert.NotContains(t, report, "Joana")
	assert.Contains(t, report, "TOTAL FOLHA: 0,00")
}

// =============================================================================
// PAYROLL RUN - COMMISSIONED SECTION
// =============================================================================

func TestRunPayroll_CommissionedBiweeklyCycle(t *testing.T) {
	// GIVEN: a never-paid commissioned employee with a sale in the window
	// WHEN: running on the fourteenth day after the epoch
	// THEN: the row carries fixed portion + commission, and the run
	//       advances the pay anchor by fourteen days

	e := payroll.NewEngine()
	id := newCommissioned(t, e, "Carlos", "2600,00", "0,10")
	require.NoError(t, e.PostSale(id, "10/01/2005", "1000,00"))

	report := runToString(t, e, "15/01/2005")

	wantRow := fmt.Sprintf("%-21s %8s %8s %8s %13s %9s %15s %s",
		"Carlos", "1200,00", "1000,00", "100,00", "1300,00", "0,00", "1300,00", "Em maos")
	assert.Contains(t, report, wantRow)
	assert.Contains(t, report, "TOTAL FOLHA: 1300,00")

	// The same date is no longer a payday.
	report = runToString(t, e, "15/01/2005")
	assert.NotContains(t, report, "Carlos")

	// Fourteen days on, with no new sales, only the fixed portion is due.
	report = runToString(t, e, "29/01/2005")
	wantRow = fmt.Sprintf("%-21s %8s %8s %8s %13s %9s %15s %s",
		"Carlos", "1200,00", "0,00", "0,00", "1200,00", "0,00", "1200,00", "Em maos")
	assert.Contains(t, report, wantRow)
}

func TestRunPayroll_CommissionedOffCycle(t *testing.T) {
	e := payroll.NewEngine()
	newCommissioned(t, e, "Carlos", "2600,00", "0,10")

	// Thirteen days after the epoch: not a payday.
	report := runToString(t, e, "14/01/2005")
	assert.NotContains(t, report, "Carlos")
}

// =============================================================================
// PAYROLL RUN - ORDERING AND FAILURE
// =============================================================================

func TestRunPayroll_SortsByLocaleCollation(t *testing.T) {
	// Primary-strength pt-BR collation: case and accents do not count,
	// so "Álvaro" sorts before "ana" before "Bruno".

	e := payroll.NewEngine()
	newHourly(t, e, "Bruno", "10,00")
	newHourly(t, e, "ana", "10,00")
	newHourly(t, e, "Álvaro", "10,00")

	report := runToString(t, e, "05/01/2024")

	alvaro := strings.Index(report, "Álvaro")
	ana := strings.Index(report, "ana")
	bruno := strings.Index(report, "Bruno")
	require.True(t, alvaro >= 0 && ana >= 0 && bruno >= 0)
	assert.Less(t, alvaro, ana)
	assert.Less(t, ana, bruno)
}

func TestRunPayroll_PaymentMethodRendering(t *testing.T) {
	e := payroll.NewEngine()
	mail := newHourly(t, e, "Maria", "10,00")
	require.NoError(t, e.UpdateAttribute(mail, "metodoPagamento", "correios"))
	bank := newHourly(t, e, "Joana", "10,00")
	require.NoError(t, e.SetBankAccount(bank, "Banco do Brasil", "1234", "00567-8"))

	report := runToString(t, e, "05/01/2024")

	assert.Contains(t, report, "Correios, Rua A, 1")
	assert.Contains(t, report, "Banco do Brasil, Ag. 1234 CC 00567-8")
}

func TestRunPayroll_InvalidDate(t *testing.T) {
	e := payroll.NewEngine()
	err := e.RunPayroll("31/04/2024", filepath.Join(t.TempDir(), "out.txt"))
	assert.ErrorIs(t, err, payroll.ErrInvalidDate)
}

func TestRunPayroll_UnwritableDestinationLeavesStateUntouched(t *testing.T) {
	// GIVEN: a commissioned employee due for payment
	// WHEN: the report file cannot be written
	// THEN: the pay anchor does not advance

	e := payroll.NewEngine()
	newCommissioned(t, e, "Carlos", "2600,00", "0,10")

	err := e.RunPayroll("15/01/2005", filepath.Join(t.TempDir(), "missing", "out.txt"))
	assert.ErrorIs(t, err, payroll.ErrReportWrite)

	// Still a payday: the failed run paid nobody.
	report := runToString(t, e, "15/01/2005")
	assert.Contains(t, report, "Carlos")
}

func TestPreviewRun_DoesNotAdvanceAnchor(t *testing.T) {
	e := payroll.NewEngine()
	newCommissioned(t, e, "Carlos", "2600,00", "0,10")

	run, err := e.PreviewRun("15/01/2005")
	require.NoError(t, err)
	require.Len(t, run.Commissioned, 1)

	run, err = e.PreviewRun("15/01/2005")
	require.NoError(t, err)
	assert.Len(t, run.Commissioned, 1)
}

// =============================================================================
// PAYSLIPS
// =============================================================================

func TestBuildPayslip_Figures(t *testing.T) {
	e := payroll.NewEngine()
	id := newHourly(t, e, "Maria", "10,00")
	require.NoError(t, e.SetUnionMembership(id, "s1", "25,00"))
	require.NoError(t, e.PostTimecard(id, "05/01/2024", "8,0"))
	require.NoError(t, e.PostServiceCharge("s1", "03/01/2024", "5,00"))

	slip, err := e.BuildPayslip(id, "06/01/2024")
	require.NoError(t, err)

	assert.Equal(t, "Maria", slip.Name)
	assert.Equal(t, "80,00", payroll.FormatMoney(slip.Gross))
	assert.Equal(t, "5,00", payroll.FormatMoney(slip.Deduction))
	assert.Equal(t, "75,00", payroll.FormatMoney(slip.Net))
	assert.Equal(t, "Em maos", slip.Method)
}

func TestGeneratePayslip_WritesPDF(t *testing.T) {
	e := payroll.NewEngine()
	id := newSalaried(t, e, "Joana", "3000,00")

	path := filepath.Join(t.TempDir(), "contracheque.pdf")
	require.NoError(t, e.GeneratePayslip(id, "31/01/2024", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBuildPayslip_Validation(t *testing.T) {
	e := payroll.NewEngine()

	_, err := e.BuildPayslip("emp99", "31/01/2024")
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)

	id := newSalaried(t, e, "Joana", "3000,00")
	_, err = e.BuildPayslip(id, "bad")
	assert.ErrorIs(t, err, payroll.ErrInvalidDate)
}
