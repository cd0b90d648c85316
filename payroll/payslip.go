/*
payslip.go - Individual payslip figures and PDF rendering

PURPOSE:
  A payslip answers "what would this one employee receive on date D",
  independent of the formatted run: the gross is the whole-history pay,
  the deduction is the service-charge sum over the category's window for
  D, and the net is never clamped. GeneratePayslip renders the figures
  to a one-page PDF.

SEE ALSO:
  - payrun.go: the run-level figures, which gate by payday
*/
package payroll

import (
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Payslip holds one employee's computed figures for a date.
type Payslip struct {
	EmployeeID EmployeeID
	Name       string
	Category   Category
	Date       TimePoint
	Gross      decimal.Decimal
	Deduction  decimal.Decimal
	Net        decimal.Decimal
	Method     string
}

// BuildPayslip computes the payslip figures without rendering anything.
func (e *Engine) BuildPayslip(id, date string) (*Payslip, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	emp, err := e.lookup(id)
	if err != nil {
		return nil, err
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	gross := emp.PayOn(d)
	deduction := chargesIn(emp, deductionWindow(emp, d))
	return &Payslip{
		EmployeeID: EmployeeID(id),
		Name:       emp.Profile().Name,
		Category:   emp.Category(),
		Date:       d,
		Gross:      gross,
		Deduction:  deduction,
		Net:        gross.Sub(deduction),
		Method:     PaymentDescription(emp.Profile()),
	}, nil
}

// deductionWindow is the service-charge window the employee's category
// uses for a payment on d.
func deductionWindow(emp Employee, d TimePoint) Period {
	switch c := emp.(type) {
	case *HourlyEmployee:
		return HourlyWindow(d)
	case *CommissionedEmployee:
		return CommissionWindow(c.LastPaid, d)
	default:
		return MonthWindow(d)
	}
}

// GeneratePayslip renders an employee's payslip for the date to a PDF at
// the destination path.
func (e *Engine) GeneratePayslip(id, date, destination string) error {
	slip, err := e.BuildPayslip(id, date)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Contracheque")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Empregado", slip.Name},
		{"Identificador", string(slip.EmployeeID)},
		{"Categoria", string(slip.Category)},
		{"Data de pagamento", slip.Date.FormatBR()},
		{"Salario bruto", FormatMoney(slip.Gross)},
		{"Descontos", FormatMoney(slip.Deduction)},
		{"Salario liquido", FormatMoney(slip.Net)},
		{"Metodo de pagamento", slip.Method},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 8, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, row[1], "", 0, "L", false, 0, "")
		pdf.Ln(8)
	}

	if err := pdf.OutputFileAndClose(destination); err != nil {
		return &ReportWriteError{Destination: destination, Err: err}
	}
	return nil
}
