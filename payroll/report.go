/*
report.go - The fixed payroll report layout

PURPOSE:
  Renders a Run into the plain-text report consumed downstream. The
  column widths, banner lines and totals rows are a frozen external
  contract: hour columns are right-aligned integers, money columns are
  right-aligned comma-decimal strings, and each row ends with the
  payment-method description after a single trailing space.

SEE ALSO:
  - payrun.go: Run construction and PaymentDescription
*/
package payroll

import (
	"fmt"
	"io"
)

const (
	reportRule    = "==============================================================================================================================="
	hourlyBanner  = "===================== HORISTAS ================================================================================================"
	salariedBanner = "===================== ASSALARIADOS ============================================================================================"
	commissionedBanner = "===================== COMISSIONADOS ==========================================================================================="

	hourlyHeading    = "Nome                                 Horas Extra Salario Bruto Descontos Salario Liquido Metodo"
	hourlyUnderline  = "==================================== ===== ===== ============= ========= =============== ======================================"
	salariedHeading   = "Nome                                             Salario Bruto Descontos Salario Liquido Metodo"
	salariedUnderline = "================================================ ============= ========= =============== ======================================"
	commissionedHeading   = "Nome                  Fixo     Vendas   Comissao Salario Bruto Descontos Salario Liquido Metodo"
	commissionedUnderline = "===================== ======== ======== ======== ============= ========= =============== ======================================"
)

// WriteReport renders the run. Any write error is returned wrapped; the
// caller decides whether the destination is a buffer or a file.
func WriteReport(w io.Writer, run *Run) error {
	rw := &reportWriter{w: w}

	rw.printf("FOLHA DE PAGAMENTO DO DIA %s\n", run.Date.String())
	rw.line("====================================")
	rw.line("")

	rw.line(reportRule)
	rw.line(hourlyBanner)
	rw.line(reportRule)
	rw.line(hourlyHeading)
	rw.line(hourlyUnderline)
	for _, l := range run.Hourly {
		rw.printf("%-36s %5d %5d %13s %9s %15s %s\n",
			l.Name, l.Hours, l.Overtime,
			FormatMoney(l.Gross), FormatMoney(l.Deduction), FormatMoney(l.Net),
			l.Method)
	}
	rw.printf("\nTOTAL HORISTAS%28d %5d %13s %9s %15s\n\n",
		run.HourlyHours, run.HourlyOvertime,
		FormatMoney(run.HourlyGross), FormatMoney(run.HourlyDeduction), FormatMoney(run.HourlyNet))

	rw.line(reportRule)
	rw.line(salariedBanner)
	rw.line(reportRule)
	rw.line(salariedHeading)
	rw.line(salariedUnderline)
	for _, l := range run.Salaried {
		rw.printf("%-48s %13s %9s %15s %s\n",
			l.Name,
			FormatMoney(l.Gross), FormatMoney(l.Deduction), FormatMoney(l.Net),
			l.Method)
	}
	rw.printf("\nTOTAL ASSALARIADOS%44s %9s %15s\n\n",
		FormatMoney(run.SalariedGross), FormatMoney(run.SalariedDeduction), FormatMoney(run.SalariedNet))

	rw.line(reportRule)
	rw.line(commissionedBanner)
	rw.line(reportRule)
	rw.line(commissionedHeading)
	rw.line(commissionedUnderline)
	for _, l := range run.Commissioned {
		rw.printf("%-21s %8s %8s %8s %13s %9s %15s %s\n",
			l.Name,
			FormatMoney(l.Fixed), FormatMoney(l.Sales), FormatMoney(l.Commission),
			FormatMoney(l.Gross), FormatMoney(l.Deduction), FormatMoney(l.Net),
			l.Method)
	}
	rw.printf("\nTOTAL COMISSIONADOS %10s %8s %8s %13s %9s %15s\n\n",
		FormatMoney(run.CommissionedFixed), FormatMoney(run.CommissionedSales),
		FormatMoney(run.CommissionedCommission), FormatMoney(run.CommissionedGross),
		FormatMoney(run.CommissionedDeduction), FormatMoney(run.CommissionedNet))

	rw.printf("TOTAL FOLHA: %s\n", FormatMoney(run.GrandTotal()))
	return rw.err
}

// reportWriter accumulates the first write error so the layout code
// stays free of error plumbing.
type reportWriter struct {
	w   io.Writer
	err error
}

func (rw *reportWriter) printf(format string, args ...any) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, format, args...)
}

func (rw *reportWriter) line(s string) {
	rw.printf("%s\n", s)
}
