package report

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/report"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var paymentColumns = []string{
	"Date", "Employee", "Amount", "Payment Method", "Period Type", "Period Start", "Period End",
	"Present Days", "Half Days", "Absent Days", "Overtime Hours", "Base Wage", "Overtime Amount",
	"Half-Day Amount", "Advances", "Gross Amount", "Net Amount", "Notes",
}

// WritePaymentsCSV renders the export: a header block with the period, payment count
// and total, a blank line, the column header and one row per payment. Notes are always
// quoted; other fields only when they contain a separator, quote or line break.
func WritePaymentsCSV(start, end time.Time, details []report.PaymentDetail, currency string) ([]byte, error) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	period := start.Format(validator.DateLayout) + " to " + end.Format(validator.DateLayout)
	header := [][]string{
		{"Payment Report"},
		{"Period", period},
		{"Total Payments", strconv.Itoa(len(details))},
		{"Total Amount", money(currency, TotalAmount(details))},
	}
	for _, line := range header {
		writeRow(w, line, -1)
	}
	w.WriteString("\n")
	writeRow(w, paymentColumns, -1)

	notesIdx := len(paymentColumns) - 1
	for _, d := range details {
		method := ""
		if d.PaymentMethod != nil {
			method = string(*d.PaymentMethod)
		}
		notes := ""
		if d.Notes != nil {
			notes = *d.Notes
		}
		b := d.Breakdown
		writeRow(w, []string{
			d.PaymentDate.Format(validator.DateLayout),
			d.EmployeeName,
			money(currency, d.Amount),
			method,
			string(d.PeriodType),
			d.PeriodStart.Format(validator.DateLayout),
			d.PeriodEnd.Format(validator.DateLayout),
			strconv.Itoa(b.PresentDays),
			strconv.Itoa(b.HalfDays),
			strconv.Itoa(b.AbsentDays),
			b.TotalOvertimeHours.StringFixed(2),
			money(currency, b.BaseWage),
			money(currency, b.OvertimeAmount),
			money(currency, b.HalfDayAmount),
			money(currency, b.TotalAdvances),
			money(currency, b.GrossAmount),
			money(currency, b.NetAmount),
			notes,
		}, notesIdx)
	}

	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// money formats an amount to two places behind the currency prefix; a negative
// amount keeps its sign in front of the prefix, e.g. -$10.00.
func money(currency string, amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + currency + amount.Neg().StringFixed(2)
	}
	return currency + amount.StringFixed(2)
}

func writeRow(w *bufio.Writer, fields []string, alwaysQuote int) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		if i == alwaysQuote || strings.ContainsAny(f, ",\"\r\n") {
			w.WriteByte('"')
			w.WriteString(strings.ReplaceAll(f, `"`, `""`))
			w.WriteByte('"')
			continue
		}
		w.WriteString(f)
	}
	w.WriteByte('\n')
}
