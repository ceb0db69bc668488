package report

import (
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/payment"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/report"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func detail(name string, amount string, paid time.Time, notes *string) report.PaymentDetail {
	method := payment.MethodCash
	net := decimal.RequireFromString(amount)
	return report.PaymentDetail{
		Payment: payment.Payment{
			ID:            "pay-" + name,
			EmployeeID:    "emp-" + name,
			Amount:        net,
			PaymentDate:   paid,
			PaymentMethod: &method,
			Notes:         notes,
		},
		EmployeeName: name,
		PeriodType:   wage.PeriodTypeWeekly,
		PeriodStart:  date(2024, 1, 1),
		PeriodEnd:    date(2024, 1, 7),
		Breakdown: wage.Breakdown{
			PresentDays:        3,
			HalfDays:           1,
			AbsentDays:         1,
			TotalOvertimeHours: decimal.RequireFromString("2.5"),
			BaseWage:           decimal.NewFromInt(300),
			OvertimeAmount:     decimal.NewFromInt(50),
			HalfDayAmount:      decimal.NewFromInt(50),
			TotalAdvances:      decimal.NewFromInt(400).Sub(net),
			GrossAmount:        decimal.NewFromInt(400),
			NetAmount:          net,
		},
	}
}

func TestWritePaymentsCSV(t *testing.T) {
	notes := `Wage payment for weekly period 2024-01-01 to 2024-01-07. said "thanks"`
	details := []report.PaymentDetail{
		detail("Ana", "360", date(2024, 1, 10), &notes),
		detail("Smith, John", "-10", date(2024, 1, 9), nil),
	}

	out, err := WritePaymentsCSV(date(2024, 1, 1), date(2024, 1, 31), details, "$")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	require.Len(t, lines, 8)

	assert.Equal(t, "Payment Report", lines[0])
	assert.Equal(t, "Period,2024-01-01 to 2024-01-31", lines[1])
	assert.Equal(t, "Total Payments,2", lines[2])
	assert.Equal(t, "Total Amount,$350.00", lines[3])
	assert.Equal(t, "", lines[4])
	assert.Len(t, strings.Split(lines[5], ","), 18)
	assert.True(t, strings.HasPrefix(lines[5], "Date,Employee,Amount,"))

	assert.Equal(t,
		`2024-01-10,Ana,$360.00,cash,weekly,2024-01-01,2024-01-07,3,1,1,2.50,$300.00,$50.00,$50.00,$40.00,$400.00,$360.00,`+
			`"Wage payment for weekly period 2024-01-01 to 2024-01-07. said ""thanks"""`,
		lines[6])
	assert.Equal(t,
		`2024-01-09,"Smith, John",-$10.00,cash,weekly,2024-01-01,2024-01-07,3,1,1,2.50,$300.00,$50.00,$50.00,$410.00,$400.00,-$10.00,""`,
		lines[7])
}

func TestWritePaymentsCSV_Empty(t *testing.T) {
	out, err := WritePaymentsCSV(date(2024, 2, 1), date(2024, 2, 29), nil, "Rp")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Total Payments,0", lines[2])
	assert.Equal(t, "Total Amount,Rp0.00", lines[3])
}

func TestMoney(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"0", "$0.00"},
		{"12.5", "$12.50"},
		{"0.005", "$0.01"},
		{"-10", "-$10.00"},
		{"1234567.891", "$1234567.89"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, money("$", decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestSummarize(t *testing.T) {
	details := []report.PaymentDetail{
		detail("Cici", "100", date(2024, 1, 20), nil),
		detail("Ana", "360", date(2024, 1, 10), nil),
		detail("Cici", "50.25", date(2024, 1, 5), nil),
	}

	summaries := Summarize(details)
	require.Len(t, summaries, 2)

	assert.Equal(t, "Ana", summaries[0].EmployeeName)
	assert.Equal(t, 1, summaries[0].PaymentCount)
	assert.Equal(t, "Cici", summaries[1].EmployeeName)
	assert.Equal(t, 2, summaries[1].PaymentCount)
	assert.Equal(t, "150.25", summaries[1].TotalAmount.String())
	assert.Equal(t, date(2024, 1, 20), summaries[1].LastPaymentDate)

	sum := decimal.Zero
	for _, s := range summaries {
		sum = sum.Add(s.TotalAmount)
	}
	assert.True(t, sum.Equal(TotalAmount(details)))
	assert.Empty(t, Summarize(nil))
}
