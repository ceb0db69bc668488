package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/report"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
	currency   string
	now        func() time.Time
}

func NewReportService(reportRepo report.ReportRepository, currency string) report.ReportService {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		currency:   currency,
		now:        time.Now,
	}
}

func (s *ReportServiceImpl) load(ctx context.Context, filter report.PaymentReportFilter) (time.Time, time.Time, []report.PaymentDetail, error) {
	start, end, err := filter.Range()
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}

	details, err := s.reportRepo.ListPayments(ctx, start, end, filter.EmployeeID)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return start, end, details, nil
}

// ListPayments implements report.ReportService.
func (s *ReportServiceImpl) ListPayments(ctx context.Context, filter report.PaymentReportFilter) (report.PaymentListReport, error) {
	start, end, details, err := s.load(ctx, filter)
	if err != nil {
		return report.PaymentListReport{}, err
	}

	rows := make([]report.PaymentRow, 0, len(details))
	for _, d := range details {
		rows = append(rows, report.NewPaymentRow(d))
	}

	return report.PaymentListReport{
		StartDate:    start.Format(validator.DateLayout),
		EndDate:      end.Format(validator.DateLayout),
		GeneratedAt:  s.now().UTC().Format(time.RFC3339),
		PaymentCount: len(details),
		TotalAmount:  TotalAmount(details),
		Rows:         rows,
	}, nil
}

// SummarizeByEmployee implements report.ReportService.
func (s *ReportServiceImpl) SummarizeByEmployee(ctx context.Context, filter report.PaymentReportFilter) (report.PaymentSummaryReport, error) {
	start, end, details, err := s.load(ctx, filter)
	if err != nil {
		return report.PaymentSummaryReport{}, err
	}

	summaries := Summarize(details)
	rows := make([]report.EmployeeSummaryRow, 0, len(summaries))
	total := decimal.Zero
	for _, sum := range summaries {
		total = total.Add(sum.TotalAmount)
		rows = append(rows, report.EmployeeSummaryRow{
			EmployeeID:      sum.EmployeeID,
			EmployeeName:    sum.EmployeeName,
			PaymentCount:    sum.PaymentCount,
			TotalAmount:     sum.TotalAmount,
			LastPaymentDate: sum.LastPaymentDate.Format(validator.DateLayout),
		})
	}

	return report.PaymentSummaryReport{
		StartDate:      start.Format(validator.DateLayout),
		EndDate:        end.Format(validator.DateLayout),
		GeneratedAt:    s.now().UTC().Format(time.RFC3339),
		TotalEmployees: len(rows),
		PaymentCount:   len(details),
		TotalAmount:    total,
		Rows:           rows,
	}, nil
}

// ExportPaymentsCSV implements report.ReportService.
func (s *ReportServiceImpl) ExportPaymentsCSV(ctx context.Context, filter report.PaymentReportFilter) (report.CSVExport, error) {
	start, end, details, err := s.load(ctx, filter)
	if err != nil {
		return report.CSVExport{}, err
	}

	content, err := WritePaymentsCSV(start, end, details, s.currency)
	if err != nil {
		return report.CSVExport{}, fmt.Errorf("failed to write payments csv: %w", err)
	}

	return report.CSVExport{
		Filename: fmt.Sprintf("payments_%s_%s.csv", start.Format(validator.DateLayout), end.Format(validator.DateLayout)),
		Content:  content,
	}, nil
}

// TotalAmount is the flat sum of payment amounts.
func TotalAmount(details []report.PaymentDetail) decimal.Decimal {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.Amount)
	}
	return total
}

// Summarize rolls payments up per employee, ordered by employee name. Only
// employees that appear in details get a row.
func Summarize(details []report.PaymentDetail) []report.EmployeePaymentSummary {
	byEmployee := make(map[string]*report.EmployeePaymentSummary)
	for _, d := range details {
		sum, ok := byEmployee[d.EmployeeID]
		if !ok {
			sum = &report.EmployeePaymentSummary{
				EmployeeID:   d.EmployeeID,
				EmployeeName: d.EmployeeName,
				TotalAmount:  decimal.Zero,
			}
			byEmployee[d.EmployeeID] = sum
		}
		sum.PaymentCount++
		sum.TotalAmount = sum.TotalAmount.Add(d.Amount)
		if d.PaymentDate.After(sum.LastPaymentDate) {
			sum.LastPaymentDate = d.PaymentDate
		}
	}

	summaries := make([]report.EmployeePaymentSummary, 0, len(byEmployee))
	for _, sum := range byEmployee {
		summaries = append(summaries, *sum)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].EmployeeName != summaries[j].EmployeeName {
			return summaries[i].EmployeeName < summaries[j].EmployeeName
		}
		return summaries[i].EmployeeID < summaries[j].EmployeeID
	})
	return summaries
}
