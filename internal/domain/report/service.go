package report

import "context"

type ReportService interface {
	ListPayments(ctx context.Context, filter PaymentReportFilter) (PaymentListReport, error)
	SummarizeByEmployee(ctx context.Context, filter PaymentReportFilter) (PaymentSummaryReport, error)
	ExportPaymentsCSV(ctx context.Context, filter PaymentReportFilter) (CSVExport, error)
}
