package http

import (
	"net/http"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/report"
	"github.com/cmlabs-hris/wage-tracker/internal/handler/http/response"
)

type ReportHandler interface {
	ListPayments(w http.ResponseWriter, r *http.Request)
	SummarizePayments(w http.ResponseWriter, r *http.Request)
	ExportPayments(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func paymentReportFilter(r *http.Request) report.PaymentReportFilter {
	q := r.URL.Query()
	return report.PaymentReportFilter{
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		EmployeeID: q.Get("employee_id"),
	}
}

// ListPayments implements ReportHandler
func (h *reportHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.ListPayments(r.Context(), paymentReportFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SummarizePayments implements ReportHandler
func (h *reportHandlerImpl) SummarizePayments(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.SummarizeByEmployee(r.Context(), paymentReportFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportPayments implements ReportHandler
func (h *reportHandlerImpl) ExportPayments(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.ExportPaymentsCSV(r.Context(), paymentReportFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, "text/csv; charset=utf-8", result.Filename, result.Content)
}
