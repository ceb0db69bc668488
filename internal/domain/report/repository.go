package report

import (
	"context"
	"time"
)

type ReportRepository interface {
	// ListPayments returns payments with start <= payment_date <= end, newest first.
	// An empty employeeID matches every employee.
	ListPayments(ctx context.Context, start, end time.Time, employeeID string) ([]PaymentDetail, error)
}
