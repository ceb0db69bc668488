package attendance

import "context"

type AttendanceService interface {
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	MarkBulkAttendance(ctx context.Context, req BulkAttendanceRequest) ([]AttendanceResponse, error)
	GetAttendance(ctx context.Context, employeeID string, date string) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)
}
