package http

import (
	"net/http"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/handler/http/response"
)

type AttendanceHandler interface {
	MarkAttendance(w http.ResponseWriter, r *http.Request)
	MarkBulkAttendance(w http.ResponseWriter, r *http.Request)
	ListAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// MarkAttendance implements AttendanceHandler
func (h *attendanceHandlerImpl) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked successfully", result)
}

// MarkBulkAttendance implements AttendanceHandler
func (h *attendanceHandlerImpl) MarkBulkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkAttendanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.MarkBulkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked successfully", result)
}

// ListAttendance implements AttendanceHandler. With employee_id and date it returns
// that single record; otherwise it lists start_date..end_date.
func (h *attendanceHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if date := q.Get("date"); date != "" {
		result, err := h.attendanceService.GetAttendance(r.Context(), q.Get("employee_id"), date)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
		return
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), attendance.AttendanceFilter{
		EmployeeID: q.Get("employee_id"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
