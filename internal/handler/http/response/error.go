package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/payment"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		UnprocessableEntity(w, "Employee is inactive")
	case errors.Is(err, employee.ErrEmployeeAlreadyActive):
		Conflict(w, "Employee is already active")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, "Employee is already inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidStatus):
		UnprocessableEntity(w, err.Error())

	// Wage domain errors
	case errors.Is(err, wage.ErrCalculationNotFound):
		NotFound(w, "Wage calculation not found")
	case errors.Is(err, wage.ErrCalculationAlreadyPaid):
		Conflict(w, "Wage calculation already paid")

	// Payment domain errors
	case errors.Is(err, payment.ErrPaymentNotFound):
		NotFound(w, "Payment not found")
	case errors.Is(err, payment.ErrPaymentExists):
		Conflict(w, "Payment already recorded for this calculation")

	case database.IsPersistence(err):
		slog.Error("persistence failure", "error", err)
		InternalServerError(w, "A storage error occurred")

	default:
		slog.Error("unexpected error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
