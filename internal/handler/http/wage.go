package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/payment"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WageHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	Calculate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
}

type wageHandlerImpl struct {
	wageService    wage.WageService
	paymentService payment.PaymentService
}

func NewWageHandler(wageService wage.WageService, paymentService payment.PaymentService) WageHandler {
	return &wageHandlerImpl{
		wageService:    wageService,
		paymentService: paymentService,
	}
}

// Preview implements WageHandler
func (h *wageHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req wage.CalculateWageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.wageService.PreviewWage(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Calculate implements WageHandler
func (h *wageHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req wage.CalculateWageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.wageService.CalculateAndStore(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Wage calculation stored successfully", result)
}

// List implements WageHandler
func (h *wageHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.wageService.ListCalculations(r.Context(), wage.CalculationFilter{
		EmployeeID: queryString(r, "employee_id"),
		IsPaid:     queryBool(r, "is_paid"),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewPageMeta(result.Page, result.Limit, result.TotalCount))
}

// Get implements WageHandler
func (h *wageHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.wageService.GetCalculation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MarkPaid implements WageHandler. An empty body pays with today's date and no method.
func (h *wageHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req payment.MarkPaidRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.CalculationID = chi.URLParam(r, "id")

	result, err := h.paymentService.MarkPaid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Wage calculation marked as paid", result)
}
