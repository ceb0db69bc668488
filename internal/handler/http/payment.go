package http

import (
	"net/http"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/payment"
	"github.com/cmlabs-hris/wage-tracker/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PaymentHandler interface {
	GetPayment(w http.ResponseWriter, r *http.Request)
}

type paymentHandlerImpl struct {
	paymentService payment.PaymentService
}

func NewPaymentHandler(paymentService payment.PaymentService) PaymentHandler {
	return &paymentHandlerImpl{paymentService: paymentService}
}

// GetPayment implements PaymentHandler
func (h *paymentHandlerImpl) GetPayment(w http.ResponseWriter, r *http.Request) {
	result, err := h.paymentService.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
