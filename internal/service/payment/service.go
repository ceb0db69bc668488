package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/payment"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/validator"
)

type PaymentServiceImpl struct {
	tx              database.Transactor
	calculationRepo wage.CalculationRepository
	paymentRepo     payment.PaymentRepository
	now             func() time.Time
}

func NewPaymentService(
	tx database.Transactor,
	calculationRepo wage.CalculationRepository,
	paymentRepo payment.PaymentRepository,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		tx:              tx,
		calculationRepo: calculationRepo,
		paymentRepo:     paymentRepo,
		now:             time.Now,
	}
}

// WithClock sets the source of the default payment date.
func (s *PaymentServiceImpl) WithClock(now func() time.Time) *PaymentServiceImpl {
	s.now = now
	return s
}

// periodNote is the summary every payment carries, e.g.
// "Wage payment for weekly period 2024-01-01 to 2024-01-07".
func periodNote(calc wage.Calculation, extra *string) string {
	note := fmt.Sprintf("Wage payment for %s period %s to %s",
		calc.PeriodType,
		calc.PeriodStart.Format(validator.DateLayout),
		calc.PeriodEnd.Format(validator.DateLayout),
	)
	if extra != nil {
		if trimmed := strings.TrimSpace(*extra); trimmed != "" {
			note += ". " + trimmed
		}
	}
	return note
}

// MarkPaid implements payment.PaymentService. The flag flip and the payment insert
// commit together; if the insert fails the calculation stays unpaid.
func (s *PaymentServiceImpl) MarkPaid(ctx context.Context, req payment.MarkPaidRequest) (payment.MarkPaidResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.MarkPaidResponse{}, err
	}

	var (
		calc    wage.Calculation
		created payment.Payment
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		calc, err = s.calculationRepo.MarkPaid(ctx, req.CalculationID)
		if err != nil {
			if errors.Is(err, wage.ErrCalculationNotFound) || errors.Is(err, wage.ErrCalculationAlreadyPaid) {
				return err
			}
			return fmt.Errorf("failed to mark calculation paid: %w", err)
		}

		note := periodNote(calc, req.Notes)
		created, err = s.paymentRepo.Create(ctx, payment.Payment{
			WageCalculationID: calc.ID,
			EmployeeID:        calc.EmployeeID,
			Amount:            calc.NetAmount,
			PaymentDate:       req.Date(s.now()),
			PaymentMethod:     req.Method(),
			Notes:             &note,
		})
		if err != nil {
			if errors.Is(err, payment.ErrPaymentExists) {
				// The unique index caught a payment the flag did not.
				return wage.ErrCalculationAlreadyPaid
			}
			return fmt.Errorf("failed to create payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return payment.MarkPaidResponse{}, err
	}

	if calc.EmployeeName == nil {
		if full, err := s.calculationRepo.GetByID(ctx, calc.ID); err == nil {
			calc.EmployeeName = full.EmployeeName
		}
	}

	slog.InfoContext(ctx, "wage calculation paid",
		"calculation_id", calc.ID,
		"payment_id", created.ID,
		"employee_id", calc.EmployeeID,
		"amount", created.Amount.String(),
	)

	return payment.MarkPaidResponse{
		Calculation: wage.NewCalculationResponse(calc),
		Payment:     payment.NewPaymentResponse(created),
	}, nil
}

// GetPayment implements payment.PaymentService.
func (s *PaymentServiceImpl) GetPayment(ctx context.Context, id string) (payment.PaymentResponse, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			return payment.PaymentResponse{}, err
		}
		return payment.PaymentResponse{}, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment.NewPaymentResponse(p), nil
}
