package memory

import (
	"context"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/payment"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
)

type paymentRepository struct {
	s *Store
}

func NewPaymentRepository(s *Store) payment.PaymentRepository {
	return &paymentRepository{s: s}
}

func (r *paymentRepository) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	defer r.s.lock(ctx)()

	if err := r.s.injected("payment.create"); err != nil {
		return payment.Payment{}, database.Wrap("create payment", err)
	}
	if _, ok := r.s.data.calculations[p.WageCalculationID]; !ok {
		return payment.Payment{}, wage.ErrCalculationNotFound
	}
	if _, ok := r.s.data.paymentByCal[p.WageCalculationID]; ok {
		return payment.Payment{}, payment.ErrPaymentExists
	}

	p.ID = r.s.newID()
	now := r.s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.s.data.payments[p.ID] = p
	r.s.data.paymentByCal[p.WageCalculationID] = p.ID

	return p, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (payment.Payment, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.data.payments[id]
	if !ok {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	return p, nil
}

func (r *paymentRepository) GetByCalculationID(ctx context.Context, calculationID string) (payment.Payment, error) {
	defer r.s.lock(ctx)()

	id, ok := r.s.data.paymentByCal[calculationID]
	if !ok {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	return r.s.data.payments[id], nil
}
