package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/wage-tracker/internal/domain/payment"
	"github.com/cmlabs-hris/wage-tracker/internal/domain/wage"
	"github.com/cmlabs-hris/wage-tracker/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type paymentRepositoryImpl struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payment.PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

const paymentColumns = `id, wage_calculation_id, employee_id, amount, payment_date, payment_method, notes, created_at, updated_at`

func scanPayment(row pgx.Row) (payment.Payment, error) {
	var p payment.Payment
	err := row.Scan(
		&p.ID, &p.WageCalculationID, &p.EmployeeID, &p.Amount, &p.PaymentDate,
		&p.PaymentMethod, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payments (id, wage_calculation_id, employee_id, amount, payment_date, payment_method, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + paymentColumns

	created, err := scanPayment(q.QueryRow(ctx, query,
		uuid.Must(uuid.NewV7()).String(), p.WageCalculationID, p.EmployeeID, p.Amount, p.PaymentDate,
		p.PaymentMethod, p.Notes,
	))
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok && constraint == "uk_payments_wage_calculation" {
			return payment.Payment{}, payment.ErrPaymentExists
		}
		if database.ForeignKeyViolation(err) {
			return payment.Payment{}, wage.ErrCalculationNotFound
		}
		return payment.Payment{}, database.Wrap("create payment", err)
	}

	return created, nil
}

// GetByID implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) GetByID(ctx context.Context, id string) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	if err := uuid.Validate(id); err != nil {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}

	p, err := scanPayment(q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, database.Wrap("get payment", err)
	}

	return p, nil
}

// GetByCalculationID implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) GetByCalculationID(ctx context.Context, calculationID string) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	if err := uuid.Validate(calculationID); err != nil {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}

	p, err := scanPayment(q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE wage_calculation_id = $1`, calculationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, database.Wrap("get payment by calculation", err)
	}

	return p, nil
}
