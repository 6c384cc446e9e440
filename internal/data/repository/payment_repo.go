package repository

import (
	"context"
	"fmt"

	"vehicle-rental/internal/data/entity"
	"vehicle-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByRental(ctx context.Context, rentalID uuid.UUID) ([]*entity.Payment, error)
	FindByPayer(ctx context.Context, payerID uuid.UUID, limit, offset int) ([]*entity.Payment, error)
	CountByPayer(ctx context.Context, payerID uuid.UUID) (int64, error)

	// MarkRefunded flips a completed payment to REFUNDED; reports false
	// when the payment was not in COMPLETED state.
	MarkRefunded(ctx context.Context, id uuid.UUID) (bool, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, external_id, rental_id, payer_id, payment_method_id,
	       amount, currency, status, type, payment_date, failure_reason, created_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(
		&p.ID,
		&p.ExternalID,
		&p.RentalID,
		&p.PayerID,
		&p.PaymentMethodID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.Type,
		&p.PaymentDate,
		&p.FailureReason,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, external_id, rental_id, payer_id, payment_method_id,
		                     amount, currency, status, type, payment_date,
		                     failure_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.ExternalID,
		payment.RentalID,
		payment.PayerID,
		payment.PaymentMethodID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.Type,
		payment.PaymentDate,
		payment.FailureReason,
		payment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("rental_id", payment.RentalID.String()),
			zap.String("type", string(payment.Type)),
		)
		return fmt.Errorf("create payment: %w", err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE id = $1
	`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByRental(ctx context.Context, rentalID uuid.UUID) ([]*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE rental_id = $1
		ORDER BY payment_date ASC
	`

	rows, err := r.db.Query(ctx, query, rentalID)
	if err != nil {
		r.log.Error("Failed to list rental payments",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
		)
		return nil, fmt.Errorf("find payments for rental %s: %w", rentalID.String(), err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments rows: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) FindByPayer(ctx context.Context, payerID uuid.UUID, limit, offset int) ([]*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE payer_id = $1
		ORDER BY payment_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, payerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list payer payments",
			zap.Error(err),
			zap.String("payer_id", payerID.String()),
		)
		return nil, fmt.Errorf("find payments for payer %s: %w", payerID.String(), err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments rows: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) CountByPayer(ctx context.Context, payerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM payments WHERE payer_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, payerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count payments by payer %s: %w", payerID.String(), err)
	}

	return count, nil
}

func (r *paymentRepository) MarkRefunded(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE payments
		SET status = 'REFUNDED'
		WHERE id = $1 AND status = 'COMPLETED'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark payment refunded",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return false, fmt.Errorf("mark payment %s refunded: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
