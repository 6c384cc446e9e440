package repository

import (
	"context"
	"errors"
	"fmt"

	"vehicle-rental/internal/data/entity"
	"vehicle-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicateReceiptNumber signals a receipt number collision; the
// caller generates a fresh number and retries.
var ErrDuplicateReceiptNumber = errors.New("duplicate receipt number")

type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	FindByPaymentID(ctx context.Context, paymentID uuid.UUID) (*entity.Receipt, error)
	FindByRenter(ctx context.Context, renterID uuid.UUID, limit, offset int) ([]*entity.Receipt, error)
	CountByRenter(ctx context.Context, renterID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReceiptStatus) error
}

type receiptRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReceiptRepository(db database.PgxIface, log *zap.Logger) ReceiptRepository {
	return &receiptRepository{
		db:  db,
		log: log.With(zap.String("repository", "receipt")),
	}
}

const receiptColumns = `id, receipt_number, payment_id, rental_id, renter_id, owner_id,
	       vehicle_id, issue_date, subtotal, tax_amount, total_amount,
	       rental_days, price_per_day, currency, status, created_at`

func scanReceipt(row pgx.Row) (*entity.Receipt, error) {
	var rc entity.Receipt
	err := row.Scan(
		&rc.ID,
		&rc.ReceiptNumber,
		&rc.PaymentID,
		&rc.RentalID,
		&rc.RenterID,
		&rc.OwnerID,
		&rc.VehicleID,
		&rc.IssueDate,
		&rc.Subtotal,
		&rc.TaxAmount,
		&rc.TotalAmount,
		&rc.RentalDays,
		&rc.PricePerDay,
		&rc.Currency,
		&rc.Status,
		&rc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	query := `
		INSERT INTO receipts (id, receipt_number, payment_id, rental_id, renter_id,
		                     owner_id, vehicle_id, issue_date, subtotal, tax_amount,
		                     total_amount, rental_days, price_per_day, currency,
		                     status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		receipt.ID,
		receipt.ReceiptNumber,
		receipt.PaymentID,
		receipt.RentalID,
		receipt.RenterID,
		receipt.OwnerID,
		receipt.VehicleID,
		receipt.IssueDate,
		receipt.Subtotal,
		receipt.TaxAmount,
		receipt.TotalAmount,
		receipt.RentalDays,
		receipt.PricePerDay,
		receipt.Currency,
		receipt.Status,
		receipt.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation on receipt_number
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateReceiptNumber
		}
		r.log.Error("Failed to create receipt",
			zap.Error(err),
			zap.String("receipt_number", receipt.ReceiptNumber),
		)
		return fmt.Errorf("create receipt %s: %w", receipt.ReceiptNumber, err)
	}

	return nil
}

func (r *receiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		WHERE id = $1
	`

	receipt, err := scanReceipt(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find receipt by ID",
			zap.Error(err),
			zap.String("receipt_id", id.String()),
		)
		return nil, fmt.Errorf("find receipt by ID %s: %w", id.String(), err)
	}

	return receipt, nil
}

func (r *receiptRepository) FindByPaymentID(ctx context.Context, paymentID uuid.UUID) (*entity.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		WHERE payment_id = $1
	`

	receipt, err := scanReceipt(r.db.QueryRow(ctx, query, paymentID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find receipt by payment",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return nil, fmt.Errorf("find receipt for payment %s: %w", paymentID.String(), err)
	}

	return receipt, nil
}

func (r *receiptRepository) FindByRenter(ctx context.Context, renterID uuid.UUID, limit, offset int) ([]*entity.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		WHERE renter_id = $1
		ORDER BY issue_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, renterID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list renter receipts",
			zap.Error(err),
			zap.String("renter_id", renterID.String()),
		)
		return nil, fmt.Errorf("find receipts for renter %s: %w", renterID.String(), err)
	}
	defer rows.Close()

	var receipts []*entity.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receipt row: %w", err)
		}
		receipts = append(receipts, receipt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receipts rows: %w", err)
	}

	return receipts, nil
}

func (r *receiptRepository) CountByRenter(ctx context.Context, renterID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM receipts WHERE renter_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, renterID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count receipts by renter %s: %w", renterID.String(), err)
	}

	return count, nil
}

func (r *receiptRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReceiptStatus) error {
	query := `UPDATE receipts SET status = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update receipt status",
			zap.Error(err),
			zap.String("receipt_id", id.String()),
		)
		return fmt.Errorf("update receipt %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("receipt %s not found", id.String())
	}

	return nil
}
