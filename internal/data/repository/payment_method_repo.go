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

type PaymentMethodRepository interface {
	Create(ctx context.Context, method *entity.PaymentMethod) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PaymentMethod, error)
	Update(ctx context.Context, method *entity.PaymentMethod) error
	SetDefault(ctx context.Context, userID, methodID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type paymentMethodRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentMethodRepository(db database.PgxIface, log *zap.Logger) PaymentMethodRepository {
	return &paymentMethodRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment_method")),
	}
}

const paymentMethodColumns = `id, user_id, type, provider, alias,
	       encrypted_card_number, encrypted_expiry_date, masked_card_number,
	       paypal_email, is_default, created_at, updated_at, deleted_at`

func scanPaymentMethod(row pgx.Row) (*entity.PaymentMethod, error) {
	var pm entity.PaymentMethod
	err := row.Scan(
		&pm.ID,
		&pm.UserID,
		&pm.Type,
		&pm.Provider,
		&pm.Alias,
		&pm.EncryptedCardNumber,
		&pm.EncryptedExpiryDate,
		&pm.MaskedCardNumber,
		&pm.PaypalEmail,
		&pm.IsDefault,
		&pm.CreatedAt,
		&pm.UpdatedAt,
		&pm.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pm, nil
}

func (r *paymentMethodRepository) Create(ctx context.Context, method *entity.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (id, user_id, type, provider, alias,
		                            encrypted_card_number, encrypted_expiry_date,
		                            masked_card_number, paypal_email, is_default,
		                            created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		method.ID,
		method.UserID,
		method.Type,
		method.Provider,
		method.Alias,
		method.EncryptedCardNumber,
		method.EncryptedExpiryDate,
		method.MaskedCardNumber,
		method.PaypalEmail,
		method.IsDefault,
		method.CreatedAt,
		method.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment method",
			zap.Error(err),
			zap.String("user_id", method.UserID.String()),
		)
		return fmt.Errorf("create payment method: %w", err)
	}

	return nil
}

func (r *paymentMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	query := `
		SELECT ` + paymentMethodColumns + `
		FROM payment_methods
		WHERE id = $1 AND deleted_at IS NULL
	`

	method, err := scanPaymentMethod(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment method by ID",
			zap.Error(err),
			zap.String("payment_method_id", id.String()),
		)
		return nil, fmt.Errorf("find payment method by ID %s: %w", id.String(), err)
	}

	return method, nil
}

func (r *paymentMethodRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PaymentMethod, error) {
	query := `
		SELECT ` + paymentMethodColumns + `
		FROM payment_methods
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY is_default DESC, created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list payment methods",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find payment methods for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var methods []*entity.PaymentMethod
	for rows.Next() {
		method, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment method row: %w", err)
		}
		methods = append(methods, method)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment methods rows: %w", err)
	}

	return methods, nil
}

func (r *paymentMethodRepository) Update(ctx context.Context, method *entity.PaymentMethod) error {
	query := `
		UPDATE payment_methods
		SET provider = $2, alias = $3, encrypted_card_number = $4,
		    encrypted_expiry_date = $5, masked_card_number = $6,
		    paypal_email = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		method.ID,
		method.Provider,
		method.Alias,
		method.EncryptedCardNumber,
		method.EncryptedExpiryDate,
		method.MaskedCardNumber,
		method.PaypalEmail,
		method.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update payment method",
			zap.Error(err),
			zap.String("payment_method_id", method.ID.String()),
		)
		return fmt.Errorf("update payment method %s: %w", method.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment method %s not found", method.ID.String())
	}

	return nil
}

// SetDefault flips the default flag atomically: clears the user's
// current default and marks the given method in one transaction.
func (r *paymentMethodRepository) SetDefault(ctx context.Context, userID, methodID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set-default transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE payment_methods
		SET is_default = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND is_default = TRUE AND deleted_at IS NULL
	`, userID)
	if err != nil {
		return fmt.Errorf("clear default payment method: %w", err)
	}

	result, err := tx.Exec(ctx, `
		UPDATE payment_methods
		SET is_default = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`, methodID, userID)
	if err != nil {
		return fmt.Errorf("set default payment method %s: %w", methodID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment method %s not found", methodID.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set-default transaction: %w", err)
	}

	return nil
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE payment_methods SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete payment method",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete payment method %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment method %s not found", id.String())
	}

	return nil
}
