package repository

import (
	"context"
	"fmt"
	"time"

	"vehicle-rental/internal/apperr"
	"vehicle-rental/internal/data/entity"
	"vehicle-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type RentalRepository interface {
	// CreateBooked inserts the rental inside a transaction that holds the
	// vehicle row lock while re-checking availability, cool-down and
	// calendar overlap. Returns apperr.ErrConflict when the window is
	// taken and apperr.ErrNotFound when the vehicle is gone.
	CreateBooked(ctx context.Context, rental *entity.Rental) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rental, error)
	FindByRenter(ctx context.Context, renterID uuid.UUID, limit, offset int) ([]*entity.Rental, error)
	CountByRenter(ctx context.Context, renterID uuid.UUID) (int64, error)
	FindByVehicle(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]*entity.Rental, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Rental, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// UpdateStatus flips status only when the rental is currently in
	// `from`; reports false when the guard did not match.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.RentalStatus) (bool, error)

	// ConfirmPaid attaches the payment reference and moves the rental
	// PENDING -> CONFIRMED/paid in one guarded statement. Reports false
	// when the rental was not pending.
	ConfirmPaid(ctx context.Context, id uuid.UUID, paymentID string) (bool, error)

	// ExtendBooked pushes the reservation end out to newUntil after
	// verifying, under the vehicle lock, that the vehicle is still
	// available and the added window is free. A nil paymentID leaves the
	// extension as a receivable: paid drops to false.
	ExtendBooked(ctx context.Context, rental *entity.Rental, newUntil time.Time, newTotal decimal.Decimal, paymentID *string) error

	// CompleteReturn finalizes the rental and stamps the vehicle's
	// last_rental_end in the same transaction. Reports false when the
	// rental was not in a returnable state.
	CompleteReturn(ctx context.Context, rental *entity.Rental) (bool, error)

	MarkPaid(ctx context.Context, id uuid.UUID, paymentID string) error

	// MarkRenterReported flags a completed rental's renter as reported,
	// at most once per rental.
	MarkRenterReported(ctx context.Context, id uuid.UUID) (bool, error)

	ExistsOverlapping(ctx context.Context, vehicleID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
}

type rentalRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRentalRepository(db database.PgxIface, log *zap.Logger) RentalRepository {
	return &rentalRepository{
		db:  db,
		log: log.With(zap.String("repository", "rental")),
	}
}

const rentalColumns = `id, vehicle_id, renter_id, start_date_time, end_date_time,
	       extended_until, actual_return_date_time, total_price, security_deposit,
	       discount_amount, late_return_fee, status, payment_id, paid,
	       discount_applied, late_return, renter_reported,
	       created_at, updated_at, deleted_at`

func scanRental(row pgx.Row) (*entity.Rental, error) {
	var rental entity.Rental
	err := row.Scan(
		&rental.ID,
		&rental.VehicleID,
		&rental.RenterID,
		&rental.StartDateTime,
		&rental.EndDateTime,
		&rental.ExtendedUntil,
		&rental.ActualReturnDateTime,
		&rental.TotalPrice,
		&rental.SecurityDeposit,
		&rental.DiscountAmount,
		&rental.LateReturnFee,
		&rental.Status,
		&rental.PaymentID,
		&rental.Paid,
		&rental.DiscountApplied,
		&rental.LateReturn,
		&rental.RenterReported,
		&rental.CreatedAt,
		&rental.UpdatedAt,
		&rental.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// overlapQuery treats reservations as half-open [start, end) intervals.
// Only confirmed and active rentals hold the calendar.
const overlapQuery = `
	SELECT EXISTS (
		SELECT 1 FROM rentals
		WHERE vehicle_id = $1
		  AND deleted_at IS NULL
		  AND status IN ('CONFIRMED', 'ACTIVE')
		  AND start_date_time < $3
		  AND COALESCE(extended_until, end_date_time) > $2
		  AND ($4::uuid IS NULL OR id <> $4)
	)
`

func (r *rentalRepository) CreateBooked(ctx context.Context, rental *entity.Rental) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the vehicle row so concurrent bookings for the same vehicle
	// serialize on this point.
	var available bool
	var lastRentalEnd *time.Time
	err = tx.QueryRow(ctx, `
		SELECT available, last_rental_end
		FROM vehicles
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`, rental.VehicleID).Scan(&available, &lastRentalEnd)

	if err == pgx.ErrNoRows {
		return apperr.ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to lock vehicle for booking",
			zap.Error(err),
			zap.String("vehicle_id", rental.VehicleID.String()),
		)
		return fmt.Errorf("lock vehicle %s: %w", rental.VehicleID.String(), err)
	}

	if !available {
		return fmt.Errorf("vehicle %s is not available: %w", rental.VehicleID.String(), apperr.ErrConflict)
	}

	// Cool-down: the vehicle rests for 24 hours after coming back.
	if lastRentalEnd != nil && rental.StartDateTime.Before(lastRentalEnd.Add(24*time.Hour)) {
		return fmt.Errorf("vehicle %s is in cool-down: %w", rental.VehicleID.String(), apperr.ErrConflict)
	}

	var exists bool
	err = tx.QueryRow(ctx, overlapQuery,
		rental.VehicleID, rental.StartDateTime, rental.EndDateTime, nil,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check overlapping rentals: %w", err)
	}
	if exists {
		return fmt.Errorf("window already reserved: %w", apperr.ErrConflict)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO rentals (id, vehicle_id, renter_id, start_date_time, end_date_time,
		                    total_price, security_deposit, discount_amount, status,
		                    payment_id, paid, discount_applied, late_return, renter_reported,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		rental.ID,
		rental.VehicleID,
		rental.RenterID,
		rental.StartDateTime,
		rental.EndDateTime,
		rental.TotalPrice,
		rental.SecurityDeposit,
		rental.DiscountAmount,
		rental.Status,
		rental.PaymentID,
		rental.Paid,
		rental.DiscountApplied,
		rental.LateReturn,
		rental.RenterReported,
		rental.CreatedAt,
		rental.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert rental",
			zap.Error(err),
			zap.String("vehicle_id", rental.VehicleID.String()),
			zap.String("renter_id", rental.RenterID.String()),
		)
		return fmt.Errorf("insert rental: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE vehicles SET rent_count = rent_count + 1, updated_at = NOW()
		WHERE id = $1
	`, rental.VehicleID)
	if err != nil {
		return fmt.Errorf("increment rent count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking transaction: %w", err)
	}

	return nil
}

func (r *rentalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rental, error) {
	query := `
		SELECT ` + rentalColumns + `
		FROM rentals
		WHERE id = $1 AND deleted_at IS NULL
	`

	rental, err := scanRental(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rental by ID",
			zap.Error(err),
			zap.String("rental_id", id.String()),
		)
		return nil, fmt.Errorf("find rental by ID %s: %w", id.String(), err)
	}

	return rental, nil
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...any) ([]*entity.Rental, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []*entity.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rental row: %w", err)
		}
		rentals = append(rentals, rental)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rentals rows: %w", err)
	}

	return rentals, nil
}

func (r *rentalRepository) FindByRenter(ctx context.Context, renterID uuid.UUID, limit, offset int) ([]*entity.Rental, error) {
	query := `
		SELECT ` + rentalColumns + `
		FROM rentals
		WHERE renter_id = $1 AND deleted_at IS NULL
		ORDER BY start_date_time DESC
		LIMIT $2 OFFSET $3
	`

	rentals, err := r.queryRentals(ctx, query, renterID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list renter rentals",
			zap.Error(err),
			zap.String("renter_id", renterID.String()),
		)
		return nil, fmt.Errorf("find rentals by renter %s: %w", renterID.String(), err)
	}

	return rentals, nil
}

func (r *rentalRepository) CountByRenter(ctx context.Context, renterID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM rentals WHERE renter_id = $1 AND deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query, renterID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rentals by renter %s: %w", renterID.String(), err)
	}

	return count, nil
}

func (r *rentalRepository) FindByVehicle(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]*entity.Rental, error) {
	query := `
		SELECT ` + rentalColumns + `
		FROM rentals
		WHERE vehicle_id = $1 AND deleted_at IS NULL
		ORDER BY start_date_time DESC
		LIMIT $2 OFFSET $3
	`

	rentals, err := r.queryRentals(ctx, query, vehicleID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list vehicle rentals",
			zap.Error(err),
			zap.String("vehicle_id", vehicleID.String()),
		)
		return nil, fmt.Errorf("find rentals by vehicle %s: %w", vehicleID.String(), err)
	}

	return rentals, nil
}

func (r *rentalRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Rental, error) {
	query := `
		SELECT r.id, r.vehicle_id, r.renter_id, r.start_date_time, r.end_date_time,
		       r.extended_until, r.actual_return_date_time, r.total_price, r.security_deposit,
		       r.discount_amount, r.late_return_fee, r.status, r.payment_id, r.paid,
		       r.discount_applied, r.late_return, r.renter_reported,
		       r.created_at, r.updated_at, r.deleted_at
		FROM rentals r
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE v.owner_id = $1 AND r.deleted_at IS NULL
		ORDER BY r.start_date_time DESC
		LIMIT $2 OFFSET $3
	`

	rentals, err := r.queryRentals(ctx, query, ownerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list owner rentals",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find rentals by owner %s: %w", ownerID.String(), err)
	}

	return rentals, nil
}

func (r *rentalRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM rentals r
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE v.owner_id = $1 AND r.deleted_at IS NULL
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rentals by owner %s: %w", ownerID.String(), err)
	}

	return count, nil
}

func (r *rentalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.RentalStatus) (bool, error) {
	query := `
		UPDATE rentals
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update rental status",
			zap.Error(err),
			zap.String("rental_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update rental %s status: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *rentalRepository) ConfirmPaid(ctx context.Context, id uuid.UUID, paymentID string) (bool, error) {
	query := `
		UPDATE rentals
		SET status = 'CONFIRMED', paid = TRUE, payment_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING' AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, paymentID)
	if err != nil {
		r.log.Error("Failed to confirm rental",
			zap.Error(err),
			zap.String("rental_id", id.String()),
		)
		return false, fmt.Errorf("confirm rental %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *rentalRepository) ExtendBooked(ctx context.Context, rental *entity.Rental, newUntil time.Time, newTotal decimal.Decimal, paymentID *string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin extension transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Same lock point as booking so an extension and a new booking for
	// the adjacent window cannot both win.
	var available bool
	err = tx.QueryRow(ctx, `
		SELECT available FROM vehicles
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE
	`, rental.VehicleID).Scan(&available)

	if err == pgx.ErrNoRows {
		return apperr.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock vehicle %s: %w", rental.VehicleID.String(), err)
	}

	if !available {
		return fmt.Errorf("vehicle %s is not available: %w", rental.VehicleID.String(), apperr.ErrConflict)
	}

	var exists bool
	err = tx.QueryRow(ctx, overlapQuery,
		rental.VehicleID, rental.EffectiveEnd(), newUntil, rental.ID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check overlapping rentals: %w", err)
	}
	if exists {
		return fmt.Errorf("extension window already reserved: %w", apperr.ErrConflict)
	}

	// Without a fresh payment reference the added window is owed, so the
	// rental falls back to unpaid until it settles.
	result, err := tx.Exec(ctx, `
		UPDATE rentals
		SET extended_until = $2, total_price = $3,
		    paid = $4, payment_id = COALESCE($5, payment_id),
		    updated_at = NOW()
		WHERE id = $1 AND status = 'ACTIVE' AND deleted_at IS NULL
	`, rental.ID, newUntil, newTotal, paymentID != nil, paymentID)
	if err != nil {
		r.log.Error("Failed to extend rental",
			zap.Error(err),
			zap.String("rental_id", rental.ID.String()),
		)
		return fmt.Errorf("extend rental %s: %w", rental.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rental %s is no longer active: %w", rental.ID.String(), apperr.ErrConflict)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit extension transaction: %w", err)
	}

	return nil
}

func (r *rentalRepository) CompleteReturn(ctx context.Context, rental *entity.Rental) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin return transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE rentals
		SET status = 'COMPLETED', actual_return_date_time = $2,
		    late_return = $3, late_return_fee = $4, total_price = $5,
		    updated_at = NOW()
		WHERE id = $1 AND status IN ('ACTIVE', 'CONFIRMED') AND deleted_at IS NULL
	`,
		rental.ID,
		rental.ActualReturnDateTime,
		rental.LateReturn,
		rental.LateReturnFee,
		rental.TotalPrice,
	)
	if err != nil {
		r.log.Error("Failed to complete return",
			zap.Error(err),
			zap.String("rental_id", rental.ID.String()),
		)
		return false, fmt.Errorf("complete return for rental %s: %w", rental.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE vehicles SET last_rental_end = $2, updated_at = NOW()
		WHERE id = $1
	`, rental.VehicleID, rental.ActualReturnDateTime)
	if err != nil {
		return false, fmt.Errorf("stamp last rental end: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit return transaction: %w", err)
	}

	return true, nil
}

func (r *rentalRepository) MarkPaid(ctx context.Context, id uuid.UUID, paymentID string) error {
	query := `
		UPDATE rentals
		SET paid = TRUE, payment_id = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, paymentID)
	if err != nil {
		r.log.Error("Failed to mark rental paid",
			zap.Error(err),
			zap.String("rental_id", id.String()),
		)
		return fmt.Errorf("mark rental %s paid: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rental %s not found", id.String())
	}

	return nil
}

func (r *rentalRepository) MarkRenterReported(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE rentals
		SET renter_reported = TRUE, updated_at = NOW()
		WHERE id = $1 AND status = 'COMPLETED' AND renter_reported = FALSE
		  AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark renter reported",
			zap.Error(err),
			zap.String("rental_id", id.String()),
		)
		return false, fmt.Errorf("mark renter reported for rental %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *rentalRepository) ExistsOverlapping(ctx context.Context, vehicleID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, overlapQuery, vehicleID, start, end, excludeID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check overlapping rentals",
			zap.Error(err),
			zap.String("vehicle_id", vehicleID.String()),
		)
		return false, fmt.Errorf("check overlapping rentals for vehicle %s: %w", vehicleID.String(), err)
	}

	return exists, nil
}
