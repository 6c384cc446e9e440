package repository

import (
	"context"
	"fmt"
	"time"

	"vehicle-rental/internal/data/entity"
	"vehicle-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindAvailable(ctx context.Context, category string, limit, offset int) ([]*entity.Vehicle, error)
	CountAvailable(ctx context.Context, category string) (int64, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	SetAvailable(ctx context.Context, id uuid.UUID, available bool) error
	SetLastRentalEnd(ctx context.Context, id uuid.UUID, endedAt time.Time) error
	UpdateRating(ctx context.Context, id uuid.UUID, rating float32) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vehicleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleRepository(db database.PgxIface, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

const vehicleColumns = `id, owner_id, brand, model, year, license_plate, category,
	       transmission, fuel_type, seats, price_per_day, description,
	       available, rent_count, average_rating, last_rental_end,
	       created_at, updated_at, deleted_at`

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(
		&v.ID,
		&v.OwnerID,
		&v.Brand,
		&v.Model,
		&v.Year,
		&v.LicensePlate,
		&v.Category,
		&v.Transmission,
		&v.FuelType,
		&v.Seats,
		&v.PricePerDay,
		&v.Description,
		&v.Available,
		&v.RentCount,
		&v.AverageRating,
		&v.LastRentalEnd,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, owner_id, brand, model, year, license_plate, category,
		                     transmission, fuel_type, seats, price_per_day, description,
		                     available, rent_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.OwnerID,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Year,
		vehicle.LicensePlate,
		vehicle.Category,
		vehicle.Transmission,
		vehicle.FuelType,
		vehicle.Seats,
		vehicle.PricePerDay,
		vehicle.Description,
		vehicle.Available,
		vehicle.RentCount,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create vehicle",
			zap.Error(err),
			zap.String("license_plate", vehicle.LicensePlate),
		)
		return fmt.Errorf("create vehicle %s: %w", vehicle.LicensePlate, err)
	}

	return nil
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE id = $1 AND deleted_at IS NULL
	`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle by ID",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return nil, fmt.Errorf("find vehicle by ID %s: %w", id.String(), err)
	}

	return vehicle, nil
}

// FindAvailable lists vehicles open for booking, optionally filtered by
// category.
func (r *vehicleRepository) FindAvailable(ctx context.Context, category string, limit, offset int) ([]*entity.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE deleted_at IS NULL AND available = TRUE
		  AND ($1 = '' OR category = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, category, limit, offset)
	if err != nil {
		r.log.Error("Failed to list available vehicles",
			zap.Error(err),
			zap.String("category", category),
		)
		return nil, fmt.Errorf("find available vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles rows: %w", err)
	}

	return vehicles, nil
}

func (r *vehicleRepository) CountAvailable(ctx context.Context, category string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM vehicles
		WHERE deleted_at IS NULL AND available = TRUE
		  AND ($1 = '' OR category = $1)
	`

	var count int64
	err := r.db.QueryRow(ctx, query, category).Scan(&count)
	if err != nil {
		r.log.Error("Database error counting vehicles", zap.Error(err))
		return 0, fmt.Errorf("count available vehicles: %w", err)
	}

	return count, nil
}

func (r *vehicleRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entity.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list owner vehicles",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find vehicles by owner %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles rows: %w", err)
	}

	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET brand = $2, model = $3, year = $4, license_plate = $5,
		    category = $6, transmission = $7, fuel_type = $8, seats = $9,
		    price_per_day = $10, description = $11, available = $12,
		    updated_at = $13
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Year,
		vehicle.LicensePlate,
		vehicle.Category,
		vehicle.Transmission,
		vehicle.FuelType,
		vehicle.Seats,
		vehicle.PricePerDay,
		vehicle.Description,
		vehicle.Available,
		vehicle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update vehicle",
			zap.Error(err),
			zap.String("vehicle_id", vehicle.ID.String()),
		)
		return fmt.Errorf("update vehicle %s: %w", vehicle.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found or already deleted", vehicle.ID.String())
	}

	return nil
}

func (r *vehicleRepository) SetAvailable(ctx context.Context, id uuid.UUID, available bool) error {
	query := `
		UPDATE vehicles
		SET available = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, available)
	if err != nil {
		r.log.Error("Failed to set vehicle availability",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return fmt.Errorf("set availability for vehicle %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", id.String())
	}

	return nil
}

// SetLastRentalEnd records when the vehicle last came back. The booking
// checks enforce a cool-down window from this timestamp.
func (r *vehicleRepository) SetLastRentalEnd(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	query := `
		UPDATE vehicles
		SET last_rental_end = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	_, err := r.db.Exec(ctx, query, id, endedAt)
	if err != nil {
		r.log.Error("Failed to set last rental end",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return fmt.Errorf("set last rental end for vehicle %s: %w", id.String(), err)
	}

	return nil
}

func (r *vehicleRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float32) error {
	query := `
		UPDATE vehicles
		SET average_rating = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	_, err := r.db.Exec(ctx, query, id, rating)
	if err != nil {
		r.log.Error("Failed to update vehicle rating",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return fmt.Errorf("update rating for vehicle %s: %w", id.String(), err)
	}

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE vehicles SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete vehicle",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete vehicle %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", id.String())
	}

	return nil
}
