package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Vehicle struct {
	Base
	OwnerID       uuid.UUID       `db:"owner_id"`
	Brand         string          `db:"brand"`
	Model         string          `db:"model"`
	Year          int             `db:"year"`
	LicensePlate  string          `db:"license_plate"`
	Category      string          `db:"category"`
	Transmission  string          `db:"transmission"`
	FuelType      string          `db:"fuel_type"`
	Seats         int             `db:"seats"`
	PricePerDay   decimal.Decimal `db:"price_per_day"`
	Description   *string         `db:"description"`
	Available     bool            `db:"available"`
	RentCount     int             `db:"rent_count"`
	AverageRating *float32        `db:"average_rating"`
	LastRentalEnd *time.Time      `db:"last_rental_end"`
}
