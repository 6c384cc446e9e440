package response

import (
	"time"

	"vehicle-rental/internal/data/entity"

	"github.com/shopspring/decimal"
)

type VehicleResponse struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"owner_id"`
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	Year          int             `json:"year"`
	LicensePlate  string          `json:"license_plate"`
	Category      string          `json:"category"`
	Transmission  string          `json:"transmission"`
	FuelType      string          `json:"fuel_type"`
	Seats         int             `json:"seats"`
	PricePerDay   decimal.Decimal `json:"price_per_day"`
	Description   *string         `json:"description,omitempty"`
	Available     bool            `json:"available"`
	RentCount     int             `json:"rent_count"`
	AverageRating *float32        `json:"average_rating,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func ToVehicleResponse(v *entity.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:            v.ID.String(),
		OwnerID:       v.OwnerID.String(),
		Brand:         v.Brand,
		Model:         v.Model,
		Year:          v.Year,
		LicensePlate:  v.LicensePlate,
		Category:      v.Category,
		Transmission:  v.Transmission,
		FuelType:      v.FuelType,
		Seats:         v.Seats,
		PricePerDay:   v.PricePerDay,
		Description:   v.Description,
		Available:     v.Available,
		RentCount:     v.RentCount,
		AverageRating: v.AverageRating,
		CreatedAt:     v.CreatedAt,
	}
}

func ToVehicleResponses(vehicles []*entity.Vehicle) []*VehicleResponse {
	responses := make([]*VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		responses[i] = ToVehicleResponse(v)
	}
	return responses
}
