package request

type CreateVehicleRequest struct {
	Brand        string  `json:"brand" validate:"required,min=2,max=50"`
	Model        string  `json:"model" validate:"required,min=1,max=50"`
	Year         int     `json:"year" validate:"required,min=1980,max=2100"`
	LicensePlate string  `json:"license_plate" validate:"required,min=4,max=12"`
	Category     string  `json:"category" validate:"required,oneof=sedan suv hatchback pickup van motorcycle"`
	Transmission string  `json:"transmission" validate:"required,oneof=manual automatic"`
	FuelType     string  `json:"fuel_type" validate:"required,oneof=gasoline diesel electric hybrid"`
	Seats        int     `json:"seats" validate:"required,min=1,max=15"`
	PricePerDay  string  `json:"price_per_day" validate:"required"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type UpdateVehicleRequest struct {
	Brand        string  `json:"brand" validate:"required,min=2,max=50"`
	Model        string  `json:"model" validate:"required,min=1,max=50"`
	Year         int     `json:"year" validate:"required,min=1980,max=2100"`
	LicensePlate string  `json:"license_plate" validate:"required,min=4,max=12"`
	Category     string  `json:"category" validate:"required,oneof=sedan suv hatchback pickup van motorcycle"`
	Transmission string  `json:"transmission" validate:"required,oneof=manual automatic"`
	FuelType     string  `json:"fuel_type" validate:"required,oneof=gasoline diesel electric hybrid"`
	Seats        int     `json:"seats" validate:"required,min=1,max=15"`
	PricePerDay  string  `json:"price_per_day" validate:"required"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Available    bool    `json:"available"`
}
