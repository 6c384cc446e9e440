package request

type CreateReviewRequest struct {
	RentalID string  `json:"rental_id" validate:"required,uuid"`
	Target   string  `json:"target" validate:"required,oneof=VEHICLE RENTER"`
	Rating   float32 `json:"rating" validate:"required,min=1,max=5"`
	Comment  *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}
