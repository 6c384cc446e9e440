package response

import (
	"time"

	"vehicle-rental/internal/data/entity"
)

type ReviewResponse struct {
	ID         string    `json:"id"`
	RentalID   string    `json:"rental_id"`
	ReviewerID string    `json:"reviewer_id"`
	Target     string    `json:"target"`
	Rating     float32   `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToReviewResponse(r *entity.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         r.ID.String(),
		RentalID:   r.RentalID.String(),
		ReviewerID: r.ReviewerID.String(),
		Target:     string(r.Target),
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

func ToReviewResponses(reviews []*entity.Review) []*ReviewResponse {
	responses := make([]*ReviewResponse, len(reviews))
	for i, r := range reviews {
		responses[i] = ToReviewResponse(r)
	}
	return responses
}
