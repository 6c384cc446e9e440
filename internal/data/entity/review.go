package entity

import (
	"github.com/google/uuid"
)

type ReviewTarget string

const (
	ReviewTargetVehicle ReviewTarget = "VEHICLE"
	ReviewTargetRenter  ReviewTarget = "RENTER"
)

// Review is left after a completed rental: the renter rates the vehicle,
// the owner rates the renter. Renter ratings feed discount eligibility.
type Review struct {
	BaseSimple
	RentalID   uuid.UUID    `db:"rental_id"`
	ReviewerID uuid.UUID    `db:"reviewer_id"`
	Target     ReviewTarget `db:"target"`
	Rating     float32      `db:"rating"`
	Comment    *string      `db:"comment"`
}
