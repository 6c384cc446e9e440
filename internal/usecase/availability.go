package usecase

import (
	"fmt"
	"time"

	"vehicle-rental/internal/apperr"
	"vehicle-rental/internal/data/entity"
)

// cooldownPeriod is how long a vehicle rests after a return before it
// can go out again.
const cooldownPeriod = 24 * time.Hour

// AvailabilityChecker validates a requested window against the vehicle
// state. Calendar overlap is checked separately, under the vehicle row
// lock. Every check fails closed: when in doubt the window is refused.
type AvailabilityChecker struct{}

func NewAvailabilityChecker() AvailabilityChecker {
	return AvailabilityChecker{}
}

func (AvailabilityChecker) CheckWindow(start, end, now time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("end must be after start: %w", apperr.ErrValidation)
	}
	// A window starting exactly now is already in the past by the time
	// the booking lands.
	if !start.After(now) {
		return fmt.Errorf("start must not be in the past: %w", apperr.ErrValidation)
	}
	return nil
}

func (c AvailabilityChecker) CheckVehicle(vehicle *entity.Vehicle, start time.Time) error {
	if vehicle == nil {
		return apperr.ErrNotFound
	}
	if !vehicle.Available {
		return fmt.Errorf("vehicle is not available: %w", apperr.ErrConflict)
	}
	if vehicle.LastRentalEnd != nil && start.Before(vehicle.LastRentalEnd.Add(cooldownPeriod)) {
		return fmt.Errorf("vehicle is in cool-down until %s: %w",
			vehicle.LastRentalEnd.Add(cooldownPeriod).Format(time.RFC3339), apperr.ErrConflict)
	}
	return nil
}
