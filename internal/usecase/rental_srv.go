package usecase

import (
	"context"
	"fmt"
	"time"

	"vehicle-rental/internal/apperr"
	"vehicle-rental/internal/data/entity"
	"vehicle-rental/internal/data/repository"
	"vehicle-rental/internal/dto/request"
	"vehicle-rental/internal/dto/response"
	"vehicle-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RentalService interface {
	Create(ctx context.Context, renterID uuid.UUID, req *request.CreateRentalRequest) (*response.RentalResponse, error)
	Confirm(ctx context.Context, renterID, rentalID uuid.UUID, req *request.ConfirmRentalRequest) (*response.RentalResponse, error)
	Start(ctx context.Context, renterID, rentalID uuid.UUID) (*response.RentalResponse, error)
	Extend(ctx context.Context, renterID, rentalID uuid.UUID, req *request.ExtendRentalRequest) (*response.RentalResponse, error)
	Return(ctx context.Context, renterID, rentalID uuid.UUID) (*response.ReturnResponse, error)
	Cancel(ctx context.Context, userID, rentalID uuid.UUID) (*response.RentalResponse, error)
	Report(ctx context.Context, ownerID, rentalID uuid.UUID) error

	GetByID(ctx context.Context, userID, rentalID uuid.UUID) (*response.RentalResponse, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID, p utils.Pagination) (*utils.PaginatedResult, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, p utils.Pagination) (*utils.PaginatedResult, error)
	ListByVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID, p utils.Pagination) ([]*response.RentalResponse, error)

	CheckAvailability(ctx context.Context, req *request.CheckAvailabilityRequest) (*response.AvailabilityResponse, error)
}

type rentalService struct {
	repo    *repository.Repository
	pricing PricingEngine
	checker AvailabilityChecker
	log     *zap.Logger
}

func NewRentalService(repo *repository.Repository, log *zap.Logger) RentalService {
	return &rentalService{
		repo:    repo,
		pricing: NewPricingEngine(),
		checker: NewAvailabilityChecker(),
		log:     log.With(zap.String("service", "rental")),
	}
}

func (s *rentalService) Create(ctx context.Context, renterID uuid.UUID, req *request.CreateRentalRequest) (*response.RentalResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create rental validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), apperr.ErrValidation)
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID format: %w", apperr.ErrValidation)
	}

	renter, err := s.repo.User.FindByID(ctx, renterID)
	if err != nil {
		return nil, err
	}
	if renter == nil {
		return nil, fmt.Errorf("renter not found: %w", apperr.ErrNotFound)
	}
	if !renter.CanRent() {
		return nil, fmt.Errorf("account is not eligible to rent: %w", apperr.ErrUnauthorized)
	}

	now := time.Now()
	if err := s.checker.CheckWindow(req.StartDateTime, req.EndDateTime, now); err != nil {
		return nil, err
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle not found: %w", apperr.ErrNotFound)
	}
	if vehicle.OwnerID == renterID {
		return nil, fmt.Errorf("cannot rent your own vehicle: %w", apperr.ErrValidation)
	}
	if err := s.checker.CheckVehicle(vehicle, req.StartDateTime); err != nil {
		return nil, err
	}

	// Fast pre-check; the booking transaction re-checks under the
	// vehicle lock.
	taken, err := s.repo.Rental.ExistsOverlapping(ctx, vehicleID, req.StartDateTime, req.EndDateTime, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("window already reserved: %w", apperr.ErrConflict)
	}

	days := s.pricing.RentalDays(req.StartDateTime, req.EndDateTime)
	total := s.pricing.BasePrice(vehicle.PricePerDay, days)

	rental := &entity.Rental{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		VehicleID:     vehicleID,
		RenterID:      renterID,
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
		TotalPrice:    total,
		Status:        entity.RentalStatusPending,
	}

	if renter.IsEligibleForDiscount() {
		discounted, amount := s.pricing.Discount(total)
		rental.TotalPrice = discounted
		rental.DiscountAmount = &amount
		rental.DiscountApplied = true
	}

	rental.SecurityDeposit = s.pricing.SecurityDeposit(rental.TotalPrice)

	// Paying upfront skips the pending step.
	if ref := paymentRef(req.PaymentID); ref != nil {
		rental.PaymentID = ref
		rental.Paid = true
		rental.Status = entity.RentalStatusConfirmed
	}

	if err := s.repo.Rental.CreateBooked(ctx, rental); err != nil {
		return nil, err
	}

	s.log.Info("Rental created",
		zap.String("rental_id", rental.ID.String()),
		zap.String("vehicle_id", vehicleID.String()),
		zap.String("renter_id", renterID.String()),
		zap.Int("days", days),
		zap.String("total", rental.TotalPrice.String()),
	)

	s.notify(ctx, vehicle.OwnerID, entity.NotificationRentalCreated,
		"New rental request",
		fmt.Sprintf("Your %s %s has a rental request from %s to %s",
			vehicle.Brand, vehicle.Model,
			req.StartDateTime.Format(time.RFC3339), req.EndDateTime.Format(time.RFC3339)))

	return response.ToRentalResponse(rental), nil
}

// Confirm is the renter attaching a payment reference to their own
// pending booking, which locks it in.
func (s *rentalService) Confirm(ctx context.Context, renterID, rentalID uuid.UUID, req *request.ConfirmRentalRequest) (*response.RentalResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), apperr.ErrValidation)
	}

	rental, err := s.loadRentalForRenter(ctx, renterID, rentalID)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.Rental.ConfirmPaid(ctx, rentalID, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("rental is not pending: %w", apperr.ErrConflict)
	}

	rental.Status = entity.RentalStatusConfirmed
	rental.Paid = true
	rental.PaymentID = &req.PaymentID
	s.log.Info("Rental confirmed",
		zap.String("rental_id", rentalID.String()),
		zap.String("payment_id", req.PaymentID),
	)

	return response.ToRentalResponse(rental), nil
}

func (s *rentalService) Start(ctx context.Context, renterID, rentalID uuid.UUID) (*response.RentalResponse, error) {
	rental, err := s.loadRentalForRenter(ctx, renterID, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.Paid {
		return nil, fmt.Errorf("rental has not been paid: %w", apperr.ErrPayment)
	}

	ok, err := s.repo.Rental.UpdateStatus(ctx, rentalID, entity.RentalStatusConfirmed, entity.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("rental is not confirmed: %w", apperr.ErrConflict)
	}

	rental.Status = entity.RentalStatusActive
	s.log.Info("Rental started", zap.String("rental_id", rentalID.String()))

	return response.ToRentalResponse(rental), nil
}

func (s *rentalService) Extend(ctx context.Context, renterID, rentalID uuid.UUID, req *request.ExtendRentalRequest) (*response.RentalResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), apperr.ErrValidation)
	}

	rental, err := s.loadRentalForRenter(ctx, renterID, rentalID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !rental.IsCurrentlyActive(now) {
		return nil, fmt.Errorf("rental is not currently active: %w", apperr.ErrConflict)
	}

	currentEnd := rental.EffectiveEnd()
	if !req.NewEndDateTime.After(currentEnd) {
		return nil, fmt.Errorf("new end must be after current end: %w", apperr.ErrValidation)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, rental.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle not found: %w", apperr.ErrNotFound)
	}
	if !vehicle.Available {
		return nil, fmt.Errorf("vehicle %s is not available: %w", vehicle.ID.String(), apperr.ErrConflict)
	}

	// Extensions bill at the list rate; the loyalty discount only
	// applies to the original booking.
	extraDays := s.pricing.RentalDays(currentEnd, req.NewEndDateTime)
	extra := s.pricing.BasePrice(vehicle.PricePerDay, extraDays)
	newTotal := rental.TotalPrice.Add(extra)

	ref := paymentRef(req.PaymentID)
	if err := s.repo.Rental.ExtendBooked(ctx, rental, req.NewEndDateTime, newTotal, ref); err != nil {
		return nil, err
	}

	rental.ExtendedUntil = &req.NewEndDateTime
	rental.TotalPrice = newTotal
	rental.Paid = ref != nil
	if ref != nil {
		rental.PaymentID = ref
	}

	s.log.Info("Rental extended",
		zap.String("rental_id", rentalID.String()),
		zap.Int("extra_days", extraDays),
		zap.String("new_total", newTotal.String()),
	)

	return response.ToRentalResponse(rental), nil
}

func (s *rentalService) Return(ctx context.Context, renterID, rentalID uuid.UUID) (*response.ReturnResponse, error) {
	rental, err := s.loadRentalForRenter(ctx, renterID, rentalID)
	if err != nil {
		return nil, err
	}

	if rental.Status != entity.RentalStatusActive && rental.Status != entity.RentalStatusConfirmed {
		return nil, fmt.Errorf("rental cannot be returned from status %s: %w", rental.Status, apperr.ErrConflict)
	}

	now := time.Now()
	rental.ActualReturnDateTime = &now

	if s.pricing.IsLate(rental.EffectiveEnd(), now) {
		fee := s.pricing.LateFee(rental.TotalPrice)
		rental.LateReturn = true
		rental.LateReturnFee = &fee
		rental.TotalPrice = rental.TotalPrice.Add(fee)
	}

	rental.Status = entity.RentalStatusCompleted

	ok, err := s.repo.Rental.CompleteReturn(ctx, rental)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("rental was already settled: %w", apperr.ErrConflict)
	}

	// A late return bans the renter outright.
	banned := false
	if rental.LateReturn {
		if err := s.repo.User.SetBanned(ctx, renterID, true); err != nil {
			// The return itself went through; surface the ban failure
			// in logs only.
			s.log.Error("Failed to ban late renter",
				zap.Error(err),
				zap.String("renter_id", renterID.String()),
			)
		} else {
			banned = true
			s.log.Warn("Renter banned for late return",
				zap.String("renter_id", renterID.String()),
				zap.String("rental_id", rentalID.String()),
			)
		}
	}

	s.log.Info("Rental returned",
		zap.String("rental_id", rentalID.String()),
		zap.Bool("late", rental.LateReturn),
		zap.Bool("renter_banned", banned),
	)

	if vehicle, verr := s.repo.Vehicle.FindByID(ctx, rental.VehicleID); verr == nil && vehicle != nil {
		s.notify(ctx, vehicle.OwnerID, entity.NotificationVehicleReturned,
			"Vehicle returned",
			fmt.Sprintf("Your %s %s was returned", vehicle.Brand, vehicle.Model))
	}

	return &response.ReturnResponse{
		Rental:       response.ToRentalResponse(rental),
		RenterBanned: banned,
	}, nil
}

// Report lets the vehicle owner file a complaint against the renter of
// a completed rental. One report per rental; it counts against the
// renter's loyalty standing.
func (s *rentalService) Report(ctx context.Context, ownerID, rentalID uuid.UUID) error {
	rental, vehicle, err := s.loadRentalWithVehicle(ctx, rentalID)
	if err != nil {
		return err
	}
	if vehicle.OwnerID != ownerID {
		return fmt.Errorf("rental does not belong to your vehicle: %w", apperr.ErrUnauthorized)
	}

	ok, err := s.repo.Rental.MarkRenterReported(ctx, rentalID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("rental is not reportable: %w", apperr.ErrConflict)
	}

	if err := s.repo.User.IncrementReportCount(ctx, rental.RenterID); err != nil {
		return err
	}

	s.log.Info("Renter reported",
		zap.String("rental_id", rentalID.String()),
		zap.String("renter_id", rental.RenterID.String()),
	)

	return nil
}

func (s *rentalService) Cancel(ctx context.Context, userID, rentalID uuid.UUID) (*response.RentalResponse, error) {
	rental, vehicle, err := s.loadRentalWithVehicle(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.RenterID != userID && vehicle.OwnerID != userID {
		return nil, fmt.Errorf("rental is not yours: %w", apperr.ErrUnauthorized)
	}

	ok, err := s.repo.Rental.UpdateStatus(ctx, rentalID, entity.RentalStatusPending, entity.RentalStatusCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		ok, err = s.repo.Rental.UpdateStatus(ctx, rentalID, entity.RentalStatusConfirmed, entity.RentalStatusCancelled)
		if err != nil {
			return nil, err
		}
	}
	if !ok {
		return nil, fmt.Errorf("rental can no longer be cancelled: %w", apperr.ErrConflict)
	}

	rental.Status = entity.RentalStatusCancelled
	s.log.Info("Rental cancelled",
		zap.String("rental_id", rentalID.String()),
		zap.String("by", userID.String()),
	)

	return response.ToRentalResponse(rental), nil
}

func (s *rentalService) GetByID(ctx context.Context, userID, rentalID uuid.UUID) (*response.RentalResponse, error) {
	rental, vehicle, err := s.loadRentalWithVehicle(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.RenterID != userID && vehicle.OwnerID != userID {
		return nil, fmt.Errorf("rental is not yours: %w", apperr.ErrUnauthorized)
	}

	return response.ToRentalResponse(rental), nil
}

func (s *rentalService) ListByRenter(ctx context.Context, renterID uuid.UUID, p utils.Pagination) (*utils.PaginatedResult, error) {
	rentals, err := s.repo.Rental.FindByRenter(ctx, renterID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Rental.CountByRenter(ctx, renterID)
	if err != nil {
		return nil, err
	}

	result := utils.NewPaginatedResult(response.ToRentalResponses(rentals), p, total)
	return &result, nil
}

func (s *rentalService) ListByOwner(ctx context.Context, ownerID uuid.UUID, p utils.Pagination) (*utils.PaginatedResult, error) {
	rentals, err := s.repo.Rental.FindByOwner(ctx, ownerID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Rental.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := utils.NewPaginatedResult(response.ToRentalResponses(rentals), p, total)
	return &result, nil
}

func (s *rentalService) ListByVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID, p utils.Pagination) ([]*response.RentalResponse, error) {
	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle not found: %w", apperr.ErrNotFound)
	}
	if vehicle.OwnerID != ownerID {
		return nil, fmt.Errorf("vehicle is not yours: %w", apperr.ErrUnauthorized)
	}

	rentals, err := s.repo.Rental.FindByVehicle(ctx, vehicleID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	return response.ToRentalResponses(rentals), nil
}

func (s *rentalService) CheckAvailability(ctx context.Context, req *request.CheckAvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), apperr.ErrValidation)
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID format: %w", apperr.ErrValidation)
	}

	if err := s.checker.CheckWindow(req.StartDateTime, req.EndDateTime, time.Now()); err != nil {
		return &response.AvailabilityResponse{Available: false, Reason: err.Error()}, nil
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if err := s.checker.CheckVehicle(vehicle, req.StartDateTime); err != nil {
		if vehicle == nil {
			return nil, fmt.Errorf("vehicle not found: %w", apperr.ErrNotFound)
		}
		return &response.AvailabilityResponse{Available: false, Reason: err.Error()}, nil
	}

	taken, err := s.repo.Rental.ExistsOverlapping(ctx, vehicleID, req.StartDateTime, req.EndDateTime, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return &response.AvailabilityResponse{Available: false, Reason: "window already reserved"}, nil
	}

	return &response.AvailabilityResponse{Available: true}, nil
}

// paymentRef normalizes an optional payment reference; an empty string
// counts as absent.
func paymentRef(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}

func (s *rentalService) loadRentalForRenter(ctx context.Context, renterID, rentalID uuid.UUID) (*entity.Rental, error) {
	rental, err := s.repo.Rental.FindByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, fmt.Errorf("rental not found: %w", apperr.ErrNotFound)
	}
	if rental.RenterID != renterID {
		return nil, fmt.Errorf("rental is not yours: %w", apperr.ErrUnauthorized)
	}
	return rental, nil
}

func (s *rentalService) loadRentalWithVehicle(ctx context.Context, rentalID uuid.UUID) (*entity.Rental, *entity.Vehicle, error) {
	rental, err := s.repo.Rental.FindByID(ctx, rentalID)
	if err != nil {
		return nil, nil, err
	}
	if rental == nil {
		return nil, nil, fmt.Errorf("rental not found: %w", apperr.ErrNotFound)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, rental.VehicleID)
	if err != nil {
		return nil, nil, err
	}
	if vehicle == nil {
		return nil, nil, fmt.Errorf("vehicle not found: %w", apperr.ErrNotFound)
	}

	return rental, vehicle, nil
}

// notify writes a notification best-effort; delivery failures never
// fail the operation that triggered them.
func (s *rentalService) notify(ctx context.Context, userID uuid.UUID, t entity.NotificationType, title, message string) {
	n := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		Type:    t,
		Title:   title,
		Message: message,
	}

	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.log.Warn("Failed to write notification",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("type", string(t)),
		)
	}
}
