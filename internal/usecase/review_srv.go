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

type ReviewService interface {
	Create(ctx context.Context, reviewerID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	ListByRental(ctx context.Context, rentalID uuid.UUID) ([]*response.ReviewResponse, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) Create(ctx context.Context, reviewerID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), apperr.ErrValidation)
	}

	rentalID, err := uuid.Parse(req.RentalID)
	if err != nil {
		return nil, fmt.Errorf("invalid rental ID format: %w", apperr.ErrValidation)
	}

	rental, err := s.repo.Rental.FindByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, fmt.Errorf("rental not found: %w", apperr.ErrNotFound)
	}
	if rental.Status != entity.RentalStatusCompleted {
		return nil, fmt.Errorf("rental is not completed: %w", apperr.ErrConflict)
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, rental.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle not found: %w", apperr.ErrNotFound)
	}

	target := entity.ReviewTarget(req.Target)

	// The renter rates the vehicle; the owner rates the renter.
	switch target {
	case entity.ReviewTargetVehicle:
		if rental.RenterID != reviewerID {
			return nil, fmt.Errorf("only the renter can rate the vehicle: %w", apperr.ErrUnauthorized)
		}
	case entity.ReviewTargetRenter:
		if vehicle.OwnerID != reviewerID {
			return nil, fmt.Errorf("only the owner can rate the renter: %w", apperr.ErrUnauthorized)
		}
	}

	exists, err := s.repo.Review.ExistsByRentalAndReviewer(ctx, rentalID, reviewerID, target)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("rental already reviewed: %w", apperr.ErrConflict)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		RentalID:   rentalID,
		ReviewerID: reviewerID,
		Target:     target,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.applyRating(ctx, rental, vehicle, target, req.Rating); err != nil {
		// The review stands even when the aggregate cannot be updated.
		s.log.Error("Failed to update average rating",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
		)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("target", string(target)),
	)

	return response.ToReviewResponse(review), nil
}

// applyRating folds the new rating into the running average: the
// average moves halfway toward each new rating, so recent rentals weigh
// more than old ones.
func (s *reviewService) applyRating(ctx context.Context, rental *entity.Rental, vehicle *entity.Vehicle, target entity.ReviewTarget, rating float32) error {
	switch target {
	case entity.ReviewTargetVehicle:
		updated := rating
		if vehicle.AverageRating != nil {
			updated = (*vehicle.AverageRating + rating) / 2
		}
		return s.repo.Vehicle.UpdateRating(ctx, vehicle.ID, updated)

	case entity.ReviewTargetRenter:
		renter, err := s.repo.User.FindByID(ctx, rental.RenterID)
		if err != nil {
			return err
		}
		if renter == nil {
			return fmt.Errorf("renter not found: %w", apperr.ErrNotFound)
		}

		updated := rating
		if renter.AverageRating != nil {
			updated = (*renter.AverageRating + rating) / 2
		}
		return s.repo.User.UpdateRating(ctx, renter.ID, updated)
	}

	return nil
}

func (s *reviewService) ListByRental(ctx context.Context, rentalID uuid.UUID) ([]*response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	return response.ToReviewResponses(reviews), nil
}
