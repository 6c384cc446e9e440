package usecase

import (
	"context"
	"testing"
	"time"

	"vehicle-rental/internal/apperr"
	"vehicle-rental/internal/data/entity"
	"vehicle-rental/internal/dto/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reviewFixture struct {
	repos   *fakeRepos
	service ReviewService
	renter  *entity.User
	ownerID uuid.UUID
	vehicle *entity.Vehicle
	rental  *entity.Rental
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	repos := newFakeRepos()
	renter := newTestRenter()
	ownerID := uuid.New()
	vehicle := newTestVehicle(ownerID, "50")

	rental := &entity.Rental{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		VehicleID:     vehicle.ID,
		RenterID:      renter.ID,
		StartDateTime: time.Now().Add(-72 * time.Hour),
		EndDateTime:   time.Now().Add(-24 * time.Hour),
		TotalPrice:    decimal.RequireFromString("100"),
		Status:        entity.RentalStatusCompleted,
	}

	repos.users.users[renter.ID] = renter
	repos.vehicles.vehicles[vehicle.ID] = vehicle
	repos.rentals.rentals[rental.ID] = rental

	return &reviewFixture{
		repos:   repos,
		service: NewReviewService(repos.aggregate(), zap.NewNop()),
		renter:  renter,
		ownerID: ownerID,
		vehicle: vehicle,
		rental:  rental,
	}
}

func TestReviewCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("renter rates the vehicle", func(t *testing.T) {
		fx := newReviewFixture(t)

		resp, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateReviewRequest{
			RentalID: fx.rental.ID.String(),
			Target:   string(entity.ReviewTargetVehicle),
			Rating:   5,
			Comment:  strPtr("spotless car"),
		})
		require.NoError(t, err)
		require.NotNil(t, resp)

		// First rating seeds the average directly
		require.NotNil(t, fx.vehicle.AverageRating)
		assert.InDelta(t, 5.0, float64(*fx.vehicle.AverageRating), 0.001)
	})

	t.Run("new rating moves the average halfway", func(t *testing.T) {
		fx := newReviewFixture(t)
		fx.vehicle.AverageRating = f32Ptr(4.0)

		_, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateReviewRequest{
			RentalID: fx.rental.ID.String(),
			Target:   string(entity.ReviewTargetVehicle),
			Rating:   5,
		})
		require.NoError(t, err)

		require.NotNil(t, fx.vehicle.AverageRating)
		assert.InDelta(t, 4.5, float64(*fx.vehicle.AverageRating), 0.001)
	})

	t.Run("owner rates the renter", func(t *testing.T) {
		fx := newReviewFixture(t)
		fx.renter.AverageRating = f32Ptr(4.0)

		_, err := fx.service.Create(ctx, fx.ownerID, &request.CreateReviewRequest{
			RentalID: fx.rental.ID.String(),
			Target:   string(entity.ReviewTargetRenter),
			Rating:   3,
		})
		require.NoError(t, err)

		require.NotNil(t, fx.renter.AverageRating)
		assert.InDelta(t, 3.5, float64(*fx.renter.AverageRating), 0.001)
	})

	t.Run("only the renter rates the vehicle", func(t *testing.T) {
		fx := newReviewFixture(t)

		_, err := fx.service.Create(ctx, fx.ownerID, &request.CreateReviewRequest{
			RentalID: fx.rental.ID.String(),
			Target:   string(entity.ReviewTargetVehicle),
			Rating:   1,
		})
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("only the owner rates the renter", func(t *testing.T) {
		fx := newReviewFixture(t)

		_, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateReviewRequest{
			RentalID: fx.rental.ID.String(),
			Target:   string(entity.ReviewTargetRenter),
			Rating:   1,
		})
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("unfinished rental cannot be reviewed", func(t *testing.T) {
		fx := newReviewFixture(t)
		fx.rental.Status = entity.RentalStatusActive

		_, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateReviewRequest{
			RentalID: fx.rental.ID.String(),
			Target:   string(entity.ReviewTargetVehicle),
			Rating:   4,
		})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("one review per reviewer per rental", func(t *testing.T) {
		fx := newReviewFixture(t)

		_, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateReviewRequest{
			RentalID: fx.rental.ID.String(),
			Target:   string(entity.ReviewTargetVehicle),
			Rating:   4,
		})
		require.NoError(t, err)

		_, err = fx.service.Create(ctx, fx.renter.ID, &request.CreateReviewRequest{
			RentalID: fx.rental.ID.String(),
			Target:   string(entity.ReviewTargetVehicle),
			Rating:   2,
		})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("rating out of range fails validation", func(t *testing.T) {
		fx := newReviewFixture(t)

		_, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateReviewRequest{
			RentalID: fx.rental.ID.String(),
			Target:   string(entity.ReviewTargetVehicle),
			Rating:   6,
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestReviewListByRental(t *testing.T) {
	fx := newReviewFixture(t)
	ctx := context.Background()

	_, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateReviewRequest{
		RentalID: fx.rental.ID.String(),
		Target:   string(entity.ReviewTargetVehicle),
		Rating:   5,
	})
	require.NoError(t, err)

	_, err = fx.service.Create(ctx, fx.ownerID, &request.CreateReviewRequest{
		RentalID: fx.rental.ID.String(),
		Target:   string(entity.ReviewTargetRenter),
		Rating:   4,
	})
	require.NoError(t, err)

	reviews, err := fx.service.ListByRental(ctx, fx.rental.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}
