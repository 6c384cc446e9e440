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

func f32Ptr(v float32) *float32 { return &v }

// bookingFixture seeds a renter, an owner's vehicle and a rental service
// wired to in-memory fakes.
type bookingFixture struct {
	repos   *fakeRepos
	service RentalService
	renter  *entity.User
	ownerID uuid.UUID
	vehicle *entity.Vehicle
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	repos := newFakeRepos()
	renter := newTestRenter()
	ownerID := uuid.New()
	vehicle := newTestVehicle(ownerID, "50")

	repos.users.users[renter.ID] = renter
	repos.vehicles.vehicles[vehicle.ID] = vehicle

	return &bookingFixture{
		repos:   repos,
		service: NewRentalService(repos.aggregate(), zap.NewNop()),
		renter:  renter,
		ownerID: ownerID,
		vehicle: vehicle,
	}
}

func (fx *bookingFixture) seedRental(status entity.RentalStatus, start, end time.Time) *entity.Rental {
	rental := &entity.Rental{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		VehicleID:       fx.vehicle.ID,
		RenterID:        fx.renter.ID,
		StartDateTime:   start,
		EndDateTime:     end,
		TotalPrice:      decimal.RequireFromString("100"),
		SecurityDeposit: decimal.RequireFromString("30"),
		Status:          status,
	}
	fx.repos.rentals.rentals[rental.ID] = rental
	return rental
}

func TestRentalCreate(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(time.Hour)
	end := start.Add(48 * time.Hour)

	t.Run("happy path books two days at list price", func(t *testing.T) {
		fx := newBookingFixture(t)

		resp, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateRentalRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: start,
			EndDateTime:   end,
		})
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, string(entity.RentalStatusPending), resp.Status)
		assert.Equal(t, "100.00", resp.TotalPrice.StringFixed(2))
		assert.Equal(t, "30.00", resp.SecurityDeposit.StringFixed(2))
		assert.False(t, resp.DiscountApplied)
		assert.False(t, resp.Paid)

		// The owner hears about the request
		require.Len(t, fx.repos.notifications.sent, 1)
		assert.Equal(t, fx.ownerID, fx.repos.notifications.sent[0].UserID)
	})

	t.Run("loyalty discount applies once at booking", func(t *testing.T) {
		fx := newBookingFixture(t)
		fx.renter.AverageRating = f32Ptr(4.8)

		resp, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateRentalRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: start,
			EndDateTime:   end,
		})
		require.NoError(t, err)

		assert.True(t, resp.DiscountApplied)
		assert.Equal(t, "90.00", resp.TotalPrice.StringFixed(2))
		require.NotNil(t, resp.DiscountAmount)
		assert.Equal(t, "10.00", resp.DiscountAmount.StringFixed(2))
		// Deposit follows the discounted total
		assert.Equal(t, "27.00", resp.SecurityDeposit.StringFixed(2))
	})

	t.Run("reported renter loses the discount", func(t *testing.T) {
		fx := newBookingFixture(t)
		fx.renter.AverageRating = f32Ptr(4.9)
		fx.renter.ReportCount = 1

		resp, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateRentalRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: start,
			EndDateTime:   end,
		})
		require.NoError(t, err)
		assert.False(t, resp.DiscountApplied)
		assert.Equal(t, "100.00", resp.TotalPrice.StringFixed(2))
	})

	t.Run("banned renter is rejected", func(t *testing.T) {
		fx := newBookingFixture(t)
		fx.renter.Banned = true

		_, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateRentalRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: start,
			EndDateTime:   end,
		})
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("renter without documents is rejected", func(t *testing.T) {
		fx := newBookingFixture(t)
		fx.renter.DriverLicenseURL = nil

		_, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateRentalRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: start,
			EndDateTime:   end,
		})
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("owners cannot rent their own vehicle", func(t *testing.T) {
		fx := newBookingFixture(t)
		fx.vehicle.OwnerID = fx.renter.ID

		_, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateRentalRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: start,
			EndDateTime:   end,
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("start in the past is rejected", func(t *testing.T) {
		fx := newBookingFixture(t)

		_, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateRentalRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: time.Now().Add(-time.Hour),
			EndDateTime:   end,
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("overlapping window is rejected", func(t *testing.T) {
		fx := newBookingFixture(t)
		fx.repos.rentals.overlap = true

		_, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateRentalRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: start,
			EndDateTime:   end,
		})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("vehicle in cool-down is rejected", func(t *testing.T) {
		fx := newBookingFixture(t)
		ended := time.Now().Add(-2 * time.Hour)
		fx.vehicle.LastRentalEnd = &ended

		_, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateRentalRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: start,
			EndDateTime:   end,
		})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("upfront payment reference skips the pending step", func(t *testing.T) {
		fx := newBookingFixture(t)

		resp, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateRentalRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: start,
			EndDateTime:   end,
			PaymentID:     strPtr("pi_7f3e"),
		})
		require.NoError(t, err)

		assert.Equal(t, string(entity.RentalStatusConfirmed), resp.Status)
		assert.True(t, resp.Paid)

		stored := fx.repos.rentals.rentals[uuid.MustParse(resp.ID)]
		require.NotNil(t, stored)
		assert.Equal(t, entity.RentalStatusConfirmed, stored.Status)
		assert.True(t, stored.Paid)
		require.NotNil(t, stored.PaymentID)
		assert.Equal(t, "pi_7f3e", *stored.PaymentID)
	})

	t.Run("empty payment reference still books pending", func(t *testing.T) {
		fx := newBookingFixture(t)

		resp, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateRentalRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: start,
			EndDateTime:   end,
			PaymentID:     strPtr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, string(entity.RentalStatusPending), resp.Status)
		assert.False(t, resp.Paid)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		fx := newBookingFixture(t)

		_, err := fx.service.Create(ctx, fx.renter.ID, &request.CreateRentalRequest{
			VehicleID:     uuid.NewString(),
			StartDateTime: start,
			EndDateTime:   end,
		})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestRentalConfirm(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(time.Hour)
	end := start.Add(24 * time.Hour)

	t.Run("renter confirms with a payment reference", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusPending, start, end)

		resp, err := fx.service.Confirm(ctx, fx.renter.ID, rental.ID, &request.ConfirmRentalRequest{
			PaymentID: "pi_9a41",
		})
		require.NoError(t, err)

		assert.Equal(t, string(entity.RentalStatusConfirmed), resp.Status)
		assert.True(t, resp.Paid)

		stored := fx.repos.rentals.rentals[rental.ID]
		assert.Equal(t, entity.RentalStatusConfirmed, stored.Status)
		assert.True(t, stored.Paid)
		require.NotNil(t, stored.PaymentID)
		assert.Equal(t, "pi_9a41", *stored.PaymentID)
	})

	t.Run("only the renter may confirm", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusPending, start, end)

		_, err := fx.service.Confirm(ctx, fx.ownerID, rental.ID, &request.ConfirmRentalRequest{
			PaymentID: "pi_9a41",
		})
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
		assert.Equal(t, entity.RentalStatusPending, fx.repos.rentals.rentals[rental.ID].Status)
	})

	t.Run("payment reference is required", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusPending, start, end)

		_, err := fx.service.Confirm(ctx, fx.renter.ID, rental.ID, &request.ConfirmRentalRequest{})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("confirming twice conflicts", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusConfirmed, start, end)

		_, err := fx.service.Confirm(ctx, fx.renter.ID, rental.ID, &request.ConfirmRentalRequest{
			PaymentID: "pi_9a41",
		})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestRentalStart(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(-time.Hour)
	end := start.Add(48 * time.Hour)

	t.Run("paid and confirmed goes active", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusConfirmed, start, end)
		rental.Paid = true

		resp, err := fx.service.Start(ctx, fx.renter.ID, rental.ID)
		require.NoError(t, err)
		assert.Equal(t, string(entity.RentalStatusActive), resp.Status)
	})

	t.Run("unpaid rental cannot start", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusConfirmed, start, end)

		_, err := fx.service.Start(ctx, fx.renter.ID, rental.ID)
		assert.ErrorIs(t, err, apperr.ErrPayment)
	})

	t.Run("pending rental cannot start", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusPending, start, end)
		rental.Paid = true

		_, err := fx.service.Start(ctx, fx.renter.ID, rental.ID)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("someone else's rental", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusConfirmed, start, end)
		rental.Paid = true

		_, err := fx.service.Start(ctx, uuid.New(), rental.ID)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})
}

func TestRentalExtend(t *testing.T) {
	ctx := context.Background()

	t.Run("active rental extends at list rate", func(t *testing.T) {
		fx := newBookingFixture(t)
		start := time.Now().Add(-time.Hour)
		end := time.Now().Add(23 * time.Hour)
		rental := fx.seedRental(entity.RentalStatusActive, start, end)

		newEnd := end.Add(24 * time.Hour)
		resp, err := fx.service.Extend(ctx, fx.renter.ID, rental.ID, &request.ExtendRentalRequest{
			NewEndDateTime: newEnd,
		})
		require.NoError(t, err)

		require.NotNil(t, resp.ExtendedUntil)
		assert.True(t, resp.ExtendedUntil.Equal(newEnd))
		// One extra day at 50/day on top of the original 100
		assert.Equal(t, "150.00", resp.TotalPrice.StringFixed(2))
	})

	t.Run("extension without payment becomes a receivable", func(t *testing.T) {
		fx := newBookingFixture(t)
		start := time.Now().Add(-time.Hour)
		end := time.Now().Add(23 * time.Hour)
		rental := fx.seedRental(entity.RentalStatusActive, start, end)
		rental.Paid = true

		resp, err := fx.service.Extend(ctx, fx.renter.ID, rental.ID, &request.ExtendRentalRequest{
			NewEndDateTime: end.Add(24 * time.Hour),
		})
		require.NoError(t, err)

		// The added day is owed, so the rental is no longer settled
		assert.False(t, resp.Paid)
		assert.False(t, fx.repos.rentals.rentals[rental.ID].Paid)
	})

	t.Run("extension with a payment reference stays settled", func(t *testing.T) {
		fx := newBookingFixture(t)
		start := time.Now().Add(-time.Hour)
		end := time.Now().Add(23 * time.Hour)
		rental := fx.seedRental(entity.RentalStatusActive, start, end)
		rental.Paid = true

		resp, err := fx.service.Extend(ctx, fx.renter.ID, rental.ID, &request.ExtendRentalRequest{
			NewEndDateTime: end.Add(24 * time.Hour),
			PaymentID:      strPtr("pi_ext_01"),
		})
		require.NoError(t, err)

		assert.True(t, resp.Paid)
		stored := fx.repos.rentals.rentals[rental.ID]
		assert.True(t, stored.Paid)
		require.NotNil(t, stored.PaymentID)
		assert.Equal(t, "pi_ext_01", *stored.PaymentID)
	})

	t.Run("withdrawn vehicle cannot be extended", func(t *testing.T) {
		fx := newBookingFixture(t)
		start := time.Now().Add(-time.Hour)
		end := time.Now().Add(23 * time.Hour)
		rental := fx.seedRental(entity.RentalStatusActive, start, end)
		fx.vehicle.Available = false

		_, err := fx.service.Extend(ctx, fx.renter.ID, rental.ID, &request.ExtendRentalRequest{
			NewEndDateTime: end.Add(24 * time.Hour),
		})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("only an in-progress rental extends", func(t *testing.T) {
		fx := newBookingFixture(t)
		start := time.Now().Add(time.Hour)
		end := start.Add(24 * time.Hour)
		rental := fx.seedRental(entity.RentalStatusConfirmed, start, end)

		_, err := fx.service.Extend(ctx, fx.renter.ID, rental.ID, &request.ExtendRentalRequest{
			NewEndDateTime: end.Add(24 * time.Hour),
		})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("new end must move the reservation forward", func(t *testing.T) {
		fx := newBookingFixture(t)
		start := time.Now().Add(-time.Hour)
		end := time.Now().Add(23 * time.Hour)
		rental := fx.seedRental(entity.RentalStatusActive, start, end)

		_, err := fx.service.Extend(ctx, fx.renter.ID, rental.ID, &request.ExtendRentalRequest{
			NewEndDateTime: end.Add(-time.Hour),
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("blocked by the next reservation", func(t *testing.T) {
		fx := newBookingFixture(t)
		start := time.Now().Add(-time.Hour)
		end := time.Now().Add(23 * time.Hour)
		rental := fx.seedRental(entity.RentalStatusActive, start, end)
		fx.repos.rentals.overlap = true

		_, err := fx.service.Extend(ctx, fx.renter.ID, rental.ID, &request.ExtendRentalRequest{
			NewEndDateTime: end.Add(24 * time.Hour),
		})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestRentalReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("on-time return settles without fee", func(t *testing.T) {
		fx := newBookingFixture(t)
		start := time.Now().Add(-24 * time.Hour)
		end := time.Now().Add(2 * time.Hour)
		rental := fx.seedRental(entity.RentalStatusActive, start, end)

		resp, err := fx.service.Return(ctx, fx.renter.ID, rental.ID)
		require.NoError(t, err)

		assert.Equal(t, string(entity.RentalStatusCompleted), resp.Rental.Status)
		assert.False(t, resp.Rental.LateReturn)
		assert.Nil(t, resp.Rental.LateReturnFee)
		assert.Equal(t, "100.00", resp.Rental.TotalPrice.StringFixed(2))
		assert.False(t, resp.RenterBanned)
		assert.Zero(t, fx.repos.users.users[fx.renter.ID].ReportCount)
	})

	t.Run("late return adds the fee and bans the renter", func(t *testing.T) {
		fx := newBookingFixture(t)
		start := time.Now().Add(-48 * time.Hour)
		end := time.Now().Add(-time.Hour)
		rental := fx.seedRental(entity.RentalStatusActive, start, end)

		resp, err := fx.service.Return(ctx, fx.renter.ID, rental.ID)
		require.NoError(t, err)

		assert.True(t, resp.Rental.LateReturn)
		require.NotNil(t, resp.Rental.LateReturnFee)
		assert.Equal(t, "15.00", resp.Rental.LateReturnFee.StringFixed(2))
		assert.Equal(t, "115.00", resp.Rental.TotalPrice.StringFixed(2))

		assert.True(t, resp.RenterBanned)
		assert.True(t, fx.repos.users.users[fx.renter.ID].Banned)
		// The ban is not a complaint; the renter's report tally stays put
		assert.Zero(t, fx.repos.users.users[fx.renter.ID].ReportCount)
	})

	t.Run("past the grace window by a minute is late", func(t *testing.T) {
		fx := newBookingFixture(t)
		start := time.Now().Add(-24 * time.Hour)
		end := time.Now().Add(-31 * time.Minute)
		rental := fx.seedRental(entity.RentalStatusActive, start, end)

		resp, err := fx.service.Return(ctx, fx.renter.ID, rental.ID)
		require.NoError(t, err)
		assert.True(t, resp.Rental.LateReturn)
		assert.True(t, resp.RenterBanned)
	})

	t.Run("inside the grace window is not late", func(t *testing.T) {
		fx := newBookingFixture(t)
		start := time.Now().Add(-24 * time.Hour)
		end := time.Now().Add(-20 * time.Minute)
		rental := fx.seedRental(entity.RentalStatusActive, start, end)

		resp, err := fx.service.Return(ctx, fx.renter.ID, rental.ID)
		require.NoError(t, err)
		assert.False(t, resp.Rental.LateReturn)
	})

	t.Run("confirmed but never started can still be returned", func(t *testing.T) {
		fx := newBookingFixture(t)
		start := time.Now().Add(-24 * time.Hour)
		end := time.Now().Add(2 * time.Hour)
		rental := fx.seedRental(entity.RentalStatusConfirmed, start, end)

		resp, err := fx.service.Return(ctx, fx.renter.ID, rental.ID)
		require.NoError(t, err)
		assert.Equal(t, string(entity.RentalStatusCompleted), resp.Rental.Status)
	})

	t.Run("completed rental cannot be returned again", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusCompleted,
			time.Now().Add(-72*time.Hour), time.Now().Add(-24*time.Hour))

		_, err := fx.service.Return(ctx, fx.renter.ID, rental.ID)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestRentalReport(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(-72 * time.Hour)
	end := time.Now().Add(-24 * time.Hour)

	t.Run("owner reports the renter of a completed rental", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusCompleted, start, end)

		err := fx.service.Report(ctx, fx.ownerID, rental.ID)
		require.NoError(t, err)

		assert.True(t, fx.repos.rentals.rentals[rental.ID].RenterReported)
		assert.Equal(t, 1, fx.repos.users.users[fx.renter.ID].ReportCount)
	})

	t.Run("one report per rental", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusCompleted, start, end)

		require.NoError(t, fx.service.Report(ctx, fx.ownerID, rental.ID))
		err := fx.service.Report(ctx, fx.ownerID, rental.ID)
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, 1, fx.repos.users.users[fx.renter.ID].ReportCount)
	})

	t.Run("unfinished rental cannot be reported", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusActive, start, end)

		err := fx.service.Report(ctx, fx.ownerID, rental.ID)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("only the vehicle owner may report", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusCompleted, start, end)

		err := fx.service.Report(ctx, fx.renter.ID, rental.ID)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})
}

func TestRentalCancel(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(time.Hour)
	end := start.Add(24 * time.Hour)

	t.Run("renter cancels a pending rental", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusPending, start, end)

		resp, err := fx.service.Cancel(ctx, fx.renter.ID, rental.ID)
		require.NoError(t, err)
		assert.Equal(t, string(entity.RentalStatusCancelled), resp.Status)
	})

	t.Run("owner cancels a confirmed rental", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusConfirmed, start, end)

		resp, err := fx.service.Cancel(ctx, fx.ownerID, rental.ID)
		require.NoError(t, err)
		assert.Equal(t, string(entity.RentalStatusCancelled), resp.Status)
	})

	t.Run("active rental cannot be cancelled", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusActive, start, end)

		_, err := fx.service.Cancel(ctx, fx.renter.ID, rental.ID)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("strangers cannot cancel", func(t *testing.T) {
		fx := newBookingFixture(t)
		rental := fx.seedRental(entity.RentalStatusPending, start, end)

		_, err := fx.service.Cancel(ctx, uuid.New(), rental.ID)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(time.Hour)
	end := start.Add(24 * time.Hour)

	t.Run("free window is available", func(t *testing.T) {
		fx := newBookingFixture(t)

		resp, err := fx.service.CheckAvailability(ctx, &request.CheckAvailabilityRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: start,
			EndDateTime:   end,
		})
		require.NoError(t, err)
		assert.True(t, resp.Available)
		assert.Empty(t, resp.Reason)
	})

	t.Run("reserved window reports unavailable with a reason", func(t *testing.T) {
		fx := newBookingFixture(t)
		fx.repos.rentals.overlap = true

		resp, err := fx.service.CheckAvailability(ctx, &request.CheckAvailabilityRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: start,
			EndDateTime:   end,
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.NotEmpty(t, resp.Reason)
	})

	t.Run("bad window is a soft no, not an error", func(t *testing.T) {
		fx := newBookingFixture(t)

		resp, err := fx.service.CheckAvailability(ctx, &request.CheckAvailabilityRequest{
			VehicleID:     fx.vehicle.ID.String(),
			StartDateTime: end,
			EndDateTime:   start,
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
	})

	t.Run("unknown vehicle is an error", func(t *testing.T) {
		fx := newBookingFixture(t)

		_, err := fx.service.CheckAvailability(ctx, &request.CheckAvailabilityRequest{
			VehicleID:     uuid.NewString(),
			StartDateTime: start,
			EndDateTime:   end,
		})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
