package usecase

import (
	"context"
	"fmt"
	"time"

	"vehicle-rental/internal/apperr"
	"vehicle-rental/internal/data/entity"
	"vehicle-rental/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory fakes for the repository interfaces. Embedding the interface
// makes any method a test did not expect to be called panic loudly.

type fakeUserRepo struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) IncrementReportCount(_ context.Context, id uuid.UUID) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	u.ReportCount++
	return nil
}

func (f *fakeUserRepo) SetBanned(_ context.Context, id uuid.UUID, banned bool) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	u.Banned = banned
	return nil
}

func (f *fakeUserRepo) UpdateRating(_ context.Context, id uuid.UUID, rating float32) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	u.AverageRating = &rating
	return nil
}

type fakeVehicleRepo struct {
	repository.VehicleRepository
	vehicles map[uuid.UUID]*entity.Vehicle
}

func (f *fakeVehicleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVehicleRepo) UpdateRating(_ context.Context, id uuid.UUID, rating float32) error {
	v, ok := f.vehicles[id]
	if !ok {
		return fmt.Errorf("vehicle %s not found", id.String())
	}
	v.AverageRating = &rating
	return nil
}

type fakeRentalRepo struct {
	repository.RentalRepository
	rentals map[uuid.UUID]*entity.Rental
	overlap bool
}

func (f *fakeRentalRepo) CreateBooked(_ context.Context, rental *entity.Rental) error {
	if f.overlap {
		return fmt.Errorf("window already reserved: %w", apperr.ErrConflict)
	}
	stored := *rental
	f.rentals[rental.ID] = &stored
	return nil
}

func (f *fakeRentalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Rental, error) {
	r, ok := f.rentals[id]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRentalRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.RentalStatus) (bool, error) {
	r, ok := f.rentals[id]
	if !ok || r.Status != from {
		return false, nil
	}
	r.Status = to
	return true, nil
}

func (f *fakeRentalRepo) ConfirmPaid(_ context.Context, id uuid.UUID, paymentID string) (bool, error) {
	r, ok := f.rentals[id]
	if !ok || r.Status != entity.RentalStatusPending {
		return false, nil
	}
	r.Status = entity.RentalStatusConfirmed
	r.Paid = true
	r.PaymentID = &paymentID
	return true, nil
}

func (f *fakeRentalRepo) ExtendBooked(_ context.Context, rental *entity.Rental, newUntil time.Time, newTotal decimal.Decimal, paymentID *string) error {
	if f.overlap {
		return fmt.Errorf("extension window already reserved: %w", apperr.ErrConflict)
	}
	r, ok := f.rentals[rental.ID]
	if !ok || r.Status != entity.RentalStatusActive {
		return fmt.Errorf("rental is no longer active: %w", apperr.ErrConflict)
	}
	r.ExtendedUntil = &newUntil
	r.TotalPrice = newTotal
	r.Paid = paymentID != nil
	if paymentID != nil {
		r.PaymentID = paymentID
	}
	return nil
}

func (f *fakeRentalRepo) CompleteReturn(_ context.Context, rental *entity.Rental) (bool, error) {
	r, ok := f.rentals[rental.ID]
	if !ok {
		return false, nil
	}
	if r.Status != entity.RentalStatusActive && r.Status != entity.RentalStatusConfirmed {
		return false, nil
	}
	*r = *rental
	return true, nil
}

func (f *fakeRentalRepo) MarkPaid(_ context.Context, id uuid.UUID, paymentID string) error {
	r, ok := f.rentals[id]
	if !ok {
		return fmt.Errorf("rental %s not found", id.String())
	}
	r.Paid = true
	r.PaymentID = &paymentID
	return nil
}

func (f *fakeRentalRepo) MarkRenterReported(_ context.Context, id uuid.UUID) (bool, error) {
	r, ok := f.rentals[id]
	if !ok || r.Status != entity.RentalStatusCompleted || r.RenterReported {
		return false, nil
	}
	r.RenterReported = true
	return true, nil
}

func (f *fakeRentalRepo) ExistsOverlapping(_ context.Context, _ uuid.UUID, _, _ time.Time, _ *uuid.UUID) (bool, error) {
	return f.overlap, nil
}

type fakeNotificationRepo struct {
	repository.NotificationRepository
	sent []*entity.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

type fakePaymentRepo struct {
	repository.PaymentRepository
	payments map[uuid.UUID]*entity.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	stored := *payment
	f.payments[payment.ID] = &stored
	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakePaymentRepo) FindByRental(_ context.Context, rentalID uuid.UUID) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range f.payments {
		if p.RentalID == rentalID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) MarkRefunded(_ context.Context, id uuid.UUID) (bool, error) {
	p, ok := f.payments[id]
	if !ok || p.Status != entity.PaymentStatusCompleted {
		return false, nil
	}
	p.Status = entity.PaymentStatusRefunded
	return true, nil
}

type fakeReceiptRepo struct {
	repository.ReceiptRepository
	receipts map[uuid.UUID]*entity.Receipt // keyed by payment ID
	// collisions makes the next n Create calls fail with a duplicate
	// receipt number.
	collisions int
	attempts   int
}

func (f *fakeReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	f.attempts++
	if f.collisions > 0 {
		f.collisions--
		return repository.ErrDuplicateReceiptNumber
	}
	stored := *receipt
	f.receipts[receipt.PaymentID] = &stored
	return nil
}

func (f *fakeReceiptRepo) FindByPaymentID(_ context.Context, paymentID uuid.UUID) (*entity.Receipt, error) {
	rc, ok := f.receipts[paymentID]
	if !ok {
		return nil, nil
	}
	copied := *rc
	return &copied, nil
}

func (f *fakeReceiptRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ReceiptStatus) error {
	for _, rc := range f.receipts {
		if rc.ID == id {
			rc.Status = status
			return nil
		}
	}
	return fmt.Errorf("receipt %s not found", id.String())
}

type fakeReviewRepo struct {
	repository.ReviewRepository
	reviews []*entity.Review
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	stored := *review
	f.reviews = append(f.reviews, &stored)
	return nil
}

func (f *fakeReviewRepo) FindByRental(_ context.Context, rentalID uuid.UUID) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, rv := range f.reviews {
		if rv.RentalID == rentalID {
			copied := *rv
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) ExistsByRentalAndReviewer(_ context.Context, rentalID, reviewerID uuid.UUID, target entity.ReviewTarget) (bool, error) {
	for _, rv := range f.reviews {
		if rv.RentalID == rentalID && rv.ReviewerID == reviewerID && rv.Target == target {
			return true, nil
		}
	}
	return false, nil
}

type fakePaymentMethodRepo struct {
	repository.PaymentMethodRepository
	methods map[uuid.UUID]*entity.PaymentMethod
}

func (f *fakePaymentMethodRepo) Create(_ context.Context, method *entity.PaymentMethod) error {
	stored := *method
	f.methods[method.ID] = &stored
	return nil
}

func (f *fakePaymentMethodRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	m, ok := f.methods[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (f *fakePaymentMethodRepo) SetDefault(_ context.Context, userID, methodID uuid.UUID) error {
	for _, m := range f.methods {
		if m.UserID == userID {
			m.IsDefault = m.ID == methodID
		}
	}
	return nil
}

// fakeRepos bundles all fakes behind a repository aggregate the services
// accept.
type fakeRepos struct {
	users         *fakeUserRepo
	vehicles      *fakeVehicleRepo
	rentals       *fakeRentalRepo
	payments      *fakePaymentRepo
	receipts      *fakeReceiptRepo
	methods       *fakePaymentMethodRepo
	reviews       *fakeReviewRepo
	notifications *fakeNotificationRepo
}

func newFakeRepos() *fakeRepos {
	return &fakeRepos{
		users:         &fakeUserRepo{users: map[uuid.UUID]*entity.User{}},
		vehicles:      &fakeVehicleRepo{vehicles: map[uuid.UUID]*entity.Vehicle{}},
		rentals:       &fakeRentalRepo{rentals: map[uuid.UUID]*entity.Rental{}},
		payments:      &fakePaymentRepo{payments: map[uuid.UUID]*entity.Payment{}},
		receipts:      &fakeReceiptRepo{receipts: map[uuid.UUID]*entity.Receipt{}},
		methods:       &fakePaymentMethodRepo{methods: map[uuid.UUID]*entity.PaymentMethod{}},
		reviews:       &fakeReviewRepo{},
		notifications: &fakeNotificationRepo{},
	}
}

func (f *fakeRepos) aggregate() *repository.Repository {
	return &repository.Repository{
		User:          f.users,
		Vehicle:       f.vehicles,
		Rental:        f.rentals,
		Payment:       f.payments,
		Receipt:       f.receipts,
		PaymentMethod: f.methods,
		Review:        f.reviews,
		Notification:  f.notifications,
	}
}

func strPtr(s string) *string { return &s }

func newTestRenter() *entity.User {
	return &entity.User{
		Base:              entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Email:             "renter@example.com",
		FirstName:         "Maria",
		LastName:          "Quispe",
		Role:              entity.RoleRenter,
		Enabled:           true,
		EmailVerified:     true,
		ProfilePhotoURL:   strPtr("https://cdn.example.com/profile.jpg"),
		IDCardPhotoURL:    strPtr("https://cdn.example.com/id.jpg"),
		CriminalRecordURL: strPtr("https://cdn.example.com/record.pdf"),
		DriverLicenseURL:  strPtr("https://cdn.example.com/license.jpg"),
	}
}

func newTestVehicle(ownerID uuid.UUID, pricePerDay string) *entity.Vehicle {
	return &entity.Vehicle{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		OwnerID:      ownerID,
		Brand:        "Toyota",
		Model:        "Yaris",
		Year:         2022,
		LicensePlate: "ABC-123",
		Category:     "sedan",
		Transmission: "automatic",
		FuelType:     "gasoline",
		Seats:        5,
		PricePerDay:  decimal.RequireFromString(pricePerDay),
		Available:    true,
	}
}
