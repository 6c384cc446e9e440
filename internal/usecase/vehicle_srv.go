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
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type VehicleService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *request.CreateVehicleRequest) (*response.VehicleResponse, error)
	GetByID(ctx context.Context, vehicleID uuid.UUID) (*response.VehicleResponse, error)
	ListAvailable(ctx context.Context, category string, p utils.Pagination) (*utils.PaginatedResult, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, p utils.Pagination) ([]*response.VehicleResponse, error)
	Update(ctx context.Context, ownerID, vehicleID uuid.UUID, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error)
	Delete(ctx context.Context, ownerID, vehicleID uuid.UUID) error
}

type vehicleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVehicleService(repo *repository.Repository, log *zap.Logger) VehicleService {
	return &vehicleService{
		repo: repo,
		log:  log.With(zap.String("service", "vehicle")),
	}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price format: %w", apperr.ErrValidation)
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("price must be positive: %w", apperr.ErrValidation)
	}
	return price.Round(2), nil
}

func (s *vehicleService) Create(ctx context.Context, ownerID uuid.UUID, req *request.CreateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create vehicle validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), apperr.ErrValidation)
	}

	price, err := parsePrice(req.PricePerDay)
	if err != nil {
		return nil, err
	}

	owner, err := s.repo.User.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("owner not found: %w", apperr.ErrNotFound)
	}

	now := time.Now()
	vehicle := &entity.Vehicle{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:      ownerID,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		Category:     req.Category,
		Transmission: req.Transmission,
		FuelType:     req.FuelType,
		Seats:        req.Seats,
		PricePerDay:  price,
		Description:  req.Description,
		Available:    true,
	}

	if err := s.repo.Vehicle.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.log.Info("Vehicle created",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("license_plate", vehicle.LicensePlate),
	)

	return response.ToVehicleResponse(vehicle), nil
}

func (s *vehicleService) GetByID(ctx context.Context, vehicleID uuid.UUID) (*response.VehicleResponse, error) {
	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle not found: %w", apperr.ErrNotFound)
	}

	return response.ToVehicleResponse(vehicle), nil
}

func (s *vehicleService) ListAvailable(ctx context.Context, category string, p utils.Pagination) (*utils.PaginatedResult, error) {
	vehicles, err := s.repo.Vehicle.FindAvailable(ctx, category, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Vehicle.CountAvailable(ctx, category)
	if err != nil {
		return nil, err
	}

	result := utils.NewPaginatedResult(response.ToVehicleResponses(vehicles), p, total)
	return &result, nil
}

func (s *vehicleService) ListByOwner(ctx context.Context, ownerID uuid.UUID, p utils.Pagination) ([]*response.VehicleResponse, error) {
	vehicles, err := s.repo.Vehicle.FindByOwner(ctx, ownerID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	return response.ToVehicleResponses(vehicles), nil
}

func (s *vehicleService) Update(ctx context.Context, ownerID, vehicleID uuid.UUID, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), apperr.ErrValidation)
	}

	price, err := parsePrice(req.PricePerDay)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.loadOwned(ctx, ownerID, vehicleID)
	if err != nil {
		return nil, err
	}

	vehicle.Brand = req.Brand
	vehicle.Model = req.Model
	vehicle.Year = req.Year
	vehicle.LicensePlate = req.LicensePlate
	vehicle.Category = req.Category
	vehicle.Transmission = req.Transmission
	vehicle.FuelType = req.FuelType
	vehicle.Seats = req.Seats
	vehicle.PricePerDay = price
	vehicle.Description = req.Description
	vehicle.Available = req.Available
	vehicle.UpdatedAt = time.Now()

	if err := s.repo.Vehicle.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return response.ToVehicleResponse(vehicle), nil
}

func (s *vehicleService) Delete(ctx context.Context, ownerID, vehicleID uuid.UUID) error {
	vehicle, err := s.loadOwned(ctx, ownerID, vehicleID)
	if err != nil {
		return err
	}

	// A vehicle with a live reservation cannot disappear from under it.
	busy, err := s.repo.Rental.ExistsOverlapping(ctx, vehicleID, time.Now(), farFuture(), nil)
	if err != nil {
		return err
	}
	if busy {
		return fmt.Errorf("vehicle has active or upcoming rentals: %w", apperr.ErrConflict)
	}

	if err := s.repo.Vehicle.Delete(ctx, vehicleID); err != nil {
		return err
	}

	s.log.Info("Vehicle deleted",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return nil
}

func (s *vehicleService) loadOwned(ctx context.Context, ownerID, vehicleID uuid.UUID) (*entity.Vehicle, error) {
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
	return vehicle, nil
}

func farFuture() time.Time {
	return time.Now().AddDate(10, 0, 0)
}
