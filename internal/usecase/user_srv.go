package usecase

import (
	"context"
	"fmt"
	"time"

	"vehicle-rental/internal/apperr"
	"vehicle-rental/internal/data/repository"
	"vehicle-rental/internal/dto/request"
	"vehicle-rental/internal/dto/response"
	"vehicle-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	UploadDocuments(ctx context.Context, userID uuid.UUID, req *request.UploadDocumentsRequest) (*response.UserResponse, error)

	ListNotifications(ctx context.Context, userID uuid.UUID, p utils.Pagination) ([]*response.NotificationResponse, error)
	CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) error

	// Admin operations
	ListUsers(ctx context.Context, p utils.Pagination) (*utils.PaginatedResult, error)
	SetBanned(ctx context.Context, userID uuid.UUID, banned bool) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found: %w", apperr.ErrNotFound)
	}

	return response.ToUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), apperr.ErrValidation)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found: %w", apperr.ErrNotFound)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Phone = req.Phone
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}

	return response.ToUserResponse(user), nil
}

// UploadDocuments records the verification documents. Only the provided
// URLs change; existing documents stay in place.
func (s *userService) UploadDocuments(ctx context.Context, userID uuid.UUID, req *request.UploadDocumentsRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), apperr.ErrValidation)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found: %w", apperr.ErrNotFound)
	}

	if req.ProfilePhotoURL != nil {
		user.ProfilePhotoURL = req.ProfilePhotoURL
	}
	if req.IDCardPhotoURL != nil {
		user.IDCardPhotoURL = req.IDCardPhotoURL
	}
	if req.CriminalRecordURL != nil {
		user.CriminalRecordURL = req.CriminalRecordURL
	}
	if req.DriverLicenseURL != nil {
		user.DriverLicenseURL = req.DriverLicenseURL
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User documents updated", zap.String("user_id", userID.String()))

	return response.ToUserResponse(user), nil
}

func (s *userService) ListNotifications(ctx context.Context, userID uuid.UUID, p utils.Pagination) ([]*response.NotificationResponse, error) {
	notifications, err := s.repo.Notification.FindByUser(ctx, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	return response.ToNotificationResponses(notifications), nil
}

func (s *userService) CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.Notification.CountUnread(ctx, userID)
}

func (s *userService) MarkNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.repo.Notification.MarkRead(ctx, notificationID, userID); err != nil {
		return fmt.Errorf("notification not found: %w", apperr.ErrNotFound)
	}
	return nil
}

func (s *userService) ListUsers(ctx context.Context, p utils.Pagination) (*utils.PaginatedResult, error) {
	users, err := s.repo.User.FindAll(ctx, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*response.UserResponse, len(users))
	for i, u := range users {
		responses[i] = response.ToUserResponse(u)
	}

	result := utils.NewPaginatedResult(responses, p, total)
	return &result, nil
}

func (s *userService) SetBanned(ctx context.Context, userID uuid.UUID, banned bool) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found: %w", apperr.ErrNotFound)
	}

	if err := s.repo.User.SetBanned(ctx, userID, banned); err != nil {
		return err
	}

	s.log.Info("User ban flag changed",
		zap.String("user_id", userID.String()),
		zap.Bool("banned", banned),
	)
	return nil
}
