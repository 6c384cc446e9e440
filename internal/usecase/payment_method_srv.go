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
	"vehicle-rental/pkg/vault"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentMethodService interface {
	Create(ctx context.Context, userID uuid.UUID, req *request.CreatePaymentMethodRequest) (*response.PaymentMethodResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]*response.PaymentMethodResponse, error)
	Update(ctx context.Context, userID, methodID uuid.UUID, req *request.UpdatePaymentMethodRequest) (*response.PaymentMethodResponse, error)
	SetDefault(ctx context.Context, userID, methodID uuid.UUID) error
	Delete(ctx context.Context, userID, methodID uuid.UUID) error

	// Reveal decrypts the stored card data for the owning user. The
	// simulated gateway calls this when forming a charge; it is never
	// exposed over HTTP.
	Reveal(ctx context.Context, userID, methodID uuid.UUID) (cardNumber, expiryDate string, err error)
}

type paymentMethodService struct {
	repo  *repository.Repository
	vault *vault.Vault
	log   *zap.Logger
}

func NewPaymentMethodService(repo *repository.Repository, v *vault.Vault, log *zap.Logger) PaymentMethodService {
	return &paymentMethodService{
		repo:  repo,
		vault: v,
		log:   log.With(zap.String("service", "payment_method")),
	}
}

func (s *paymentMethodService) Create(ctx context.Context, userID uuid.UUID, req *request.CreatePaymentMethodRequest) (*response.PaymentMethodResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		// Field names only; never the card values.
		s.log.Warn("Create payment method validation failed", zap.Any("fields", fieldNames(errs)))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), apperr.ErrValidation)
	}

	methodType := entity.PaymentMethodType(req.Type)
	now := time.Now()

	method := &entity.PaymentMethod{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:   userID,
		Type:     methodType,
		Provider: req.Provider,
		Alias:    req.Alias,
	}

	switch methodType {
	case entity.PaymentMethodCreditCard, entity.PaymentMethodDebitCard:
		if req.CardNumber == nil || req.ExpiryDate == nil {
			return nil, fmt.Errorf("card number and expiry date are required: %w", apperr.ErrValidation)
		}

		encNumber, err := s.vault.Encrypt(*req.CardNumber)
		if err != nil {
			return nil, err
		}
		encExpiry, err := s.vault.Encrypt(*req.ExpiryDate)
		if err != nil {
			return nil, err
		}

		masked := vault.MaskCard(*req.CardNumber)
		method.EncryptedCardNumber = &encNumber
		method.EncryptedExpiryDate = &encExpiry
		method.MaskedCardNumber = &masked

	case entity.PaymentMethodPayPal:
		if req.PaypalEmail == nil || *req.PaypalEmail == "" {
			return nil, fmt.Errorf("paypal email is required: %w", apperr.ErrValidation)
		}
		method.PaypalEmail = req.PaypalEmail
	}

	if err := s.repo.PaymentMethod.Create(ctx, method); err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := s.repo.PaymentMethod.SetDefault(ctx, userID, method.ID); err != nil {
			s.log.Error("Failed to set default payment method", zap.Error(err))
		} else {
			method.IsDefault = true
		}
	}

	s.log.Info("Payment method created",
		zap.String("payment_method_id", method.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("type", string(methodType)),
	)

	return response.ToPaymentMethodResponse(method), nil
}

func (s *paymentMethodService) List(ctx context.Context, userID uuid.UUID) ([]*response.PaymentMethodResponse, error) {
	methods, err := s.repo.PaymentMethod.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return response.ToPaymentMethodResponses(methods), nil
}

func (s *paymentMethodService) Update(ctx context.Context, userID, methodID uuid.UUID, req *request.UpdatePaymentMethodRequest) (*response.PaymentMethodResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), apperr.ErrValidation)
	}

	method, err := s.loadOwned(ctx, userID, methodID)
	if err != nil {
		return nil, err
	}

	method.Provider = req.Provider
	method.Alias = req.Alias
	method.UpdatedAt = time.Now()

	if err := s.repo.PaymentMethod.Update(ctx, method); err != nil {
		return nil, err
	}

	return response.ToPaymentMethodResponse(method), nil
}

func (s *paymentMethodService) SetDefault(ctx context.Context, userID, methodID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, methodID); err != nil {
		return err
	}

	return s.repo.PaymentMethod.SetDefault(ctx, userID, methodID)
}

func (s *paymentMethodService) Delete(ctx context.Context, userID, methodID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, methodID); err != nil {
		return err
	}

	return s.repo.PaymentMethod.Delete(ctx, methodID)
}

func (s *paymentMethodService) Reveal(ctx context.Context, userID, methodID uuid.UUID) (string, string, error) {
	method, err := s.loadOwned(ctx, userID, methodID)
	if err != nil {
		return "", "", err
	}
	if !method.IsCard() || method.EncryptedCardNumber == nil || method.EncryptedExpiryDate == nil {
		return "", "", fmt.Errorf("method has no stored card: %w", apperr.ErrValidation)
	}

	cardNumber, err := s.vault.Decrypt(*method.EncryptedCardNumber)
	if err != nil {
		return "", "", err
	}
	expiryDate, err := s.vault.Decrypt(*method.EncryptedExpiryDate)
	if err != nil {
		return "", "", err
	}

	return cardNumber, expiryDate, nil
}

func (s *paymentMethodService) loadOwned(ctx context.Context, userID, methodID uuid.UUID) (*entity.PaymentMethod, error) {
	method, err := s.repo.PaymentMethod.FindByID(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, fmt.Errorf("payment method not found: %w", apperr.ErrNotFound)
	}
	if method.UserID != userID {
		return nil, fmt.Errorf("payment method is not yours: %w", apperr.ErrUnauthorized)
	}
	return method, nil
}

func fieldNames(errs map[string]string) []string {
	names := make([]string, 0, len(errs))
	for field := range errs {
		names = append(names, field)
	}
	return names
}
