package usecase

import (
	"context"
	"errors"
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

// receiptNumberRetries bounds how often a colliding receipt number is
// regenerated before giving up.
const receiptNumberRetries = 5

type PaymentService interface {
	ProcessPayment(ctx context.Context, payerID uuid.UUID, req *request.ProcessPaymentRequest) (*response.PaymentResponse, error)
	Refund(ctx context.Context, userID uuid.UUID, req *request.RefundPaymentRequest) (*response.PaymentResponse, error)
	GetByID(ctx context.Context, userID, paymentID uuid.UUID) (*response.PaymentResponse, error)
	ListByRental(ctx context.Context, userID, rentalID uuid.UUID) ([]*response.PaymentResponse, error)
	ListByPayer(ctx context.Context, payerID uuid.UUID, p utils.Pagination) (*utils.PaginatedResult, error)

	GetReceipt(ctx context.Context, userID, paymentID uuid.UUID) (*response.ReceiptResponse, error)
	ListReceipts(ctx context.Context, renterID uuid.UUID, p utils.Pagination) (*utils.PaginatedResult, error)
}

type paymentService struct {
	repo     *repository.Repository
	pricing  PricingEngine
	currency string
	log      *zap.Logger
}

func NewPaymentService(repo *repository.Repository, config *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:     repo,
		pricing:  NewPricingEngine(),
		currency: config.App.Currency,
		log:      log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) ProcessPayment(ctx context.Context, payerID uuid.UUID, req *request.ProcessPaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Process payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), apperr.ErrValidation)
	}

	rentalID, err := uuid.Parse(req.RentalID)
	if err != nil {
		return nil, fmt.Errorf("invalid rental ID format: %w", apperr.ErrValidation)
	}
	methodID, err := uuid.Parse(req.PaymentMethodID)
	if err != nil {
		return nil, fmt.Errorf("invalid payment method ID format: %w", apperr.ErrValidation)
	}

	rental, err := s.repo.Rental.FindByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, fmt.Errorf("rental not found: %w", apperr.ErrNotFound)
	}
	if rental.RenterID != payerID {
		return nil, fmt.Errorf("rental is not yours: %w", apperr.ErrUnauthorized)
	}
	if rental.Status == entity.RentalStatusCancelled {
		return nil, fmt.Errorf("rental is cancelled: %w", apperr.ErrConflict)
	}

	method, err := s.repo.PaymentMethod.FindByID(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method == nil || method.UserID != payerID {
		return nil, fmt.Errorf("invalid payment method: %w", apperr.ErrPayment)
	}
	if err := validateMethod(method); err != nil {
		return nil, err
	}

	paymentType := entity.PaymentType(req.Type)
	amount, err := s.amountDue(ctx, rental, paymentType)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		ExternalID:      utils.GenerateExternalPaymentID(now),
		RentalID:        rentalID,
		PayerID:         payerID,
		PaymentMethodID: methodID,
		Amount:          amount,
		Currency:        s.currency,
		Status:          entity.PaymentStatusCompleted,
		Type:            paymentType,
		PaymentDate:     now,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		return nil, err
	}

	if paymentType == entity.PaymentTypeRental {
		if err := s.repo.Rental.MarkPaid(ctx, rentalID, payment.ID.String()); err != nil {
			s.log.Error("Failed to mark rental paid",
				zap.Error(err),
				zap.String("rental_id", rentalID.String()),
			)
			return nil, err
		}

		if err := s.generateReceipt(ctx, payment, rental); err != nil {
			// The payment settled; receipt generation failing must not
			// undo it.
			s.log.Error("Failed to generate receipt",
				zap.Error(err),
				zap.String("payment_id", payment.ID.String()),
			)
		}
	}

	if vehicle, verr := s.repo.Vehicle.FindByID(ctx, rental.VehicleID); verr == nil && vehicle != nil {
		s.notifyPaymentReceived(ctx, vehicle.OwnerID, payment)
	}

	s.log.Info("Payment processed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("external_id", payment.ExternalID),
		zap.String("rental_id", rentalID.String()),
		zap.String("type", string(paymentType)),
		zap.String("amount", amount.String()),
	)

	return response.ToPaymentResponse(payment), nil
}

func (s *paymentService) notifyPaymentReceived(ctx context.Context, ownerID uuid.UUID, payment *entity.Payment) {
	n := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  ownerID,
		Type:    entity.NotificationPaymentReceived,
		Title:   "Payment received",
		Message: fmt.Sprintf("%s payment of %s %s settled", payment.Type, payment.Amount.StringFixed(2), payment.Currency),
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.log.Warn("Failed to write payment notification", zap.Error(err))
	}
}

// validateMethod is the gateway-side sanity check a real processor
// would run. Cards always clear in the simulated gateway; PayPal needs
// an account email to charge.
func validateMethod(method *entity.PaymentMethod) error {
	switch {
	case method.IsCard():
		return nil
	case method.Type == entity.PaymentMethodPayPal:
		if method.PaypalEmail == nil || *method.PaypalEmail == "" {
			return fmt.Errorf("paypal method has no account email: %w", apperr.ErrPayment)
		}
		return nil
	default:
		return fmt.Errorf("unsupported payment method type %s: %w", method.Type, apperr.ErrPayment)
	}
}

// amountDue resolves what a payment of the given type owes on the
// rental, refusing double charges.
func (s *paymentService) amountDue(ctx context.Context, rental *entity.Rental, paymentType entity.PaymentType) (decimal.Decimal, error) {
	switch paymentType {
	case entity.PaymentTypeRental:
		if rental.Paid {
			return decimal.Zero, fmt.Errorf("rental already paid: %w", apperr.ErrConflict)
		}
		return rental.TotalPrice, nil

	case entity.PaymentTypeExtension:
		settled, err := s.settledAmount(ctx, rental.ID)
		if err != nil {
			return decimal.Zero, err
		}
		due := rental.TotalPrice.Sub(settled)
		if due.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, fmt.Errorf("nothing left to pay: %w", apperr.ErrConflict)
		}
		return due, nil

	case entity.PaymentTypeSecurityDeposit:
		payments, err := s.repo.Payment.FindByRental(ctx, rental.ID)
		if err != nil {
			return decimal.Zero, err
		}
		for _, p := range payments {
			if p.Type == entity.PaymentTypeSecurityDeposit && p.Status == entity.PaymentStatusCompleted {
				return decimal.Zero, fmt.Errorf("security deposit already held: %w", apperr.ErrConflict)
			}
		}
		return rental.SecurityDeposit, nil

	default:
		return decimal.Zero, fmt.Errorf("unsupported payment type %s: %w", paymentType, apperr.ErrValidation)
	}
}

// settledAmount sums the completed rental and extension payments.
func (s *paymentService) settledAmount(ctx context.Context, rentalID uuid.UUID) (decimal.Decimal, error) {
	payments, err := s.repo.Payment.FindByRental(ctx, rentalID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range payments {
		if p.Status != entity.PaymentStatusCompleted {
			continue
		}
		if p.Type == entity.PaymentTypeRental || p.Type == entity.PaymentTypeExtension {
			total = total.Add(p.Amount)
		}
	}

	return total, nil
}

// generateReceipt issues the tax receipt for a settled payment. The
// operation is idempotent per payment: an existing receipt short
// circuits, and number collisions are retried with fresh numbers.
func (s *paymentService) generateReceipt(ctx context.Context, payment *entity.Payment, rental *entity.Rental) error {
	existing, err := s.repo.Receipt.FindByPaymentID(ctx, payment.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, rental.VehicleID)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return fmt.Errorf("vehicle not found: %w", apperr.ErrNotFound)
	}

	subtotal, tax := s.pricing.TaxSplit(payment.Amount)
	days := s.pricing.RentalDays(rental.StartDateTime, rental.EffectiveEnd())
	now := time.Now()

	for attempt := 0; attempt < receiptNumberRetries; attempt++ {
		number, err := utils.GenerateReceiptNumber(now)
		if err != nil {
			return err
		}

		receipt := &entity.Receipt{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			ReceiptNumber: number,
			PaymentID:     payment.ID,
			RentalID:      rental.ID,
			RenterID:      rental.RenterID,
			OwnerID:       vehicle.OwnerID,
			VehicleID:     vehicle.ID,
			IssueDate:     now,
			Subtotal:      subtotal,
			TaxAmount:     tax,
			TotalAmount:   payment.Amount,
			RentalDays:    days,
			PricePerDay:   vehicle.PricePerDay,
			Currency:      payment.Currency,
			Status:        entity.ReceiptStatusIssued,
		}

		err = s.repo.Receipt.Create(ctx, receipt)
		if err == nil {
			s.log.Info("Receipt issued",
				zap.String("receipt_number", number),
				zap.String("payment_id", payment.ID.String()),
			)
			s.notifyReceipt(ctx, rental.RenterID, number)
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateReceiptNumber) {
			return err
		}
	}

	return fmt.Errorf("exhausted receipt number attempts for payment %s", payment.ID.String())
}

func (s *paymentService) notifyReceipt(ctx context.Context, renterID uuid.UUID, number string) {
	n := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  renterID,
		Type:    entity.NotificationReceiptGenerated,
		Title:   "Receipt issued",
		Message: fmt.Sprintf("Receipt %s is ready", number),
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.log.Warn("Failed to write receipt notification", zap.Error(err))
	}
}

func (s *paymentService) Refund(ctx context.Context, userID uuid.UUID, req *request.RefundPaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", utils.FormatValidationErrors(errs), apperr.ErrValidation)
	}

	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("invalid payment ID format: %w", apperr.ErrValidation)
	}

	payment, err := s.repo.Payment.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, fmt.Errorf("payment not found: %w", apperr.ErrNotFound)
	}
	if payment.PayerID != userID {
		return nil, fmt.Errorf("payment is not yours: %w", apperr.ErrUnauthorized)
	}
	if payment.Type == entity.PaymentTypeRefund {
		return nil, fmt.Errorf("cannot refund a refund: %w", apperr.ErrPayment)
	}

	// Omitted amount means the whole payment comes back.
	amount := payment.Amount
	if req.Amount != nil {
		amount, err = decimal.NewFromString(*req.Amount)
		if err != nil {
			return nil, fmt.Errorf("invalid refund amount: %w", apperr.ErrValidation)
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("refund amount must be positive: %w", apperr.ErrValidation)
		}
		if amount.GreaterThan(payment.Amount) {
			return nil, fmt.Errorf("refund amount exceeds the payment: %w", apperr.ErrPayment)
		}
	}

	ok, err := s.repo.Payment.MarkRefunded(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("payment is not refundable: %w", apperr.ErrPayment)
	}

	now := time.Now()
	refund := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		ExternalID:      "REF-" + payment.ExternalID,
		RentalID:        payment.RentalID,
		PayerID:         payment.PayerID,
		PaymentMethodID: payment.PaymentMethodID,
		Amount:          amount.Neg(),
		Currency:        payment.Currency,
		Status:          entity.PaymentStatusCompleted,
		Type:            entity.PaymentTypeRefund,
		PaymentDate:     now,
		FailureReason:   req.Reason,
	}

	if err := s.repo.Payment.Create(ctx, refund); err != nil {
		return nil, err
	}

	if receipt, rerr := s.repo.Receipt.FindByPaymentID(ctx, paymentID); rerr == nil && receipt != nil {
		if err := s.repo.Receipt.UpdateStatus(ctx, receipt.ID, entity.ReceiptStatusRefunded); err != nil {
			s.log.Error("Failed to flag receipt refunded",
				zap.Error(err),
				zap.String("receipt_id", receipt.ID.String()),
			)
		}
	}

	s.log.Info("Payment refunded",
		zap.String("payment_id", paymentID.String()),
		zap.String("refund_id", refund.ID.String()),
		zap.String("amount", refund.Amount.String()),
	)

	return response.ToPaymentResponse(refund), nil
}

func (s *paymentService) GetByID(ctx context.Context, userID, paymentID uuid.UUID) (*response.PaymentResponse, error) {
	payment, err := s.repo.Payment.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, fmt.Errorf("payment not found: %w", apperr.ErrNotFound)
	}
	if payment.PayerID != userID {
		return nil, fmt.Errorf("payment is not yours: %w", apperr.ErrUnauthorized)
	}

	return response.ToPaymentResponse(payment), nil
}

func (s *paymentService) ListByRental(ctx context.Context, userID, rentalID uuid.UUID) ([]*response.PaymentResponse, error) {
	rental, err := s.repo.Rental.FindByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, fmt.Errorf("rental not found: %w", apperr.ErrNotFound)
	}
	if rental.RenterID != userID {
		return nil, fmt.Errorf("rental is not yours: %w", apperr.ErrUnauthorized)
	}

	payments, err := s.repo.Payment.FindByRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	return response.ToPaymentResponses(payments), nil
}

func (s *paymentService) ListByPayer(ctx context.Context, payerID uuid.UUID, p utils.Pagination) (*utils.PaginatedResult, error) {
	payments, err := s.repo.Payment.FindByPayer(ctx, payerID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Payment.CountByPayer(ctx, payerID)
	if err != nil {
		return nil, err
	}

	result := utils.NewPaginatedResult(response.ToPaymentResponses(payments), p, total)
	return &result, nil
}

func (s *paymentService) GetReceipt(ctx context.Context, userID, paymentID uuid.UUID) (*response.ReceiptResponse, error) {
	receipt, err := s.repo.Receipt.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, fmt.Errorf("receipt not found: %w", apperr.ErrNotFound)
	}
	if receipt.RenterID != userID && receipt.OwnerID != userID {
		return nil, fmt.Errorf("receipt is not yours: %w", apperr.ErrUnauthorized)
	}

	return response.ToReceiptResponse(receipt), nil
}

func (s *paymentService) ListReceipts(ctx context.Context, renterID uuid.UUID, p utils.Pagination) (*utils.PaginatedResult, error) {
	receipts, err := s.repo.Receipt.FindByRenter(ctx, renterID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Receipt.CountByRenter(ctx, renterID)
	if err != nil {
		return nil, err
	}

	result := utils.NewPaginatedResult(response.ToReceiptResponses(receipts), p, total)
	return &result, nil
}
