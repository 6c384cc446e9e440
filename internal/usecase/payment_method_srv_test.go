package usecase

import (
	"context"
	"testing"

	"vehicle-rental/internal/apperr"
	"vehicle-rental/internal/dto/request"
	"vehicle-rental/pkg/vault"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMethodService(t *testing.T) (*fakeRepos, PaymentMethodService) {
	t.Helper()

	v, err := vault.New([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	repos := newFakeRepos()
	return repos, NewPaymentMethodService(repos.aggregate(), v, zap.NewNop())
}

func TestPaymentMethodCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("card is stored encrypted and returned masked", func(t *testing.T) {
		repos, service := newMethodService(t)
		userID := uuid.New()

		resp, err := service.Create(ctx, userID, &request.CreatePaymentMethodRequest{
			Type:       "CREDIT_CARD",
			Provider:   "VISA",
			Alias:      "personal card",
			CardNumber: strPtr("4111111111111234"),
			ExpiryDate: strPtr("12/27"),
		})
		require.NoError(t, err)

		require.NotNil(t, resp.MaskedCardNumber)
		assert.Equal(t, "**** **** **** 1234", *resp.MaskedCardNumber)

		id, err := uuid.Parse(resp.ID)
		require.NoError(t, err)
		stored := repos.methods.methods[id]
		require.NotNil(t, stored)

		// Nothing readable at rest
		require.NotNil(t, stored.EncryptedCardNumber)
		require.NotNil(t, stored.EncryptedExpiryDate)
		assert.NotContains(t, *stored.EncryptedCardNumber, "4111111111111234")
		assert.NotContains(t, *stored.EncryptedExpiryDate, "12/27")
	})

	t.Run("card without number is rejected", func(t *testing.T) {
		_, service := newMethodService(t)

		_, err := service.Create(ctx, uuid.New(), &request.CreatePaymentMethodRequest{
			Type:     "DEBIT_CARD",
			Provider: "MASTERCARD",
			Alias:    "work card",
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("paypal needs an email", func(t *testing.T) {
		_, service := newMethodService(t)

		_, err := service.Create(ctx, uuid.New(), &request.CreatePaymentMethodRequest{
			Type:     "PAYPAL",
			Provider: "PAYPAL",
			Alias:    "paypal account",
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("blank paypal email counts as missing", func(t *testing.T) {
		_, service := newMethodService(t)

		_, err := service.Create(ctx, uuid.New(), &request.CreatePaymentMethodRequest{
			Type:        "PAYPAL",
			Provider:    "PAYPAL",
			Alias:       "paypal account",
			PaypalEmail: strPtr(""),
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("default flag switches the user's default", func(t *testing.T) {
		repos, service := newMethodService(t)
		userID := uuid.New()

		first, err := service.Create(ctx, userID, &request.CreatePaymentMethodRequest{
			Type:       "CREDIT_CARD",
			Provider:   "VISA",
			Alias:      "first",
			CardNumber: strPtr("4111111111111111"),
			ExpiryDate: strPtr("11/26"),
			IsDefault:  true,
		})
		require.NoError(t, err)
		assert.True(t, first.IsDefault)

		second, err := service.Create(ctx, userID, &request.CreatePaymentMethodRequest{
			Type:       "CREDIT_CARD",
			Provider:   "AMEX",
			Alias:      "second",
			CardNumber: strPtr("371449635398431"),
			ExpiryDate: strPtr("10/28"),
			IsDefault:  true,
		})
		require.NoError(t, err)
		assert.True(t, second.IsDefault)

		firstID, err := uuid.Parse(first.ID)
		require.NoError(t, err)
		assert.False(t, repos.methods.methods[firstID].IsDefault)
	})
}

func TestPaymentMethodReveal(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips the stored card", func(t *testing.T) {
		_, service := newMethodService(t)
		userID := uuid.New()

		resp, err := service.Create(ctx, userID, &request.CreatePaymentMethodRequest{
			Type:       "CREDIT_CARD",
			Provider:   "VISA",
			Alias:      "personal card",
			CardNumber: strPtr("4111111111111234"),
			ExpiryDate: strPtr("12/27"),
		})
		require.NoError(t, err)

		methodID, err := uuid.Parse(resp.ID)
		require.NoError(t, err)

		cardNumber, expiryDate, err := service.Reveal(ctx, userID, methodID)
		require.NoError(t, err)
		assert.Equal(t, "4111111111111234", cardNumber)
		assert.Equal(t, "12/27", expiryDate)
	})

	t.Run("other users cannot reveal", func(t *testing.T) {
		_, service := newMethodService(t)
		userID := uuid.New()

		resp, err := service.Create(ctx, userID, &request.CreatePaymentMethodRequest{
			Type:       "CREDIT_CARD",
			Provider:   "VISA",
			Alias:      "personal card",
			CardNumber: strPtr("4111111111111234"),
			ExpiryDate: strPtr("12/27"),
		})
		require.NoError(t, err)

		methodID, err := uuid.Parse(resp.ID)
		require.NoError(t, err)

		_, _, err = service.Reveal(ctx, uuid.New(), methodID)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("paypal methods have no card to reveal", func(t *testing.T) {
		_, service := newMethodService(t)
		userID := uuid.New()

		resp, err := service.Create(ctx, userID, &request.CreatePaymentMethodRequest{
			Type:        "PAYPAL",
			Provider:    "PAYPAL",
			Alias:       "paypal account",
			PaypalEmail: strPtr("renter@example.com"),
		})
		require.NoError(t, err)

		methodID, err := uuid.Parse(resp.ID)
		require.NoError(t, err)

		_, _, err = service.Reveal(ctx, userID, methodID)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}
