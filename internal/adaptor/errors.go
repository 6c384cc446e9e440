package adaptor

import (
	"errors"
	"net/http"

	"vehicle-rental/internal/apperr"
	"vehicle-rental/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service error categories onto HTTP responses.
// Anything outside the known categories is a 500 and only the operation
// name reaches the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, apperr.ErrNotFound):
		utils.ResponseNotFound(w, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		utils.ResponseConflict(w, err.Error())
	case errors.Is(err, apperr.ErrUnauthorized):
		utils.ResponseForbidden(w, err.Error())
	case errors.Is(err, apperr.ErrPayment):
		utils.ResponseUnprocessable(w, err.Error())
	case errors.Is(err, apperr.ErrCrypto):
		log.Error("Crypto failure", zap.String("operation", operation), zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	default:
		log.Error("Unhandled service error",
			zap.String("operation", operation),
			zap.Error(err),
		)
		utils.ResponseInternalError(w, "Failed to "+operation)
	}
}
