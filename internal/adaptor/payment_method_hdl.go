package adaptor

import (
	"encoding/json"
	"net/http"

	"vehicle-rental/internal/dto/request"
	"vehicle-rental/internal/usecase"
	"vehicle-rental/pkg/utils"

	"go.uber.org/zap"
)

type PaymentMethodHandler struct {
	service usecase.PaymentMethodService
	log     *zap.Logger
}

func NewPaymentMethodHandler(service usecase.PaymentMethodService, log *zap.Logger) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/payment-methods
func (h *PaymentMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.CreatePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create payment method")
		return
	}

	utils.ResponseCreated(w, "Payment method saved", response)
}

// List handles GET /api/payment-methods
func (h *PaymentMethodHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	responses, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list payment methods")
		return
	}

	utils.ResponseSuccess(w, "Payment methods retrieved", responses)
}

// Update handles PUT /api/payment-methods/{id}
func (h *PaymentMethodHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	methodID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdatePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Update(r.Context(), userID, methodID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update payment method")
		return
	}

	utils.ResponseSuccess(w, "Payment method updated", response)
}

// SetDefault handles POST /api/payment-methods/{id}/default
func (h *PaymentMethodHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	methodID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.SetDefault(r.Context(), userID, methodID); err != nil {
		handleServiceError(w, h.log, err, "set default payment method")
		return
	}

	utils.ResponseSuccess(w, "Default payment method set", nil)
}

// Delete handles DELETE /api/payment-methods/{id}
func (h *PaymentMethodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	methodID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, methodID); err != nil {
		handleServiceError(w, h.log, err, "delete payment method")
		return
	}

	utils.ResponseSuccess(w, "Payment method deleted", nil)
}
