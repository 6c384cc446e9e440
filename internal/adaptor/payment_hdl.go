package adaptor

import (
	"encoding/json"
	"net/http"

	"vehicle-rental/internal/dto/request"
	"vehicle-rental/internal/usecase"
	"vehicle-rental/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

// Process handles POST /api/payments
func (h *PaymentHandler) Process(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.ProcessPayment(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "process payment")
		return
	}

	utils.ResponseCreated(w, "Payment processed", response)
}

// Refund handles POST /api/payments/refund
func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.RefundPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Refund(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "refund payment")
		return
	}

	utils.ResponseCreated(w, "Payment refunded", response)
}

// GetByID handles GET /api/payments/{id}
func (h *PaymentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	response, err := h.service.GetByID(r.Context(), userID, paymentID)
	if err != nil {
		handleServiceError(w, h.log, err, "get payment")
		return
	}

	utils.ResponseSuccess(w, "Payment retrieved", response)
}

// ListMine handles GET /api/payments
func (h *PaymentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListByPayer(r.Context(), userID, utils.GetPagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list payments")
		return
	}

	utils.ResponseSuccess(w, "Payments retrieved", result)
}

// ListByRental handles GET /api/rentals/{id}/payments
func (h *PaymentHandler) ListByRental(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	rentalID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	responses, err := h.service.ListByRental(r.Context(), userID, rentalID)
	if err != nil {
		handleServiceError(w, h.log, err, "list rental payments")
		return
	}

	utils.ResponseSuccess(w, "Payments retrieved", responses)
}

// GetReceipt handles GET /api/payments/{id}/receipt
func (h *PaymentHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	response, err := h.service.GetReceipt(r.Context(), userID, paymentID)
	if err != nil {
		handleServiceError(w, h.log, err, "get receipt")
		return
	}

	utils.ResponseSuccess(w, "Receipt retrieved", response)
}

// ListReceipts handles GET /api/receipts
func (h *PaymentHandler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListReceipts(r.Context(), userID, utils.GetPagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list receipts")
		return
	}

	utils.ResponseSuccess(w, "Receipts retrieved", result)
}
