package adaptor

import (
	"encoding/json"
	"net/http"

	"vehicle-rental/internal/dto/request"
	"vehicle-rental/internal/usecase"
	"vehicle-rental/pkg/utils"

	"go.uber.org/zap"
)

type RentalHandler struct {
	service usecase.RentalService
	log     *zap.Logger
}

func NewRentalHandler(service usecase.RentalService, log *zap.Logger) *RentalHandler {
	return &RentalHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/rentals
func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.CreateRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create rental")
		return
	}

	utils.ResponseCreated(w, "Rental requested", response)
}

// CheckAvailability handles POST /api/rentals/availability
func (h *RentalHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req request.CheckAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.CheckAvailability(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "Availability checked", response)
}

// Confirm handles POST /api/rentals/{id}/confirm
func (h *RentalHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	rentalID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req request.ConfirmRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Confirm(r.Context(), userID, rentalID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm rental")
		return
	}

	utils.ResponseSuccess(w, "Rental confirmed", response)
}

// Start handles POST /api/rentals/{id}/start
func (h *RentalHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	rentalID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	response, err := h.service.Start(r.Context(), userID, rentalID)
	if err != nil {
		handleServiceError(w, h.log, err, "start rental")
		return
	}

	utils.ResponseSuccess(w, "Rental started", response)
}

// Extend handles POST /api/rentals/{id}/extend
func (h *RentalHandler) Extend(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	rentalID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req request.ExtendRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Extend(r.Context(), userID, rentalID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "extend rental")
		return
	}

	utils.ResponseSuccess(w, "Rental extended", response)
}

// Return handles POST /api/rentals/{id}/return
func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	rentalID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	response, err := h.service.Return(r.Context(), userID, rentalID)
	if err != nil {
		handleServiceError(w, h.log, err, "return rental")
		return
	}

	utils.ResponseSuccess(w, "Rental returned", response)
}

// Cancel handles POST /api/rentals/{id}/cancel
func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	rentalID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	response, err := h.service.Cancel(r.Context(), userID, rentalID)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel rental")
		return
	}

	utils.ResponseSuccess(w, "Rental cancelled", response)
}

// Report handles POST /api/rentals/{id}/report
func (h *RentalHandler) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	rentalID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Report(r.Context(), userID, rentalID); err != nil {
		handleServiceError(w, h.log, err, "report renter")
		return
	}

	utils.ResponseSuccess(w, "Renter reported", nil)
}

// GetByID handles GET /api/rentals/{id}
func (h *RentalHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	rentalID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	response, err := h.service.GetByID(r.Context(), userID, rentalID)
	if err != nil {
		handleServiceError(w, h.log, err, "get rental")
		return
	}

	utils.ResponseSuccess(w, "Rental retrieved", response)
}

// ListMine handles GET /api/rentals
func (h *RentalHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListByRenter(r.Context(), userID, utils.GetPagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list rentals")
		return
	}

	utils.ResponseSuccess(w, "Rentals retrieved", result)
}

// ListForOwner handles GET /api/rentals/owned
func (h *RentalHandler) ListForOwner(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListByOwner(r.Context(), userID, utils.GetPagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list owned rentals")
		return
	}

	utils.ResponseSuccess(w, "Rentals retrieved", result)
}

// ListByVehicle handles GET /api/vehicles/{id}/rentals
func (h *RentalHandler) ListByVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	vehicleID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	responses, err := h.service.ListByVehicle(r.Context(), userID, vehicleID, utils.GetPagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list vehicle rentals")
		return
	}

	utils.ResponseSuccess(w, "Rentals retrieved", responses)
}
