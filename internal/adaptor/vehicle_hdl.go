package adaptor

import (
	"encoding/json"
	"net/http"

	"vehicle-rental/internal/dto/request"
	"vehicle-rental/internal/usecase"
	"vehicle-rental/pkg/utils"

	"go.uber.org/zap"
)

type VehicleHandler struct {
	service usecase.VehicleService
	log     *zap.Logger
}

func NewVehicleHandler(service usecase.VehicleService, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/vehicles
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create vehicle")
		return
	}

	utils.ResponseCreated(w, "Vehicle created", response)
}

// GetByID handles GET /api/vehicles/{id}
func (h *VehicleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	response, err := h.service.GetByID(r.Context(), vehicleID)
	if err != nil {
		handleServiceError(w, h.log, err, "get vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle retrieved", response)
}

// ListAvailable handles GET /api/vehicles
func (h *VehicleHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	result, err := h.service.ListAvailable(r.Context(), category, utils.GetPagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list vehicles")
		return
	}

	utils.ResponseSuccess(w, "Vehicles retrieved", result)
}

// ListMine handles GET /api/vehicles/mine
func (h *VehicleHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	responses, err := h.service.ListByOwner(r.Context(), userID, utils.GetPagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list own vehicles")
		return
	}

	utils.ResponseSuccess(w, "Vehicles retrieved", responses)
}

// Update handles PUT /api/vehicles/{id}
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	vehicleID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Update(r.Context(), userID, vehicleID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle updated", response)
}

// Delete handles DELETE /api/vehicles/{id}
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	vehicleID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, vehicleID); err != nil {
		handleServiceError(w, h.log, err, "delete vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle deleted", nil)
}
