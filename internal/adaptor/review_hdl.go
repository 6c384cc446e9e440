package adaptor

import (
	"encoding/json"
	"net/http"

	"vehicle-rental/internal/dto/request"
	"vehicle-rental/internal/usecase"
	"vehicle-rental/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created", response)
}

// ListByRental handles GET /api/rentals/{id}/reviews
func (h *ReviewHandler) ListByRental(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	responses, err := h.service.ListByRental(r.Context(), rentalID)
	if err != nil {
		handleServiceError(w, h.log, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved", responses)
}
