package adaptor

import (
	"encoding/json"
	"net/http"

	"vehicle-rental/internal/dto/request"
	"vehicle-rental/internal/usecase"
	"vehicle-rental/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// GetProfile handles GET /api/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	response, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", response)
}

// UpdateProfile handles PUT /api/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", response)
}

// UploadDocuments handles PUT /api/profile/documents
func (h *UserHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req request.UploadDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	response, err := h.service.UploadDocuments(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "upload documents")
		return
	}

	utils.ResponseSuccess(w, "Documents updated", response)
}

// ListNotifications handles GET /api/notifications
func (h *UserHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	responses, err := h.service.ListNotifications(r.Context(), userID, utils.GetPagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list notifications")
		return
	}

	utils.ResponseSuccess(w, "Notifications retrieved", responses)
}

// UnreadCount handles GET /api/notifications/unread
func (h *UserHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	count, err := h.service.CountUnreadNotifications(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "count notifications")
		return
	}

	utils.ResponseSuccess(w, "Unread count retrieved", map[string]int64{"unread": count})
}

// MarkNotificationRead handles POST /api/notifications/{id}/read
func (h *UserHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	notificationID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.MarkNotificationRead(r.Context(), userID, notificationID); err != nil {
		handleServiceError(w, h.log, err, "mark notification read")
		return
	}

	utils.ResponseSuccess(w, "Notification marked read", nil)
}

// ListUsers handles GET /api/admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListUsers(r.Context(), utils.GetPagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved", result)
}

// BanUser handles POST /api/admin/users/{id}/ban
func (h *UserHandler) BanUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.SetBanned(r.Context(), userID, true); err != nil {
		handleServiceError(w, h.log, err, "ban user")
		return
	}

	utils.ResponseSuccess(w, "User banned", nil)
}

// UnbanUser handles POST /api/admin/users/{id}/unban
func (h *UserHandler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.SetBanned(r.Context(), userID, false); err != nil {
		handleServiceError(w, h.log, err, "unban user")
		return
	}

	utils.ResponseSuccess(w, "User unbanned", nil)
}
