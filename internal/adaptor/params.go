package adaptor

import (
	"net/http"

	"vehicle-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// requireUserID pulls the authenticated user from the request context,
// writing the 401 itself when the context is missing.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam parses a UUID path parameter, writing the 400 itself on
// malformed input.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+name+" format", nil)
		return uuid.Nil, false
	}
	return id, true
}
