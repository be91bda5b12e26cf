package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AnuragDayal94/role-based-task-manager/logging"
	"github.com/AnuragDayal94/role-based-task-manager/services"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// handleServiceError maps the classified service errors onto HTTP statuses.
// Anything unclassified is a store failure and surfaces as an opaque 500
// with the endpoint's generic message.
func handleServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrMissingUserFields):
		respondMessage(w, http.StatusBadRequest, "All fields are required")
	case errors.Is(err, services.ErrMissingCredentials):
		respondMessage(w, http.StatusBadRequest, "Email and password required")
	case errors.Is(err, services.ErrUserExists):
		respondMessage(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondMessage(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, services.ErrSelfDelete):
		respondMessage(w, http.StatusBadRequest, "Admin cannot delete himself")
	case errors.Is(err, services.ErrInvalidRole):
		respondMessage(w, http.StatusBadRequest, "Invalid role value")
	case errors.Is(err, services.ErrMissingTaskFields):
		respondMessage(w, http.StatusBadRequest, "Title and assigned user required")
	case errors.Is(err, services.ErrInvalidStatus):
		respondMessage(w, http.StatusBadRequest, "Invalid status value")
	case errors.Is(err, services.ErrUserNotFound):
		respondMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrTaskNotFound):
		respondMessage(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, services.ErrTaskForbidden):
		respondMessage(w, http.StatusForbidden, "You are not allowed to update this task")
	case errors.Is(err, services.ErrForbidden):
		respondMessage(w, http.StatusForbidden, "Access forbidden: insufficient permissions")
	default:
		logging.Logger.Errorf("%s: %v", fallback, err)
		respondMessage(w, http.StatusInternalServerError, fallback)
	}
}
