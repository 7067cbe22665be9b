package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Tmy-andy/profile/internal/models"
	"github.com/Tmy-andy/profile/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps service failures onto HTTP statuses. Save failures
// already produced an error toast in the session; the HTTP error mirrors it.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("User not authenticated"))
	case errors.Is(err, services.ErrSaveInProgress):
		writeJSON(w, http.StatusConflict, models.NewErrorResponse("Another save is in progress"))
	case errors.Is(err, services.ErrProjectNotFound):
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Project not found"))
	case errors.Is(err, services.ErrUploadNotFound):
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Upload not found"))
	case errors.Is(err, services.ErrConfirmationRequired):
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Deletion must be confirmed"))
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(verr.Fields))
	default:
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(fallback))
	}
}
