package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cosmonaut-api/internal/models"
)

const (
	msgNotFound      = "Cosmonaut not found"
	msgDeleted       = "Cosmonaut deleted successfully"
	msgInternalError = "Internal Server Error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client gone, nothing left to do
}

// WriteError writes {"detail": detail} with status.
func WriteError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, models.ErrorResponse{Detail: detail})
}

func writeValidationError(w http.ResponseWriter, errs []models.FieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, models.ValidationErrorResponse{Detail: errs})
}
