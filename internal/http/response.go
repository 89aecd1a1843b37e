package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"reeflog/internal/services"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// WriteServiceError maps a service failure onto a JSON error body. Store
// failures and anything outside the taxonomy are logged and hidden behind a
// generic 500.
func WriteServiceError(w http.ResponseWriter, err error) {
	var serviceErr services.ServiceError
	if errors.As(err, &serviceErr) && serviceErr.Status != http.StatusInternalServerError {
		WriteError(w, serviceErr.Status, serviceErr.Message)
		return
	}
	log.Printf("internal error: %v", err)
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}
