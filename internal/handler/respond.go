package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vasapolrittideah/expense-tracker-api/internal/payload"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, payload.ErrorResponse{Message: message})
}

// respondErrorDetail adds the underlying error text for unexpected failures.
func respondErrorDetail(w http.ResponseWriter, status int, message string, err error) {
	respondJSON(w, status, payload.ErrorResponse{Message: message, Error: err.Error()})
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
