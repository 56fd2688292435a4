// Package httputil provides JSON response helpers shared by the handler
// packages.
package httputil

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"fintrack/internal/models"
)

// JSON writes v as an application/json response with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Error maps domain errors onto HTTP statuses and writes a JSON error body.
// Unrecognized errors are treated as storage or internal faults.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrUnsupportedCurrency):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
	}
	JSON(w, status, map[string]string{"error": err.Error()})
}

// BadRequest writes a 400 with a message for malformed request bodies.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, map[string]string{"error": message})
}

// Decode parses the request body as JSON into v.
func Decode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
