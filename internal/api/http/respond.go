package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Reaishma/Automated-grading-app/internal/classroom"
	"github.com/Reaishma/Automated-grading-app/internal/grading"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, classroom.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, classroom.ErrDanglingReference):
		return http.StatusConflict
	case errors.Is(err, grading.ErrInvalidConfiguration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, classroom.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}
