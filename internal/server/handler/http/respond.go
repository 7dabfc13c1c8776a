package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/FotoShop/internal/service"
)

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg})
}

// statusFor maps service errors to HTTP statuses. Unknown errors are
// internal and their text is not exposed.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrEmptyOrder):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrSessionNotFound):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrImageNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrUserExists), errors.Is(err, service.ErrOutOfStock):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status, msg := statusFor(err)
	writeError(w, status, msg)
}
