// Package controllers contains the HTTP handlers for the events API. Each
// handler catches every error at the boundary and maps its kind to a status
// code; raw internal detail is exposed only in development mode.
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"devevents/internal/domain"
)

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// statusFor maps a service error to an HTTP status code: validation 400,
// lookup miss 404, slug conflict 409, store unreachable 503, everything
// else 500.
func statusFor(err error) int {
	var (
		verr     *domain.ValidationError
		conflict *domain.ConflictError
		conn     *domain.ConnectivityError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &conn):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorDetail returns the error string for response bodies, but only in
// development mode; production responses omit internal detail.
func errorDetail(err error, development bool) string {
	if !development || err == nil {
		return ""
	}
	return err.Error()
}
