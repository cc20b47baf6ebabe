package server

import (
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrCVNotFound indicates a saved CV id did not match any record
type ErrCVNotFound struct {
	ID string
}

func (e *ErrCVNotFound) Error() string {
	return fmt.Sprintf("cv not found: %s", e.ID)
}

// ErrStorageUnavailable indicates a request needed the database but the
// server was started without one
type ErrStorageUnavailable struct{}

func (e *ErrStorageUnavailable) Error() string {
	return "storage is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrCVNotFound:
		return http.StatusNotFound
	case *ErrStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
