package schedule

import (
	"errors"
	"fmt"
	"net/http"
)

// ScheduleError carries the HTTP status a failure maps to.
type ScheduleError struct {
	Code    string
	Message string
	Status  int
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &ScheduleError{Code: "validationError", Message: msg, Status: http.StatusBadRequest}
}

func NewAIError(msg string) error {
	return &ScheduleError{Code: "aiError", Message: msg, Status: http.StatusBadRequest}
}

func NewUpstreamError(msg string) error {
	return &ScheduleError{Code: "upstreamError", Message: msg, Status: http.StatusServiceUnavailable}
}

func NewInternalError(msg string) error {
	return &ScheduleError{Code: "internalError", Message: msg, Status: http.StatusInternalServerError}
}

// StatusOf returns the HTTP status for err, 500 for anything untyped.
func StatusOf(err error) int {
	var se *ScheduleError
	if errors.As(err, &se) {
		return se.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message of err.
func MessageOf(err error) string {
	var se *ScheduleError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
