package service

import (
	"errors"
	"fmt"
)

type ValidationKind string

const (
	KindMissing            ValidationKind = "missing"
	KindNotANumber         ValidationKind = "not_a_number"
	KindOutOfRange         ValidationKind = "out_of_range"
	KindMalformedBP        ValidationKind = "malformed_blood_pressure"
	KindSystolicNotGreater ValidationKind = "systolic_not_greater"
	KindUnknownChoice      ValidationKind = "unknown_choice"
)

// ValidationError is the single failure reported by Validate.
type ValidationError struct {
	Field   string
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError means the remote service could not be reached at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx reply not covered by a more specific error.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

var (
	ErrSessionExpired            = errors.New("session expired")
	ErrServerRejected            = errors.New("analysis service rejected the parameters")
	ErrUnexpectedRiskScore       = errors.New("unexpected risk score from analysis service")
	ErrSubmissionInFlight        = errors.New("a submission is already in progress")
	ErrRecommendationUnavailable = errors.New("recommendations unavailable")
	ErrNoResults                 = errors.New("no analysis results for user")
)

// UserMessage returns the text shown to the user for err.
func UserMessage(err error) string {
	var vErr *ValidationError
	var tErr *TransportError
	var sErr *StatusError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.Is(err, ErrServerRejected):
		return "Invalid health parameters! Please check all values are in valid ranges."
	case errors.Is(err, ErrSessionExpired):
		return "Session expired! Please login again."
	case errors.As(err, &tErr):
		return "Network error! Cannot connect to server. Please check if backend is running."
	case errors.Is(err, ErrSubmissionInFlight):
		return "Analysis already in progress. Please wait."
	case errors.Is(err, ErrNoResults):
		return "No analysis results yet. Please submit your health data first."
	case errors.As(err, &sErr):
		return "Error analyzing health data: " + sErr.Body
	default:
		return "Error analyzing health data: " + err.Error()
	}
}
