// Package apperror defines the structured error kinds surfaced by the inventory ledger.
package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation          Kind = "ValidationError"
	KindNotFound            Kind = "NotFound"
	KindConflict            Kind = "Conflict"
	KindInsufficientStock   Kind = "InsufficientStock"
	KindUpstreamUnavailable Kind = "UpstreamUnavailable"
	KindStorageFailure      Kind = "StorageFailure"
)

// Shortage carries the figures a caller needs to retry a reservation with a smaller quantity.
type Shortage struct {
	Available int `json:"available"`
	Requested int `json:"requested"`
	Shortage  int `json:"shortage"`
}

type Error struct {
	Kind      Kind      `json:"error"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable,omitempty"`
	Stock     *Shortage `json:"stock,omitempty"`
	Err       error     `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the kind onto the boundary's status codes.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindConflict, KindInsufficientStock:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func InsufficientStock(available, requested int) *Error {
	shortage := requested - available
	if shortage < 0 {
		shortage = 0
	}
	return &Error{
		Kind:    KindInsufficientStock,
		Message: "insufficient stock available",
		Details: fmt.Sprintf("Available: %d, Requested: %d, Shortage: %d", available, requested, shortage),
		Stock:   &Shortage{Available: available, Requested: requested, Shortage: shortage},
	}
}

func UpstreamUnavailable(message string, err error) *Error {
	return &Error{Kind: KindUpstreamUnavailable, Message: message, Err: err, Retryable: true}
}

// Storage wraps a transactional I/O failure. A deadline expiry is marked retryable.
func Storage(operation string, err error) *Error {
	return &Error{
		Kind:      KindStorageFailure,
		Message:   fmt.Sprintf("storage operation failed: %s", operation),
		Err:       err,
		Retryable: errors.Is(err, context.DeadlineExceeded),
	}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindStorageFailure for foreign errors.
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return KindStorageFailure
}

// From normalizes any error into an *Error. Unknown errors become storage failures.
func From(err error) *Error {
	if ae, ok := As(err); ok {
		return ae
	}
	return Storage("unexpected", err)
}
