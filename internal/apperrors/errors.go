package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to API clients.
const (
	CodeConflict   = "Conflict"
	CodeNotFound   = "NotFound"
	CodeFormat     = "FormatError"
	CodeValidation = "ValidationError"
	CodeForbidden  = "Forbidden"
	CodeInternal   = "InternalError"
)

// Error is the standard error shape returned by services and translated
// by the HTTP layer. Message is safe to show to end users; Details may
// carry field names or upstream error text.
type Error struct {
	Code    string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus maps an error code to its HTTP response status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation, CodeFormat:
		return http.StatusBadRequest
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func New(code, message, details string) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

// NewConflict reports a booking conflict. Per the product contract the
// message never names the specific period that conflicts.
func NewConflict() *Error {
	return New(CodeConflict, "date range unavailable", "")
}

func NewNotFound(resource, id string) *Error {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), fmt.Sprintf("ID: %s", id))
}

func NewFormat(message string, err error) *Error {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return New(CodeFormat, message, details)
}

func NewValidation(message, field string) *Error {
	return New(CodeValidation, message, fmt.Sprintf("Field: %s", field))
}

func NewForbidden(message string) *Error {
	return New(CodeForbidden, message, "")
}

func NewInternal(message string, err error) *Error {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return New(CodeInternal, message, details)
}

// IsCode reports whether err is an *Error carrying the given code.
func IsCode(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// From converts an arbitrary error into an *Error, wrapping unknown
// errors as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return NewInternal("internal error", err)
}
