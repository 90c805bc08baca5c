/*
Package apierr defines the typed error taxonomy for the API.

Expected, enumerable failures are values of *Error: an error code plus the
ordered list of field errors returned to the client. Services return them
through plain error results; the transport layer is the only place that maps
a code to an HTTP status and serializes the list.
*/
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an API failure.
type Code string

const (
	CodeBadRequest   Code = "BAD_REQUEST"
	CodeNotFound     Code = "NOT_FOUND"
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeBusinessRule Code = "BUSINESS_RULE_VIOLATION"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// FieldError is one (fieldName, message) pair in an error response. The
// field name is empty for whole-payload errors.
type FieldError struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

// Error is an expected API failure.
type Error struct {
	Code   Code
	Errors []FieldError
	Err    error // wrapped cause, internal failures only
}

func (e *Error) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Errors[0].Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error code to its HTTP status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation, CodeBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Canonical response messages.
const (
	MsgNoDataSubmitted       = "No data is submitted."
	MsgKeyFieldMismatch      = "Key field parameters mismatch."
	MsgRecordNotFound        = "Record is not found."
	MsgStartDateNotBeforeEnd = "The start date is not before end date."
)

// New creates an error with the given code and field errors.
func New(code Code, errs ...FieldError) *Error {
	return &Error{Code: code, Errors: errs}
}

// NoDataSubmitted rejects an empty payload.
func NoDataSubmitted() *Error {
	return New(CodeBadRequest, FieldError{FieldName: "", Message: MsgNoDataSubmitted})
}

// KeyFieldMismatch rejects a payload whose identifier disagrees with the
// path identifier.
func KeyFieldMismatch() *Error {
	return New(CodeBadRequest, FieldError{FieldName: "userId", Message: MsgKeyFieldMismatch})
}

// RecordNotFound reports that the referenced identifier does not exist.
func RecordNotFound() *Error {
	return New(CodeNotFound, FieldError{FieldName: "userId", Message: MsgRecordNotFound})
}

// InvalidDateRange rejects a range query whose start is not strictly before
// its end.
func InvalidDateRange() *Error {
	return New(CodeBadRequest, FieldError{FieldName: "", Message: MsgStartDateNotBeforeEnd})
}

// BelowMinimumAge rejects a user whose age does not strictly exceed the
// configured minimum.
func BelowMinimumAge(minAge int) *Error {
	return New(CodeBusinessRule, FieldError{
		FieldName: "birthDate",
		Message:   fmt.Sprintf("The birth date is less than %d.", minAge),
	})
}

// Validation wraps field-level constraint violations.
func Validation(errs []FieldError) *Error {
	return &Error{Code: CodeValidation, Errors: errs}
}

// BadRequest creates a single-field bad-request error.
func BadRequest(field, message string) *Error {
	return New(CodeBadRequest, FieldError{FieldName: field, Message: message})
}

// Internal wraps an unexpected failure. The cause is logged server-side and
// never serialized to the client.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Err: err}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var apiErr *Error
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// Is reports whether err is an *Error with the given code.
func Is(err error, code Code) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Code == code
}
