// Package apperror carries the HTTP status a service failure should be reported with.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Code    int
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

func Validation(fields map[string]string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: "Validation failed", Fields: fields}
}

func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, fmt.Sprintf(format, args...))
}

func Forbidden(format string, args ...any) *Error {
	return New(http.StatusForbidden, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, fmt.Sprintf(format, args...))
}

func Conflict(format string, args ...any) *Error {
	return New(http.StatusConflict, fmt.Sprintf(format, args...))
}

func BadGateway(err error, format string, args ...any) *Error {
	return &Error{Code: http.StatusBadGateway, Message: fmt.Sprintf(format, args...), Err: err}
}

// Internal hides err from the client; the message is what the caller sees
func Internal(err error, format string, args ...any) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf returns the HTTP status for err, 500 for anything that is not an *Error
func CodeOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

func Is(err error, code int) bool {
	return CodeOf(err) == code
}
