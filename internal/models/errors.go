// internal/models/errors.go
package models

import "fmt"

type ErrorCode string

const (
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeInvalidPayload  ErrorCode = "INVALID_PAYLOAD"
	ErrCodeAlreadyApproved ErrorCode = "ALREADY_APPROVED"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
)

// Error is the only error type that crosses the service boundary. Each
// service operation fails with exactly one code and a human-readable
// message.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidPayloadf(format string, args ...interface{}) *Error {
	return &Error{Code: ErrCodeInvalidPayload, Message: fmt.Sprintf(format, args...)}
}

func AlreadyApprovedf(format string, args ...interface{}) *Error {
	return &Error{Code: ErrCodeAlreadyApproved, Message: fmt.Sprintf(format, args...)}
}

func Unauthorizedf(format string, args ...interface{}) *Error {
	return &Error{Code: ErrCodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}
