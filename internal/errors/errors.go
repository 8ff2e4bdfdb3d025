package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code so wrapped sentinels still compare.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Registration errors
	ErrEmailExists    = NewDomainError("EMAIL_EXISTS", "email already exists")
	ErrUsernameExists = NewDomainError("USERNAME_EXISTS", "username already exists")

	// Authentication errors
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid credentials")
	ErrEmailNotConfirmed  = NewDomainError("EMAIL_NOT_CONFIRMED", "email not confirmed")

	// Token errors
	ErrTokenMalformed      = NewDomainError("MALFORMED_TOKEN", "token cannot be parsed")
	ErrInvalidSignature    = NewDomainError("INVALID_SIGNATURE", "token signature does not verify")
	ErrTokenExpired        = NewDomainError("TOKEN_EXPIRED", "token has expired")
	ErrWrongTokenType      = NewDomainError("WRONG_TOKEN_TYPE", "token type does not match operation")
	ErrInvalidRefreshToken = NewDomainError("INVALID_REFRESH_TOKEN", "refresh token does not match stored token")

	// Lookup errors
	ErrUserNotFound = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrNoteNotFound = NewDomainError("NOTE_NOT_FOUND", "note not found")
	ErrTagNotFound  = NewDomainError("TAG_NOT_FOUND", "tag not found")

	// Conflict errors
	ErrTagExists = NewDomainError("TAG_EXISTS", "tag already exists")

	// Validation errors
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "invalid input")

	// System errors
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error")
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "service unavailable")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

// domainErrorToHTTPStatus maps specific domain errors to HTTP status codes.
// Every authentication failure collapses into 401 so a caller cannot
// distinguish which check rejected the credential.
func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "INVALID_CREDENTIALS", "EMAIL_NOT_CONFIRMED",
		"MALFORMED_TOKEN", "INVALID_SIGNATURE", "TOKEN_EXPIRED",
		"WRONG_TOKEN_TYPE", "INVALID_REFRESH_TOKEN":
		return http.StatusUnauthorized

	// 404 Not Found
	case "USER_NOT_FOUND", "NOTE_NOT_FOUND", "TAG_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS", "USERNAME_EXISTS", "TAG_EXISTS":
		return http.StatusConflict

	// 503 Service Unavailable
	case "SERVICE_UNAVAILABLE":
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// ToAuthHTTPStatus is the mapping for authentication endpoints: any
// rejection, including an unknown subject, reports 401 to avoid an
// account-enumeration oracle. Only infrastructure failures differ.
func ToAuthHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case "SERVICE_UNAVAILABLE":
			return http.StatusServiceUnavailable
		case "INTERNAL_ERROR":
			return http.StatusInternalServerError
		case "EMAIL_EXISTS", "USERNAME_EXISTS":
			return http.StatusConflict
		case "INVALID_INPUT":
			return http.StatusBadRequest
		default:
			return http.StatusUnauthorized
		}
	}

	return http.StatusInternalServerError
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
