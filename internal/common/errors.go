// Package common defines shared constants and sentinel errors used across
// SpendTrack components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

// Stable error codes surfaced across the workflow boundary.
const (
	CodeValidationError      = "validation_error"
	CodeEmailAlreadyExists   = "email_already_exists"
	CodeAuthenticationFailed = "authentication_failed"
	CodeInvalidRefreshToken  = "invalid_refresh_token"
	CodeNotFound             = "not_found"
	CodePersistenceFailure   = "persistence_failure"
)

// Error is the uniform failure result returned by workflow operations.
// It carries a machine-readable code and a message that is safe to show to
// callers; internal fault details stay in the logs.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches two workflow errors by code, so sentinel comparison with
// errors.Is works regardless of the message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewValidationError returns a validation failure with a caller-facing reason.
func NewValidationError(msg string) *Error {
	return &Error{Code: CodeValidationError, Message: msg}
}

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Workflow results. Messages are deliberately generic: login failures must
	// not reveal whether the email exists, and refresh failures must not reveal
	// whether the token was unknown, expired, or revoked.
	ErrValidation           = &Error{Code: CodeValidationError, Message: "request failed validation"}
	ErrEmailAlreadyExists   = &Error{Code: CodeEmailAlreadyExists, Message: "email already registered"}
	ErrAuthenticationFailed = &Error{Code: CodeAuthenticationFailed, Message: "login request failed"}
	ErrInvalidRefreshToken  = &Error{Code: CodeInvalidRefreshToken, Message: "refresh token is invalid"}
	ErrExpenseNotFound      = &Error{Code: CodeNotFound, Message: "expense not found"}
	ErrPersistenceFailure   = &Error{Code: CodePersistenceFailure, Message: "storage request failed"}

	// Access-token errors (invalid, malformed, or expired token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
