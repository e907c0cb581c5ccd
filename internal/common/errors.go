// Package common defines shared constants, sentinel errors and small helpers
// used across the meal planner server. Callers should use errors.Is to match
// the error values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrUserAlreadyExists   = errors.New("user already exists")

	// Calendar credential lifecycle.
	ErrNoCredential    = errors.New("no calendar credential")
	ErrRefreshFailed   = errors.New("access token refresh failed")
	ErrTokenExchange   = errors.New("authorization code exchange failed")
	ErrInvalidState    = errors.New("invalid or expired oauth state")
	ErrMissingRedirect = errors.New("redirect url is missing")

	// Scheduling.
	ErrInvalidMealType = errors.New("invalid meal type")
	ErrInvalidTimeZone = errors.New("invalid time zone")
	ErrPublishFailed   = errors.New("calendar event publish failed")

	// Validation.
	ErrValidation = errors.New("validation error")
)
