// Package service provides application-level services for managing lessons and users.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent expected conditions callers check with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrQuotaExceeded indicates a free-tier user has reached the lesson cap.
	// API layer should map this to HTTP 403 Forbidden.
	ErrQuotaExceeded = errors.New("free-tier lesson quota exceeded")

	// ErrPremiumRequired indicates a premium-only feature was requested by a
	// free-tier user. API layer should map this to HTTP 403 Forbidden.
	ErrPremiumRequired = errors.New("premium subscription required")

	// ErrLessonNotFound indicates the referenced lesson does not exist in the
	// requesting user's collection. API layer should map this to HTTP 404.
	ErrLessonNotFound = errors.New("lesson not found")
)
