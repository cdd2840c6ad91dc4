package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when content generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate lesson content")

	// ErrInvalidRequest is returned when a generation request is missing required fields
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrInvalidCount is returned when a requested item count is not positive
	ErrInvalidCount = errors.New("requested item count must be positive")
)
