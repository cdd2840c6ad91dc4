// Package store defines the persistence interfaces and shared store errors.
// Implementations live under internal/platform; the rest of the application
// depends only on these interfaces.
package store
