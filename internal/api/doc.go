// Package api holds the HTTP layer: request decoding and validation,
// handlers for the auth, account, and lesson endpoints, and the central
// mapping from internal errors to sanitized HTTP responses.
package api
