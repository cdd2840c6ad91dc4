// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The central component is the LessonService, which owns the signed-in user's
// lesson collection: it gates creation and flashcard generation through the
// entitlement policy, enforces the one-way generation transitions, and keeps
// the in-memory collection and the per-user durable blob slot in step.
//
// Services receive dependencies through constructor injection and translate
// domain- and store-level errors into application-level sentinels that the
// API layer maps onto HTTP status codes.
package service
