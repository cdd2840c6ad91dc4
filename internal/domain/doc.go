// Package domain contains the core entities of the system - lessons and
// their generated content, quizzes, flashcards, and user accounts - together
// with their validation rules and lifecycle invariants.
package domain
