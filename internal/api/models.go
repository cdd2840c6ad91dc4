package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/studyowl/studyowl-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`

	// Premium indicates whether the account holds a premium subscription
	Premium bool `json:"premium"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// UpdatePasswordRequest defines the payload for the password change endpoint.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=12,max=72"`
}

// AccountResponse defines the account representation returned by the API.
type AccountResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Premium   bool      `json:"premium"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLessonRequest defines the payload for the lesson creation endpoint.
// Either topic or book must be provided; selected_quotes only make sense
// alongside a book.
type CreateLessonRequest struct {
	Subject        string   `json:"subject"         validate:"required"`
	Topic          string   `json:"topic"           validate:"required_without=Book"`
	Book           string   `json:"book"            validate:"required_without=Topic"`
	Level          string   `json:"level"           validate:"required"`
	Difficulty     string   `json:"difficulty"      validate:"required,oneof=easy medium hard"`
	SelectedQuotes []string `json:"selected_quotes"`
}

// GenerateNotesRequest defines the optional payload for the notes generation
// endpoint. Subtopic narrows the notes to one area of the lesson's topic.
type GenerateNotesRequest struct {
	Subtopic string `json:"subtopic" validate:"omitempty,max=100"`
}

// GenerateFlashcardsRequest defines the payload for the flashcard generation
// endpoint. Count caps the number of cards; zero or omitted uses the default.
type GenerateFlashcardsRequest struct {
	Count int `json:"count" validate:"omitempty,min=1,max=50"`
}

// UpdateProgressRequest defines the payload for the progress update endpoint.
type UpdateProgressRequest struct {
	Progress *int `json:"progress" validate:"required,min=0,max=100"`
}

// LessonResponse defines the lesson representation returned by the API.
type LessonResponse struct {
	ID             uuid.UUID             `json:"id"`
	Subject        string                `json:"subject"`
	Topic          string                `json:"topic,omitempty"`
	Book           string                `json:"book,omitempty"`
	Level          string                `json:"level"`
	Difficulty     string                `json:"difficulty"`
	SelectedQuotes []string              `json:"selected_quotes,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	Flashcards     []domain.Flashcard    `json:"flashcards,omitempty"`
	ExamQuestions  []domain.ExamQuestion `json:"exam_questions,omitempty"`
	Quiz           *domain.Quiz          `json:"quiz,omitempty"`
	Progress       int                   `json:"progress"`
	CreatedAt      time.Time             `json:"created_at"`
}

// LessonListResponse defines the lesson collection representation, including
// the caller's remaining quota headroom (-1 for unlimited).
type LessonListResponse struct {
	Lessons          []LessonResponse `json:"lessons"`
	RemainingLessons int              `json:"remaining_lessons"`
}

// NewLessonResponse converts a domain lesson into its API representation.
func NewLessonResponse(lesson *domain.Lesson) LessonResponse {
	return LessonResponse{
		ID:             lesson.ID,
		Subject:        lesson.Subject,
		Topic:          lesson.Topic,
		Book:           lesson.Book,
		Level:          lesson.Level,
		Difficulty:     string(lesson.Difficulty),
		SelectedQuotes: lesson.SelectedQuotes,
		Notes:          lesson.Notes,
		Flashcards:     lesson.Flashcards,
		ExamQuestions:  lesson.ExamQuestions,
		Quiz:           lesson.Quiz,
		Progress:       lesson.Progress,
		CreatedAt:      lesson.CreatedAt,
	}
}
