package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Flashcard-specific validation errors
var (
	// ErrFlashcardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrFlashcardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrFlashcardQuestionEmpty is returned when a flashcard's question is empty.
	ErrFlashcardQuestionEmpty = errors.New("flashcard question cannot be empty")

	// ErrFlashcardAnswerEmpty is returned when a flashcard's answer is empty.
	ErrFlashcardAnswerEmpty = errors.New("flashcard answer cannot be empty")
)

// Flashcard represents a single question/answer study card generated for a
// lesson. The Mastered flag and LastReviewed timestamp are owned by the study
// session feature and are never set by the generation core; NextReview is
// initialized at generation time so new cards enter the review rotation.
type Flashcard struct {
	ID           uuid.UUID  `json:"id"`
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	Mastered     bool       `json:"mastered"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	NextReview   *time.Time `json:"next_review,omitempty"`
}

// NewFlashcard creates a new Flashcard with the given question and answer.
// The card starts unmastered with its first review due 24 hours from now.
// Returns an error if validation fails.
func NewFlashcard(question, answer string) (*Flashcard, error) {
	next := time.Now().UTC().Add(24 * time.Hour)
	card := &Flashcard{
		ID:         uuid.New(),
		Question:   question,
		Answer:     answer,
		Mastered:   false,
		NextReview: &next,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}

	if f.Question == "" {
		return ErrFlashcardQuestionEmpty
	}

	if f.Answer == "" {
		return ErrFlashcardAnswerEmpty
	}

	return nil
}
