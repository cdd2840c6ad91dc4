package generation

import (
	"context"

	"github.com/google/uuid"
	"github.com/studyowl/studyowl-api/internal/domain"
)

// Request carries the classification tuple a lesson's content is derived
// from. Topic and Book are alternatives: at least one must be set, and Book
// takes part in content lookup when Topic is empty. SelectedQuotes are only
// meaningful for literature lessons and change both the notes layout and the
// question mix.
type Request struct {
	Subject        string
	Topic          string
	Book           string
	Level          string
	Difficulty     domain.Difficulty
	SelectedQuotes []string

	// Subtopic optionally narrows notes generation to one area of the topic.
	// Empty means the whole topic; other content kinds ignore it.
	Subtopic string
}

// TopicOrBook returns the request's study focus: the topic when set,
// otherwise the book reference.
func (r Request) TopicOrBook() string {
	if r.Topic != "" {
		return r.Topic
	}
	return r.Book
}

// Validate checks that the request carries enough classification to generate
// content from.
func (r Request) Validate() error {
	if r.Subject == "" || (r.Topic == "" && r.Book == "") {
		return ErrInvalidRequest
	}
	if !domain.IsValidDifficulty(r.Difficulty) {
		return ErrInvalidRequest
	}
	return nil
}

// Generator defines the interface for producing study content from a lesson
// classification. This interface serves as a boundary between the application
// core and the content-producing backend, following the hexagonal
// architecture pattern.
//
// All operations are deterministic for a given request apart from ID
// allocation; cosmetic option shuffling never changes which option a
// question's CorrectAnswer names.
type Generator interface {
	// GenerateNotes produces headered study notes for the request. It always
	// succeeds for a valid request: unknown subject/topic pairs fall back to a
	// generic content template built around the literal topic name. A set
	// Subtopic narrows the focus: content is looked up for the subtopic
	// first, then the topic, and the header names both.
	GenerateNotes(ctx context.Context, req Request) (string, error)

	// GenerateFlashcards produces up to count flashcards, drawing from key
	// terms first, then concepts, then selected quotes. Exhausting the source
	// material before reaching count is not an error; fewer cards are returned.
	GenerateFlashcards(ctx context.Context, req Request, count int) ([]domain.Flashcard, error)

	// GenerateExamQuestions produces count multiple-choice questions with
	// difficulty-scaled marks. When quotes are supplied, every third question
	// is a quote-analysis question.
	GenerateExamQuestions(ctx context.Context, req Request, count int) ([]domain.ExamQuestion, error)

	// GenerateQuiz produces the lesson's quiz: exactly ten questions and a
	// difficulty-scaled time limit.
	GenerateQuiz(ctx context.Context, req Request, lessonID uuid.UUID) (*domain.Quiz, error)
}
