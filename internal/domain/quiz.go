package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuizQuestionCount is the fixed number of questions in a generated quiz.
const QuizQuestionCount = 10

// Quiz-specific validation errors
var (
	// ErrQuizIDEmpty is returned when a quiz ID is empty.
	ErrQuizIDEmpty = errors.New("quiz ID cannot be empty")

	// ErrQuizQuestionCount is returned when a quiz does not carry exactly
	// QuizQuestionCount questions.
	ErrQuizQuestionCount = errors.New("quiz must have exactly 10 questions")

	// ErrQuizTimeLimitInvalid is returned when a quiz's time limit is not positive.
	ErrQuizTimeLimitInvalid = errors.New("quiz time limit must be positive")
)

// Quiz represents a timed assessment generated for a lesson. There is at most
// one quiz per lesson; its ID is derived from the owning lesson's ID.
// Completion state and score are written by the study-session feature.
type Quiz struct {
	ID          string         `json:"id"`
	Questions   []ExamQuestion `json:"questions"`
	TimeLimit   int            `json:"time_limit"` // minutes
	Completed   bool           `json:"completed"`
	Score       *int           `json:"score,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// QuizID derives the quiz identifier for the given lesson.
func QuizID(lessonID uuid.UUID) string {
	return fmt.Sprintf("quiz-%s", lessonID)
}

// NewQuiz creates a new Quiz owned by the given lesson with the provided
// questions and time limit. Returns an error if validation fails.
func NewQuiz(lessonID uuid.UUID, questions []ExamQuestion, timeLimit int) (*Quiz, error) {
	quiz := &Quiz{
		ID:        QuizID(lessonID),
		Questions: questions,
		TimeLimit: timeLimit,
		Completed: false,
	}

	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	return quiz, nil
}

// Validate checks if the Quiz has valid data.
// Returns an error if any field fails validation.
func (q *Quiz) Validate() error {
	if q.ID == "" {
		return ErrQuizIDEmpty
	}

	if len(q.Questions) != QuizQuestionCount {
		return ErrQuizQuestionCount
	}

	if q.TimeLimit <= 0 {
		return ErrQuizTimeLimitInvalid
	}

	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}
