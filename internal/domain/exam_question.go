package domain

import (
	"errors"

	"github.com/google/uuid"
)

// QuestionType tags the format of an exam question.
type QuestionType string

// The generator currently only emits multiple-choice questions.
const QuestionTypeMultipleChoice QuestionType = "multiple_choice"

// OptionCount is the fixed number of options on a multiple-choice question.
const OptionCount = 4

// ExamQuestion-specific validation errors
var (
	// ErrQuestionIDEmpty is returned when a question ID is empty or nil.
	ErrQuestionIDEmpty = errors.New("exam question ID cannot be empty")

	// ErrQuestionPromptEmpty is returned when a question's prompt is empty.
	ErrQuestionPromptEmpty = errors.New("exam question prompt cannot be empty")

	// ErrQuestionOptionCount is returned when a question does not carry exactly
	// four options.
	ErrQuestionOptionCount = errors.New("exam question must have exactly 4 options")

	// ErrQuestionAnswerMissing is returned when the correct answer does not
	// appear exactly once in the option list.
	ErrQuestionAnswerMissing = errors.New(
		"exam question correct answer must appear exactly once among options",
	)

	// ErrQuestionMarksInvalid is returned when a question's marks value is not positive.
	ErrQuestionMarksInvalid = errors.New("exam question marks must be positive")
)

// ExamQuestion represents a single multiple-choice question produced for a
// lesson's exam practice or quiz. Options may be shuffled for display, but the
// CorrectAnswer field always names the correct option verbatim, so exactly one
// option must equal it regardless of order.
type ExamQuestion struct {
	ID            uuid.UUID    `json:"id"`
	Prompt        string       `json:"prompt"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation"`
	Hint          string       `json:"hint,omitempty"`
	Marks         int          `json:"marks"`
}

// NewExamQuestion creates a new multiple-choice ExamQuestion.
// Returns an error if validation fails.
func NewExamQuestion(
	prompt string,
	options []string,
	correctAnswer, explanation, hint string,
	marks int,
) (*ExamQuestion, error) {
	q := &ExamQuestion{
		ID:            uuid.New(),
		Prompt:        prompt,
		Type:          QuestionTypeMultipleChoice,
		Options:       options,
		CorrectAnswer: correctAnswer,
		Explanation:   explanation,
		Hint:          hint,
		Marks:         marks,
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks if the ExamQuestion has valid data.
// Returns an error if any field fails validation.
func (q *ExamQuestion) Validate() error {
	if q.ID == uuid.Nil {
		return ErrQuestionIDEmpty
	}

	if q.Prompt == "" {
		return ErrQuestionPromptEmpty
	}

	if len(q.Options) != OptionCount {
		return ErrQuestionOptionCount
	}

	matches := 0
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			matches++
		}
	}
	if matches != 1 {
		return ErrQuestionAnswerMissing
	}

	if q.Marks <= 0 {
		return ErrQuestionMarksInvalid
	}

	return nil
}
