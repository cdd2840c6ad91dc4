package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Lesson-specific validation errors
var (
	// ErrLessonIDEmpty is returned when a lesson ID is empty or nil.
	ErrLessonIDEmpty = errors.New("lesson ID cannot be empty")

	// ErrLessonSubjectEmpty is returned when a lesson's subject is empty.
	ErrLessonSubjectEmpty = errors.New("lesson subject cannot be empty")

	// ErrLessonTopicEmpty is returned when a lesson names neither a topic nor a book.
	ErrLessonTopicEmpty = errors.New("lesson must name a topic or a book")

	// ErrLessonLevelEmpty is returned when a lesson's level is empty.
	ErrLessonLevelEmpty = errors.New("lesson level cannot be empty")

	// ErrProgressOutOfRange is returned when a progress value falls outside 0-100.
	ErrProgressOutOfRange = errors.New("lesson progress must be between 0 and 100")

	// ErrAlreadyGenerated is the generic version of the content-specific
	// regeneration errors below. Callers can match any of them with
	// errors.Is(err, ErrAlreadyGenerated).
	ErrAlreadyGenerated = errors.New("content already generated")

	// ErrNotesAlreadyGenerated is returned when notes generation is attempted on
	// a lesson whose notes are already populated.
	ErrNotesAlreadyGenerated = fmt.Errorf("%w: notes", ErrAlreadyGenerated)

	// ErrFlashcardsAlreadyGenerated is returned when flashcard generation is
	// attempted on a lesson that already has flashcards.
	ErrFlashcardsAlreadyGenerated = fmt.Errorf("%w: flashcards", ErrAlreadyGenerated)

	// ErrQuizAlreadyGenerated is returned when quiz generation is attempted on a
	// lesson that already has a quiz.
	ErrQuizAlreadyGenerated = fmt.Errorf("%w: quiz", ErrAlreadyGenerated)
)

// Lesson represents a user-created study unit scoped to one
// subject/topic/level/difficulty tuple, optionally anchored to a literature
// book and a set of selected quotes. Its content bundle starts empty and each
// piece (notes, flashcards, quiz) is generated at most once; the three
// generation transitions are independent of each other.
type Lesson struct {
	ID             uuid.UUID  `json:"id"`
	Subject        string     `json:"subject"`
	Topic          string     `json:"topic,omitempty"`
	Book           string     `json:"book,omitempty"`
	Level          string     `json:"level"`
	Difficulty     Difficulty `json:"difficulty"`
	SelectedQuotes []string   `json:"selected_quotes,omitempty"`

	Notes         string         `json:"notes"`
	Flashcards    []Flashcard    `json:"flashcards"`
	ExamQuestions []ExamQuestion `json:"exam_questions"`
	Quiz          *Quiz          `json:"quiz,omitempty"`

	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLesson creates a new Lesson with empty content and zero progress.
// Either topic or book must be provided; quotes are optional and only
// meaningful alongside a book. Returns an error if validation fails.
func NewLesson(
	subject, topic, book, level string,
	difficulty Difficulty,
	selectedQuotes []string,
) (*Lesson, error) {
	lesson := &Lesson{
		ID:             uuid.New(),
		Subject:        subject,
		Topic:          topic,
		Book:           book,
		Level:          level,
		Difficulty:     difficulty,
		SelectedQuotes: selectedQuotes,
		Notes:          "",
		Flashcards:     []Flashcard{},
		ExamQuestions:  []ExamQuestion{},
		Progress:       0,
		CreatedAt:      time.Now().UTC(),
	}

	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	return lesson, nil
}

// Validate checks if the Lesson has valid data.
// Returns an error if any field fails validation.
func (l *Lesson) Validate() error {
	if l.ID == uuid.Nil {
		return ErrLessonIDEmpty
	}

	if l.Subject == "" {
		return ErrLessonSubjectEmpty
	}

	if l.Topic == "" && l.Book == "" {
		return ErrLessonTopicEmpty
	}

	if l.Level == "" {
		return ErrLessonLevelEmpty
	}

	if !IsValidDifficulty(l.Difficulty) {
		return ErrInvalidDifficulty
	}

	if l.Progress < 0 || l.Progress > 100 {
		return ErrProgressOutOfRange
	}

	return nil
}

// TopicOrBook returns the lesson's study focus: the topic when set, otherwise
// the book reference.
func (l *Lesson) TopicOrBook() string {
	if l.Topic != "" {
		return l.Topic
	}
	return l.Book
}

// HasNotes reports whether the lesson's notes have been generated.
func (l *Lesson) HasNotes() bool {
	return l.Notes != ""
}

// HasFlashcards reports whether the lesson's flashcards have been generated.
func (l *Lesson) HasFlashcards() bool {
	return len(l.Flashcards) > 0
}

// HasQuiz reports whether the lesson's quiz has been generated.
func (l *Lesson) HasQuiz() bool {
	return l.Quiz != nil
}

// SetNotes populates the lesson's notes. The transition is one-way: a second
// call fails with ErrNotesAlreadyGenerated and leaves the notes unchanged.
func (l *Lesson) SetNotes(notes string) error {
	if l.HasNotes() {
		return ErrNotesAlreadyGenerated
	}
	l.Notes = notes
	return nil
}

// SetFlashcards populates the lesson's flashcards, one-way as with SetNotes.
func (l *Lesson) SetFlashcards(cards []Flashcard) error {
	if l.HasFlashcards() {
		return ErrFlashcardsAlreadyGenerated
	}
	l.Flashcards = cards
	return nil
}

// SetQuiz populates the lesson's quiz and exam questions, one-way as with SetNotes.
func (l *Lesson) SetQuiz(quiz *Quiz) error {
	if l.HasQuiz() {
		return ErrQuizAlreadyGenerated
	}
	l.Quiz = quiz
	l.ExamQuestions = quiz.Questions
	return nil
}

// SetProgress overwrites the lesson's progress percentage.
// Values outside 0-100 are rejected rather than clamped.
func (l *Lesson) SetProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return ErrProgressOutOfRange
	}
	l.Progress = progress
	return nil
}
