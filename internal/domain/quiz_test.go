package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// buildTestQuiz assembles a valid quiz for the given lesson.
func buildTestQuiz(t *testing.T, lessonID uuid.UUID) *Quiz {
	t.Helper()

	questions := make([]ExamQuestion, QuizQuestionCount)
	for i := range questions {
		q, err := NewExamQuestion(
			"Which statement best describes solving linear equations?",
			[]string{"correct", "partial", "misconception", "unrelated"},
			"correct",
			"The correct option is comprehensive.",
			"",
			4,
		)
		if err != nil {
			t.Fatalf("Expected no error building question, got %v", err)
		}
		questions[i] = *q
	}

	quiz, err := NewQuiz(lessonID, questions, DifficultyMedium.QuizTimeLimit())
	if err != nil {
		t.Fatalf("Expected no error building quiz, got %v", err)
	}
	return quiz
}

func TestQuizID(t *testing.T) {
	lessonID := uuid.New()
	id := QuizID(lessonID)

	if !strings.HasPrefix(id, "quiz-") {
		t.Errorf("Expected quiz ID to carry the quiz- prefix, got %s", id)
	}
	if id != QuizID(lessonID) {
		t.Error("Expected quiz ID derivation to be deterministic")
	}
}

func TestNewQuiz(t *testing.T) {
	lessonID := uuid.New()
	quiz := buildTestQuiz(t, lessonID)

	if quiz.ID != QuizID(lessonID) {
		t.Errorf("Expected quiz ID %s, got %s", QuizID(lessonID), quiz.ID)
	}
	if quiz.Completed {
		t.Error("Expected a new quiz to start uncompleted")
	}
	if quiz.Score != nil {
		t.Error("Expected a new quiz to have no score")
	}
}

func TestNewQuiz_WrongQuestionCount(t *testing.T) {
	q, err := NewExamQuestion(
		"Prompt?",
		[]string{"correct", "b", "c", "d"},
		"correct",
		"explanation",
		"",
		2,
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = NewQuiz(uuid.New(), []ExamQuestion{*q}, 30)
	if !errors.Is(err, ErrQuizQuestionCount) {
		t.Errorf("Expected ErrQuizQuestionCount, got %v", err)
	}
}

func TestNewQuiz_InvalidTimeLimit(t *testing.T) {
	lessonID := uuid.New()
	questions := buildTestQuiz(t, lessonID).Questions

	_, err := NewQuiz(lessonID, questions, 0)
	if !errors.Is(err, ErrQuizTimeLimitInvalid) {
		t.Errorf("Expected ErrQuizTimeLimitInvalid, got %v", err)
	}
}

func TestDifficultyScales(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		timeLimit  int
		marks      int
		quoteMarks int
	}{
		{DifficultyEasy, 20, 2, 5},
		{DifficultyMedium, 30, 4, 8},
		{DifficultyHard, 45, 6, 12},
	}

	for _, tt := range tests {
		if got := tt.difficulty.QuizTimeLimit(); got != tt.timeLimit {
			t.Errorf("%s: expected time limit %d, got %d", tt.difficulty, tt.timeLimit, got)
		}
		if got := tt.difficulty.QuestionMarks(); got != tt.marks {
			t.Errorf("%s: expected marks %d, got %d", tt.difficulty, tt.marks, got)
		}
		if got := tt.difficulty.QuoteQuestionMarks(); got != tt.quoteMarks {
			t.Errorf("%s: expected quote marks %d, got %d", tt.difficulty, tt.quoteMarks, got)
		}
	}
}
