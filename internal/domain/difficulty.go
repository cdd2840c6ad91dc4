package domain

import "errors"

// Difficulty represents how demanding a lesson's generated material should be.
type Difficulty string

// Possible difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ErrInvalidDifficulty is returned when a difficulty value is not one of the
// recognized constants.
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// IsValidDifficulty checks if the given value is a recognized Difficulty.
func IsValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// QuizTimeLimit returns the quiz time limit in minutes for this difficulty.
// Unknown difficulties fall back to the medium limit.
func (d Difficulty) QuizTimeLimit() int {
	switch d {
	case DifficultyEasy:
		return 20
	case DifficultyHard:
		return 45
	default:
		return 30
	}
}

// QuestionMarks returns the marks awarded per standard exam question at this
// difficulty. Quote-analysis questions score higher; see QuoteQuestionMarks.
func (d Difficulty) QuestionMarks() int {
	switch d {
	case DifficultyEasy:
		return 2
	case DifficultyHard:
		return 6
	default:
		return 4
	}
}

// QuoteQuestionMarks returns the marks awarded per quote-analysis exam
// question at this difficulty.
func (d Difficulty) QuoteQuestionMarks() int {
	switch d {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 12
	default:
		return 8
	}
}
