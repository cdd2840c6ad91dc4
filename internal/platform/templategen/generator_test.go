package templategen_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyowl/studyowl-api/internal/domain"
	"github.com/studyowl/studyowl-api/internal/generation"
	"github.com/studyowl/studyowl-api/internal/platform/templategen"
)

func algebraRequest() generation.Request {
	return generation.Request{
		Subject:    "Mathematics",
		Topic:      "Algebra",
		Level:      "GCSE",
		Difficulty: domain.DifficultyMedium,
	}
}

func macbethRequest() generation.Request {
	return generation.Request{
		Subject:    "English Literature",
		Book:       "Macbeth",
		Level:      "GCSE",
		Difficulty: domain.DifficultyHard,
		SelectedQuotes: []string{
			"Is this a dagger which I see before me",
			"Out, damned spot",
		},
	}
}

func TestGenerateNotes_Structure(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)
	notes, err := gen.GenerateNotes(context.Background(), algebraRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(notes, "# Algebra: GCSE Study Notes (medium)"))
	for _, section := range []string{
		"## Introduction",
		"## Key Concepts",
		"## Worked Examples",
		"## Key Terminology",
		"## Applying Your Knowledge",
		"## Exam Preparation Checklist",
	} {
		assert.Contains(t, notes, section)
	}
	assert.NotContains(t, notes, "## Quote Analysis", "no quote section without quotes")
}

func TestGenerateNotes_QuoteSection(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)
	notes, err := gen.GenerateNotes(context.Background(), macbethRequest())
	require.NoError(t, err)

	assert.Contains(t, notes, "## Quote Analysis")
	assert.Contains(t, notes, "Is this a dagger which I see before me")
	assert.Contains(t, notes, "Out, damned spot")
}

func TestGenerateNotes_DifficultyRegister(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)
	ctx := context.Background()

	easy := algebraRequest()
	easy.Difficulty = domain.DifficultyEasy
	notes, err := gen.GenerateNotes(ctx, easy)
	require.NoError(t, err)
	assert.Contains(t, notes, "mastering the fundamentals")

	hard := algebraRequest()
	hard.Difficulty = domain.DifficultyHard
	notes, err = gen.GenerateNotes(ctx, hard)
	require.NoError(t, err)
	assert.Contains(t, notes, "critically analyse")

	notes, err = gen.GenerateNotes(ctx, algebraRequest())
	require.NoError(t, err)
	assert.Contains(t, notes, "new situations")
}

func TestGenerateNotes_UnknownTopicFallsBack(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)
	req := generation.Request{
		Subject:    "Economics",
		Topic:      "Supply and Demand",
		Level:      "A-Level",
		Difficulty: domain.DifficultyMedium,
	}

	notes, err := gen.GenerateNotes(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, notes, "Supply and Demand")
	assert.Contains(t, notes, "## Key Concepts")
}

func TestGenerateNotes_SubtopicNarrowsFocus(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)
	ctx := context.Background()

	// A subtopic with its own curated entry wins the content lookup.
	req := algebraRequest()
	req.Subtopic = "Geometry"
	notes, err := gen.GenerateNotes(ctx, req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(notes, "# Algebra: Geometry: GCSE Study Notes (medium)"))
	assert.Contains(t, notes, "Pythagoras' theorem")

	// An unknown subtopic keeps the topic's content but narrows the framing.
	req = algebraRequest()
	req.Subtopic = "Factorising"
	notes, err = gen.GenerateNotes(ctx, req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(notes, "# Algebra: Factorising: GCSE Study Notes (medium)"))
	assert.Contains(t, notes, "central to Factorising")
	assert.Contains(t, notes, "solving linear equations")
}

func TestGenerateNotes_Deterministic(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)
	ctx := context.Background()

	first, err := gen.GenerateNotes(ctx, algebraRequest())
	require.NoError(t, err)
	second, err := gen.GenerateNotes(ctx, algebraRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateNotes_InvalidRequest(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)

	_, err := gen.GenerateNotes(context.Background(), generation.Request{
		Subject:    "Mathematics",
		Difficulty: domain.DifficultyMedium,
	})
	assert.ErrorIs(t, err, generation.ErrInvalidRequest)
}

func TestGenerateFlashcards_CapsAtCount(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)

	cards, err := gen.GenerateFlashcards(context.Background(), algebraRequest(), 3)
	require.NoError(t, err)
	assert.Len(t, cards, 3)

	for _, card := range cards {
		assert.NotEmpty(t, card.Question)
		assert.NotEmpty(t, card.Answer)
		assert.False(t, card.Mastered)
		assert.Nil(t, card.LastReviewed)
		require.NotNil(t, card.NextReview)
		assert.True(t, card.NextReview.After(time.Now()))
	}
}

func TestGenerateFlashcards_TermsBeforeConcepts(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)

	cards, err := gen.GenerateFlashcards(context.Background(), algebraRequest(), 2)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	// Definition cards come first, drawn from the key term pool.
	assert.Contains(t, cards[0].Question, "What is meant by")
	assert.Contains(t, cards[1].Question, "What is meant by")
}

func TestGenerateFlashcards_ExhaustedPoolReturnsFewer(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)

	cards, err := gen.GenerateFlashcards(context.Background(), algebraRequest(), 100)
	require.NoError(t, err)
	assert.NotEmpty(t, cards)
	assert.Less(t, len(cards), 100, "source material is finite")
}

func TestGenerateFlashcards_InvalidCount(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)

	_, err := gen.GenerateFlashcards(context.Background(), algebraRequest(), 0)
	assert.ErrorIs(t, err, generation.ErrInvalidCount)
}

func TestGenerateExamQuestions_CorrectAnswerAlwaysPresent(t *testing.T) {
	t.Parallel()

	// The shuffle must never displace correctness, whatever the seed.
	for _, seed := range []int64{1, 7, 42, 1234, -9} {
		gen := templategen.New(nil, templategen.WithSeed(seed))

		questions, err := gen.GenerateExamQuestions(context.Background(), macbethRequest(), 12)
		require.NoError(t, err)
		require.Len(t, questions, 12)

		for _, q := range questions {
			require.Len(t, q.Options, domain.OptionCount)
			matches := 0
			for _, opt := range q.Options {
				if opt == q.CorrectAnswer {
					matches++
				}
			}
			assert.Equal(t, 1, matches,
				"seed %d: correct answer must appear exactly once in %q", seed, q.Prompt)
		}
	}
}

func TestGenerateExamQuestions_QuoteCadence(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)

	questions, err := gen.GenerateExamQuestions(context.Background(), macbethRequest(), 9)
	require.NoError(t, err)
	require.Len(t, questions, 9)

	// With quotes present, every third question analyses a quote and carries
	// the higher quote mark scale.
	for i, q := range questions {
		if (i+1)%3 == 0 {
			assert.Contains(t, q.Prompt, "significance of the quote", "question %d", i+1)
			assert.Equal(t, domain.DifficultyHard.QuoteQuestionMarks(), q.Marks)
		} else {
			assert.Contains(t, q.Prompt, "Which statement best describes", "question %d", i+1)
			assert.Equal(t, domain.DifficultyHard.QuestionMarks(), q.Marks)
		}
	}
}

func TestGenerateExamQuestions_NoQuotesMeansNoQuoteQuestions(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)

	questions, err := gen.GenerateExamQuestions(context.Background(), algebraRequest(), 9)
	require.NoError(t, err)

	for _, q := range questions {
		assert.NotContains(t, q.Prompt, "significance of the quote")
		assert.Equal(t, domain.DifficultyMedium.QuestionMarks(), q.Marks)
	}
}

func TestGenerateExamQuestions_SeededShuffleIsReproducible(t *testing.T) {
	t.Parallel()

	first := templategen.New(nil, templategen.WithSeed(99))
	second := templategen.New(nil, templategen.WithSeed(99))
	ctx := context.Background()

	a, err := first.GenerateExamQuestions(ctx, algebraRequest(), 5)
	require.NoError(t, err)
	b, err := second.GenerateExamQuestions(ctx, algebraRequest(), 5)
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, a[i].Options, b[i].Options, "question %d option order", i+1)
	}
}

func TestGenerateQuiz(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)
	lessonID := uuid.New()

	quiz, err := gen.GenerateQuiz(context.Background(), algebraRequest(), lessonID)
	require.NoError(t, err)

	assert.Equal(t, domain.QuizID(lessonID), quiz.ID)
	assert.Len(t, quiz.Questions, domain.QuizQuestionCount)
	assert.Equal(t, 30, quiz.TimeLimit)
}

func TestGenerateQuiz_TimeLimitScalesWithDifficulty(t *testing.T) {
	t.Parallel()

	gen := templategen.New(nil)
	ctx := context.Background()

	cases := []struct {
		difficulty domain.Difficulty
		want       int
	}{
		{domain.DifficultyEasy, 20},
		{domain.DifficultyMedium, 30},
		{domain.DifficultyHard, 45},
	}

	for _, tc := range cases {
		req := algebraRequest()
		req.Difficulty = tc.difficulty

		quiz, err := gen.GenerateQuiz(ctx, req, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, tc.want, quiz.TimeLimit, "difficulty %s", tc.difficulty)
	}
}
