// Package templategen implements generation.Generator with deterministic
// template interpolation over a static topic content table. It stands where a
// remote inference backend would otherwise sit: same interface, but every
// output is a pure function of the request (and the shuffle seed), which
// keeps content reproducible and cheap enough to produce inline.
package templategen

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/studyowl/studyowl-api/internal/domain"
	"github.com/studyowl/studyowl-api/internal/generation"
)

// Generator is the template-based implementation of generation.Generator.
type Generator struct {
	logger *slog.Logger

	// seed anchors the Fisher-Yates option shuffle. Shuffling is cosmetic:
	// it changes option order per question but never which option is correct.
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed fixes the option-shuffle seed so tests can assert exact orderings.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// New creates a template Generator. If logger is nil, the default logger is used.
func New(logger *slog.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Generator{
		logger: logger.With(slog.String("component", "template_generator")),
		seed:   1,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Ensure Generator implements the generation.Generator interface
var _ generation.Generator = (*Generator)(nil)

// GenerateNotes implements generation.Generator.GenerateNotes.
// The produced text always carries, in order: a level/difficulty header, an
// introduction, one paragraph per concept, one per worked example, a quote
// analysis section only when quotes were selected, a terminology section
// listing every key term, an application paragraph whose register follows the
// difficulty, and a fixed exam preparation checklist.
func (g *Generator) GenerateNotes(ctx context.Context, req generation.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	topic := req.TopicOrBook()
	focus := topic
	title := topic
	if req.Subtopic != "" {
		focus = req.Subtopic
		title = fmt.Sprintf("%s: %s", topic, req.Subtopic)
	}
	content := lookupFocusedContent(req.Subject, topic, req.Subtopic)

	var b strings.Builder

	fmt.Fprintf(&b, "# %s: %s Study Notes (%s)\n\n", title, req.Level, req.Difficulty)

	b.WriteString("## Introduction\n\n")
	b.WriteString(content.Introduction)
	b.WriteString("\n\n")

	b.WriteString("## Key Concepts\n\n")
	for i, concept := range content.Concepts {
		fmt.Fprintf(&b,
			"%d. **%s**: understanding %s is central to %s at %s level. "+
				"Work through it until you can explain it in your own words.\n\n",
			i+1, concept, concept, focus, req.Level)
	}

	b.WriteString("## Worked Examples\n\n")
	for i, example := range content.Examples {
		fmt.Fprintf(&b, "**Example %d.** %s\n\n", i+1, example)
	}

	if len(req.SelectedQuotes) > 0 {
		b.WriteString("## Quote Analysis\n\n")
		for _, quote := range req.SelectedQuotes {
			fmt.Fprintf(&b,
				"> %s\n\nConsider what this quote reveals about %s, the language "+
					"choices at work, and where in %s it carries the most weight.\n\n",
				quote, content.Concepts[0], topic)
		}
	}

	b.WriteString("## Key Terminology\n\n")
	for _, term := range content.KeyTerms {
		fmt.Fprintf(&b, "- **%s**: %s\n", term.Term, term.Definition)
	}
	b.WriteString("\n")

	b.WriteString("## Applying Your Knowledge\n\n")
	b.WriteString(applicationParagraph(req.Difficulty, focus))
	b.WriteString("\n\n")

	b.WriteString("## Exam Preparation Checklist\n\n")
	b.WriteString(examChecklist)

	g.logger.DebugContext(ctx, "generated notes",
		slog.String("subject", req.Subject),
		slog.String("topic", topic),
		slog.String("subtopic", req.Subtopic),
		slog.Int("length", b.Len()))

	return b.String(), nil
}

// applicationParagraph branches on difficulty: easy lessons rehearse
// fundamentals, medium ones transfer to new situations, hard ones demand
// critical analysis and evaluation.
func applicationParagraph(difficulty domain.Difficulty, topic string) string {
	switch difficulty {
	case domain.DifficultyEasy:
		return fmt.Sprintf(
			"Focus on mastering the fundamentals of %s. Repeat the worked examples "+
				"until each step feels routine, and check every answer against the "+
				"definitions above.", topic)
	case domain.DifficultyHard:
		return fmt.Sprintf(
			"Go beyond recall: critically analyse competing approaches to %s, "+
				"evaluate their strengths and limits, and construct arguments for "+
				"when each applies. Examiners at this level reward judgement, not "+
				"just accuracy.", topic)
	default:
		return fmt.Sprintf(
			"Practise applying the ideas of %s to new situations you have not seen "+
				"before. Start from the concepts, identify which one the problem "+
				"exercises, and adapt the nearest worked example.", topic)
	}
}

// examChecklist is the fixed closing section of every set of notes.
const examChecklist = `- [ ] Re-read each key concept and explain it aloud from memory
- [ ] Reproduce every worked example without looking at the solution
- [ ] Define all key terminology precisely
- [ ] Attempt past-paper questions under timed conditions
- [ ] Review anything you could not recall and repeat tomorrow
`

// GenerateFlashcards implements generation.Generator.GenerateFlashcards.
// Cards are drawn in priority order: one per key term, then one per concept,
// then one per selected quote, stopping at count or when the pools run dry.
func (g *Generator) GenerateFlashcards(
	ctx context.Context,
	req generation.Request,
	count int,
) ([]domain.Flashcard, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, generation.ErrInvalidCount
	}

	topic := req.TopicOrBook()
	content := lookupContent(req.Subject, topic)

	cards := make([]domain.Flashcard, 0, count)

	appendCard := func(question, answer string) error {
		card, err := domain.NewFlashcard(question, answer)
		if err != nil {
			return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
		}
		cards = append(cards, *card)
		return nil
	}

	for _, term := range content.KeyTerms {
		if len(cards) >= count {
			break
		}
		q := fmt.Sprintf("What is meant by %q in %s?", term.Term, topic)
		if err := appendCard(q, term.Definition); err != nil {
			return nil, err
		}
	}

	for _, concept := range content.Concepts {
		if len(cards) >= count {
			break
		}
		q := fmt.Sprintf("Explain the following aspect of %s: %s", topic, concept)
		a := fmt.Sprintf(
			"Describe %s in your own words, then connect it to a worked example from %s.",
			concept, topic)
		if err := appendCard(q, a); err != nil {
			return nil, err
		}
	}

	for _, quote := range req.SelectedQuotes {
		if len(cards) >= count {
			break
		}
		q := fmt.Sprintf("Analyse this quote from %s: %q", topic, quote)
		a := fmt.Sprintf(
			"Identify the technique at work, link the quote to %s, and explain its "+
				"significance in context.", content.Concepts[0])
		if err := appendCard(q, a); err != nil {
			return nil, err
		}
	}

	g.logger.DebugContext(ctx, "generated flashcards",
		slog.String("topic", topic),
		slog.Int("requested", count),
		slog.Int("produced", len(cards)))

	return cards, nil
}

// GenerateExamQuestions implements generation.Generator.GenerateExamQuestions.
// Question i draws its concept and example by i mod pool size; when quotes
// are present every third question becomes a quote-analysis question with its
// own higher mark scale.
func (g *Generator) GenerateExamQuestions(
	ctx context.Context,
	req generation.Request,
	count int,
) ([]domain.ExamQuestion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, generation.ErrInvalidCount
	}

	topic := req.TopicOrBook()
	content := lookupContent(req.Subject, topic)

	questions := make([]domain.ExamQuestion, 0, count)

	for i := 1; i <= count; i++ {
		var q *domain.ExamQuestion
		var err error

		if len(req.SelectedQuotes) > 0 && i%3 == 0 {
			quote := req.SelectedQuotes[(i/3-1)%len(req.SelectedQuotes)]
			concept := content.Concepts[(i-1)%len(content.Concepts)]
			q, err = g.quoteQuestion(req, topic, quote, concept, i)
		} else {
			concept := content.Concepts[(i-1)%len(content.Concepts)]
			q, err = g.conceptQuestion(req, topic, concept, i)
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
		}
		questions = append(questions, *q)
	}

	g.logger.DebugContext(ctx, "generated exam questions",
		slog.String("topic", topic),
		slog.Int("count", len(questions)))

	return questions, nil
}

// conceptQuestion builds a standard multiple-choice question. The correct
// option is the comprehensive, contextual phrasing; the distractors are the
// three fixed misdirections (partial answer, common misconception, unrelated
// concept).
func (g *Generator) conceptQuestion(
	req generation.Request,
	topic, concept string,
	index int,
) (*domain.ExamQuestion, error) {
	prompt := fmt.Sprintf(
		"Which statement best describes %s in the context of %s?", concept, topic)

	correct := fmt.Sprintf(
		"A comprehensive account of %s that places it in the wider context of %s.",
		concept, topic)

	options := []string{
		correct,
		fmt.Sprintf("A partially correct description of %s that misses key detail.", concept),
		fmt.Sprintf("A common misconception students hold about %s.", concept),
		fmt.Sprintf("A statement about an unrelated area of %s.", req.Subject),
	}
	g.shuffleOptions(options, index)

	return domain.NewExamQuestion(
		prompt,
		options,
		correct,
		fmt.Sprintf(
			"The strongest answer treats %s comprehensively and in context rather "+
				"than partially, mistakenly, or off-topic.", concept),
		fmt.Sprintf("Think about how %s fits into %s as a whole.", concept, topic),
		req.Difficulty.QuestionMarks(),
	)
}

// quoteQuestion builds a quote-analysis multiple-choice question. The correct
// option ties the quote to the concept; the distractors are fixed template
// misdirections.
func (g *Generator) quoteQuestion(
	req generation.Request,
	topic, quote, concept string,
	index int,
) (*domain.ExamQuestion, error) {
	prompt := fmt.Sprintf("What is the significance of the quote %q in %s?", quote, topic)

	correct := fmt.Sprintf(
		"It ties the quote directly to %s and shows its development in %s.",
		concept, topic)

	options := []string{
		correct,
		"It is a surface-level description with no link to the text's themes.",
		"It restates the plot without addressing language or meaning.",
		fmt.Sprintf("It concerns a different work than %s entirely.", topic),
	}
	g.shuffleOptions(options, index)

	return domain.NewExamQuestion(
		prompt,
		options,
		correct,
		fmt.Sprintf(
			"Quote analysis earns marks by connecting the language of the quote to "+
				"%s, not by retelling the plot.", concept),
		fmt.Sprintf("Consider which theme the quote advances: %s.", concept),
		req.Difficulty.QuoteQuestionMarks(),
	)
}

// shuffleOptions applies a seeded Fisher-Yates shuffle to the option order.
// The seed is offset by the question index so each question in a batch gets
// its own ordering while the whole batch stays reproducible.
func (g *Generator) shuffleOptions(options []string, index int) {
	rng := rand.New(rand.NewSource(g.seed + int64(index)))
	for i := len(options) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		options[i], options[j] = options[j], options[i]
	}
}

// GenerateQuiz implements generation.Generator.GenerateQuiz.
// A quiz is always exactly ten questions with a time limit scaled to the
// difficulty (easy 20, medium 30, hard 45 minutes).
func (g *Generator) GenerateQuiz(
	ctx context.Context,
	req generation.Request,
	lessonID uuid.UUID,
) (*domain.Quiz, error) {
	questions, err := g.GenerateExamQuestions(ctx, req, domain.QuizQuestionCount)
	if err != nil {
		return nil, err
	}

	quiz, err := domain.NewQuiz(lessonID, questions, req.Difficulty.QuizTimeLimit())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	g.logger.DebugContext(ctx, "generated quiz",
		slog.String("quiz_id", quiz.ID),
		slog.Int("time_limit", quiz.TimeLimit))

	return quiz, nil
}
