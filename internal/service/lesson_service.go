package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/studyowl/studyowl-api/internal/domain"
	"github.com/studyowl/studyowl-api/internal/domain/entitlement"
	"github.com/studyowl/studyowl-api/internal/generation"
	"github.com/studyowl/studyowl-api/internal/store"
)

// IdentityProvider supplies the subscription tier of a user. The lesson
// service consults it on every gated call so tier changes apply immediately.
type IdentityProvider interface {
	// IsPremium reports whether the given user holds a premium subscription.
	IsPremium(ctx context.Context, userID uuid.UUID) (bool, error)
}

// CreateLessonParams carries the classification of a new lesson.
type CreateLessonParams struct {
	Subject        string
	Topic          string
	Book           string
	Level          string
	Difficulty     domain.Difficulty
	SelectedQuotes []string
}

// LessonService provides lesson lifecycle operations for the signed-in user:
// creation under the free-tier quota, one-way content generation, progress
// tracking, and deletion. Every successful mutation persists the whole
// collection to the user's durable blob slot.
type LessonService interface {
	// CreateLesson creates a new empty lesson for the user.
	// Returns ErrQuotaExceeded when a free-tier user is at the lesson cap.
	CreateLesson(ctx context.Context, userID uuid.UUID, params CreateLessonParams) (*domain.Lesson, error)

	// GetLessons returns the user's lessons, newest first.
	GetLessons(ctx context.Context, userID uuid.UUID) ([]*domain.Lesson, error)

	// GetLesson returns one lesson by ID.
	// Returns ErrLessonNotFound if the lesson is not in the user's collection.
	GetLesson(ctx context.Context, userID, lessonID uuid.UUID) (*domain.Lesson, error)

	// GenerateNotes populates the lesson's study notes. A non-empty subtopic
	// narrows the notes to one area of the lesson's topic.
	// Returns ErrLessonNotFound or domain.ErrNotesAlreadyGenerated.
	GenerateNotes(ctx context.Context, userID, lessonID uuid.UUID, subtopic string) (*domain.Lesson, error)

	// GenerateFlashcards populates the lesson's flashcards.
	// Returns ErrPremiumRequired for free-tier users, ErrLessonNotFound, or
	// domain.ErrFlashcardsAlreadyGenerated.
	GenerateFlashcards(ctx context.Context, userID, lessonID uuid.UUID, count int) (*domain.Lesson, error)

	// GenerateQuiz populates the lesson's quiz and exam questions.
	// Returns ErrLessonNotFound or domain.ErrQuizAlreadyGenerated.
	GenerateQuiz(ctx context.Context, userID, lessonID uuid.UUID) (*domain.Lesson, error)

	// UpdateLessonProgress overwrites the lesson's progress percentage.
	// Returns domain.ErrProgressOutOfRange for values outside 0-100.
	UpdateLessonProgress(ctx context.Context, userID, lessonID uuid.UUID, progress int) (*domain.Lesson, error)

	// DeleteLesson removes the lesson from the user's collection.
	// Deleting an absent lesson is not an error.
	DeleteLesson(ctx context.Context, userID, lessonID uuid.UUID) error

	// RemainingLessons reports how many more lessons the user may create.
	// Returns entitlement.Unlimited for premium users.
	RemainingLessons(ctx context.Context, userID uuid.UUID) (int, error)

	// Deactivate drops the user's in-memory collection, e.g. on sign-out.
	// The persisted blob slot is untouched and reloads on next activation.
	Deactivate(userID uuid.UUID)

	// Purge drops the user's in-memory collection and deletes the persisted
	// blob slot. Called when the account is deleted.
	Purge(ctx context.Context, userID uuid.UUID) error
}

// LessonServiceError wraps errors from the lesson service with context.
type LessonServiceError struct {
	// Operation is the operation that failed (e.g., "create_lesson")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for LessonServiceError.
func (e *LessonServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lesson service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("lesson service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LessonServiceError) Unwrap() error {
	return e.Err
}

// blobSchemaVersion is the current shape of the persisted lesson envelope.
// Loads reject versions this build does not know.
const blobSchemaVersion = 1

// lessonBlob is the persisted envelope for one user's lesson collection.
type lessonBlob struct {
	SchemaVersion int             `json:"schema_version"`
	Lessons       []domain.Lesson `json:"lessons"`
}

// lessonSession is the in-memory collection for one activated user. All
// reads and mutations of the collection happen under mu, which also covers
// the populated-check before a generation call: overlapping generation
// requests serialize, and the loser observes the winner's write.
type lessonSession struct {
	mu      sync.Mutex
	lessons []*domain.Lesson
}

// lessonServiceImpl implements the LessonService interface.
type lessonServiceImpl struct {
	blobs     store.BlobStore
	identity  IdentityProvider
	generator generation.Generator
	policy    entitlement.Policy
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*lessonSession
}

// NewLessonService creates a new LessonService.
// It returns an error if any of the required dependencies are nil.
func NewLessonService(
	blobs store.BlobStore,
	identity IdentityProvider,
	generator generation.Generator,
	policy entitlement.Policy,
	logger *slog.Logger,
) (LessonService, error) {
	if blobs == nil {
		return nil, &LessonServiceError{Operation: "create_service", Message: "blobs cannot be nil"}
	}
	if identity == nil {
		return nil, &LessonServiceError{Operation: "create_service", Message: "identity cannot be nil"}
	}
	if generator == nil {
		return nil, &LessonServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if policy == nil {
		return nil, &LessonServiceError{Operation: "create_service", Message: "policy cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &lessonServiceImpl{
		blobs:     blobs,
		identity:  identity,
		generator: generator,
		policy:    policy,
		logger:    logger.With("component", "lesson_service"),
		sessions:  make(map[uuid.UUID]*lessonSession),
	}, nil
}

// session returns the user's in-memory session, activating it from the blob
// slot on first access. An absent slot activates an empty collection.
func (s *lessonServiceImpl) session(ctx context.Context, userID uuid.UUID) (*lessonSession, error) {
	s.mu.Lock()
	if sess, ok := s.sessions[userID]; ok {
		s.mu.Unlock()
		return sess, nil
	}
	s.mu.Unlock()

	lessons, err := s.loadLessons(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have activated the session while we were loading.
	if sess, ok := s.sessions[userID]; ok {
		return sess, nil
	}

	sess := &lessonSession{lessons: lessons}
	s.sessions[userID] = sess

	s.logger.Info("lesson session activated",
		"user_id", userID,
		"lesson_count", len(lessons))

	return sess, nil
}

// loadLessons reads and decodes the user's blob slot.
func (s *lessonServiceImpl) loadLessons(ctx context.Context, userID uuid.UUID) ([]*domain.Lesson, error) {
	raw, err := s.blobs.Get(ctx, store.BlobKey(userID.String()))
	if err != nil {
		if errors.Is(err, store.ErrBlobNotFound) {
			return []*domain.Lesson{}, nil
		}
		s.logger.Error("failed to load lesson blob",
			"error", err,
			"user_id", userID)
		return nil, &LessonServiceError{
			Operation: "activate",
			Message:   "failed to load lesson collection",
			Err:       err,
		}
	}

	var blob lessonBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		s.logger.Error("failed to decode lesson blob",
			"error", err,
			"user_id", userID)
		return nil, &LessonServiceError{
			Operation: "activate",
			Message:   "failed to decode lesson collection",
			Err:       err,
		}
	}

	if blob.SchemaVersion != blobSchemaVersion {
		s.logger.Error("lesson blob has unsupported schema version",
			"user_id", userID,
			"version", blob.SchemaVersion)
		return nil, fmt.Errorf("%w: version %d", store.ErrUnsupportedSchema, blob.SchemaVersion)
	}

	lessons := make([]*domain.Lesson, len(blob.Lessons))
	for i := range blob.Lessons {
		lessons[i] = &blob.Lessons[i]
	}
	return lessons, nil
}

// persist serializes the given collection into the user's blob slot. It is
// called with the session lock held, before the new collection is committed
// to the session, so a failed write leaves memory and disk consistent.
func (s *lessonServiceImpl) persist(ctx context.Context, userID uuid.UUID, lessons []*domain.Lesson) error {
	blob := lessonBlob{
		SchemaVersion: blobSchemaVersion,
		Lessons:       make([]domain.Lesson, len(lessons)),
	}
	for i, lesson := range lessons {
		blob.Lessons[i] = *lesson
	}

	raw, err := json.Marshal(blob)
	if err != nil {
		return &LessonServiceError{
			Operation: "persist",
			Message:   "failed to serialize lesson collection",
			Err:       err,
		}
	}

	if err := s.blobs.Set(ctx, store.BlobKey(userID.String()), raw); err != nil {
		s.logger.Error("failed to persist lesson collection",
			"error", err,
			"user_id", userID)
		return &LessonServiceError{
			Operation: "persist",
			Message:   "failed to write lesson collection",
			Err:       err,
		}
	}

	return nil
}

// CreateLesson implements LessonService.CreateLesson.
func (s *lessonServiceImpl) CreateLesson(
	ctx context.Context,
	userID uuid.UUID,
	params CreateLessonParams,
) (*domain.Lesson, error) {
	premium, err := s.identity.IsPremium(ctx, userID)
	if err != nil {
		return nil, &LessonServiceError{
			Operation: "create_lesson",
			Message:   "failed to resolve subscription tier",
			Err:       err,
		}
	}

	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !s.policy.CanCreateLesson(premium, len(sess.lessons)) {
		s.logger.Info("lesson creation denied by quota",
			"user_id", userID,
			"lesson_count", len(sess.lessons))
		return nil, ErrQuotaExceeded
	}

	lesson, err := domain.NewLesson(
		params.Subject,
		params.Topic,
		params.Book,
		params.Level,
		params.Difficulty,
		params.SelectedQuotes,
	)
	if err != nil {
		return nil, &LessonServiceError{
			Operation: "create_lesson",
			Message:   "failed to create lesson object",
			Err:       err,
		}
	}

	// Newest-first ordering: new lessons are prepended.
	next := append([]*domain.Lesson{lesson}, sess.lessons...)
	if err := s.persist(ctx, userID, next); err != nil {
		return nil, err
	}
	sess.lessons = next

	s.logger.Info("lesson created successfully",
		"lesson_id", lesson.ID,
		"user_id", userID,
		"subject", lesson.Subject)

	c := *lesson
	return &c, nil
}

// GetLessons implements LessonService.GetLessons.
func (s *lessonServiceImpl) GetLessons(ctx context.Context, userID uuid.UUID) ([]*domain.Lesson, error) {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Return copies so callers cannot mutate session state outside the lock.
	out := make([]*domain.Lesson, len(sess.lessons))
	for i, lesson := range sess.lessons {
		c := *lesson
		out[i] = &c
	}
	return out, nil
}

// GetLesson implements LessonService.GetLesson.
func (s *lessonServiceImpl) GetLesson(ctx context.Context, userID, lessonID uuid.UUID) (*domain.Lesson, error) {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	_, lesson := findLesson(sess.lessons, lessonID)
	if lesson == nil {
		return nil, ErrLessonNotFound
	}
	c := *lesson
	return &c, nil
}

// generationRequest builds the generator request from a lesson's classification.
func generationRequest(lesson *domain.Lesson) generation.Request {
	return generation.Request{
		Subject:        lesson.Subject,
		Topic:          lesson.Topic,
		Book:           lesson.Book,
		Level:          lesson.Level,
		Difficulty:     lesson.Difficulty,
		SelectedQuotes: lesson.SelectedQuotes,
	}
}

// mutateLesson applies fn to a copy of the identified lesson, persists the
// resulting collection, and only then commits it to the session. The check
// inside fn and the commit happen under the same session lock, which closes
// the regenerate race: two overlapping calls cannot both pass a
// "not yet generated" check.
func (s *lessonServiceImpl) mutateLesson(
	ctx context.Context,
	userID, lessonID uuid.UUID,
	fn func(lesson *domain.Lesson) error,
) (*domain.Lesson, error) {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	idx, current := findLesson(sess.lessons, lessonID)
	if current == nil {
		return nil, ErrLessonNotFound
	}

	updated := *current
	if err := fn(&updated); err != nil {
		return nil, err
	}

	next := make([]*domain.Lesson, len(sess.lessons))
	copy(next, sess.lessons)
	next[idx] = &updated

	if err := s.persist(ctx, userID, next); err != nil {
		return nil, err
	}
	sess.lessons = next

	// The caller gets its own copy; &updated now lives in the session.
	result := updated
	return &result, nil
}

// GenerateNotes implements LessonService.GenerateNotes.
func (s *lessonServiceImpl) GenerateNotes(ctx context.Context, userID, lessonID uuid.UUID, subtopic string) (*domain.Lesson, error) {
	lesson, err := s.mutateLesson(ctx, userID, lessonID, func(lesson *domain.Lesson) error {
		if lesson.HasNotes() {
			return domain.ErrNotesAlreadyGenerated
		}

		req := generationRequest(lesson)
		req.Subtopic = subtopic
		notes, err := s.generator.GenerateNotes(ctx, req)
		if err != nil {
			return &LessonServiceError{
				Operation: "generate_notes",
				Message:   "content generation failed",
				Err:       err,
			}
		}
		return lesson.SetNotes(notes)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("lesson notes generated",
		"lesson_id", lessonID,
		"user_id", userID)
	return lesson, nil
}

// GenerateFlashcards implements LessonService.GenerateFlashcards.
func (s *lessonServiceImpl) GenerateFlashcards(
	ctx context.Context,
	userID, lessonID uuid.UUID,
	count int,
) (*domain.Lesson, error) {
	premium, err := s.identity.IsPremium(ctx, userID)
	if err != nil {
		return nil, &LessonServiceError{
			Operation: "generate_flashcards",
			Message:   "failed to resolve subscription tier",
			Err:       err,
		}
	}

	if !s.policy.CanGenerateFlashcards(premium) {
		s.logger.Info("flashcard generation denied for free tier",
			"user_id", userID,
			"lesson_id", lessonID)
		return nil, ErrPremiumRequired
	}

	lesson, err := s.mutateLesson(ctx, userID, lessonID, func(lesson *domain.Lesson) error {
		if lesson.HasFlashcards() {
			return domain.ErrFlashcardsAlreadyGenerated
		}

		cards, err := s.generator.GenerateFlashcards(ctx, generationRequest(lesson), count)
		if err != nil {
			return &LessonServiceError{
				Operation: "generate_flashcards",
				Message:   "content generation failed",
				Err:       err,
			}
		}
		return lesson.SetFlashcards(cards)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("lesson flashcards generated",
		"lesson_id", lessonID,
		"user_id", userID,
		"card_count", len(lesson.Flashcards))
	return lesson, nil
}

// GenerateQuiz implements LessonService.GenerateQuiz.
func (s *lessonServiceImpl) GenerateQuiz(ctx context.Context, userID, lessonID uuid.UUID) (*domain.Lesson, error) {
	lesson, err := s.mutateLesson(ctx, userID, lessonID, func(lesson *domain.Lesson) error {
		if lesson.HasQuiz() {
			return domain.ErrQuizAlreadyGenerated
		}

		quiz, err := s.generator.GenerateQuiz(ctx, generationRequest(lesson), lesson.ID)
		if err != nil {
			return &LessonServiceError{
				Operation: "generate_quiz",
				Message:   "content generation failed",
				Err:       err,
			}
		}
		return lesson.SetQuiz(quiz)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("lesson quiz generated",
		"lesson_id", lessonID,
		"user_id", userID,
		"time_limit", lesson.Quiz.TimeLimit)
	return lesson, nil
}

// UpdateLessonProgress implements LessonService.UpdateLessonProgress.
func (s *lessonServiceImpl) UpdateLessonProgress(
	ctx context.Context,
	userID, lessonID uuid.UUID,
	progress int,
) (*domain.Lesson, error) {
	return s.mutateLesson(ctx, userID, lessonID, func(lesson *domain.Lesson) error {
		return lesson.SetProgress(progress)
	})
}

// DeleteLesson implements LessonService.DeleteLesson.
// Deletion is idempotent: removing an absent lesson succeeds without a write.
func (s *lessonServiceImpl) DeleteLesson(ctx context.Context, userID, lessonID uuid.UUID) error {
	sess, err := s.session(ctx, userID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	idx, lesson := findLesson(sess.lessons, lessonID)
	if lesson == nil {
		return nil
	}

	next := make([]*domain.Lesson, 0, len(sess.lessons)-1)
	next = append(next, sess.lessons[:idx]...)
	next = append(next, sess.lessons[idx+1:]...)

	if err := s.persist(ctx, userID, next); err != nil {
		return err
	}
	sess.lessons = next

	s.logger.Info("lesson deleted",
		"lesson_id", lessonID,
		"user_id", userID)
	return nil
}

// RemainingLessons implements LessonService.RemainingLessons.
func (s *lessonServiceImpl) RemainingLessons(ctx context.Context, userID uuid.UUID) (int, error) {
	premium, err := s.identity.IsPremium(ctx, userID)
	if err != nil {
		return 0, &LessonServiceError{
			Operation: "remaining_lessons",
			Message:   "failed to resolve subscription tier",
			Err:       err,
		}
	}

	sess, err := s.session(ctx, userID)
	if err != nil {
		return 0, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return s.policy.RemainingLessons(premium, len(sess.lessons)), nil
}

// Deactivate implements LessonService.Deactivate.
func (s *lessonServiceImpl) Deactivate(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; ok {
		delete(s.sessions, userID)
		s.logger.Info("lesson session deactivated", "user_id", userID)
	}
}

// Purge implements LessonService.Purge.
func (s *lessonServiceImpl) Purge(ctx context.Context, userID uuid.UUID) error {
	s.Deactivate(userID)

	if err := s.blobs.Delete(ctx, store.BlobKey(userID.String())); err != nil {
		s.logger.Error("failed to delete lesson blob", "error", err, "user_id", userID)
		return &LessonServiceError{
			Operation: "purge",
			Message:   "failed to delete persisted lessons",
			Err:       err,
		}
	}

	s.logger.Info("lesson collection purged", "user_id", userID)
	return nil
}

// findLesson locates a lesson by ID in the collection.
// Returns (-1, nil) when absent.
func findLesson(lessons []*domain.Lesson, lessonID uuid.UUID) (int, *domain.Lesson) {
	for i, lesson := range lessons {
		if lesson.ID == lessonID {
			return i, lesson
		}
	}
	return -1, nil
}
