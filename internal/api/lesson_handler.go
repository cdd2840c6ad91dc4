// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/studyowl/studyowl-api/internal/api/shared"
	"github.com/studyowl/studyowl-api/internal/domain"
	"github.com/studyowl/studyowl-api/internal/platform/logger"
	"github.com/studyowl/studyowl-api/internal/service"
)

// DefaultFlashcardCount is the number of cards generated when the request
// does not name one.
const DefaultFlashcardCount = 10

// LessonHandler handles lesson-related HTTP requests
type LessonHandler struct {
	lessonService service.LessonService
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewLessonHandler creates a new LessonHandler
func NewLessonHandler(lessonService service.LessonService, logger *slog.Logger) *LessonHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LessonHandler")
	}

	return &LessonHandler{
		lessonService: lessonService,
		validator:     validator.New(),
		logger:        logger.With(slog.String("component", "lesson_handler")),
	}
}

// CreateLesson handles POST /lessons requests.
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	lesson, err := h.lessonService.CreateLesson(r.Context(), userID, service.CreateLessonParams{
		Subject:        req.Subject,
		Topic:          req.Topic,
		Book:           req.Book,
		Level:          req.Level,
		Difficulty:     domain.Difficulty(req.Difficulty),
		SelectedQuotes: req.SelectedQuotes,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("lesson created",
		slog.String("lesson_id", lesson.ID.String()),
		slog.String("user_id", userID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, NewLessonResponse(lesson))
}

// ListLessons handles GET /lessons requests. The response includes the
// caller's remaining quota headroom alongside the collection.
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	lessons, err := h.lessonService.GetLessons(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	remaining, err := h.lessonService.RemainingLessons(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := LessonListResponse{
		Lessons:          make([]LessonResponse, len(lessons)),
		RemainingLessons: remaining,
	}
	for i, lesson := range lessons {
		resp.Lessons[i] = NewLessonResponse(lesson)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetLesson handles GET /lessons/{id} requests.
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	userID, lessonID, ok := requireUserAndLessonID(w, r)
	if !ok {
		return
	}

	lesson, err := h.lessonService.GetLesson(r.Context(), userID, lessonID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewLessonResponse(lesson))
}

// DeleteLesson handles DELETE /lessons/{id} requests. Deletion is idempotent,
// so an absent lesson still yields 204.
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, lessonID, ok := requireUserAndLessonID(w, r)
	if !ok {
		return
	}

	if err := h.lessonService.DeleteLesson(r.Context(), userID, lessonID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("lesson deleted",
		slog.String("lesson_id", lessonID.String()),
		slog.String("user_id", userID.String()))

	w.WriteHeader(http.StatusNoContent)
}

// UpdateProgress handles PATCH /lessons/{id}/progress requests.
func (h *LessonHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID, lessonID, ok := requireUserAndLessonID(w, r)
	if !ok {
		return
	}

	var req UpdateProgressRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	lesson, err := h.lessonService.UpdateLessonProgress(r.Context(), userID, lessonID, *req.Progress)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewLessonResponse(lesson))
}

// GenerateNotes handles POST /lessons/{id}/notes requests.
// The body is optional; a subtopic narrows the notes to one area of the topic.
func (h *LessonHandler) GenerateNotes(w http.ResponseWriter, r *http.Request) {
	userID, lessonID, ok := requireUserAndLessonID(w, r)
	if !ok {
		return
	}

	var subtopic string
	if r.ContentLength > 0 {
		var req GenerateNotesRequest
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
		if err := h.validator.Struct(req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
			return
		}
		subtopic = req.Subtopic
	}

	lesson, err := h.lessonService.GenerateNotes(r.Context(), userID, lessonID, subtopic)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewLessonResponse(lesson))
}

// GenerateFlashcards handles POST /lessons/{id}/flashcards requests.
// The body is optional; an empty body generates the default number of cards.
func (h *LessonHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, lessonID, ok := requireUserAndLessonID(w, r)
	if !ok {
		return
	}

	count := DefaultFlashcardCount
	if r.ContentLength > 0 {
		var req GenerateFlashcardsRequest
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
		if err := h.validator.Struct(req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
			return
		}
		if req.Count > 0 {
			count = req.Count
		}
	}

	lesson, err := h.lessonService.GenerateFlashcards(r.Context(), userID, lessonID, count)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewLessonResponse(lesson))
}

// GenerateQuiz handles POST /lessons/{id}/quiz requests.
func (h *LessonHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, lessonID, ok := requireUserAndLessonID(w, r)
	if !ok {
		return
	}

	lesson, err := h.lessonService.GenerateQuiz(r.Context(), userID, lessonID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewLessonResponse(lesson))
}
