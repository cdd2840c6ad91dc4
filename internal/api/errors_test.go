package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studyowl/studyowl-api/internal/api"
	"github.com/studyowl/studyowl-api/internal/domain"
	"github.com/studyowl/studyowl-api/internal/service"
	"github.com/studyowl/studyowl-api/internal/service/auth"
	"github.com/studyowl/studyowl-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil-ish unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired refresh token", auth.ErrExpiredRefreshToken, http.StatusUnauthorized},
		{"quota exceeded", service.ErrQuotaExceeded, http.StatusForbidden},
		{"premium required", service.ErrPremiumRequired, http.StatusForbidden},
		{"lesson not found", service.ErrLessonNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"notes already generated", domain.ErrNotesAlreadyGenerated, http.StatusConflict},
		{"quiz already generated", domain.ErrQuizAlreadyGenerated, http.StatusConflict},
		{"progress out of range", domain.ErrProgressOutOfRange, http.StatusBadRequest},
		{"invalid difficulty", domain.ErrInvalidDifficulty, http.StatusBadRequest},
		{"wrapped sentinel", fmt.Errorf("context: %w", service.ErrQuotaExceeded), http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage_NeverLeaksInternals(t *testing.T) {
	t.Parallel()

	internal := errors.New("pq: connection refused dial tcp 10.0.0.5:5432")
	msg := api.GetSafeErrorMessage(internal)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "10.0.0.5")

	assert.Equal(t, "An unexpected error occurred", api.GetSafeErrorMessage(nil))
}

func TestGetSafeErrorMessage_KnownSentinels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Free lesson limit reached", api.GetSafeErrorMessage(service.ErrQuotaExceeded))
	assert.Equal(t, "Premium subscription required", api.GetSafeErrorMessage(service.ErrPremiumRequired))
	assert.Equal(t, "Lesson not found", api.GetSafeErrorMessage(service.ErrLessonNotFound))
	assert.Equal(t, "Flashcards already generated for this lesson",
		api.GetSafeErrorMessage(domain.ErrFlashcardsAlreadyGenerated))
}
