package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyowl/studyowl-api/internal/api"
	"github.com/studyowl/studyowl-api/internal/api/shared"
	"github.com/studyowl/studyowl-api/internal/domain"
	"github.com/studyowl/studyowl-api/internal/platform/logger"
	"github.com/studyowl/studyowl-api/internal/service"
	"github.com/studyowl/studyowl-api/internal/service/auth"
	"github.com/studyowl/studyowl-api/internal/store"
)

// stubUserService is a canned-response service.UserService for handler tests.
type stubUserService struct {
	user *domain.User
	err  error

	upgraded    []uuid.UUID
	deleted     []uuid.UUID
	newPassword string
}

func (s *stubUserService) GetUser(context.Context, uuid.UUID) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) GetUserByEmail(context.Context, string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) CreateUser(context.Context, string, string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) UpdateUserPassword(_ context.Context, _ uuid.UUID, newPassword string) error {
	s.newPassword = newPassword
	return s.err
}

func (s *stubUserService) UpgradeToPremium(_ context.Context, userID uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.upgraded = append(s.upgraded, userID)
	s.user.Premium = true
	return nil
}

func (s *stubUserService) DeleteUser(_ context.Context, userID uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, userID)
	return nil
}

// newAccountRouter mounts the handler the way the server router does, with
// the user ID pre-populated as the auth middleware would.
func newAccountRouter(
	t *testing.T,
	users service.UserService,
	lessons service.LessonService,
	userID uuid.UUID,
) http.Handler {
	t.Helper()

	_, log, cleanup := logger.SetupTestLogger(t, nil)
	t.Cleanup(cleanup)

	handler := api.NewAccountHandler(users, lessons, auth.NewBcryptVerifier(), log)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/account", handler.GetAccount)
	r.Post("/account/premium", handler.UpgradePremium)
	r.Patch("/account/password", handler.UpdatePassword)
	r.Delete("/account", handler.DeleteAccount)

	return r
}

func testAccountUser(t *testing.T, userID uuid.UUID, password string) *domain.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	return &domain.User{
		ID:             userID,
		Email:          "student@example.com",
		HashedPassword: hash,
	}
}

func TestGetAccount(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := &stubUserService{user: testAccountUser(t, userID, "correct horse battery")}
	router := newAccountRouter(t, users, &stubLessonService{}, userID)

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.AccountResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, userID, resp.UserID)
	assert.Equal(t, "student@example.com", resp.Email)
	assert.False(t, resp.Premium)
}

func TestGetAccount_UnknownUser(t *testing.T) {
	t.Parallel()

	users := &stubUserService{err: store.ErrUserNotFound}
	router := newAccountRouter(t, users, &stubLessonService{}, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpgradePremium(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := &stubUserService{user: testAccountUser(t, userID, "correct horse battery")}
	router := newAccountRouter(t, users, &stubLessonService{}, userID)

	req := httptest.NewRequest(http.MethodPost, "/account/premium", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{userID}, users.upgraded)

	var resp api.AccountResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Premium)
}

func TestUpdatePassword(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := &stubUserService{user: testAccountUser(t, userID, "correct horse battery")}
	router := newAccountRouter(t, users, &stubLessonService{}, userID)

	body, err := json.Marshal(api.UpdatePasswordRequest{
		CurrentPassword: "correct horse battery",
		NewPassword:     "entirely new password",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/account/password", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "entirely new password", users.newPassword)
}

func TestUpdatePassword_WrongCurrentPassword(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := &stubUserService{user: testAccountUser(t, userID, "correct horse battery")}
	router := newAccountRouter(t, users, &stubLessonService{}, userID)

	body, err := json.Marshal(api.UpdatePasswordRequest{
		CurrentPassword: "not my password",
		NewPassword:     "entirely new password",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/account/password", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, users.newPassword)
}

func TestUpdatePassword_NewPasswordTooShort(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := &stubUserService{user: testAccountUser(t, userID, "correct horse battery")}
	router := newAccountRouter(t, users, &stubLessonService{}, userID)

	body, err := json.Marshal(api.UpdatePasswordRequest{
		CurrentPassword: "correct horse battery",
		NewPassword:     "short",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/account/password", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, users.newPassword)
}

func TestDeleteAccount(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := &stubUserService{user: testAccountUser(t, userID, "correct horse battery")}
	lessons := &stubLessonService{}
	router := newAccountRouter(t, users, lessons, userID)

	req := httptest.NewRequest(http.MethodDelete, "/account", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uuid.UUID{userID}, lessons.purged)
	assert.Equal(t, []uuid.UUID{userID}, users.deleted)
}
