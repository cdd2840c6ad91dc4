package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/studyowl/studyowl-api/internal/api/shared"
	"github.com/studyowl/studyowl-api/internal/domain"
	"github.com/studyowl/studyowl-api/internal/platform/logger"
	"github.com/studyowl/studyowl-api/internal/service"
	"github.com/studyowl/studyowl-api/internal/service/auth"
)

// AccountHandler handles account-level HTTP requests: profile, subscription
// upgrade, password change, and account deletion.
type AccountHandler struct {
	userService      service.UserService
	lessonService    service.LessonService
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
	logger           *slog.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(
	userService service.UserService,
	lessonService service.LessonService,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AccountHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AccountHandler")
	}

	return &AccountHandler{
		userService:      userService,
		lessonService:    lessonService,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
		logger:           logger.With(slog.String("component", "account_handler")),
	}
}

// GetAccount handles GET /account requests.
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AccountResponse{
		UserID:    user.ID,
		Email:     user.Email,
		Premium:   user.Premium,
		CreatedAt: user.CreatedAt,
	})
}

// UpgradePremium handles POST /account/premium requests. Payment processing
// happens out of band; this endpoint records the resulting tier change.
func (h *AccountHandler) UpgradePremium(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	if err := h.userService.UpgradeToPremium(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("account upgraded to premium", slog.String("user_id", userID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, AccountResponse{
		UserID:    user.ID,
		Email:     user.Email,
		Premium:   user.Premium,
		CreatedAt: user.CreatedAt,
	})
}

// UpdatePassword handles PATCH /account/password requests. The current
// password must verify before the new one is accepted.
func (h *AccountHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req UpdatePasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.CurrentPassword); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := h.userService.UpdateUserPassword(r.Context(), userID, req.NewPassword); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("password changed", slog.String("user_id", userID.String()))

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAccount handles DELETE /account requests. The user's lesson
// collection is purged along with the account.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	if err := h.lessonService.Purge(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("account deleted", slog.String("user_id", userID.String()))

	w.WriteHeader(http.StatusNoContent)
}
