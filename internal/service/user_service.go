package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studyowl/studyowl-api/internal/domain"
	"github.com/studyowl/studyowl-api/internal/store"
)

// UserService provides account-level operations on top of the user store.
// Mutating operations run inside a database transaction.
type UserService interface {
	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetUserByEmail retrieves a user by their email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// CreateUser creates a new user with the specified email and password.
	CreateUser(ctx context.Context, email, password string) (*domain.User, error)

	// UpdateUserPassword replaces a user's password. The store hashes the new
	// password before persisting it.
	UpdateUserPassword(ctx context.Context, userID uuid.UUID, newPassword string) error

	// UpgradeToPremium flips the user's subscription tier to premium.
	// Upgrading an already-premium user is a no-op.
	UpgradeToPremium(ctx context.Context, userID uuid.UUID) error

	// DeleteUser removes a user's account.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger

	// transact wraps mutating operations in a database transaction. Tests
	// replace it to run the function without a live database.
	transact func(ctx context.Context, fn store.TxFn) error
}

// Ensure UserServiceImpl implements the UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService backed by the given store and
// database handle.
func NewUserService(userStore store.UserStore, db *sql.DB, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		userStore: userStore,
		logger:    logger.With("component", "user_service"),
		transact: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}
}

// GetUser retrieves a user by their ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found", "user_id", userID)
		} else {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found by email", "email", email)
		} else {
			s.logger.Error("failed to retrieve user by email", "error", err, "email", email)
		}
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

// CreateUser creates a new user with the specified email and password.
func (s *UserServiceImpl) CreateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	err = s.transact(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to create user with existing email", "email", email)
		} else {
			s.logger.Error("failed to save user", "error", err, "email", email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// UpdateUserPassword replaces a user's password. It retrieves the complete
// user first so the store receives a full entity to validate and persist.
func (s *UserServiceImpl) UpdateUserPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	return s.transact(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for update: %w", err)
		}

		user.Password = newPassword
		if err := txStore.Update(ctx, user); err != nil {
			s.logger.Error("failed to update password", "error", err, "user_id", userID)
			return fmt.Errorf("failed to update password: %w", err)
		}

		s.logger.Info("password updated", "user_id", userID)
		return nil
	})
}

// UpgradeToPremium flips the user's subscription tier to premium.
func (s *UserServiceImpl) UpgradeToPremium(ctx context.Context, userID uuid.UUID) error {
	return s.transact(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).SetPremium(ctx, userID, true); err != nil {
			if !errors.Is(err, store.ErrUserNotFound) {
				s.logger.Error("failed to upgrade user", "error", err, "user_id", userID)
			}
			return fmt.Errorf("failed to upgrade user: %w", err)
		}

		s.logger.Info("user upgraded to premium", "user_id", userID)
		return nil
	})
}

// DeleteUser removes a user's account.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.transact(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Delete(ctx, userID); err != nil {
			if !errors.Is(err, store.ErrUserNotFound) {
				s.logger.Error("failed to delete user", "error", err, "user_id", userID)
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}

		s.logger.Info("user deleted", "user_id", userID)
		return nil
	})
}
