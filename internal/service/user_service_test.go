package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyowl/studyowl-api/internal/domain"
	"github.com/studyowl/studyowl-api/internal/platform/logger"
	"github.com/studyowl/studyowl-api/internal/store"
)

// mockUserStore is a configurable store.UserStore for user service tests.
type mockUserStore struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	updateFn     func(ctx context.Context, user *domain.User) error
	setPremiumFn func(ctx context.Context, id uuid.UUID, premium bool) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, user)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFn == nil {
		return nil, store.ErrUserNotFound
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn == nil {
		return nil, store.ErrUserNotFound
	}
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, user)
}

func (m *mockUserStore) SetPremium(ctx context.Context, id uuid.UUID, premium bool) error {
	if m.setPremiumFn == nil {
		return nil
	}
	return m.setPremiumFn(ctx, id, premium)
}

func (m *mockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockUserStore) WithTx(_ *sql.Tx) store.UserStore {
	return m
}

func newTestUserService(t *testing.T, userStore store.UserStore) *UserServiceImpl {
	t.Helper()

	_, log, cleanup := logger.SetupTestLogger(t, nil)
	t.Cleanup(cleanup)

	svc := NewUserService(userStore, nil, log)
	svc.transact = func(ctx context.Context, fn store.TxFn) error {
		return fn(ctx, nil)
	}
	return svc
}

func TestUserService_CreateUser(t *testing.T) {
	t.Parallel()

	var created *domain.User
	mockStore := &mockUserStore{
		createFn: func(_ context.Context, user *domain.User) error {
			created = user
			return nil
		},
	}
	svc := newTestUserService(t, mockStore)

	user, err := svc.CreateUser(context.Background(), "student@example.com", "correct horse battery")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "student@example.com", user.Email)
	assert.False(t, user.Premium)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	mockStore := &mockUserStore{
		createFn: func(_ context.Context, _ *domain.User) error {
			return store.ErrEmailExists
		},
	}
	svc := newTestUserService(t, mockStore)

	_, err := svc.CreateUser(context.Background(), "taken@example.com", "correct horse battery")
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUserService_CreateUser_InvalidPassword(t *testing.T) {
	t.Parallel()

	storeCalled := false
	mockStore := &mockUserStore{
		createFn: func(_ context.Context, _ *domain.User) error {
			storeCalled = true
			return nil
		},
	}
	svc := newTestUserService(t, mockStore)

	_, err := svc.CreateUser(context.Background(), "student@example.com", "short")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	assert.False(t, storeCalled)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(t, &mockUserStore{})

	_, err := svc.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_UpgradeToPremium(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var gotID uuid.UUID
	var gotPremium bool
	mockStore := &mockUserStore{
		setPremiumFn: func(_ context.Context, id uuid.UUID, premium bool) error {
			gotID = id
			gotPremium = premium
			return nil
		},
	}
	svc := newTestUserService(t, mockStore)

	require.NoError(t, svc.UpgradeToPremium(context.Background(), userID))
	assert.Equal(t, userID, gotID)
	assert.True(t, gotPremium)
}

func TestUserService_UpgradeToPremium_UnknownUser(t *testing.T) {
	t.Parallel()

	mockStore := &mockUserStore{
		setPremiumFn: func(_ context.Context, _ uuid.UUID, _ bool) error {
			return store.ErrUserNotFound
		},
	}
	svc := newTestUserService(t, mockStore)

	err := svc.UpgradeToPremium(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_UpdateUserPassword(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	existing := &domain.User{
		ID:             userID,
		Email:          "student@example.com",
		HashedPassword: "$2a$10$existinghash",
	}

	var updated *domain.User
	mockStore := &mockUserStore{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.User, error) {
			return existing, nil
		},
		updateFn: func(_ context.Context, user *domain.User) error {
			updated = user
			return nil
		},
	}
	svc := newTestUserService(t, mockStore)

	require.NoError(t, svc.UpdateUserPassword(context.Background(), userID, "entirely new password"))
	require.NotNil(t, updated)
	assert.Equal(t, userID, updated.ID)
	assert.Equal(t, "entirely new password", updated.Password)
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var gotID uuid.UUID
	mockStore := &mockUserStore{
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			gotID = id
			return nil
		},
	}
	svc := newTestUserService(t, mockStore)

	require.NoError(t, svc.DeleteUser(context.Background(), userID))
	assert.Equal(t, userID, gotID)
}
