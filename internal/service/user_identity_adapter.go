package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/studyowl/studyowl-api/internal/store"
)

// userIdentityAdapter adapts a store.UserStore to the IdentityProvider
// interface consumed by the lesson service.
type userIdentityAdapter struct {
	userStore store.UserStore
}

// NewUserIdentityAdapter creates an IdentityProvider backed by the user store.
func NewUserIdentityAdapter(userStore store.UserStore) (IdentityProvider, error) {
	if userStore == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	return &userIdentityAdapter{userStore: userStore}, nil
}

// IsPremium implements IdentityProvider.IsPremium by looking up the user's
// current subscription flag. The flag is read fresh on each call so an
// upgrade or downgrade applies to the very next gated operation.
func (a *userIdentityAdapter) IsPremium(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to look up user %s: %w", userID, err)
	}
	return user.Premium, nil
}
