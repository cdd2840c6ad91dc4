package store

import "context"

// BlobKeyPrefix is the fixed prefix of every per-user lesson blob key.
const BlobKeyPrefix = "lessons"

// BlobKey builds the durable slot key for a user's lesson collection.
func BlobKey(userID string) string {
	return BlobKeyPrefix + "_" + userID
}

// BlobStore defines the interface for the durable key-value collaborator.
// Each key maps to a single serialized blob; writers always replace the whole
// slot. The lesson service keys slots by user ID via BlobKey.
type BlobStore interface {
	// Get retrieves the blob stored under key.
	// Returns ErrBlobNotFound if no blob exists for the key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores blob under key, replacing any existing value.
	Set(ctx context.Context, key string, blob []byte) error

	// Delete removes the blob stored under key.
	// Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
