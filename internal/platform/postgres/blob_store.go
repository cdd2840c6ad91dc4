package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/studyowl/studyowl-api/internal/platform/logger"
	"github.com/studyowl/studyowl-api/internal/store"
)

// BlobStore implements the store.BlobStore interface using a single
// PostgreSQL table of JSONB slots. Each key holds one whole-collection blob;
// writes are upserts, so the slot always reflects the latest serialization.
type BlobStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewBlobStore creates a new PostgreSQL implementation of the BlobStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// is used.
func NewBlobStore(db store.DBTX, logger *slog.Logger) *BlobStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &BlobStore{
		db:     db,
		logger: logger.With(slog.String("component", "blob_store")),
	}
}

// Ensure BlobStore implements store.BlobStore interface
var _ store.BlobStore = (*BlobStore)(nil)

// Get implements store.BlobStore.Get.
// Returns store.ErrBlobNotFound if no blob exists for the key.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT blob FROM lesson_blobs WHERE key = $1`

	var blob []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBlobNotFound
		}
		log.Error("failed to read blob",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return nil, store.NewStoreError("blob", "get", "failed to query blob slot", err)
	}

	return blob, nil
}

// Set implements store.BlobStore.Set.
// The write is an upsert: the slot is created on first use and replaced
// wholesale afterwards.
func (s *BlobStore) Set(ctx context.Context, key string, blob []byte) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO lesson_blobs (key, blob, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET blob = EXCLUDED.blob, updated_at = now()
	`
	_, err := s.db.ExecContext(ctx, query, key, blob)
	if err != nil {
		log.Error("failed to write blob",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return store.NewStoreError("blob", "set", "failed to upsert blob slot", err)
	}

	log.Debug("blob slot written",
		slog.String("key", key),
		slog.Int("size", len(blob)))
	return nil
}

// Delete implements store.BlobStore.Delete.
// Deleting an absent key is not an error.
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM lesson_blobs WHERE key = $1`

	_, err := s.db.ExecContext(ctx, query, key)
	if err != nil {
		log.Error("failed to delete blob",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return store.NewStoreError("blob", "delete", "failed to delete blob slot", err)
	}

	log.Debug("blob slot deleted", slog.String("key", key))
	return nil
}

// WithTx returns a new BlobStore bound to the provided transaction.
func (s *BlobStore) WithTx(tx *sql.Tx) *BlobStore {
	return &BlobStore{
		db:     tx,
		logger: s.logger,
	}
}
