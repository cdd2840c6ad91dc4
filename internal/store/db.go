package store

import (
	"context"
	"database/sql"
)

// DBTX abstracts the querying surface shared by *sql.DB and *sql.Tx, so a
// store can run against either a plain connection or a transaction handed to
// it via WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
