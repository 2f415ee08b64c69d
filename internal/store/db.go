package store

import (
	"context"
	"database/sql"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx. Postgres stores
// hold a DBTX so the same code runs inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
