package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/shop-api/internal/platform/postgres"
	"github.com/phrazzld/shop-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		Detail:         "error details",
		SchemaName:     "public",
		TableName:      "order_product",
		ColumnName:     "product_id",
		ConstraintName: "order_product_product_id_fkey",
	}
}

// MockResult implements sql.Result for testing
type MockResult struct {
	rowsAffected int64
	err          error
}

func (m MockResult) LastInsertId() (int64, error) {
	return 0, m.err
}

func (m MockResult) RowsAffected() (int64, error) {
	return m.rowsAffected, m.err
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	predicates := map[string]func(error) bool{
		"23505": postgres.IsUniqueViolation,
		"23503": postgres.IsForeignKeyViolation,
	}

	for code, predicate := range predicates {
		t.Run(code, func(t *testing.T) {
			t.Parallel()
			assert.False(t, predicate(nil))
			assert.False(t, predicate(errors.New("generic error")))
			assert.True(t, predicate(newPgError(code)))
			assert.True(t, predicate(fmt.Errorf("wrapped: %w", newPgError(code))))
			assert.False(t, predicate(newPgError("42P01")))
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("generic error"), expected: false},
		{name: "sql.ErrNoRows", err: sql.ErrNoRows, expected: true},
		{name: "store.ErrNotFound", err: store.ErrNotFound, expected: true},
		{name: "entity not found", err: store.ErrOrderNotFound, expected: true},
		{name: "wrapped", err: fmt.Errorf("wrapped: %w", store.ErrNotFound), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, postgres.IsNotFoundError(tt.err))
		})
	}
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   sql.Result
		notFound error
		wantErr  bool
		errIs    error
	}{
		{name: "nil result", result: nil, wantErr: true},
		{
			name:    "zero rows affected",
			result:  MockResult{rowsAffected: 0},
			wantErr: true,
			errIs:   store.ErrNotFound,
		},
		{
			name:     "zero rows affected with entity error",
			result:   MockResult{rowsAffected: 0},
			notFound: store.ErrUserNotFound,
			wantErr:  true,
			errIs:    store.ErrUserNotFound,
		},
		{name: "one row affected", result: MockResult{rowsAffected: 1}},
		{
			name:    "error getting rows affected",
			result:  MockResult{err: errors.New("rows affected error")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := postgres.CheckRowsAffected(tt.result, tt.notFound)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		errIs  error
		errMsg string
	}{
		{name: "sql.ErrNoRows", err: sql.ErrNoRows, errIs: store.ErrNotFound, errMsg: "entity not found"},
		{name: "unique violation", err: newPgError("23505"), errIs: store.ErrDuplicate, errMsg: "entity already exists"},
		{name: "foreign key violation", err: newPgError("23503"), errIs: store.ErrInvalidEntity, errMsg: "order_product_product_id_fkey"},
		{name: "check constraint violation", err: newPgError("23514"), errIs: store.ErrInvalidEntity, errMsg: "check constraint violation"},
		{name: "not null violation", err: newPgError("23502"), errIs: store.ErrInvalidEntity, errMsg: "product_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := postgres.MapError(tt.err)

			assert.ErrorIs(t, result, tt.errIs)
			assert.Contains(t, result.Error(), tt.errMsg)
			// The backend text must survive the mapping.
			assert.Contains(t, result.Error(), tt.err.Error())
		})
	}

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("unmapped errors pass through", func(t *testing.T) {
		t.Parallel()
		pgErr := newPgError("42P01")
		assert.Same(t, pgErr, postgres.MapError(pgErr))

		generic := errors.New("generic error")
		assert.Equal(t, generic, postgres.MapError(generic))
	})
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	err := postgres.MapUniqueViolation(newPgError("23505"), store.ErrEmailExists)
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.Contains(t, err.Error(), "error message")

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))

	fk := postgres.MapUniqueViolation(newPgError("23503"), store.ErrEmailExists)
	assert.NotErrorIs(t, fk, store.ErrEmailExists)
	assert.ErrorIs(t, fk, store.ErrInvalidEntity)
}
