package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestRunInTransaction(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			assert.NotNil(t, tx)
			return nil
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and returns the function error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		fnErr := errors.New("insert failed")
		err := RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			return fnErr
		})

		assert.Equal(t, fnErr, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin error", func(t *testing.T) {
		db, mock := newMockDB(t)
		beginErr := errors.New("connection refused")
		mock.ExpectBegin().WillReturnError(beginErr)

		err := RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			t.Fatal("function must not run without a transaction")
			return nil
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to begin transaction")
		assert.ErrorIs(t, err, beginErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit error", func(t *testing.T) {
		db, mock := newMockDB(t)
		commitErr := errors.New("commit failed")
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(commitErr)

		err := RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			return nil
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to commit transaction")
		assert.ErrorIs(t, err, commitErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback error keeps the original error", func(t *testing.T) {
		db, mock := newMockDB(t)
		fnErr := errors.New("update failed")
		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(errors.New("rollback failed"))

		err := RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			return fnErr
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error rolling back transaction")
		assert.ErrorIs(t, err, fnErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("panic rolls back and re-panics", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "boom", func() {
			_ = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
				panic("boom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLTransactor(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var tr Transactor = NewTransactor(db)
	called := false
	err := tr.RunInTransaction(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}
