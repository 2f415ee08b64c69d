package postgres_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/platform/postgres"
	"github.com/phrazzld/shop-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// int64SliceConverter lets sqlmock accept the []int64 arguments pgx encodes as arrays.
type int64SliceConverter struct{}

func (int64SliceConverter) ConvertValue(v any) (driver.Value, error) {
	if ids, ok := v.([]int64); ok {
		return ids, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(int64SliceConverter{}))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func q(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

func TestNewStoresPanicOnNilDB(t *testing.T) {
	assert.Panics(t, func() { postgres.NewPostgresUserStore(nil, nil) })
	assert.Panics(t, func() { postgres.NewPostgresProductStore(nil, nil) })
	assert.Panics(t, func() { postgres.NewPostgresOrderStore(nil, nil) })
	assert.Panics(t, func() { postgres.NewMigrator(nil, nil) })
}

func TestPostgresUserStore(t *testing.T) {
	ctx := context.Background()

	t.Run("list returns users in id order", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, nil)

		mock.ExpectQuery(q(`FROM "user"`)).WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "address", "email"}).
				AddRow(1, "Ann", "1 Main St", "ann@example.com").
				AddRow(2, "Bob", "2 Main St", "bob@example.com"),
		)

		users, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "Ann", users[0].Name)
		assert.Equal(t, int64(2), users[1].ID)
	})

	t.Run("list of empty table is not nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, nil)

		mock.ExpectQuery(q(`FROM "user"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "email"}))

		users, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("create sets id", func(t *testing.T) {
		db, mock := newMockDB(t)
		log, buf := logger.GetTestLogger(t)
		s := postgres.NewPostgresUserStore(db, log)

		mock.ExpectQuery(q(`INSERT INTO "user"`)).
			WithArgs("Ann", "1 Main St", "ann@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		user := &domain.User{Name: "Ann", Address: "1 Main St", Email: "ann@example.com"}
		require.NoError(t, s.Create(ctx, user))
		assert.Equal(t, int64(7), user.ID)
		logger.AssertLogContains(t, buf, "user created successfully")
	})

	t.Run("create with duplicate email keeps backend text", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, nil)

		mock.ExpectQuery(q(`INSERT INTO "user"`)).WillReturnError(newPgError("23505"))

		err := s.Create(ctx, &domain.User{Name: "Ann", Address: "x", Email: "ann@example.com"})
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.Contains(t, err.Error(), "SQLSTATE 23505")
	})

	t.Run("create rejects invalid user without querying", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, nil)

		long := make([]rune, domain.MaxUserNameLength+1)
		for i := range long {
			long[i] = 'a'
		}
		err := s.Create(ctx, &domain.User{Name: string(long), Address: "x", Email: "e"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("get missing user", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, nil)

		mock.ExpectQuery(q(`WHERE id = $1`)).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

		user, err := s.GetByID(ctx, 99)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("update missing user", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, nil)

		mock.ExpectExec(q(`UPDATE "user"`)).
			WithArgs("Ann", "x", "e", int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Update(ctx, &domain.User{ID: 3, Name: "Ann", Address: "x", Email: "e"})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("delete with orders reports foreign key fault", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, nil)

		mock.ExpectExec(q(`DELETE FROM "user"`)).WithArgs(int64(1)).WillReturnError(newPgError("23503"))

		err := s.Delete(ctx, 1)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.Contains(t, err.Error(), "SQLSTATE 23503")
	})

	t.Run("delete", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresUserStore(db, nil)

		mock.ExpectExec(q(`DELETE FROM "user"`)).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Delete(ctx, 1))
	})
}

func TestPostgresUserStore_WithTx(t *testing.T) {
	db, mock := newMockDB(t)
	s := postgres.NewPostgresUserStore(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec(q(`DELETE FROM "user"`)).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	txStore := s.WithTx(tx)
	assert.NotSame(t, s, txStore)
	require.NoError(t, txStore.Delete(context.Background(), 4))
	require.NoError(t, tx.Commit())
}

func TestPostgresProductStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create sets id", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresProductStore(db, nil)

		mock.ExpectQuery(q(`INSERT INTO product`)).
			WithArgs("Widget", 9.5).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

		product := &domain.Product{ProductName: "Widget", Price: 9.5}
		require.NoError(t, s.Create(ctx, product))
		assert.Equal(t, int64(3), product.ID)
	})

	t.Run("get", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresProductStore(db, nil)

		mock.ExpectQuery(q(`FROM product`)).WithArgs(int64(3)).WillReturnRows(
			sqlmock.NewRows([]string{"id", "product_name", "price"}).AddRow(3, "Widget", 9.5),
		)

		product, err := s.GetByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, &domain.Product{ID: 3, ProductName: "Widget", Price: 9.5}, product)
	})

	t.Run("storage fault keeps backend text", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresProductStore(db, nil)

		mock.ExpectQuery(q(`FROM product`)).WillReturnError(errors.New("connection reset by peer"))

		_, err := s.List(ctx)
		assert.EqualError(t, err, "list product: connection reset by peer")

		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "product", storeErr.Entity)
	})

	t.Run("delete missing product", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresProductStore(db, nil)

		mock.ExpectExec(q(`DELETE FROM product`)).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(ctx, 5), store.ErrProductNotFound)
	})

	t.Run("update", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresProductStore(db, nil)

		mock.ExpectExec(q(`UPDATE product`)).
			WithArgs("Gadget", 1.25, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Update(ctx, &domain.Product{ID: 5, ProductName: "Gadget", Price: 1.25}))
	})
}

func TestPostgresOrderStore(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	orderColumns := []string{"id", "order_date", "user_id", "id", "name", "address", "email"}

	t.Run("create sets id", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresOrderStore(db, nil)

		mock.ExpectQuery(q(`INSERT INTO "order"`)).
			WithArgs(date, int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

		order := &domain.Order{UserID: 1, OrderDate: date}
		require.NoError(t, s.Create(ctx, order))
		assert.Equal(t, int64(10), order.ID)
	})

	t.Run("create for missing user", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresOrderStore(db, nil)

		mock.ExpectQuery(q(`INSERT INTO "order"`)).WillReturnError(newPgError("23503"))

		err := s.Create(ctx, &domain.Order{UserID: 1, OrderDate: date})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("get loads user and products", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresOrderStore(db, nil)

		mock.ExpectQuery(q(`WHERE o.id = $1`)).WithArgs(int64(10)).WillReturnRows(
			sqlmock.NewRows(orderColumns).AddRow(10, date, 1, 1, "Ann", "1 Main St", "ann@example.com"),
		)
		mock.ExpectQuery(q(`WHERE op.order_id = $1`)).WithArgs(int64(10)).WillReturnRows(
			sqlmock.NewRows([]string{"id", "product_name", "price"}).
				AddRow(2, "Bolt", 0.5).
				AddRow(4, "Nut", 0.25),
		)

		order, err := s.GetByID(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), order.UserID)
		require.NotNil(t, order.User)
		assert.Equal(t, "ann@example.com", order.User.Email)
		require.Len(t, order.Products, 2)
		assert.Equal(t, "Bolt", order.Products[0].ProductName)
		assert.True(t, order.OrderDate.Equal(date))
	})

	t.Run("get missing order", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresOrderStore(db, nil)

		mock.ExpectQuery(q(`WHERE o.id = $1`)).WithArgs(int64(10)).WillReturnError(sql.ErrNoRows)

		_, err := s.GetByID(ctx, 10)
		assert.ErrorIs(t, err, store.ErrOrderNotFound)
	})

	t.Run("list by user batches products", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresOrderStore(db, nil)

		mock.ExpectQuery(q(`WHERE o.user_id = $1`)).WithArgs(int64(1)).WillReturnRows(
			sqlmock.NewRows(orderColumns).
				AddRow(10, date, 1, 1, "Ann", "1 Main St", "ann@example.com").
				AddRow(11, date, 1, 1, "Ann", "1 Main St", "ann@example.com"),
		)
		mock.ExpectQuery(q(`WHERE op.order_id = ANY($1)`)).WithArgs([]int64{10, 11}).WillReturnRows(
			sqlmock.NewRows([]string{"order_id", "id", "product_name", "price"}).
				AddRow(11, 2, "Bolt", 0.5),
		)

		orders, err := s.ListByUser(ctx, 1)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.NotNil(t, orders[0].Products)
		assert.Empty(t, orders[0].Products)
		require.Len(t, orders[1].Products, 1)
		assert.Equal(t, int64(2), orders[1].Products[0].ID)
	})

	t.Run("list by user without orders skips product query", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresOrderStore(db, nil)

		mock.ExpectQuery(q(`WHERE o.user_id = $1`)).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(orderColumns))

		orders, err := s.ListByUser(ctx, 1)
		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})

	t.Run("add product reports duplicates", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresOrderStore(db, nil)

		mock.ExpectExec(q(`ON CONFLICT (order_id, product_id) DO NOTHING`)).
			WithArgs(int64(10), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(q(`ON CONFLICT (order_id, product_id) DO NOTHING`)).
			WithArgs(int64(10), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		added, err := s.AddProduct(ctx, 10, 2)
		require.NoError(t, err)
		assert.True(t, added)

		added, err = s.AddProduct(ctx, 10, 2)
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("remove product reports misses", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresOrderStore(db, nil)

		mock.ExpectExec(q(`DELETE FROM order_product`)).
			WithArgs(int64(10), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		removed, err := s.RemoveProduct(ctx, 10, 2)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("remove product fault", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := postgres.NewPostgresOrderStore(db, nil)

		mock.ExpectExec(q(`DELETE FROM order_product`)).WillReturnError(errors.New("boom"))

		_, err := s.RemoveProduct(ctx, 10, 2)
		assert.EqualError(t, err, "delete order_product: boom")
	})
}
