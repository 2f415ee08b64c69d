package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, address, email
		FROM "user"
		ORDER BY id
	`)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, storeFault("user", "list", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Address, &user.Email); err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, err
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating user rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("users listed", slog.Int("count", len(users)))
	return users, nil
}

// Create implements store.UserStore.Create
// Returns store.ErrEmailExists if the email is already taken.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return err
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO "user" (name, address, email)
		VALUES ($1, $2, $3)
		RETURNING id
	`, user.Name, user.Address, user.Email).Scan(&user.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already exists during user creation", slog.String("error", err.Error()))
		} else {
			log.Error("failed to create user", slog.String("error", err.Error()))
		}
		return store.NewStoreError("user", "create", MapUniqueViolation(err, store.ErrEmailExists))
	}

	log.Info("user created successfully", slog.Int64("user_id", user.ID))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, address, email
		FROM "user"
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Name, &user.Address, &user.Email)
	if err != nil {
		if IsNotFoundError(err) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, storeFault("user", "get", err)
	}

	return &user, nil
}

// Update implements store.UserStore.Update
// Returns store.ErrUserNotFound if the user does not exist and
// store.ErrEmailExists if the new email is already taken.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE "user"
		SET name = $1, address = $2, email = $3
		WHERE id = $4
	`, user.Name, user.Address, user.Email, user.ID)
	if err != nil {
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return store.NewStoreError("user", "update", MapUniqueViolation(err, store.ErrEmailExists))
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		log.Debug("user update touched no rows", slog.Int64("user_id", user.ID))
		return err
	}

	log.Info("user updated successfully", slog.Int64("user_id", user.ID))
	return nil
}

// Delete implements store.UserStore.Delete
// Returns store.ErrUserNotFound if the user does not exist. A user that still
// owns orders cannot be deleted; the foreign key error is returned mapped.
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM "user" WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return storeFault("user", "delete", err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		log.Debug("user to delete not found", slog.Int64("user_id", id))
		return err
	}

	log.Info("user deleted successfully", slog.Int64("user_id", id))
	return nil
}
