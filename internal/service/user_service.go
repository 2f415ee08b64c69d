package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/store"
)

// UserService provides user-related operations.
type UserService interface {
	// ListUsers returns every user ordered by ID.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// CreateUser validates and saves a new user.
	CreateUser(ctx context.Context, name, address, email string) (*domain.User, error)

	// UpdateUser loads the user, merges the present fields of patch onto it
	// and saves the result.
	UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)

	// DeleteUser deletes a user by ID.
	DeleteUser(ctx context.Context, id int64) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore  store.UserStore
	transactor store.Transactor
	logger     *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	transactor store.Transactor,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore:  userStore,
		transactor: transactor,
		logger:     logger.With(slog.String("component", "user_service")),
	}
}

// ListUsers implements UserService.ListUsers
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		users, err = s.userStore.WithTx(tx).List(ctx)
		return err
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var user *domain.User
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		user, err = s.userStore.WithTx(tx).GetByID(ctx, id)
		return err
	})
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to retrieve user", err,
			slog.Int64("user_id", id))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// CreateUser implements UserService.CreateUser
func (s *UserServiceImpl) CreateUser(
	ctx context.Context,
	name, address, email string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, address, email)
	if err != nil {
		log.Debug("invalid user", slog.String("error", err.Error()))
		return nil, err
	}

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		logFailure(log, "failed to save user to database", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created successfully", slog.Int64("user_id", user.ID))
	return user, nil
}

// UpdateUser implements UserService.UpdateUser
// The user is read and written in the same transaction.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	id int64,
	patch domain.UserPatch,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user *domain.User
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		var err error
		user, err = txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.IsEmpty() {
			return nil
		}

		patch.Apply(user)
		if err := user.Validate(); err != nil {
			return err
		}
		return txStore.Update(ctx, user)
	})
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to update user", err,
			slog.Int64("user_id", id))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Info("user updated successfully", slog.Int64("user_id", id))
	return user, nil
}

// DeleteUser implements UserService.DeleteUser
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		logFailure(logger.FromContextOrDefault(ctx, s.logger), "failed to delete user", err,
			slog.Int64("user_id", id))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user deleted successfully",
		slog.Int64("user_id", id))
	return nil
}
