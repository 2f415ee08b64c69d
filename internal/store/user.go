package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/shop-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// List returns every user ordered by ID. It never returns nil.
	List(ctx context.Context) ([]*domain.User, error)

	// Create saves a new user and sets user.ID.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// Update writes every field of user.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID.
	// Returns ErrUserNotFound if the user does not exist. Deleting a user that
	// still owns orders fails with the backend's foreign key error.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a UserStore that runs its queries on tx.
	WithTx(tx *sql.Tx) UserStore
}
