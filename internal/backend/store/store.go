package store

import (
	"context"
	"errors"

	"github.com/hatchery/hatchd/internal/backend/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, and the
// in-memory test double) implement this. It exposes sub-repositories to keep
// concerns tidy and testable.
type Store interface {
	Users() Users
	Items() Items

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to do multi-step operations that must be atomic
	// (e.g. the confirmation read-then-conditional-update).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login and by the session gate.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used for the duplicate-email signup check.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByConfirmationToken returns the user holding a live
	// confirmation token.
	GetUserByConfirmationToken(ctx context.Context, token string) (domain.User, error)

	// GetUserByConfirmedTokenHash returns the user whose account was
	// activated by the token with the given fingerprint.
	GetUserByConfirmedTokenHash(ctx context.Context, hash string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Unique conflicts on username, email or confirmation token surface as
	// ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// ActivateUser flips is_active, clears the confirmation token and its
	// expiry, and records the consumed token's fingerprint.
	ActivateUser(ctx context.Context, userID, consumedTokenHash string) error
}

type Items interface {
	// GetItemByID returns an item by id.
	GetItemByID(ctx context.Context, id string) (domain.Item, error)

	// ListItems returns all items ordered by creation (oldest first).
	ListItems(ctx context.Context) ([]domain.Item, error)

	// CreateItem inserts a new item (id is a ULID assigned by the app).
	CreateItem(ctx context.Context, it domain.Item) error

	// UpdateItem replaces name and price; ErrNotFound for unknown ids.
	UpdateItem(ctx context.Context, it domain.Item) error

	// DeleteItem removes an item; ErrNotFound for unknown ids.
	DeleteItem(ctx context.Context, id string) error
}
