package store

import (
	"context"
	"errors"

	"github.com/jhoownogueira/TaskFlowAPI/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it; it
// exposes sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Prefer this over Tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches the stored email exactly: no case folding,
	// no normalization.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is already taken.
	CreateUser(ctx context.Context, u domain.User) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// ListActiveRefreshTokens returns up to limit non-revoked records for a
	// user, newest first. The stored hashes are salted, so there is no
	// lookup-by-hash; callers scan this bounded window and compare each.
	ListActiveRefreshTokens(ctx context.Context, userID string, limit int) ([]domain.RefreshToken, error)

	// RevokeRefreshToken sets revoked_at on a record. Idempotent: revoking
	// an already-revoked record is a no-op overwrite. Records are never
	// deleted.
	RevokeRefreshToken(ctx context.Context, id string) error
}

// TaskFilter narrows and pages a task listing.
type TaskFilter struct {
	Status   domain.TaskStatus // empty means all statuses
	Query    string            // case-insensitive substring over title/description
	Page     int               // 1-based
	PageSize int
}

type Tasks interface {
	// CreateTask inserts a new task.
	CreateTask(ctx context.Context, t domain.Task) error

	// GetTaskByID returns a task regardless of owner; ownership checks are
	// the service's responsibility (it distinguishes 404 from 403).
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)

	// ListTasks returns one page of a user's tasks ordered by creation date
	// (newest first) plus the total match count for the filter.
	ListTasks(ctx context.Context, userID string, f TaskFilter) ([]domain.Task, int, error)

	// UpdateTask persists title/description/status changes and bumps
	// updated_at.
	UpdateTask(ctx context.Context, t domain.Task) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error
}
