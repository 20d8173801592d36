package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/taxrefund/internal/bff/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for the BFF's local state. Tax
// data is never stored here; only credentials and login sessions are.
// Concrete drivers (sqlite, postgres) implement this.
type Store interface {
	Credentials() Credentials
	Sessions() Sessions

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is the set of repositories available inside a transaction.
type Tx interface {
	Credentials() Credentials
	Sessions() Sessions
}

type Credentials interface {
	// GetCredential returns the credential for an upstream user id.
	GetCredential(ctx context.Context, userID string) (domain.Credential, error)

	// UpsertCredential creates or replaces the password hash for a user.
	UpsertCredential(ctx context.Context, c domain.Credential) error

	// DeleteCredential removes a user's credential. Missing rows are ErrNotFound.
	DeleteCredential(ctx context.Context, userID string) error
}

type Sessions interface {
	// CreateSession stores a new session (id is provided by app via ULID).
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSession returns a session by id, revoked or not.
	GetSession(ctx context.Context, id string) (domain.Session, error)

	// RevokeSession marks one session revoked. Missing rows are ErrNotFound.
	RevokeSession(ctx context.Context, id string) error

	// RevokeUserSessions revokes every active session of a user.
	RevokeUserSessions(ctx context.Context, userID string) (int64, error)

	// DeleteStaleSessions removes sessions that expired, or were revoked,
	// before cutoff.
	DeleteStaleSessions(ctx context.Context, cutoff time.Time) (int64, error)
}
