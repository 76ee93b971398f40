package backend

import (
	"context"
	"time"

	"budzet/internal/core"
)

// Ports for the persistent store. Implementations translate missing rows to
// core.ErrNotFound and duplicate usernames to core.ErrConflict.
type (
	UserStore interface {
		CreateUser(ctx context.Context, username, passwordHash string) (core.User, error)
		GetUser(ctx context.Context, id int64) (core.User, error)
		GetUserByUsername(ctx context.Context, username string) (core.User, error)
	}

	SessionStore interface {
		CreateSession(ctx context.Context, s core.Session) error
		GetSession(ctx context.Context, id string) (core.Session, error)
		DeleteSession(ctx context.Context, id string) error
		// DeleteExpiredSessions removes sessions that expired at or before now.
		DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
	}

	TransactionStore interface {
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
		// ListTransactions returns the user's transactions in storage (id) order.
		ListTransactions(ctx context.Context, userID int64) ([]core.Transaction, error)
		UpdateTransaction(ctx context.Context, t core.Transaction) error
		DeleteTransaction(ctx context.Context, id int64) error
	}
)

// Backend represents a unified backend interface that provides all necessary operations
type Backend interface {
	UserStore
	SessionStore
	TransactionStore
	Ping(ctx context.Context) error
	Close() error
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// GetBackendTypeStrings returns all valid backend type strings
func GetBackendTypeStrings() []string {
	return []string{SQLiteBackend.String(), MemoryBackend.String()}
}
