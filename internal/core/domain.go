package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind tells whether a transaction adds to or subtracts from the balance.
	Kind string

	Money struct {
		Cents int64
	}

	User struct {
		ID           int64
		Username     string
		PasswordHash string
		CreatedAt    time.Time
	}

	Transaction struct {
		ID          int64
		Type        Kind
		Category    string
		Amount      Money
		Description string
		Receipt     string // free-text reference, not a file
		UserID      int64
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// Session binds a browser cookie to a user until ExpiresAt.
	Session struct {
		ID        string
		UserID    int64
		CreatedAt time.Time
		ExpiresAt time.Time
	}
)

// Error taxonomy shared by storage, services and the HTTP boundary.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

var (
	ErrInvalidKind   = fmt.Errorf("%w: type must be income or expense", ErrValidation)
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)
)

// ParseKind accepts "income" or "expense", case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Income, Expense:
		return k, nil
	default:
		return "", ErrInvalidKind
	}
}

func (k Kind) String() string {
	return string(k)
}

// OwnedBy reports whether u is the owner of t.
func (t Transaction) OwnedBy(u User) bool {
	return t.UserID == u.ID
}

// Signed returns the amount with the sign it contributes to the balance.
func (t Transaction) Signed() Money {
	if t.Type == Income {
		return t.Amount
	}
	return Money{Cents: -t.Amount.Cents}
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
