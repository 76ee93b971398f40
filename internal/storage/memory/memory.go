// Package memory keeps users, sessions and transactions in process memory.
// It backs DATA_BACKEND=memory and the HTTP tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"budzet/internal/core"
)

type Store struct {
	mu           sync.Mutex
	nextUserID   int64
	nextTxID     int64
	users        map[int64]core.User
	usernames    map[string]int64
	sessions     map[string]core.Session
	transactions map[int64]core.Transaction
}

func New() *Store {
	return &Store{
		users:        make(map[int64]core.User),
		usernames:    make(map[string]int64),
		sessions:     make(map[string]core.Session),
		transactions: make(map[int64]core.Transaction),
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) CreateUser(_ context.Context, username, passwordHash string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usernames[username]; ok {
		return core.User{}, fmt.Errorf("create user %q: %w", username, core.ErrConflict)
	}
	s.nextUserID++
	u := core.User{
		ID:           s.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users[u.ID] = u
	s.usernames[username] = u.ID
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return core.User{}, fmt.Errorf("get user %d: %w", id, core.ErrNotFound)
	}
	return u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usernames[username]
	if !ok {
		return core.User{}, fmt.Errorf("get user by username: %w", core.ErrNotFound)
	}
	return s.users[id], nil
}

func (s *Store) CreateSession(_ context.Context, sess core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[sess.UserID]; !ok {
		return fmt.Errorf("create session: user %d: %w", sess.UserID, core.ErrNotFound)
	}
	s.sessions[sess.ID] = sess
	return nil
}

func (s *Store) GetSession(_ context.Context, id string) (core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return core.Session{}, fmt.Errorf("get session: %w", core.ErrNotFound)
	}
	return sess, nil
}

func (s *Store) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Store) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[t.UserID]; !ok {
		return core.Transaction{}, fmt.Errorf("create transaction: user %d: %w", t.UserID, core.ErrNotFound)
	}
	s.nextTxID++
	now := time.Now()
	t.ID = s.nextTxID
	t.CreatedAt = now
	t.UpdatedAt = now
	s.transactions[t.ID] = t
	return t, nil
}

func (s *Store) GetTransaction(_ context.Context, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[id]
	if !ok {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, core.ErrNotFound)
	}
	return t, nil
}

func (s *Store) ListTransactions(_ context.Context, userID int64) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Transaction
	for _, t := range s.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.transactions[t.ID]
	if !ok {
		return fmt.Errorf("update transaction %d: %w", t.ID, core.ErrNotFound)
	}
	cur.Type = t.Type
	cur.Category = t.Category
	cur.Amount = t.Amount
	cur.Description = t.Description
	cur.Receipt = t.Receipt
	cur.UpdatedAt = time.Now()
	s.transactions[t.ID] = cur
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return fmt.Errorf("delete transaction %d: %w", id, core.ErrNotFound)
	}
	delete(s.transactions, id)
	return nil
}
