package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budzet/internal/backend"
	"budzet/internal/cache"
	"budzet/internal/core"
	"budzet/internal/log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthStore is the slice of the backend the auth gate needs.
type AuthStore interface {
	backend.UserStore
	backend.SessionStore
}

type AuthConfig struct {
	SessionTTL time.Duration
	BcryptCost int

	// Resolved sessions are cached for SessionCacheTTL so a page view does
	// not cost two store reads. Logout evicts immediately.
	SessionCacheSize int
	SessionCacheTTL  time.Duration
}

// liveSession is what Authenticate caches per session id.
type liveSession struct {
	session core.Session
	user    core.User
}

// Credentials is the register/login form.
type Credentials struct {
	Username string `validate:"required,max=100"`
	Password string `validate:"required,maxbytes=72"` // bcrypt input limit
}

// AuthService registers users and maps session ids to users.
type AuthService struct {
	store    AuthStore
	cfg      AuthConfig
	logger   *log.Logger
	sessions *cache.LRU[liveSession]
	now      func() time.Time
}

func NewAuthService(store AuthStore, cfg AuthConfig, logger *log.Logger) *AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.SessionCacheSize <= 0 {
		cfg.SessionCacheSize = 1024
	}
	if cfg.SessionCacheTTL <= 0 {
		cfg.SessionCacheTTL = time.Minute
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	s := &AuthService{
		store:  store,
		cfg:    cfg,
		logger: logger.WithComponent(log.ComponentAuth),
		now:    time.Now,
	}
	s.sessions = cache.NewLRU[liveSession](cfg.SessionCacheSize, cfg.SessionCacheTTL).
		WithClock(func() time.Time { return s.now() })
	return s
}

// Register creates a user with a bcrypt-hashed password. A taken username
// yields core.ErrConflict.
func (s *AuthService) Register(ctx context.Context, username, password string) (core.User, error) {
	if err := validateStruct(Credentials{Username: username, Password: password}); err != nil {
		return core.User{}, err
	}

	_, err := s.store.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return core.User{}, fmt.Errorf("register %q: %w", username, core.ErrConflict)
	case !errors.Is(err, core.ErrNotFound):
		return core.User{}, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return core.User{}, fmt.Errorf("%w: password must be at most 72 bytes", core.ErrValidation)
	}
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.store.CreateUser(ctx, username, string(hash))
	if err != nil {
		return core.User{}, fmt.Errorf("register: %w", err)
	}

	s.logger.InfoContext(ctx, "User registered",
		log.FieldOperation, log.OpRegister,
		log.FieldUserID, u.ID,
		log.FieldUsername, u.Username)
	return u, nil
}

// Login checks credentials and opens a session. Unknown usernames and wrong
// passwords both return core.ErrAuth.
func (s *AuthService) Login(ctx context.Context, username, password string) (core.Session, error) {
	if err := validateStruct(Credentials{Username: username, Password: password}); err != nil {
		return core.Session{}, err
	}

	u, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.Session{}, fmt.Errorf("login: %w", core.ErrAuth)
		}
		return core.Session{}, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "Login rejected",
			log.FieldOperation, log.OpLogin,
			log.FieldUserID, u.ID)
		return core.Session{}, fmt.Errorf("login: %w", core.ErrAuth)
	}

	now := s.now()
	sess := core.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return core.Session{}, fmt.Errorf("login: %w", err)
	}

	s.logger.InfoContext(ctx, "User logged in",
		log.FieldOperation, log.OpLogin,
		log.FieldUserID, u.ID)
	return sess, nil
}

// Authenticate resolves a live session to its user. Missing, expired or
// orphaned sessions yield core.ErrAuth.
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (core.User, error) {
	if sessionID == "" {
		return core.User{}, core.ErrAuth
	}

	if live, ok := s.sessions.Get(sessionID); ok {
		if !live.session.Expired(s.now()) {
			return live.user, nil
		}
		s.sessions.Delete(sessionID)
	}

	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.User{}, core.ErrAuth
		}
		return core.User{}, fmt.Errorf("authenticate: %w", err)
	}

	if sess.Expired(s.now()) {
		if err := s.store.DeleteSession(ctx, sess.ID); err != nil {
			s.logger.WarnContext(ctx, "Failed to drop expired session", log.FieldError, err)
		}
		return core.User{}, core.ErrAuth
	}

	u, err := s.store.GetUser(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.User{}, core.ErrAuth
		}
		return core.User{}, fmt.Errorf("authenticate: %w", err)
	}

	s.sessions.Set(sessionID, liveSession{session: sess, user: u})
	return u, nil
}

// Logout ends the session. Unknown ids are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	s.sessions.Delete(sessionID)
	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.InfoContext(ctx, "Session closed", log.FieldOperation, log.OpLogout)
	return nil
}

// PurgeExpiredSessions deletes sessions whose expiry has passed and drops
// stale cache entries.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	s.sessions.CleanExpired()
	n, err := s.store.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "Purged expired sessions", "count", n)
	}
	return n, nil
}
