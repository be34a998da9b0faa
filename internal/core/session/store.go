// Package session keeps the signed-in identity of each browser session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"susu-dashboard/internal/adapters/backend"
	"susu-dashboard/internal/core/domain"
	"susu-dashboard/internal/pkg/secret"
)

// GenericLoginMessage is shown when the backend gave no reason
const GenericLoginMessage = "Please make sure the server is running"

// ErrNotFound is returned by Storage.Get for unknown or expired keys
var ErrNotFound = errors.New("session not found")

// Storage persists one sealed blob per session key
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiresAt time.Time) error
	Clear(ctx context.Context, key string) error
}

// Pinger is implemented by storages that can report health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Purger is implemented by storages that can drop expired blobs in bulk
type Purger interface {
	Purge(ctx context.Context, now time.Time) (int64, error)
}

// Authenticator is the backend side of login and logout
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*domain.Identity, backend.Credentials, error)
	Logout(ctx context.Context) error
}

// Record is the persisted session content
type Record struct {
	User        domain.Identity     `json:"user"`
	Credentials backend.Credentials `json:"credentials"`
	ExpiresAt   time.Time           `json:"expiresAt"`
}

// State is what the guard and the views see for one request
type State struct {
	ID          string
	User        *domain.Identity
	Credentials backend.Credentials
	Loading     bool
}

func (s State) Authenticated() bool { return s.User != nil }

// LoginResult reports the outcome of a login attempt
type LoginResult struct {
	Success   bool
	User      *domain.Identity
	Message   string
	SessionID string
	ExpiresAt time.Time
}

// Store is the application's session context object
type Store struct {
	storage Storage
	auth    Authenticator
	sealer  *secret.Sealer
	ttl     time.Duration
	ready   atomic.Bool
	now     func() time.Time
}

// NewStore creates a new session store
func NewStore(storage Storage, auth Authenticator, sealer *secret.Sealer, ttl time.Duration) *Store {
	return &Store{
		storage: storage,
		auth:    auth,
		sealer:  sealer,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store) TTL() time.Duration { return s.ttl }

// Ready reports whether warm-up finished
func (s *Store) Ready() bool { return s.ready.Load() }

// Warm checks the storage and drops expired sessions. The store leaves the
// loading state afterwards even when a step failed.
func (s *Store) Warm(ctx context.Context) error {
	defer s.ready.Store(true)

	if err := s.Ping(ctx); err != nil {
		return err
	}
	n, err := s.Purge(ctx, s.now())
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("✅ Session store warm-up purged %d expired sessions", n)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.storage.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *Store) Purge(ctx context.Context, now time.Time) (int64, error) {
	if p, ok := s.storage.(Purger); ok {
		return p.Purge(ctx, now)
	}
	return 0, nil
}

// Current rehydrates a session from storage without asking the backend.
// Unreadable or expired blobs are cleared and read as signed out.
func (s *Store) Current(ctx context.Context, id string) (State, error) {
	if !s.Ready() {
		return State{Loading: true}, nil
	}
	if id == "" {
		return State{}, nil
	}

	sealed, err := s.storage.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return State{}, nil
	}
	if err != nil {
		return State{}, err
	}

	rec, err := s.open(sealed)
	if err != nil || rec.User.Role == "" || !s.now().Before(rec.ExpiresAt) {
		if clearErr := s.storage.Clear(ctx, id); clearErr != nil {
			log.Printf("⚠️  Failed to clear session: %v", clearErr)
		}
		return State{}, nil
	}

	user := rec.User
	return State{ID: id, User: &user, Credentials: rec.Credentials}, nil
}

// Login authenticates with the backend and persists the identity
func (s *Store) Login(ctx context.Context, username, password string) LoginResult {
	user, creds, err := s.auth.Login(ctx, username, password)
	if err != nil {
		msg := backend.Message(err)
		if msg == "" {
			msg = GenericLoginMessage
		}
		return LoginResult{Message: msg}
	}

	id := uuid.NewString()
	rec := Record{User: *user, Credentials: creds, ExpiresAt: s.now().Add(s.ttl)}
	sealed, err := s.seal(rec)
	if err == nil {
		err = s.storage.Set(ctx, id, sealed, rec.ExpiresAt)
	}
	if err != nil {
		log.Printf("❌ Failed to persist session for %s: %v", user.Username, err)
		return LoginResult{Message: "Unable to start a session. Please try again."}
	}

	return LoginResult{Success: true, User: user, SessionID: id, ExpiresAt: rec.ExpiresAt}
}

// Logout tells the backend best-effort and always clears the session
func (s *Store) Logout(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if state, err := s.Current(ctx, id); err == nil && state.Authenticated() {
		if err := s.auth.Logout(backend.WithCredentials(ctx, state.Credentials)); err != nil {
			log.Printf("⚠️  Backend logout failed: %v", err)
		}
	}
	if err := s.Clear(ctx, id); err != nil {
		log.Printf("⚠️  Failed to clear session: %v", err)
	}
}

// Clear drops the session without contacting the backend
func (s *Store) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.storage.Clear(ctx, id)
}

func (s *Store) seal(rec Record) ([]byte, error) {
	plain, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return s.sealer.Seal(plain)
}

func (s *Store) open(sealed []byte) (*Record, error) {
	plain, err := s.sealer.Open(sealed)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(plain, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
