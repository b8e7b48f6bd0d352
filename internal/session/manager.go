package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/snooze-project/snoozectl/internal/api"
	"github.com/snooze-project/snoozectl/internal/story"
)

// ErrNotLoggedIn is returned by operations that need an authenticated
// session when there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// Manager owns the current-user state for the process. Every state
// transition and user mutation goes through one mutex, so User's
// single-writer assumptions hold even when commands run work
// concurrently. Read-only feed fetches do not pass through the manager
// and stay free to run in parallel.
type Manager struct {
	client *api.Client
	store  *Store
	logger *slog.Logger

	mu      sync.Mutex
	current *User
}

// NewManager creates a manager over the given API client and credential
// store.
func NewManager(client *api.Client, store *Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{client: client, store: store, logger: logger}
}

// Current returns the authenticated user, or nil when anonymous.
func (m *Manager) Current() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Signup registers a new account, caches its credentials and makes it
// the current user. On rejection the session stays anonymous and the
// error carries the server's message.
func (m *Manager) Signup(ctx context.Context, username, password, name string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, err := Signup(ctx, m.client, username, password, name)
	if err != nil {
		return nil, err
	}
	m.setCurrent(user)
	return user, nil
}

// Login authenticates an existing account, caches its credentials and
// makes it the current user. On rejection the session stays anonymous.
func (m *Manager) Login(ctx context.Context, username, password string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, err := Login(ctx, m.client, username, password)
	if err != nil {
		return nil, err
	}
	m.setCurrent(user)
	return user, nil
}

// Restore attempts auto-login from cached credentials. An absent cache
// or a failed restore leaves the session anonymous and returns nil with
// no error: restore failures are logged, never surfaced as user-facing
// alerts.
func (m *Manager) Restore(ctx context.Context) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return m.current, nil
	}

	creds, ok, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	user, err := Restore(ctx, m.client, creds.Token, creds.Username)
	if err != nil {
		m.logger.Debug("session restore failed", "username", creds.Username, "error", err)
		return nil, nil
	}
	m.current = user
	return user, nil
}

// RequireUser restores the session and fails with ErrNotLoggedIn when it
// comes back anonymous.
func (m *Manager) RequireUser(ctx context.Context) (*User, error) {
	user, err := m.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	return user, nil
}

// Logout clears the cached credentials and returns the session to
// anonymous.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	return m.store.Clear()
}

// AddFavorite favorites a story for the current user. Already-favorited
// stories are left alone, which keeps the no-duplicate-check contract of
// User.AddFavorite satisfied for every caller that goes through here.
func (m *Manager) AddFavorite(ctx context.Context, st story.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return ErrNotLoggedIn
	}
	if m.current.IsFavorite(st.ID) {
		return nil
	}
	return m.current.AddFavorite(ctx, m.client, st)
}

// RemoveFavorite unfavorites a story for the current user, deriving the
// index from the story ID at the moment of the call. Removing a story
// that is not a favorite is a no-op.
func (m *Manager) RemoveFavorite(ctx context.Context, st story.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return ErrNotLoggedIn
	}
	idx := m.current.FavoriteIndex(st.ID)
	if idx < 0 {
		return nil
	}
	return m.current.RemoveFavorite(ctx, m.client, st, idx)
}

// EditInfo updates the current user's profile and swaps in the fresh
// User the server returned.
func (m *Manager) EditInfo(ctx context.Context, name, password string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil, ErrNotLoggedIn
	}
	user, err := m.current.EditInfo(ctx, m.client, name, password)
	if err != nil {
		return nil, err
	}
	m.current = user
	return user, nil
}

// setCurrent installs a user and best-effort caches its credentials.
// A cache failure does not fail the login; it only costs auto-login next
// time. Callers hold m.mu.
func (m *Manager) setCurrent(user *User) {
	m.current = user
	creds := Credentials{Token: user.Token(), Username: user.Username}
	if err := m.store.Save(creds); err != nil {
		m.logger.Warn("could not cache session credentials", "path", m.store.Path(), "error", err)
	}
}
