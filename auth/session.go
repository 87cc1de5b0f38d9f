package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/craigmindset/softdrop-cli/client"
	"github.com/craigmindset/softdrop-cli/db"
)

// State describes whether a usable session exists.
type State int

const (
	// StateUnknown means restoration has not run yet.
	StateUnknown State = iota
	StateLoggedOut
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateLoggedIn:
		return "logged in"
	case StateLoggedOut:
		return "logged out"
	default:
		return "unknown"
	}
}

// Manager owns the session state: login, logout, restore-on-start, and
// access-token patching after a refresh. It implements client.SessionSource
// so a Client can read tokens and push refreshed ones back.
type Manager struct {
	storer    SessionStorer
	exchanger Exchanger

	restoreOnce sync.Once

	mu      sync.RWMutex
	state   State
	phone   string
	access  string
	refresh string
}

// NewManager is the constructor for the session manager.
func NewManager(storer SessionStorer, exchanger Exchanger) *Manager {
	return &Manager{
		storer:    storer,
		exchanger: exchanger,
		state:     StateUnknown,
	}
}

// NewManagerWithRepo constructs a Manager using a SessionRepository directly.
func NewManagerWithRepo(repo db.SessionRepository, exchanger Exchanger) *Manager {
	return NewManager(&sessionRepoStorer{repo: repo}, exchanger)
}

// Restore loads the stored session exactly once. Both tokens present means
// logged in; anything else (including a read error) means logged out.
// Subsequent calls return the current state without touching the store.
func (m *Manager) Restore() State {
	m.restoreOnce.Do(func() {
		record, err := m.storer.GetSessionRecord()
		if err != nil {
			log.Error().Err(err).Msg("Failed to restore session from store")
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if record != nil && record.AccessToken != "" && record.RefreshToken != "" {
			m.phone = record.Phone
			m.access = record.AccessToken
			m.refresh = record.RefreshToken
			m.state = StateLoggedIn
			log.Info().Msg("Session restored from store")
		} else {
			m.state = StateLoggedOut
		}
	})
	return m.State()
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Phone returns the phone number used at login, if any.
func (m *Manager) Phone() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phone
}

// AccessToken implements client.SessionSource.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

// RefreshToken implements client.SessionSource.
func (m *Manager) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refresh
}

// Login exchanges the credentials for a token pair and persists it together
// with the phone number. A 401 from the exchange clears any stale session
// instead of leaving it behind.
func (m *Manager) Login(ctx context.Context, phone, password string) error {
	accessToken, refreshToken, err := m.exchanger.PerformLogin(ctx, phone, password)
	if err != nil {
		if client.IsUnauthorized(err) {
			log.Info().Msg("Login rejected, clearing stale session")
			m.Logout()
		}
		return fmt.Errorf("login failed: %w", err)
	}

	record := &db.Session{Phone: phone, AccessToken: accessToken, RefreshToken: refreshToken}
	if err := m.storer.UpsertSessionRecord(record); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.phone = phone
	m.access = accessToken
	m.refresh = refreshToken
	m.state = StateLoggedIn
	m.mu.Unlock()

	log.Info().Msg("Login successful")
	return nil
}

// Logout clears the store and the in-memory state. It never fails; a store
// error is logged and the in-memory session is dropped regardless.
func (m *Manager) Logout() {
	if err := m.storer.ClearSessionRecord(); err != nil {
		log.Error().Err(err).Msg("Failed to clear stored session")
	}

	m.mu.Lock()
	m.phone = ""
	m.access = ""
	m.refresh = ""
	m.state = StateLoggedOut
	m.mu.Unlock()

	log.Info().Msg("Logged out")
}

// SetAccessToken implements client.SessionSource. It patches only the
// access token; the refresh token stays untouched.
func (m *Manager) SetAccessToken(token string) error {
	m.mu.Lock()
	m.access = token
	record := &db.Session{Phone: m.phone, AccessToken: token, RefreshToken: m.refresh}
	m.mu.Unlock()

	if err := m.storer.UpsertSessionRecord(record); err != nil {
		return fmt.Errorf("failed to persist refreshed token: %w", err)
	}
	return nil
}

// sessionRepoStorer adapts db.SessionRepository to SessionStorer.
type sessionRepoStorer struct{ repo db.SessionRepository }

func (s *sessionRepoStorer) GetSessionRecord() (*db.Session, error) {
	return s.repo.Get(context.Background())
}

func (s *sessionRepoStorer) UpsertSessionRecord(session *db.Session) error {
	return s.repo.Upsert(context.Background(), session)
}

func (s *sessionRepoStorer) ClearSessionRecord() error {
	return s.repo.Clear(context.Background())
}
