// Package session holds the client's current authenticated identity: the
// bearer token and the public account view. The state is an explicit object
// handed to the UI layer, with the lifecycle
// uninitialized -> restoring -> {authenticated | anonymous}.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/essabriabdelghani/chatbot-gemini/internal/client/api"
	"github.com/essabriabdelghani/chatbot-gemini/internal/client/repositories/metadata"
)

// Durable-storage keys for the persisted session, one per blob.
const (
	tokenKey   = "auth_token"
	accountKey = "user_data"
)

type State int

const (
	StateUninitialized State = iota
	StateRestoring
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Verifier is the slice of the backend client the manager needs to validate
// a restored token.
type Verifier interface {
	Profile(ctx context.Context, token string) (*api.PublicUser, error)
}

// Manager owns at most one (token, account) pair. Until Restore completes the
// state is indeterminate and callers must treat it as neither authenticated
// nor anonymous.
type Manager struct {
	mu      sync.Mutex
	state   State
	token   string
	account *api.PublicUser

	repo     metadata.Repository
	verifier Verifier
}

func NewManager(repo metadata.Repository, verifier Verifier) *Manager {
	return &Manager{
		state:    StateUninitialized,
		repo:     repo,
		verifier: verifier,
	}
}

// Restore loads any persisted session and validates it against the server.
// It must be called exactly once, before any protected UI is shown. Any
// failure (missing blobs, corrupt JSON, rejected token, unreachable server)
// clears the persisted state and lands in StateAnonymous; the error return
// is informational, for logging only.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateUninitialized {
		m.mu.Unlock()
		return fmt.Errorf("restore called twice")
	}
	m.state = StateRestoring
	m.mu.Unlock()

	token, account, err := m.readPersisted(ctx)
	if err != nil || token == "" {
		m.becomeAnonymous(ctx)
		return err
	}

	// Never trust a persisted token without the server's say-so.
	verified, err := m.verifier.Profile(ctx, token)
	if err != nil {
		m.becomeAnonymous(ctx)
		return err
	}

	// Prefer the freshly verified view over the persisted copy.
	if verified != nil {
		account = verified
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.token = token
	m.account = account
	m.mu.Unlock()
	return nil
}

// readPersisted loads the token and account blobs. A corrupt account blob is
// recovered by treating the whole session as absent.
func (m *Manager) readPersisted(ctx context.Context) (string, *api.PublicUser, error) {
	tokenBytes, err := m.repo.Get(ctx, tokenKey)
	if err != nil {
		return "", nil, err
	}
	if len(tokenBytes) == 0 {
		return "", nil, nil
	}

	accountBytes, err := m.repo.Get(ctx, accountKey)
	if err != nil {
		return "", nil, err
	}

	var account api.PublicUser
	if err := json.Unmarshal(accountBytes, &account); err != nil {
		return "", nil, fmt.Errorf("corrupt persisted account: %w", err)
	}

	return string(tokenBytes), &account, nil
}

func (m *Manager) becomeAnonymous(ctx context.Context) {
	_ = m.repo.Delete(ctx, tokenKey)
	_ = m.repo.Delete(ctx, accountKey)

	m.mu.Lock()
	m.state = StateAnonymous
	m.token = ""
	m.account = nil
	m.mu.Unlock()
}

// Set installs a new session, replacing any previous one, and persists it.
func (m *Manager) Set(ctx context.Context, account *api.PublicUser, token string) error {
	blob, err := json.Marshal(account)
	if err != nil {
		return err
	}

	if err := m.repo.Set(ctx, tokenKey, []byte(token)); err != nil {
		return err
	}
	if err := m.repo.Set(ctx, accountKey, blob); err != nil {
		return err
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.token = token
	m.account = account
	m.mu.Unlock()
	return nil
}

// Clear drops the session in memory and in durable storage.
func (m *Manager) Clear(ctx context.Context) {
	m.becomeAnonymous(ctx)
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns the active account and token. ok is false unless the
// manager is in StateAuthenticated.
func (m *Manager) Current() (account *api.PublicUser, token string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated {
		return nil, "", false
	}
	return m.account, m.token, true
}
