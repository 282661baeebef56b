// Package session owns the client's authentication state machine.
//
// The manager is the exclusive owner of the session and the only writer of
// the token store. State changes are published to subscribers so any front
// end (or none, in tests) can re-render on change.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/staffdesk/staffdesk/internal/client/api"
	"github.com/staffdesk/staffdesk/internal/client/tokenstore"
)

// State is the closed set of session states.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Identity describes the authenticated user. Token is present iff the
// session state is StateAuthenticated.
type Identity struct {
	Username string
	Roles    []string
	Token    string
}

// Snapshot is an immutable view of the session handed to subscribers and the
// access gate. Reason is set only in StateFailed.
type Snapshot struct {
	State    State
	Identity Identity
	Reason   string
}

// ErrAutoLoginFailed marks the case where registration succeeded but the
// follow-up login did not. The session stays anonymous; the registration
// itself must still be reported as successful.
var ErrAutoLoginFailed = errors.New("registered, but automatic login failed")

// loginResponse is the wire shape of POST /auth/login.
type loginResponse struct {
	Token    string   `json:"token"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Manager drives the Anonymous → Authenticating → Authenticated/Failed
// transitions and derives role membership from the authenticated identity.
type Manager struct {
	mu       sync.Mutex
	api      *api.Client
	tokens   tokenstore.Store
	state    State
	identity Identity
	reason   string
	subs     []func(Snapshot)
}

func NewManager(client *api.Client, tokens tokenstore.Store) *Manager {
	return &Manager{api: client, tokens: tokens, state: StateAnonymous}
}

// Subscribe registers fn to be called after every state change.
func (m *Manager) Subscribe(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	id := m.identity
	id.Roles = slices.Clone(id.Roles)
	return Snapshot{State: m.state, Identity: id, Reason: m.reason}
}

func (m *Manager) transition(state State, identity Identity, reason string) {
	m.mu.Lock()
	m.state = state
	m.identity = identity
	m.reason = reason
	snap := m.snapshotLocked()
	subs := slices.Clone(m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// Login authenticates against the server. On success the token is persisted
// and the session becomes Authenticated; on failure it becomes Failed with
// the server's message when one was provided. The credential is not retained.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.transition(StateAuthenticating, Identity{}, "")

	body, err := m.api.Request(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		m.transition(StateFailed, Identity{}, failureReason(err))
		return err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		m.transition(StateFailed, Identity{}, "unexpected server response")
		return fmt.Errorf("decoding login response: %w", err)
	}

	m.tokens.Set(resp.Token)
	m.transition(StateAuthenticated, Identity{
		Username: resp.Username,
		Roles:    resp.Roles,
		Token:    resp.Token,
	}, "")
	return nil
}

// Register creates an account and immediately logs in with the same
// credentials. A failed registration lands in StateFailed; a failed
// auto-login leaves the session Anonymous and returns ErrAutoLoginFailed so
// the caller can report the signup as successful anyway.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	m.transition(StateAuthenticating, Identity{}, "")

	_, err := m.api.Request(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		m.transition(StateFailed, Identity{}, failureReason(err))
		return err
	}

	if err := m.Login(ctx, username, password); err != nil {
		m.transition(StateAnonymous, Identity{}, "")
		return fmt.Errorf("%w: %w", ErrAutoLoginFailed, err)
	}
	return nil
}

// meResponse is the wire shape of GET /auth/me.
type meResponse struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Restore promotes a token persisted by an earlier run back to an
// authenticated session, the way the original client resumed a logged-in user
// after a page reload. Without a stored token it is a no-op. A token the
// server no longer accepts is dropped and the session stays anonymous; a
// transport failure keeps the token for a later attempt and is reported.
func (m *Manager) Restore(ctx context.Context) error {
	token, ok := m.tokens.Get()
	if !ok {
		return nil
	}

	body, err := m.api.Request(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		if api.IsUnauthorized(err) {
			m.tokens.Clear()
			return nil
		}
		return err
	}

	var resp meResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decoding session response: %w", err)
	}

	m.transition(StateAuthenticated, Identity{
		Username: resp.Username,
		Roles:    resp.Roles,
		Token:    token,
	}, "")
	return nil
}

// Logout clears the token store and resets the session, regardless of the
// prior state. Safe to call repeatedly.
func (m *Manager) Logout() {
	m.tokens.Clear()
	m.transition(StateAnonymous, Identity{}, "")
}

// Acknowledge reverts a Failed session to Anonymous once the caller has
// shown the error. A no-op in every other state.
func (m *Manager) Acknowledge() {
	m.mu.Lock()
	failed := m.state == StateFailed
	m.mu.Unlock()
	if failed {
		m.transition(StateAnonymous, Identity{}, "")
	}
}

// HasRole reports whether the authenticated identity holds role. Always
// false outside StateAuthenticated. Role strings are opaque capability
// labels; unknown values are simply never held.
func (m *Manager) HasRole(role string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated {
		return false
	}
	return slices.Contains(m.identity.Roles, role)
}

// failureReason passes the server's message through verbatim when one was
// provided. Transport failures and empty error bodies fall back to a generic
// message rather than exposing wire-level detail.
func failureReason(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind != api.KindTransport && apiErr.Message != "" {
		return apiErr.Message
	}
	return "authentication failed"
}
