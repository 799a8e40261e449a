// Package session manages the login/logout lifecycle and token expiry.
//
// The session has two states, Anonymous and Authenticated, derived from the
// credential store. The initial state is optimistic: a stored token counts
// as Authenticated until the backend says otherwise. Any 401/403 from the
// backend demotes the session and clears the token, from any state.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"tasker/internal/api"
	"tasker/internal/credstore"
)

// State is the session state.
type State int

const (
	// Anonymous means no token is stored.
	Anonymous State = iota

	// Authenticated means a token is stored (not yet verified against the
	// backend).
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// ErrInvalidCredentials is returned by Login when the backend rejects the
// username/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RegistrationError carries field-scoped messages from a rejected
// registration, in the same shape the form validator produces.
type RegistrationError struct {
	Fields map[string]string
}

func (e *RegistrationError) Error() string {
	return "registration rejected"
}

// Manager owns the session. It is the only writer of the credential store
// besides the token-attach read in the HTTP client.
type Manager struct {
	store  *credstore.Store
	client *api.Client
	logger *log.Logger
}

// New creates a Manager and registers it as the client's unauthorized
// handler, so token expiry discovered mid-session demotes the session.
func New(store *credstore.Store, client *api.Client) *Manager {
	m := &Manager{
		store:  store,
		client: client,
		logger: log.New(io.Discard),
	}
	client.SetUnauthorizedHandler(m)
	return m
}

// SetLogger replaces the discard logger.
func (m *Manager) SetLogger(logger *log.Logger) {
	m.logger = logger
}

// State derives the current state from the credential store.
func (m *Manager) State() State {
	_, ok, err := m.store.Load()
	if err != nil || !ok {
		return Anonymous
	}
	return Authenticated
}

// Login exchanges credentials for a token and persists it. A 400/401 from
// the backend maps to ErrInvalidCredentials; network failures pass through
// unchanged so the caller can offer a retry.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	err := m.client.DoJSON(ctx, http.MethodPost, "/api/login/", map[string]string{
		"username": username,
		"password": password,
	}, &resp, false)
	if err != nil {
		var serverErr *api.ServerError
		if errors.As(err, &serverErr) {
			if serverErr.Status == http.StatusBadRequest || serverErr.Status == http.StatusUnauthorized {
				return ErrInvalidCredentials
			}
		}
		var unauthorized *api.UnauthorizedError
		if errors.As(err, &unauthorized) {
			return ErrInvalidCredentials
		}
		return err
	}

	if resp.Token == "" {
		return fmt.Errorf("login response contained no token")
	}
	if err := m.store.Save(resp.Token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	m.logger.Debug("session authenticated", "user", username)
	return nil
}

// Register creates an account. Backend field errors are surfaced as a
// *RegistrationError so callers can display them next to the form fields
// that produced them.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	err := m.client.DoJSON(ctx, http.MethodPost, "/api/register/", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil, false)
	if err != nil {
		var serverErr *api.ServerError
		if errors.As(err, &serverErr) && len(serverErr.Fields) > 0 {
			return &RegistrationError{Fields: serverErr.Fields}
		}
		return err
	}
	return nil
}

// Logout clears the stored token and demotes the session. It succeeds
// without any network call.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	m.logger.Debug("session cleared")
	return nil
}

// HandleUnauthorized implements api.UnauthorizedHandler. Called by the HTTP
// client whenever the backend answers 401/403.
func (m *Manager) HandleUnauthorized() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clearing token after unauthorized response", "err", err)
	}
	m.logger.Debug("session demoted: token rejected by backend")
}
