package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"tasker/internal/api"
)

// staticTokens is a TokenSource returning a fixed token.
type staticTokens struct {
	token string
}

func (s staticTokens) Load() (string, bool, error) {
	return s.token, s.token != "", nil
}

// demoteRecorder records HandleUnauthorized calls.
type demoteRecorder struct {
	calls int
}

func (d *demoteRecorder) HandleUnauthorized() {
	d.calls++
}

// TestAuthRequiredNoToken verifies an authenticated request with no stored
// token fails fast without touching the network.
func TestAuthRequiredNoToken(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	client := api.New(srv.URL, staticTokens{})
	_, err := client.Do(context.Background(), http.MethodGet, "/api/tasks/", nil, true)

	if !errors.Is(err, api.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Errorf("expected zero network calls, got %d", n)
	}
}

// TestBearerHeaderAttached verifies the token is sent as a bearer credential.
func TestBearerHeaderAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := api.New(srv.URL, staticTokens{token: "tok123"})
	if _, err := client.Do(context.Background(), http.MethodGet, "/api/tasks/", nil, true); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if gotAuth != "Bearer tok123" {
		t.Errorf("expected Authorization %q, got %q", "Bearer tok123", gotAuth)
	}
}

// TestUnauthorizedNotifiesHandler verifies a 401 surfaces UnauthorizedError
// and signals the session layer.
func TestUnauthorizedNotifiesHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	demoted := &demoteRecorder{}
	client := api.New(srv.URL, staticTokens{token: "stale"})
	client.SetUnauthorizedHandler(demoted)

	_, err := client.Do(context.Background(), http.MethodGet, "/api/tasks/", nil, true)

	var unauthorized *api.UnauthorizedError
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
	if unauthorized.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", unauthorized.Status)
	}
	if demoted.calls != 1 {
		t.Errorf("expected 1 HandleUnauthorized call, got %d", demoted.calls)
	}
}

// TestForbiddenNotifiesHandler verifies 403 is treated like 401.
func TestForbiddenNotifiesHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	demoted := &demoteRecorder{}
	client := api.New(srv.URL, staticTokens{token: "stale"})
	client.SetUnauthorizedHandler(demoted)

	_, err := client.Do(context.Background(), http.MethodGet, "/api/tasks/", nil, true)

	var unauthorized *api.UnauthorizedError
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
	if demoted.calls != 1 {
		t.Errorf("expected 1 HandleUnauthorized call, got %d", demoted.calls)
	}
}

// TestServerErrorFields verifies non-2xx responses carry parsed field errors.
func TestServerErrorFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"title": ["This field may not be blank."], "due_date": "invalid date"}`))
	}))
	defer srv.Close()

	client := api.New(srv.URL, staticTokens{token: "tok"})
	_, err := client.Do(context.Background(), http.MethodPost, "/api/tasks/", map[string]string{}, true)

	var serverErr *api.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if serverErr.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", serverErr.Status)
	}
	if got := serverErr.Fields["title"]; got != "This field may not be blank." {
		t.Errorf("unexpected title field error: %q", got)
	}
	if got := serverErr.Fields["due_date"]; got != "invalid date" {
		t.Errorf("unexpected due_date field error: %q", got)
	}
}

// TestNetworkError verifies transport failures map to NetworkError.
func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := api.New(srv.URL, staticTokens{})
	_, err := client.Do(context.Background(), http.MethodPost, "/api/login/", map[string]string{"username": "alice"}, false)

	var netErr *api.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

// TestDoJSONDecodes verifies DoJSON decodes a 2xx body into out.
func TestDoJSONDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "issued"}`))
	}))
	defer srv.Close()

	client := api.New(srv.URL, staticTokens{})
	var out struct {
		Token string `json:"token"`
	}
	err := client.DoJSON(context.Background(), http.MethodPost, "/api/login/", map[string]string{"username": "alice", "password": "pw"}, &out, false)
	if err != nil {
		t.Fatalf("DoJSON failed: %v", err)
	}
	if out.Token != "issued" {
		t.Errorf("expected token %q, got %q", "issued", out.Token)
	}
}

// TestNoBearerOnUnauthenticated verifies unauthenticated calls never leak
// the stored token.
func TestNoBearerOnUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := api.New(srv.URL, staticTokens{token: "tok"})
	if _, err := client.Do(context.Background(), http.MethodPost, "/api/login/", map[string]string{}, false); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}
