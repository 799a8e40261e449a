// Package api issues REST calls to the task backend, attaching the stored
// token and surfacing failures as typed errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	// RequestTimeout is the per-request timeout.
	RequestTimeout = 10 * time.Second

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 1 << 20
)

// TokenSource provides the stored token for authenticated calls.
type TokenSource interface {
	Load() (token string, ok bool, err error)
}

// UnauthorizedHandler is notified whenever the backend answers 401 or 403,
// so the session layer can demote itself and clear the stored token.
type UnauthorizedHandler interface {
	HandleUnauthorized()
}

// Client issues JSON requests against a configured base URL.
type Client struct {
	base           string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized UnauthorizedHandler
	logger         *log.Logger
}

// New creates a Client for the given backend origin. tokens supplies the
// bearer token for authenticated requests.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		base:       strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		logger:     log.New(io.Discard),
	}
}

// SetUnauthorizedHandler registers the handler notified on 401/403
// responses. Registered after construction because the session manager
// holds a reference to the client.
func (c *Client) SetUnauthorizedHandler(h UnauthorizedHandler) {
	c.onUnauthorized = h
}

// SetLogger replaces the discard logger, enabling debug request logging.
func (c *Client) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// SetHTTPClient overrides the underlying HTTP client (for testing).
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// Do issues a request and returns the raw response body on success.
//
// If requiresAuth is true and no token is stored, Do fails with
// ErrAuthRequired before any network activity. body, when non-nil, is
// JSON-encoded. Failures map to *NetworkError, *UnauthorizedError or
// *ServerError per status.
func (c *Client) Do(ctx context.Context, method, path string, body any, requiresAuth bool) ([]byte, error) {
	token, hasToken, err := c.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("reading stored token: %w", err)
	}
	if requiresAuth && !hasToken {
		return nil, ErrAuthRequired
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requiresAuth && hasToken {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "err", err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	c.logger.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if c.onUnauthorized != nil {
			c.onUnauthorized.HandleUnauthorized()
		}
		return nil, &UnauthorizedError{Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &ServerError{
			Status: resp.StatusCode,
			Body:   respBody,
			Fields: parseFields(respBody),
		}
	}

	return respBody, nil
}

// DoJSON issues a request via Do and decodes the response body into out.
// A nil out discards the body.
func (c *Client) DoJSON(ctx context.Context, method, path string, body, out any, requiresAuth bool) error {
	respBody, err := c.Do(ctx, method, path, body, requiresAuth)
	if err != nil {
		return err
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}
