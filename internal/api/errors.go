package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrAuthRequired is returned when an authenticated request is attempted
// with no stored token. No network call is made.
var ErrAuthRequired = errors.New("not logged in (run: tasker login)")

// NetworkError indicates a transport-level failure: no HTTP response was
// received at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UnauthorizedError indicates the backend rejected the token (401 or 403).
// The client has already notified the session layer by the time the caller
// sees this error.
type UnauthorizedError struct {
	Status int
}

func (e *UnauthorizedError) Error() string {
	return "token expired or revoked (run: tasker login)"
}

// ServerError indicates the backend rejected the request with a non-2xx
// status other than 401/403. Fields holds any field-scoped messages parsed
// from the response body, for inline display next to form inputs.
type ServerError struct {
	Status int
	Body   []byte
	Fields map[string]string
}

func (e *ServerError) Error() string {
	if msg, ok := e.Fields["detail"]; ok {
		return msg
	}
	return fmt.Sprintf("server error: status %d", e.Status)
}

// parseFields extracts field-scoped error messages from an error response
// body. Accepts both {"field": "message"} and {"field": ["message", ...]}
// shapes; anything unparseable yields nil.
func parseFields(body []byte) map[string]string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		return nil
	}

	fields := make(map[string]string)
	for name, value := range raw {
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			fields[name] = single
			continue
		}
		var many []string
		if err := json.Unmarshal(value, &many); err == nil && len(many) > 0 {
			fields[name] = strings.Join(many, "; ")
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
