package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"tasker/internal/api"
	"tasker/internal/exitcode"
	"tasker/internal/output"
)

// errNoBaseURL is reported when a networked command runs without a
// configured backend origin.
var errNoBaseURL = errors.New("backend URL not configured (set TASKER_API_URL or base_url in tasker.toml)")

// reportBackendErr prints err and returns the exit code for errors coming
// back from the service layer. Field-scoped server errors are printed in
// the same shape as local validation errors.
func reportBackendErr(err error, errOut io.Writer) int {
	if errors.Is(err, api.ErrAuthRequired) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	var unauthorized *api.UnauthorizedError
	if errors.As(err, &unauthorized) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		fmt.Fprintf(errOut, "error: %v (check the connection and retry)\n", err)
		return exitcode.BackendError
	}

	var serverErr *api.ServerError
	if errors.As(err, &serverErr) {
		if len(serverErr.Fields) > 0 {
			output.FormatFieldErrors(errOut, serverErr.Fields)
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		if serverErr.Status >= 400 && serverErr.Status < 500 {
			return exitcode.UserError
		}
		return exitcode.BackendError
	}

	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// isNotFound reports whether err denotes a missing task, from either the
// REST backend (404) or a test fake.
func isNotFound(err error) bool {
	var serverErr *api.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Status == 404
	}
	return err != nil && strings.Contains(err.Error(), "not found")
}
