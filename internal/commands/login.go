package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/output"
	"tasker/internal/service"
	"tasker/internal/session"
	"tasker/internal/validate"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	username string

	// Stdin overrides os.Stdin (for testing).
	Stdin io.Reader
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in to the backend" }
func (c *LoginCmd) Usage() string     { return "tasker login [common flags] [--username <name>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.username, "username", "", "")
	fs.StringVar(&c.username, "u", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// A stored token counts as logged in until the backend says otherwise.
	if cfg.HasToken() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in (run: tasker logout to switch accounts)")
		}
		return exitcode.Success
	}

	mgr, _, err := newSession(cfg, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	stdin := c.stdin()
	reader := bufio.NewReader(stdin)

	username := c.username
	if username == "" {
		username, err = promptLine(reader, errOut, "username: ")
		if err != nil {
			fmt.Fprintf(errOut, "error: reading username: %v\n", err)
			return exitcode.UserError
		}
	}

	password, err := promptPassword(stdin, reader, errOut, "password: ")
	if err != nil {
		fmt.Fprintf(errOut, "error: reading password: %v\n", err)
		return exitcode.UserError
	}

	// Validate before any network call.
	result := validate.Apply(validate.LoginRules(), map[string]string{
		"username": username,
		"password": password,
	})
	if !result.Valid() {
		output.FormatFieldErrors(errOut, result.Errors)
		return exitcode.UserError
	}

	if err := mgr.Login(ctx, username, password); err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			fmt.Fprintln(errOut, "error: invalid credentials")
			return exitcode.AuthError
		}
		return reportBackendErr(err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func (c *LoginCmd) stdin() io.Reader {
	if c.Stdin != nil {
		return c.Stdin
	}
	return os.Stdin
}
