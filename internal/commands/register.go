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
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	username string
	email    string

	// Stdin overrides os.Stdin (for testing).
	Stdin io.Reader
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "tasker register [common flags] [--username <name>] [--email <addr>]"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.username, "username", "", "")
	fs.StringVar(&c.username, "u", "", "")
	fs.StringVar(&c.email, "email", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	mgr, _, err := newSession(cfg, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	stdin := c.stdin()
	reader := bufio.NewReader(stdin)

	username := c.username
	if username == "" {
		if username, err = promptLine(reader, errOut, "username: "); err != nil {
			fmt.Fprintf(errOut, "error: reading username: %v\n", err)
			return exitcode.UserError
		}
	}
	email := c.email
	if email == "" {
		if email, err = promptLine(reader, errOut, "email: "); err != nil {
			fmt.Fprintf(errOut, "error: reading email: %v\n", err)
			return exitcode.UserError
		}
	}
	password, err := promptPassword(stdin, reader, errOut, "password: ")
	if err != nil {
		fmt.Fprintf(errOut, "error: reading password: %v\n", err)
		return exitcode.UserError
	}

	// Validate locally before any network call. Uniqueness is the
	// backend's call; its field errors print in the same shape below.
	result := validate.Apply(validate.AccountRules(validate.DefaultPolicy()), map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if !result.Valid() {
		output.FormatFieldErrors(errOut, result.Errors)
		return exitcode.UserError
	}

	if err := mgr.Register(ctx, username, email, password); err != nil {
		var regErr *session.RegistrationError
		if errors.As(err, &regErr) {
			result.Merge(regErr.Fields)
			output.FormatFieldErrors(errOut, result.Errors)
			return exitcode.UserError
		}
		return reportBackendErr(err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok (run: tasker login)")
	}
	return exitcode.Success
}

func (c *RegisterCmd) stdin() io.Reader {
	if c.Stdin != nil {
		return c.Stdin
	}
	return os.Stdin
}
