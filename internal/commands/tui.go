package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasker/internal/backend/resttasks"
	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
	"tasker/internal/ui"
)

func init() {
	Register(&TuiCmd{})
}

// TuiCmd launches the interactive terminal UI. It handles login itself, so
// it does not require a stored token up front.
type TuiCmd struct{}

func (c *TuiCmd) Name() string      { return "tui" }
func (c *TuiCmd) Aliases() []string { return nil }
func (c *TuiCmd) Synopsis() string  { return "Interactive terminal UI" }
func (c *TuiCmd) Usage() string     { return "tasker tui [common flags]" }
func (c *TuiCmd) NeedsAuth() bool   { return false }

func (c *TuiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TuiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	mgr, client, err := newSession(cfg, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if svc == nil {
		svc = resttasks.New(client)
	}

	if err := ui.Run(ctx, svc, mgr); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
