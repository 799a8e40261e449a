package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasker help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasker                                           List open tasks
  tasker list [common flags] [--all]               List tasks (--all includes done)
  tasker show [common flags] <id>                  Show one task
  tasker add [common flags] --due <YYYY-MM-DD> [--desc <text>] <title...>
  tasker edit [common flags] [--title <text>] [--desc <text>] [--due <YYYY-MM-DD>] <id>
  tasker done [common flags] <id>                  Mark a task done
  tasker rm [common flags] <id>                    Delete a task
  tasker tui [common flags]                        Interactive terminal UI
  tasker login [common flags] [--username <name>]
  tasker register [common flags] [--username <name>] [--email <addr>]
  tasker logout [common flags]
  tasker help
  tasker version

Common flags:
  --config <dir>   Override config directory
  --url <origin>   Override backend URL (or set TASKER_API_URL)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
