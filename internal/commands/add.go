package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/output"
	"tasker/internal/service"
	"tasker/internal/validate"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	due  string
	desc string
}

// SetDue sets the due date flag value (for testing).
func (c *AddCmd) SetDue(due string) {
	c.due = due
}

// SetDescription sets the description flag value (for testing).
func (c *AddCmd) SetDescription(desc string) {
	c.desc = desc
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "tasker add [common flags] --due <YYYY-MM-DD> [--desc <text>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.desc, "desc", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))

	// Never touch the backend with invalid input.
	result := validate.Apply(validate.TaskRules(validate.DefaultPolicy(), time.Now()), map[string]string{
		"title":       title,
		"description": c.desc,
		"due_date":    c.due,
	})
	if !result.Valid() {
		output.FormatFieldErrors(errOut, result.Errors)
		return exitcode.UserError
	}

	task, err := svc.CreateTask(ctx, service.TaskInput{
		Title:       title,
		Description: c.desc,
		DueDate:     c.due,
	})
	if err != nil {
		return reportBackendErr(err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created %d\n", task.ID)
	}
	return exitcode.Success
}
