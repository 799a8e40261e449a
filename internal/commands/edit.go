package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/output"
	"tasker/internal/service"
	"tasker/internal/validate"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Fields not set by a flag keep their
// current value; the merged record is validated like a fresh create.
type EditCmd struct {
	title    string
	desc     string
	due      string
	setTitle bool
	setDesc  bool
	setDue   bool
}

// SetTitle sets the title flag value (for testing).
func (c *EditCmd) SetTitle(title string) {
	c.title = title
	c.setTitle = true
}

// SetDescription sets the description flag value (for testing).
func (c *EditCmd) SetDescription(desc string) {
	c.desc = desc
	c.setDesc = true
}

// SetDue sets the due date flag value (for testing).
func (c *EditCmd) SetDue(due string) {
	c.due = due
	c.setDue = true
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "tasker edit [common flags] [--title <text>] [--desc <text>] [--due <YYYY-MM-DD>] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	// flag.Func records which fields were actually given, so unset flags
	// fall back to the task's current values.
	fs.Func("title", "", func(s string) error {
		c.title, c.setTitle = s, true
		return nil
	})
	fs.Func("desc", "", func(s string) error {
		c.desc, c.setDesc = s, true
		return nil
	})
	fs.Func("due", "", func(s string) error {
		c.due, c.setDue = s, true
		return nil
	})
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !c.setTitle && !c.setDesc && !c.setDue {
		fmt.Fprintln(errOut, "error: nothing to change (use --title, --desc or --due)")
		return exitcode.UserError
	}

	current, err := svc.GetTask(ctx, id)
	if err != nil {
		if isNotFound(err) {
			fmt.Fprintf(errOut, "error: task not found: %d\n", id)
			return exitcode.UserError
		}
		return reportBackendErr(err, errOut)
	}

	in := service.TaskInput{
		Title:       current.Title,
		Description: current.Description,
		DueDate:     current.DueDate,
	}
	if c.setTitle {
		in.Title = c.title
	}
	if c.setDesc {
		in.Description = c.desc
	}
	if c.setDue {
		in.DueDate = c.due
	}

	result := validate.Apply(validate.TaskRules(validate.DefaultPolicy(), time.Now()), map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"due_date":    in.DueDate,
	})
	if !result.Valid() {
		output.FormatFieldErrors(errOut, result.Errors)
		return exitcode.UserError
	}

	if _, err := svc.UpdateTask(ctx, id, in); err != nil {
		if isNotFound(err) {
			fmt.Fprintf(errOut, "error: task not found: %d\n", id)
			return exitcode.UserError
		}
		return reportBackendErr(err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
