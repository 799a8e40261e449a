// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"tasker/internal/service"
)

// FormatTask formats one task line for the list command.
// Format: "{ID:>4}  [{x| }] {TITLE}  (due {DATE})\n"; the due suffix is
// omitted when the task has no due date.
func FormatTask(w io.Writer, task service.Task) {
	marker := " "
	if task.Status == service.StatusDone {
		marker = "x"
	}
	line := fmt.Sprintf("%4d  [%s] %s", task.ID, marker, normalizeTitle(task.Title))
	if task.DueDate != "" {
		line += fmt.Sprintf("  (due %s)", task.DueDate)
	}
	fmt.Fprintln(w, line)
}

// FormatTaskDetail formats the full record for the show command.
func FormatTaskDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:          %d\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "status:      %s\n", task.Status)
	if task.DueDate != "" {
		fmt.Fprintf(w, "due:         %s\n", task.DueDate)
	}
	if strings.TrimSpace(task.Description) != "" {
		fmt.Fprintf(w, "description: %s\n", task.Description)
	}
}

// FormatFieldErrors prints field-scoped errors one per line, sorted by
// field name for stable output.
func FormatFieldErrors(w io.Writer, errors map[string]string) {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "error: %s: %s\n", field, errors[field])
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
