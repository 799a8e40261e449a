package output_test

import (
	"bytes"
	"strings"
	"testing"

	"tasker/internal/output"
	"tasker/internal/service"
	"tasker/internal/testutil"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	tasks := []service.Task{
		{ID: 1, Title: "Buy milk", DueDate: "2026-04-01", Status: service.StatusPending},
		{ID: 42, Title: "Old chore", Status: service.StatusDone},
		{ID: 7, Title: "multi\nline", Status: service.StatusPending},
		{ID: 9, Title: "   ", Status: service.StatusPending},
	}
	for _, task := range tasks {
		output.FormatTask(&buf, task)
	}
	testutil.Golden(t, "list", buf.Bytes())
}

func TestFormatTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTaskDetail(&buf, service.Task{
		ID:          3,
		Title:       "Write report",
		Description: "Quarterly numbers",
		DueDate:     "2026-05-01",
		Status:      service.StatusPending,
	})
	testutil.Golden(t, "detail", buf.Bytes())
}

func TestFormatTaskDetailOmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTaskDetail(&buf, service.Task{ID: 5, Title: "Bare", Status: service.StatusPending})
	got := buf.String()
	if strings.Contains(got, "due:") || strings.Contains(got, "description:") {
		t.Errorf("expected empty fields omitted, got %q", got)
	}
}

func TestFormatFieldErrorsSorted(t *testing.T) {
	var buf bytes.Buffer
	output.FormatFieldErrors(&buf, map[string]string{
		"title":    "required",
		"due_date": "must be a date in YYYY-MM-DD form",
	})
	want := "error: due_date: must be a date in YYYY-MM-DD form\nerror: title: required\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
