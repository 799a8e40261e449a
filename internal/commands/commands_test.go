package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tasker/internal/api"
	"tasker/internal/commands"
	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/service"
	"tasker/internal/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{Dir: t.TempDir(), BaseURL: "http://backend.test"}
}

// TestAddCommand verifies a valid add creates exactly one task.
func TestAddCommand(t *testing.T) {
	fake := testutil.NewFakeService()
	cmd := &commands.AddCmd{}
	cmd.SetDue("2099-01-01")

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), testConfig(t), fake, []string{"Buy", "milk"}, &out, &errOut)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr: %s)", code, errOut.String())
	}
	if fake.CreateCalls != 1 {
		t.Errorf("expected exactly one create call, got %d", fake.CreateCalls)
	}
	tasks, _ := fake.ListTasks(context.Background())
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
	if !strings.Contains(out.String(), "created 1") {
		t.Errorf("expected created id in output, got %q", out.String())
	}
}

// TestAddCommandEmptyTitle verifies an empty title is rejected locally
// with zero backend calls.
func TestAddCommandEmptyTitle(t *testing.T) {
	fake := testutil.NewFakeService()
	cmd := &commands.AddCmd{}
	cmd.SetDue("2099-01-01")

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), testConfig(t), fake, []string{"   "}, &out, &errOut)

	if code != exitcode.UserError {
		t.Fatalf("expected user error, got %d", code)
	}
	if fake.CreateCalls != 0 {
		t.Errorf("expected zero backend calls, got %d", fake.CreateCalls)
	}
	if !strings.Contains(errOut.String(), "title") {
		t.Errorf("expected title error, got %q", errOut.String())
	}
}

// TestAddCommandPastDue verifies a past due date is rejected locally.
func TestAddCommandPastDue(t *testing.T) {
	fake := testutil.NewFakeService()
	cmd := &commands.AddCmd{}
	cmd.SetDue("2000-01-01")

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), testConfig(t), fake, []string{"Too", "late"}, &out, &errOut)

	if code != exitcode.UserError {
		t.Fatalf("expected user error, got %d", code)
	}
	if fake.CreateCalls != 0 {
		t.Errorf("expected zero backend calls, got %d", fake.CreateCalls)
	}
	if !strings.Contains(errOut.String(), "due_date") {
		t.Errorf("expected due_date error, got %q", errOut.String())
	}
}

// TestAddCommandAuthRequired verifies a missing token surfaces as an auth
// error without creating anything.
func TestAddCommandAuthRequired(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.CreateTaskErr = api.ErrAuthRequired
	cmd := &commands.AddCmd{}
	cmd.SetDue("2099-01-01")

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), testConfig(t), fake, []string{"Buy milk"}, &out, &errOut)

	if code != exitcode.AuthError {
		t.Fatalf("expected auth error, got %d", code)
	}
	if !strings.Contains(errOut.String(), "not logged in") {
		t.Errorf("expected login hint, got %q", errOut.String())
	}
}

// TestAddCommandServerFieldErrors verifies backend field errors display in
// the validation-error shape.
func TestAddCommandServerFieldErrors(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.CreateTaskErr = &api.ServerError{
		Status: 400,
		Fields: map[string]string{"due_date": "outside project range"},
	}
	cmd := &commands.AddCmd{}
	cmd.SetDue("2099-01-01")

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), testConfig(t), fake, []string{"Buy milk"}, &out, &errOut)

	if code != exitcode.UserError {
		t.Fatalf("expected user error, got %d", code)
	}
	if !strings.Contains(errOut.String(), "error: due_date: outside project range") {
		t.Errorf("expected field error line, got %q", errOut.String())
	}
}

// TestListCommand verifies pending tasks print and done tasks are hidden
// by default.
func TestListCommand(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask("Buy milk", "2099-01-01", service.StatusPending)
	fake.AddTask("Old chore", "", service.StatusDone)

	var out, errOut bytes.Buffer
	cmd := &commands.ListCmd{}
	code := cmd.Run(context.Background(), testConfig(t), fake, nil, &out, &errOut)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.Contains(out.String(), "Buy milk") {
		t.Errorf("expected pending task, got %q", out.String())
	}
	if strings.Contains(out.String(), "Old chore") {
		t.Errorf("expected done task hidden, got %q", out.String())
	}
}

// TestListCommandAll verifies --all includes done tasks.
func TestListCommandAll(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask("Old chore", "", service.StatusDone)

	var out, errOut bytes.Buffer
	cmd := &commands.ListCmd{}
	cmd.SetAll(true)
	code := cmd.Run(context.Background(), testConfig(t), fake, nil, &out, &errOut)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.Contains(out.String(), "Old chore") {
		t.Errorf("expected done task shown, got %q", out.String())
	}
}

// TestListCommandEmpty verifies the no-tasks message.
func TestListCommandEmpty(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := &commands.ListCmd{}
	code := cmd.Run(context.Background(), testConfig(t), testutil.NewFakeService(), nil, &out, &errOut)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.Contains(out.String(), "no tasks found") {
		t.Errorf("expected no-tasks message, got %q", out.String())
	}
}

// TestShowCommand verifies the detail output.
func TestShowCommand(t *testing.T) {
	fake := testutil.NewFakeService()
	id := fake.AddTask("Buy milk", "2099-01-01", service.StatusPending)

	var out, errOut bytes.Buffer
	cmd := &commands.ShowCmd{}
	code := cmd.Run(context.Background(), testConfig(t), fake, []string{"1"}, &out, &errOut)

	if code != exitcode.Success {
		t.Fatalf("expected success for id %d, got %d (stderr: %s)", id, code, errOut.String())
	}
	if !strings.Contains(out.String(), "Buy milk") || !strings.Contains(out.String(), "2099-01-01") {
		t.Errorf("unexpected detail output: %q", out.String())
	}
}

// TestShowCommandNotFound verifies a missing task is a user error.
func TestShowCommandNotFound(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := &commands.ShowCmd{}
	code := cmd.Run(context.Background(), testConfig(t), testutil.NewFakeService(), []string{"99"}, &out, &errOut)

	if code != exitcode.UserError {
		t.Fatalf("expected user error, got %d", code)
	}
	if !strings.Contains(errOut.String(), "task not found: 99") {
		t.Errorf("expected not-found message, got %q", errOut.String())
	}
}

// TestEditCommand verifies edit merges flag values over current fields and
// validates the result.
func TestEditCommand(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask("Buy milk", "2099-01-01", service.StatusPending)

	cmd := &commands.EditCmd{}
	cmd.SetTitle("Buy oat milk")

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), testConfig(t), fake, []string{"1"}, &out, &errOut)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr: %s)", code, errOut.String())
	}
	task, err := fake.GetTask(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if task.Title != "Buy oat milk" {
		t.Errorf("expected updated title, got %q", task.Title)
	}
	if task.DueDate != "2099-01-01" {
		t.Errorf("expected due date preserved, got %q", task.DueDate)
	}
}

// TestEditCommandInvalid verifies an invalid merged record issues no
// update call.
func TestEditCommandInvalid(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask("Buy milk", "2099-01-01", service.StatusPending)

	cmd := &commands.EditCmd{}
	cmd.SetTitle("   ")

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), testConfig(t), fake, []string{"1"}, &out, &errOut)

	if code != exitcode.UserError {
		t.Fatalf("expected user error, got %d", code)
	}
	if fake.UpdateCalls != 0 {
		t.Errorf("expected zero update calls, got %d", fake.UpdateCalls)
	}
}

// TestEditCommandNothingToChange verifies edit without field flags errors.
func TestEditCommandNothingToChange(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask("Buy milk", "2099-01-01", service.StatusPending)

	var out, errOut bytes.Buffer
	cmd := &commands.EditCmd{}
	code := cmd.Run(context.Background(), testConfig(t), fake, []string{"1"}, &out, &errOut)

	if code != exitcode.UserError {
		t.Fatalf("expected user error, got %d", code)
	}
	if !strings.Contains(errOut.String(), "nothing to change") {
		t.Errorf("unexpected message: %q", errOut.String())
	}
}

// TestDoneCommand verifies done marks the task completed.
func TestDoneCommand(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask("Buy milk", "2099-01-01", service.StatusPending)

	var out, errOut bytes.Buffer
	cmd := &commands.DoneCmd{}
	code := cmd.Run(context.Background(), testConfig(t), fake, []string{"1"}, &out, &errOut)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	task, _ := fake.GetTask(context.Background(), 1)
	if task.Status != service.StatusDone {
		t.Errorf("expected done status, got %q", task.Status)
	}
}

// TestRmCommand verifies rm deletes the task.
func TestRmCommand(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask("Buy milk", "2099-01-01", service.StatusPending)

	var out, errOut bytes.Buffer
	cmd := &commands.RmCmd{}
	code := cmd.Run(context.Background(), testConfig(t), fake, []string{"1"}, &out, &errOut)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	tasks, _ := fake.ListTasks(context.Background())
	if len(tasks) != 0 {
		t.Errorf("expected task deleted, got %+v", tasks)
	}
}

// TestDoneCommandBadID verifies a non-numeric id is a user error.
func TestDoneCommandBadID(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := &commands.DoneCmd{}
	code := cmd.Run(context.Background(), testConfig(t), testutil.NewFakeService(), []string{"abc"}, &out, &errOut)

	if code != exitcode.UserError {
		t.Fatalf("expected user error, got %d", code)
	}
}

// TestNetworkErrorExitCode verifies transport failures map to the backend
// exit code with a retry hint.
func TestNetworkErrorExitCode(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.ListTasksErr = &api.NetworkError{Err: context.DeadlineExceeded}

	var out, errOut bytes.Buffer
	cmd := &commands.ListCmd{}
	code := cmd.Run(context.Background(), testConfig(t), fake, nil, &out, &errOut)

	if code != exitcode.BackendError {
		t.Fatalf("expected backend error, got %d", code)
	}
	if !strings.Contains(errOut.String(), "retry") {
		t.Errorf("expected retry hint, got %q", errOut.String())
	}
}
