package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasker/internal/api"
	"tasker/internal/service"
	"tasker/internal/validate"
)

const (
	formFieldTitle = 0
	formFieldDue   = 1
	formFieldDesc  = 2
)

// formFieldNames index the inputs by validator field name.
var formFieldNames = [3]string{"title", "due_date", "description"}

// taskForm holds the create/edit view state. editing is nil for create.
type taskForm struct {
	inputs  [3]textinput.Model
	focus   int
	errs    map[string]string
	banner  string
	editing *service.Task
}

func newTaskForm() taskForm {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200
	title.Width = 48

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10
	due.Width = 12

	desc := textinput.New()
	desc.Placeholder = "description (optional)"
	desc.CharLimit = 2000
	desc.Width = 48

	return taskForm{inputs: [3]textinput.Model{title, due, desc}}
}

// reset prepares the form for a create (task == nil) or an edit.
func (f *taskForm) reset(task *service.Task) {
	f.errs = nil
	f.banner = ""
	f.focus = 0
	f.editing = nil
	if task != nil {
		copied := *task
		f.editing = &copied
		f.inputs[formFieldTitle].SetValue(task.Title)
		f.inputs[formFieldDue].SetValue(task.DueDate)
		f.inputs[formFieldDesc].SetValue(task.Description)
		return
	}
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
}

func (f *taskForm) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f taskForm) values() map[string]string {
	return map[string]string{
		"title":       strings.TrimSpace(f.inputs[formFieldTitle].Value()),
		"due_date":    strings.TrimSpace(f.inputs[formFieldDue].Value()),
		"description": f.inputs[formFieldDesc].Value(),
	}
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Navigating away makes any pending save stale.
		m.switchTo(viewList)
		m.inFlight = true
		return m, tea.Batch(m.loadTasksCmd(), m.spin.Tick)

	case "tab", "down":
		return m, m.form.setFocus((m.form.focus + 1) % len(m.form.inputs))

	case "shift+tab", "up":
		return m, m.form.setFocus((m.form.focus + len(m.form.inputs) - 1) % len(m.form.inputs))

	case "enter":
		if m.form.focus < len(m.form.inputs)-1 {
			return m, m.form.setFocus(m.form.focus + 1)
		}
		return m.submitForm()

	case "ctrl+s":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

// submitForm validates and saves. Invalid input never reaches the
// backend; a second submit while one is pending is ignored.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.inFlight {
		return m, nil
	}

	values := m.form.values()
	result := validate.Apply(validate.TaskRules(m.policy, m.now()), values)
	if !result.Valid() {
		m.form.errs = result.Errors
		m.form.banner = ""
		return m, nil
	}

	m.form.errs = nil
	m.form.banner = ""
	m.inFlight = true

	in := service.TaskInput{
		Title:       values["title"],
		Description: values["description"],
		DueDate:     values["due_date"],
	}
	gen := m.gen
	svc := m.svc
	editing := m.form.editing

	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		if editing != nil {
			task, err := svc.UpdateTask(context.Background(), editing.ID, in)
			return taskSavedMsg{gen: gen, task: task, err: err}
		}
		task, err := svc.CreateTask(context.Background(), in)
		return taskSavedMsg{gen: gen, task: task, created: true, err: err}
	})
}

func (m Model) handleTaskSaved(msg taskSavedMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.gen) {
		return m, nil
	}
	m.inFlight = false

	if msg.err != nil {
		var unauthorized *api.UnauthorizedError
		if errors.As(msg.err, &unauthorized) || errors.Is(msg.err, api.ErrAuthRequired) {
			m.switchTo(viewLogin)
			m.login.banner = "session expired, log in again"
			return m, m.login.setFocus(loginFieldUsername)
		}

		var serverErr *api.ServerError
		if errors.As(msg.err, &serverErr) && len(serverErr.Fields) > 0 {
			// Backend field errors display exactly like local ones.
			var result validate.Result
			result.Merge(serverErr.Fields)
			m.form.errs = result.Errors
			return m, nil
		}

		var netErr *api.NetworkError
		if errors.As(msg.err, &netErr) {
			m.form.banner = "cannot reach the backend, try again"
		} else {
			m.form.banner = msg.err.Error()
		}
		return m, nil
	}

	if msg.created {
		m.form.reset(nil)
		m.list.status = "created: " + msg.task.Title
	} else {
		m.list.status = "updated: " + msg.task.Title
	}
	m.switchTo(viewList)
	m.inFlight = true
	return m, tea.Batch(m.loadTasksCmd(), m.spin.Tick)
}

func (m Model) viewForm() string {
	var b strings.Builder
	if m.form.editing != nil {
		b.WriteString(titleStyle.Render("tasker: edit task"))
	} else {
		b.WriteString(titleStyle.Render("tasker: new task"))
	}
	b.WriteString("\n\n")

	labels := [3]string{"title", "due", "description"}
	for i, input := range m.form.inputs {
		b.WriteString("  " + labels[i] + ": " + input.View() + "\n")
		if msg, ok := m.form.errs[formFieldNames[i]]; ok {
			b.WriteString("  " + errStyle.Render(msg) + "\n")
		}
	}

	if m.form.banner != "" {
		b.WriteString("\n  " + errStyle.Render(m.form.banner) + "\n")
	}
	if m.inFlight {
		b.WriteString("\n  " + m.spin.View() + " saving…\n")
	}

	b.WriteString("\n" + helpStyle.Render("  enter/ctrl+s: save • tab: next field • esc: back"))
	return b.String()
}
