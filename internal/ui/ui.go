// Package ui implements the interactive terminal UI: a login form, the
// task list, and a create/edit task form.
//
// All state lives in one bubbletea Model. Network calls run as tea.Cmds;
// every response message carries the view generation it was issued under,
// and responses from a generation the user has navigated away from are
// dropped without touching state. At most one request is in flight per
// view; submits while a request is pending are ignored.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tasker/internal/service"
	"tasker/internal/session"
	"tasker/internal/validate"
)

type view int

const (
	viewLogin view = iota
	viewList
	viewForm
)

// Model is the root bubbletea model.
type Model struct {
	svc    service.Service
	mgr    *session.Manager
	policy validate.Policy
	now    func() time.Time

	view     view
	gen      int
	inFlight bool
	spin     spinner.Model
	width    int

	login loginForm
	list  taskList
	form  taskForm
}

// Async response messages. gen is the view generation the request was
// issued under.
type (
	loginDoneMsg struct {
		gen int
		err error
	}
	tasksLoadedMsg struct {
		gen   int
		tasks []service.Task
		err   error
	}
	taskSavedMsg struct {
		gen     int
		task    service.Task
		created bool
		err     error
	}
	listOpDoneMsg struct {
		gen int
		err error
	}
)

// New builds the root model. The initial view is the task list when a
// token is stored (optimistic), the login form otherwise.
func New(svc service.Service, mgr *session.Manager) Model {
	m := Model{
		svc:    svc,
		mgr:    mgr,
		policy: validate.DefaultPolicy(),
		now:    time.Now,
		spin:   newSpinner(),
		login:  newLoginForm(),
		form:   newTaskForm(),
	}
	if mgr.State() == session.Authenticated {
		m.view = viewList
	} else {
		m.view = viewLogin
	}
	return m
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, svc service.Service, mgr *session.Manager) error {
	p := tea.NewProgram(New(svc, mgr), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return s
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.view == viewList {
		return tea.Batch(m.loadTasksCmd(), m.spin.Tick)
	}
	return m.login.focusCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.inFlight {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewLogin:
			return m.updateLogin(msg)
		case viewList:
			return m.updateList(msg)
		case viewForm:
			return m.updateForm(msg)
		}

	case loginDoneMsg:
		return m.handleLoginDone(msg)
	case tasksLoadedMsg:
		return m.handleTasksLoaded(msg)
	case taskSavedMsg:
		return m.handleTaskSaved(msg)
	case listOpDoneMsg:
		return m.handleListOpDone(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.view {
	case viewLogin:
		return m.viewLogin()
	case viewList:
		return m.viewList()
	case viewForm:
		return m.viewForm()
	}
	return ""
}

// switchTo navigates to another view. Bumping the generation makes any
// in-flight response stale, so it can never mutate the new view's state.
func (m *Model) switchTo(v view) {
	m.gen++
	m.inFlight = false
	m.view = v
}

// stale reports whether a response belongs to a view the user has left.
func (m Model) stale(gen int) bool {
	return gen != m.gen
}

func (m Model) loadTasksCmd() tea.Cmd {
	gen := m.gen
	svc := m.svc
	return func() tea.Msg {
		tasks, err := svc.ListTasks(context.Background())
		return tasksLoadedMsg{gen: gen, tasks: tasks, err: err}
	}
}
