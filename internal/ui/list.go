package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tasker/internal/api"
	"tasker/internal/service"
)

// taskList holds the list view state.
type taskList struct {
	tasks  []service.Task
	cursor int
	status string
}

func (l *taskList) clampCursor() {
	if l.cursor >= len(l.tasks) {
		l.cursor = len(l.tasks) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l taskList) selected() (service.Task, bool) {
	if len(l.tasks) == 0 {
		return service.Task{}, false
	}
	return l.tasks[l.cursor], true
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.list.cursor > 0 {
			m.list.cursor--
		}
		return m, nil

	case "down", "j":
		if m.list.cursor < len(m.list.tasks)-1 {
			m.list.cursor++
		}
		return m, nil

	case "r":
		if m.inFlight {
			return m, nil
		}
		m.inFlight = true
		m.list.status = ""
		return m, tea.Batch(m.loadTasksCmd(), m.spin.Tick)

	case "a":
		m.switchTo(viewForm)
		m.form.reset(nil)
		return m, m.form.setFocus(0)

	case "e":
		task, ok := m.list.selected()
		if !ok {
			return m, nil
		}
		m.switchTo(viewForm)
		m.form.reset(&task)
		return m, m.form.setFocus(0)

	case "d":
		task, ok := m.list.selected()
		if !ok || m.inFlight {
			return m, nil
		}
		m.inFlight = true
		gen := m.gen
		svc := m.svc
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			return listOpDoneMsg{gen: gen, err: svc.CompleteTask(context.Background(), task.ID)}
		})

	case "x":
		task, ok := m.list.selected()
		if !ok || m.inFlight {
			return m, nil
		}
		m.inFlight = true
		gen := m.gen
		svc := m.svc
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			return listOpDoneMsg{gen: gen, err: svc.DeleteTask(context.Background(), task.ID)}
		})
	}

	return m, nil
}

func (m Model) handleTasksLoaded(msg tasksLoadedMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.gen) {
		return m, nil
	}
	m.inFlight = false

	if msg.err != nil {
		return m.handleListError(msg.err)
	}

	m.list.tasks = msg.tasks
	m.list.clampCursor()
	return m, nil
}

func (m Model) handleListOpDone(msg listOpDoneMsg) (tea.Model, tea.Cmd) {
	if m.stale(msg.gen) {
		return m, nil
	}
	m.inFlight = false

	if msg.err != nil {
		return m.handleListError(msg.err)
	}

	m.inFlight = true
	return m, tea.Batch(m.loadTasksCmd(), m.spin.Tick)
}

// handleListError routes auth failures back to the login view; the session
// manager has already cleared the token by the time we see the error.
func (m Model) handleListError(err error) (tea.Model, tea.Cmd) {
	var unauthorized *api.UnauthorizedError
	if errors.As(err, &unauthorized) || errors.Is(err, api.ErrAuthRequired) {
		m.switchTo(viewLogin)
		m.login.banner = "session expired, log in again"
		return m, m.login.setFocus(loginFieldUsername)
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		m.list.status = "cannot reach the backend (r to retry)"
	} else {
		m.list.status = err.Error()
	}
	return m, nil
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tasker: tasks"))
	b.WriteString("\n\n")

	if len(m.list.tasks) == 0 && !m.inFlight {
		b.WriteString("  no tasks\n")
	}

	for i, task := range m.list.tasks {
		marker := "[ ]"
		if task.Status == service.StatusDone {
			marker = "[x]"
		}
		line := fmt.Sprintf("%s %s", marker, task.Title)
		if task.DueDate != "" {
			line += helpStyle.Render("  due " + task.DueDate)
		}
		if task.Status == service.StatusDone {
			line = doneStyle.Render(line)
		}
		prefix := "  "
		if i == m.list.cursor {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix + line + "\n")
	}

	if m.inFlight {
		b.WriteString("\n  " + m.spin.View() + " loading…\n")
	}
	if m.list.status != "" {
		b.WriteString("\n  " + errStyle.Render(m.list.status) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("  a: add • e: edit • d: done • x: delete • r: refresh • q: quit"))
	return b.String()
}
