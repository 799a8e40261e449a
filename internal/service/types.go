// Package service defines the backend-agnostic interface for task operations.
package service

// Task statuses as used on the wire.
const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Task represents a single task item.
type Task struct {
	ID          int64
	Title       string
	Description string
	DueDate     string // YYYY-MM-DD
	Status      string // "pending" or "done"
}

// TaskInput is the user-editable subset of a Task, as entered in a
// create/edit form. It is validated before being sent to the backend.
type TaskInput struct {
	Title       string
	Description string
	DueDate     string // YYYY-MM-DD
}
