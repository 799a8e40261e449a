// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All REST calls go through this interface; commands and the TUI never
// import the HTTP layer directly.
type Service interface {
	// ListTasks returns all tasks visible to the authenticated user, in
	// backend order.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task by ID.
	GetTask(ctx context.Context, id int64) (Task, error)

	// CreateTask creates a task and returns it with the server-assigned ID.
	CreateTask(ctx context.Context, in TaskInput) (Task, error)

	// UpdateTask replaces the editable fields of an existing task.
	UpdateTask(ctx context.Context, id int64, in TaskInput) (Task, error)

	// CompleteTask marks a task done.
	CompleteTask(ctx context.Context, id int64) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id int64) error
}
