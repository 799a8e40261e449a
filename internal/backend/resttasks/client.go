// Package resttasks implements the service.Service interface against the
// task backend's REST API.
package resttasks

import (
	"context"
	"fmt"
	"net/http"

	"tasker/internal/api"
	"tasker/internal/service"
)

// Client implements service.Service over an api.Client.
type Client struct {
	api *api.Client
}

// New creates a REST-backed task service.
func New(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// taskPayload is the wire shape of a task.
type taskPayload struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (p taskPayload) toTask() service.Task {
	status := p.Status
	if status == "" {
		status = service.StatusPending
	}
	return service.Task{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		DueDate:     p.DueDate,
		Status:      status,
	}
}

// inputPayload is the wire shape of a create/update body. The ID is
// never sent; it lives in the URL.
type inputPayload struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

func toInputPayload(in service.TaskInput) inputPayload {
	return inputPayload{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
	}
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var payload []taskPayload
	if err := c.api.DoJSON(ctx, http.MethodGet, "/api/tasks/", nil, &payload, true); err != nil {
		return nil, err
	}
	tasks := make([]service.Task, 0, len(payload))
	for _, p := range payload {
		tasks = append(tasks, p.toTask())
	}
	return tasks, nil
}

// GetTask implements service.Service.
func (c *Client) GetTask(ctx context.Context, id int64) (service.Task, error) {
	var payload taskPayload
	if err := c.api.DoJSON(ctx, http.MethodGet, taskPath(id), nil, &payload, true); err != nil {
		return service.Task{}, err
	}
	return payload.toTask(), nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, in service.TaskInput) (service.Task, error) {
	var payload taskPayload
	if err := c.api.DoJSON(ctx, http.MethodPost, "/api/tasks/", toInputPayload(in), &payload, true); err != nil {
		return service.Task{}, err
	}
	return payload.toTask(), nil
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id int64, in service.TaskInput) (service.Task, error) {
	var payload taskPayload
	if err := c.api.DoJSON(ctx, http.MethodPut, taskPath(id), toInputPayload(in), &payload, true); err != nil {
		return service.Task{}, err
	}
	return payload.toTask(), nil
}

// CompleteTask implements service.Service.
func (c *Client) CompleteTask(ctx context.Context, id int64) error {
	body := map[string]string{"status": service.StatusDone}
	return c.api.DoJSON(ctx, http.MethodPatch, taskPath(id), body, nil, true)
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.api.DoJSON(ctx, http.MethodDelete, taskPath(id), nil, nil, true)
}

func taskPath(id int64) string {
	return fmt.Sprintf("/api/tasks/%d", id)
}
