package inbound

import (
	"github.com/organaize/organaize/internal/pkg/router"
	"github.com/organaize/organaize/internal/task/entity"
	"github.com/organaize/organaize/internal/task/usecase"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes the calendar task CRUD handlers. All routes require an
// authenticated session.
type HTTPEndpoint struct {
	uc uc
}

func toTaskPayload(t entity.Task) taskPayload {
	return taskPayload{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Type:        t.Type,
		Time:        t.Time,
		Date:        t.Date,
	}
}

// ListTasks returns the caller's tasks for the ?date=YYYY-MM-DD day.
func (h *HTTPEndpoint) ListTasks(r *router.Request) (any, error) {
	tasks, err := h.uc.ListTasks(r.Context(), usecase.ListTasksInput{
		Date: r.GetQuery("date"),
	})
	if err != nil {
		return nil, err
	}

	return ListTasksResponse{
		Success: true,
		Tasks:   lo.Map(tasks, func(t entity.Task, _ int) taskPayload { return toTaskPayload(t) }),
	}, nil
}

// CreateTask stores a new calendar entry for the caller.
func (h *HTTPEndpoint) CreateTask(r *router.Request) (any, error) {
	var req CreateTaskRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	task, err := h.uc.CreateTask(r.Context(), usecase.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Time:        req.Time,
		Date:        req.Date,
	})
	if err != nil {
		return nil, err
	}

	return CreateTaskResponse{
		Success: true,
		Message: "Task created.",
		Task:    toTaskPayload(*task),
	}, nil
}

// DeleteTask removes one of the caller's tasks by ID.
func (h *HTTPEndpoint) DeleteTask(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.DeleteTask(r.Context(), usecase.DeleteTaskInput{ID: id}); err != nil {
		return nil, err
	}

	return DeleteTaskResponse{
		Success: true,
		Message: "Task deleted.",
	}, nil
}
