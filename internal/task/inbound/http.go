package inbound

import (
	"context"

	"github.com/organaize/organaize/internal/pkg/router"
	"github.com/organaize/organaize/internal/task/entity"
	"github.com/organaize/organaize/internal/task/usecase"
)

type uc interface {
	ListTasks(ctx context.Context, in usecase.ListTasksInput) ([]entity.Task, error)
	CreateTask(ctx context.Context, in usecase.CreateTaskInput) (*entity.Task, error)
	DeleteTask(ctx context.Context, in usecase.DeleteTaskInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/tasks", end.ListTasks)
	r.POST("/api/tasks", end.CreateTask)
	r.DELETE("/api/tasks/:id", end.DeleteTask)
}
