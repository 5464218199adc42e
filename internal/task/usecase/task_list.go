package usecase

import (
	"context"
	"log/slog"

	"github.com/organaize/organaize/internal/pkg/goerror"
	"github.com/organaize/organaize/internal/task/entity"
)

type ListTasksInput struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

// ListTasks returns the caller's tasks for one calendar day.
func (s *Usecase) ListTasks(ctx context.Context, in ListTasksInput) ([]entity.Task, error) {
	ctx, span := s.startSpan(ctx, "ListTasks")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	tasks, err := s.repoDB.GetTasksByAccountDate(ctx, clm.UserID, in.Date)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get tasks", "account_id", clm.UserID, "date", in.Date, "error", err)
		return nil, goerror.NewServer(err)
	}

	return tasks, nil
}
