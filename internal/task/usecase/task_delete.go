package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/organaize/organaize/internal/pkg/goerror"
)

type DeleteTaskInput struct {
	ID int64 `validate:"required"`
}

// DeleteTask removes a task the caller owns. A foreign or missing task answers
// not-found either way, so the response never reveals other users' task IDs.
func (s *Usecase) DeleteTask(ctx context.Context, in DeleteTaskInput) error {
	ctx, span := s.startSpan(ctx, "DeleteTask")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err = s.repoDB.DeleteTask(ctx, in.ID, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Task not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete task", "task_id", in.ID, "account_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
