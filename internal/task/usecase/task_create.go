package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/organaize/organaize/internal/pkg/goerror"
	"github.com/organaize/organaize/internal/task/entity"
)

type CreateTaskInput struct {
	Name        string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	Type        string `validate:"required,max=50"`
	Time        string `validate:"max=20"`
	Date        string `validate:"required,datetime=2006-01-02"`
}

// CreateTask stores a calendar entry owned by the caller.
func (s *Usecase) CreateTask(ctx context.Context, in CreateTaskInput) (*entity.Task, error) {
	ctx, span := s.startSpan(ctx, "CreateTask")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	task := entity.Task{
		ID:          int64(s.uid.Generate()),
		AccountID:   clm.UserID,
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Time:        in.Time,
		Date:        in.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repoDB.CreateTask(ctx, task); err != nil {
		slog.ErrorContext(ctx, "failed to repo create task", "account_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &task, nil
}
