package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/organaize/organaize/internal/pkg/goerror"
	"github.com/organaize/organaize/internal/pkg/instrument"
	"github.com/organaize/organaize/internal/task/entity"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{
		conn: conn,
		ins:  ins,
	}
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("task.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

const getTasksByAccountDate = `
SELECT id, account_id, name, description, type, time, date, created_at, updated_at
FROM tasks
WHERE account_id = $1 AND date = $2
ORDER BY created_at
`

func (s *DB) GetTasksByAccountDate(ctx context.Context, accountID int64, date string) (_ []entity.Task, err error) {
	ctx, span := s.startSpan(ctx, "GetTasksByAccountDate")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, getTasksByAccountDate, accountID, date)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var tasks []entity.Task
	for rows.Next() {
		var t entity.Task
		if err = rows.Scan(
			&t.ID, &t.AccountID, &t.Name, &t.Description, &t.Type, &t.Time, &t.Date, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, s.mapError(err)
		}
		tasks = append(tasks, t)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return tasks, nil
}

const createTask = `
INSERT INTO tasks (id, account_id, name, description, type, time, date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

func (s *DB) CreateTask(ctx context.Context, t entity.Task) (err error) {
	ctx, span := s.startSpan(ctx, "CreateTask")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, createTask,
		t.ID, t.AccountID, t.Name, t.Description, t.Type, t.Time, t.Date, t.CreatedAt, t.UpdatedAt,
	)
	return s.mapError(err)
}

const deleteTask = `
DELETE FROM tasks WHERE id = $1 AND account_id = $2
`

// DeleteTask scopes the delete by owner, so a caller can never remove another
// account's task; zero affected rows reads as not found.
func (s *DB) DeleteTask(ctx context.Context, id, accountID int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteTask")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, deleteTask, id, accountID)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
