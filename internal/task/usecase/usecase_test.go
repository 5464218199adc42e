package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/organaize/organaize/internal/pkg/goerror"
	"github.com/organaize/organaize/internal/pkg/instrument"
	"github.com/organaize/organaize/internal/pkg/jwt"
	"github.com/organaize/organaize/internal/pkg/validator"
	"github.com/organaize/organaize/internal/task/entity"
)

type fakeRepo struct {
	tasks     []entity.Task
	createErr error
}

func (f *fakeRepo) GetTasksByAccountDate(_ context.Context, accountID int64, date string) ([]entity.Task, error) {
	var out []entity.Task
	for _, task := range f.tasks {
		if task.AccountID == accountID && task.Date == date {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateTask(_ context.Context, task entity.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeRepo) DeleteTask(_ context.Context, id, accountID int64) error {
	for i, task := range f.tasks {
		if task.ID == id && task.AccountID == accountID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return goerror.ErrNotFound
}

type seqNumberID struct{ next uint64 }

func (s *seqNumberID) Generate() uint64 {
	s.next++
	return s.next
}

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func newTestUsecase(t *testing.T) (*Usecase, *fakeRepo) {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	repo := &fakeRepo{}
	uc := New(Dependency{
		RepoDB:     repo,
		Validator:  v10,
		UID:        &seqNumberID{},
		Clock:      fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		Instrument: instrument.NewNoop(),
	})

	return uc, repo
}

func authCtx(accountID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: accountID})
}

func assertErrorStatus(t *testing.T, err error, wantStatus int, wantMsg string) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror, got %v", err)
	}
	if gerr.StatusCode() != wantStatus {
		t.Fatalf("expected status %d, got %d (%v)", wantStatus, gerr.StatusCode(), err)
	}
	if wantMsg != "" && gerr.Msg() != wantMsg {
		t.Fatalf("expected message %q, got %q", wantMsg, gerr.Msg())
	}
}

func TestCreateTask(t *testing.T) {
	uc, repo := newTestUsecase(t)

	task, err := uc.CreateTask(authCtx(7), CreateTaskInput{
		Name: "  Dentist  ",
		Type: "appointment",
		Time: "14:30",
		Date: "2025-06-02",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if task.ID == 0 {
		t.Fatal("expected generated task id")
	}
	if task.AccountID != 7 {
		t.Fatalf("task must be stamped with the caller's account, got %d", task.AccountID)
	}
	if task.Name != "Dentist" {
		t.Fatalf("expected trimmed name, got %q", task.Name)
	}
	if len(repo.tasks) != 1 {
		t.Fatalf("expected one stored task, got %d", len(repo.tasks))
	}
}

func TestCreateTaskRequiresAuth(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.CreateTask(context.Background(), CreateTaskInput{
		Name: "Dentist",
		Type: "appointment",
		Date: "2025-06-02",
	})

	assertErrorStatus(t, err, 401, "Authentication required")
}

func TestCreateTaskInvalidDate(t *testing.T) {
	uc, _ := newTestUsecase(t)

	for _, date := range []string{"", "2025-13-45", "02-06-2025", "2025/06/02"} {
		_, err := uc.CreateTask(authCtx(7), CreateTaskInput{
			Name: "Dentist",
			Type: "appointment",
			Date: date,
		})
		assertErrorStatus(t, err, 422, "")
	}
}

func TestListTasksScopedToAccountAndDate(t *testing.T) {
	uc, repo := newTestUsecase(t)
	repo.tasks = []entity.Task{
		{ID: 1, AccountID: 7, Name: "Mine today", Date: "2025-06-02"},
		{ID: 2, AccountID: 7, Name: "Mine tomorrow", Date: "2025-06-03"},
		{ID: 3, AccountID: 8, Name: "Someone else's", Date: "2025-06-02"},
	}

	tasks, err := uc.ListTasks(authCtx(7), ListTasksInput{Date: "2025-06-02"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}

	if len(tasks) != 1 || tasks[0].ID != 1 {
		t.Fatalf("expected only the caller's task for the day, got %+v", tasks)
	}
}

func TestListTasksRequiresDate(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.ListTasks(authCtx(7), ListTasksInput{})
	assertErrorStatus(t, err, 422, "")
}

func TestDeleteTask(t *testing.T) {
	uc, repo := newTestUsecase(t)
	repo.tasks = []entity.Task{{ID: 1, AccountID: 7, Date: "2025-06-02"}}

	if err := uc.DeleteTask(authCtx(7), DeleteTaskInput{ID: 1}); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if len(repo.tasks) != 0 {
		t.Fatal("expected task to be removed")
	}

	err := uc.DeleteTask(authCtx(7), DeleteTaskInput{ID: 1})
	assertErrorStatus(t, err, 404, "Task not found")
}

func TestDeleteTaskForeignLooksLikeMissing(t *testing.T) {
	uc, repo := newTestUsecase(t)
	repo.tasks = []entity.Task{{ID: 1, AccountID: 8, Date: "2025-06-02"}}

	err := uc.DeleteTask(authCtx(7), DeleteTaskInput{ID: 1})
	assertErrorStatus(t, err, 404, "Task not found")

	if len(repo.tasks) != 1 {
		t.Fatal("foreign task must not be deleted")
	}
}
