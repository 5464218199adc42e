package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

type taskData struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Time        string `json:"time"`
	Date        string `json:"date"`
}

func TestTaskLifecycle(t *testing.T) {
	// Arrange
	token := seededToken(t)
	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	payload := map[string]string{
		"name":        "Dentist appointment",
		"description": "Bring insurance card",
		"type":        "appointment",
		"time":        "14:30",
		"date":        date,
	}

	// Act: create
	status, body, _ := doJSON(t, http.MethodPost, "/api/tasks", payload, token)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("create task failed: status=%d message=%q", status, errEnv.Message)
	}

	var created struct {
		Success bool     `json:"success"`
		Task    taskData `json:"task"`
	}
	decodeInto(t, body, &created)
	if created.Task.ID == "" {
		t.Fatal("expected task id in response")
	}

	// Act: list
	status, body, _ = doJSON(t, http.MethodGet, "/api/tasks?date="+date, nil, token)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("list tasks failed: status=%d message=%q", status, errEnv.Message)
	}

	var listed struct {
		Success bool       `json:"success"`
		Tasks   []taskData `json:"tasks"`
	}
	decodeInto(t, body, &listed)

	found := false
	for _, task := range listed.Tasks {
		if task.ID == created.Task.ID {
			found = true
			if task.Name != payload["name"] || task.Date != date {
				t.Fatalf("listed task does not match created one: %+v", task)
			}
		}
	}
	if !found {
		t.Fatalf("created task %s not found in list for %s", created.Task.ID, date)
	}

	// Act: delete
	status, body, _ = doJSON(t, http.MethodDelete, "/api/tasks/"+created.Task.ID, nil, token)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("delete task failed: status=%d message=%q", status, errEnv.Message)
	}

	// Assert: a second delete reports not found
	status, body, _ = doJSON(t, http.MethodDelete, "/api/tasks/"+created.Task.ID, nil, token)
	if status != http.StatusNotFound {
		t.Fatalf("expected status 404 on second delete, got %d", status)
	}
	if errEnv := decodeError(t, body); errEnv.Message != "Task not found" {
		t.Fatalf("unexpected message: %q", errEnv.Message)
	}
}

func TestTasksRequireSession(t *testing.T) {
	// Arrange
	date := time.Now().Format("2006-01-02")

	// Act
	status, _, _ := doJSON(t, http.MethodGet, "/api/tasks?date="+date, nil, "")

	// Assert
	if status != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", status)
	}
}

func TestCreateTaskInvalidDate(t *testing.T) {
	// Arrange
	token := seededToken(t)

	payload := map[string]string{
		"name": "Bad date",
		"type": "reminder",
		"time": "09:00",
		"date": fmt.Sprintf("%d-13-45", time.Now().Year()),
	}

	// Act
	status, _, _ := doJSON(t, http.MethodPost, "/api/tasks", payload, token)

	// Assert
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", status)
	}
}
