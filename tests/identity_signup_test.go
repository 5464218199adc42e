package tests

import (
	"net/http"
	"testing"
)

func TestSignup(t *testing.T) {
	// Arrange
	username := uniqueUsername("realsignup")
	email := uniqueEmail("real-signup")

	// Act
	data := signupAccount(t, username, email)

	// Assert
	if !data.Success {
		t.Fatal("expected success=true")
	}
	if data.UserID == "" {
		t.Fatal("expected userId in response")
	}
	if data.Email != email {
		t.Fatalf("expected email %q, got %q", email, data.Email)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	// Arrange
	username := uniqueUsername("realdupuser")
	signupAccount(t, username, uniqueEmail("real-dup-user"))

	payload := map[string]string{
		"username": username,
		"email":    uniqueEmail("real-dup-user-other"),
		"password": "Secret123!",
	}

	// Act
	status, body, _ := doJSON(t, http.MethodPost, "/api/signup", payload, "")

	// Assert
	if status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", status)
	}
	if errEnv := decodeError(t, body); errEnv.Message != "Username already exists" {
		t.Fatalf("unexpected message: %q", errEnv.Message)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	// Arrange
	email := uniqueEmail("real-dup-mail")
	signupAccount(t, uniqueUsername("realdupmail"), email)

	payload := map[string]string{
		"username": uniqueUsername("realdupmailother"),
		"email":    email,
		"password": "Secret123!",
	}

	// Act
	status, body, _ := doJSON(t, http.MethodPost, "/api/signup", payload, "")

	// Assert
	if status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", status)
	}
	if errEnv := decodeError(t, body); errEnv.Message != "Email already exists" {
		t.Fatalf("unexpected message: %q", errEnv.Message)
	}
}

func TestSignupInvalidPayload(t *testing.T) {
	// Arrange
	payload := map[string]string{
		"username": "x",
		"email":    "not-an-email",
		"password": "short",
	}

	// Act
	status, _, _ := doJSON(t, http.MethodPost, "/api/signup", payload, "")

	// Assert
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", status)
	}
}
