package tests

import (
	"net/http"
	"testing"
)

func TestResetPassword(t *testing.T) {
	// Arrange
	email := uniqueEmail("real-reset")
	signupAccount(t, uniqueUsername("realreset"), email)

	payload := map[string]string{
		"email":           email,
		"newPassword":     "FreshSecret123!",
		"confirmPassword": "FreshSecret123!",
	}

	// Act
	status, body, _ := doJSON(t, http.MethodPost, "/api/reset-password", payload, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("reset password failed: status=%d message=%q", status, errEnv.Message)
	}
}

func TestResetPasswordMismatch(t *testing.T) {
	// Arrange
	payload := map[string]string{
		"email":           seededEmail,
		"newPassword":     "FreshSecret123!",
		"confirmPassword": "OtherSecret123!",
	}

	// Act
	status, body, _ := doJSON(t, http.MethodPost, "/api/reset-password", payload, "")

	// Assert
	if status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", status)
	}
	if errEnv := decodeError(t, body); errEnv.Message != "Passwords do not match" {
		t.Fatalf("unexpected message: %q", errEnv.Message)
	}
}

func TestResetPasswordSamePassword(t *testing.T) {
	// Arrange
	payload := map[string]string{
		"email":           seededEmail,
		"newPassword":     seededPassword,
		"confirmPassword": seededPassword,
	}

	// Act
	status, body, _ := doJSON(t, http.MethodPost, "/api/reset-password", payload, "")

	// Assert
	if status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", status)
	}
	if errEnv := decodeError(t, body); errEnv.Message != "New password must be different from the old password" {
		t.Fatalf("unexpected message: %q", errEnv.Message)
	}
}

func TestResetPasswordUnknownAccount(t *testing.T) {
	// Arrange
	payload := map[string]string{
		"email":           uniqueEmail("real-reset-nobody"),
		"newPassword":     "FreshSecret123!",
		"confirmPassword": "FreshSecret123!",
	}

	// Act
	status, body, _ := doJSON(t, http.MethodPost, "/api/reset-password", payload, "")

	// Assert
	if status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", status)
	}
	if errEnv := decodeError(t, body); errEnv.Message != "Account not found" {
		t.Fatalf("unexpected message: %q", errEnv.Message)
	}
}
