package tests

import (
	"net/http"
	"testing"
)

func TestVerifyOTPUnknownAccount(t *testing.T) {
	// Arrange
	payload := map[string]string{
		"email": uniqueEmail("real-verify-nobody"),
		"otp":   "1234",
	}

	// Act
	status, body, _ := doJSON(t, http.MethodPost, "/api/verify-otp", payload, "")

	// Assert
	if status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", status)
	}
	if errEnv := decodeError(t, body); errEnv.Message != "Account not found" {
		t.Fatalf("unexpected message: %q", errEnv.Message)
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {
	// Arrange
	email := uniqueEmail("real-verify-wrong")
	signupAccount(t, uniqueUsername("realverifywrong"), email)

	// Issued codes are always four digits, so 999 can never match.
	payload := map[string]string{
		"email": email,
		"otp":   "999",
	}

	// Act
	status, body, _ := doJSON(t, http.MethodPost, "/api/verify-otp", payload, "")

	// Assert
	if status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", status)
	}
	if errEnv := decodeError(t, body); errEnv.Message != "Invalid OTP" {
		t.Fatalf("unexpected message: %q", errEnv.Message)
	}
}

func TestResendOTP(t *testing.T) {
	// Arrange
	email := uniqueEmail("real-resend")
	signupAccount(t, uniqueUsername("realresend"), email)

	payload := map[string]string{"email": email}

	// Act
	status, body, _ := doJSON(t, http.MethodPost, "/api/resend-otp", payload, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("resend failed: status=%d message=%q", status, errEnv.Message)
	}
}

func TestResendOTPUnknownAccount(t *testing.T) {
	// Arrange
	payload := map[string]string{"email": uniqueEmail("real-resend-nobody")}

	// Act
	status, body, _ := doJSON(t, http.MethodPost, "/api/resend-otp", payload, "")

	// Assert
	if status != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", status)
	}
	if errEnv := decodeError(t, body); errEnv.Message != "Account not found" {
		t.Fatalf("unexpected message: %q", errEnv.Message)
	}
}
