package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

// Seeded verified account, created by db/seed.sql before the suite runs.
// Fresh signups stay unverified because the code only goes out by email.
const (
	seededUsername = "organaizer"
	seededEmail    = "user@organaize.com"
	seededPassword = "Secret123!"
)

func uniqueUsername(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano())
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

type signupData struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Email   string `json:"email"`
	UserID  string `json:"userId"`
}

func signupAccount(t *testing.T, username, email string) signupData {
	t.Helper()

	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": "Secret123!",
	}

	status, body, _ := doJSON(t, http.MethodPost, "/api/signup", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("signup failed: status=%d message=%q", status, errEnv.Message)
	}

	var data signupData
	decodeInto(t, body, &data)

	return data
}

type loginData struct {
	Success  bool   `json:"success"`
	Verified bool   `json:"verified"`
	User     *struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
	Email   string `json:"email"`
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

func login(t *testing.T, username, password string) (loginData, string) {
	t.Helper()

	payload := map[string]string{
		"username": username,
		"password": password,
	}

	status, body, cookies := doJSON(t, http.MethodPost, "/api/login", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("login failed: status=%d message=%q", status, errEnv.Message)
	}

	var data loginData
	decodeInto(t, body, &data)

	var token string
	for _, c := range cookies {
		if c.Name == "session" {
			token = c.Value
		}
	}

	return data, token
}

func seededToken(t *testing.T) string {
	t.Helper()

	data, token := login(t, seededUsername, seededPassword)
	if !data.Verified {
		t.Fatal("seeded account is not verified")
	}
	if token == "" {
		t.Fatal("missing session cookie on verified login")
	}

	return token
}
