package tests

import (
	"net/http"
	"testing"
)

type authStatusData struct {
	IsAuthenticated bool `json:"isAuthenticated"`
	User            *struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

func authStatus(t *testing.T, token string) authStatusData {
	t.Helper()

	status, body, _ := doJSON(t, http.MethodGet, "/api/auth-status", nil, token)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("auth status failed: status=%d message=%q", status, errEnv.Message)
	}

	var data authStatusData
	decodeInto(t, body, &data)

	return data
}

func TestAuthStatusAnonymous(t *testing.T) {
	// Act
	data := authStatus(t, "")

	// Assert
	if data.IsAuthenticated {
		t.Fatal("expected isAuthenticated=false without a session")
	}
}

func TestAuthStatusAfterLogin(t *testing.T) {
	// Arrange
	token := seededToken(t)

	// Act
	data := authStatus(t, token)

	// Assert
	if !data.IsAuthenticated {
		t.Fatal("expected isAuthenticated=true")
	}
	if data.User == nil || data.User.Username != seededUsername {
		t.Fatalf("unexpected user payload: %+v", data.User)
	}
}

func TestLogout(t *testing.T) {
	// Arrange
	token := seededToken(t)

	// Act
	status, body, _ := doJSON(t, http.MethodPost, "/api/logout", nil, token)

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("logout failed: status=%d message=%q", status, errEnv.Message)
	}

	if data := authStatus(t, token); data.IsAuthenticated {
		t.Fatal("expected session to be revoked after logout")
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	// Act
	status, body, _ := doJSON(t, http.MethodPost, "/api/logout", nil, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("logout failed: status=%d message=%q", status, errEnv.Message)
	}
}
