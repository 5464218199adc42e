package inbound

import "net/http"

type userPayload struct {
	ID       int64  `json:"id,string"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Email   string `json:"email"`
	UserID  int64  `json:"userId,string"`
}

type LoginRequest struct {
	Username string `json:"username"` // username or email
	Password string `json:"password"`
}

type LoginResponse struct {
	Success  bool         `json:"success"`
	Verified bool         `json:"verified"`
	User     *userPayload `json:"user,omitempty"`
	Email    string       `json:"email,omitempty"`
	UserID   int64        `json:"userId,string,omitempty"`
	Message  string       `json:"message,omitempty"`

	cookie *http.Cookie
}

func (r LoginResponse) Cookies() []*http.Cookie {
	if r.cookie == nil {
		return nil
	}
	return []*http.Cookie{r.cookie}
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type VerifyOTPResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    userPayload `json:"user"`
}

type ResendOTPRequest struct {
	Email string `json:"email"`
}

type ResendOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ResetPasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	cookie *http.Cookie
}

func (r LogoutResponse) Cookies() []*http.Cookie {
	if r.cookie == nil {
		return nil
	}
	return []*http.Cookie{r.cookie}
}

type AuthStatusResponse struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	User            *userPayload `json:"user,omitempty"`
}
