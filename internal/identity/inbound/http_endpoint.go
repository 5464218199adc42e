package inbound

import (
	"net/http"

	"github.com/organaize/organaize/internal/identity/usecase"
	"github.com/organaize/organaize/internal/pkg/config"
	"github.com/organaize/organaize/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the account lifecycle: signup,
// verification, login/logout, and password reset.
type HTTPEndpoint struct {
	uc  uc
	cfg config.Config
}

func (h *HTTPEndpoint) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     router.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.GetHour("modules.identity.session_ttl_hours").Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.GetBool("server.secure_cookies"),
		SameSite: http.SameSiteLaxMode,
	}
}

func clearedSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     router.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}
}

// Signup registers a new account and triggers OTP delivery to its email.
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Signup(r.Context(), usecase.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return SignupResponse{
		Success: true,
		Message: "Signup successful. Please check your email for the verification code.",
		Email:   resp.Email,
		UserID:  resp.AccountID,
	}, nil
}

// Login authenticates and either opens a session or routes back to the OTP
// step for unverified accounts.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	if !resp.Verified {
		return LoginResponse{
			Success:  true,
			Verified: false,
			Email:    resp.Email,
			UserID:   resp.AccountID,
			Message:  "Account not verified. A new verification code has been sent to your email.",
		}, nil
	}

	return LoginResponse{
		Success:  true,
		Verified: true,
		User: &userPayload{
			ID:       resp.AccountID,
			Username: resp.Username,
			Email:    resp.Email,
		},
		cookie: h.sessionCookie(resp.Token),
	}, nil
}

// VerifyOTP confirms the emailed code and activates the account.
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Email: req.Email,
		OTP:   req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{
		Success: true,
		Message: "Email verified successfully.",
		User: userPayload{
			ID:       resp.AccountID,
			Username: resp.Username,
			Email:    resp.Email,
		},
	}, nil
}

// ResendOTP issues a fresh verification code, replacing any pending one.
func (h *HTTPEndpoint) ResendOTP(r *router.Request) (any, error) {
	var req ResendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ResendOTP(r.Context(), usecase.ResendOTPInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return ResendOTPResponse{
		Success: true,
		Message: "A new verification code has been sent to your email.",
	}, nil
}

// ResetPassword replaces the account password.
func (h *HTTPEndpoint) ResetPassword(r *router.Request) (any, error) {
	var req ResetPasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ResetPassword(r.Context(), usecase.ResetPasswordInput{
		Email:           req.Email,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		return nil, err
	}

	return ResetPasswordResponse{
		Success: true,
		Message: "Password reset successfully.",
	}, nil
}

// Logout revokes the current session and clears the cookie. It succeeds even
// without a valid session so clients can always reset their state.
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context(), router.BearerToken(r.Request)); err != nil {
		return nil, err
	}

	return LogoutResponse{
		Success: true,
		Message: "Logged out.",
		cookie:  clearedSessionCookie(),
	}, nil
}

// AuthStatus reports the session state for the SPA's initial routing decision.
func (h *HTTPEndpoint) AuthStatus(r *router.Request) (any, error) {
	resp := h.uc.AuthStatus(r.Context(), router.BearerToken(r.Request))

	out := AuthStatusResponse{IsAuthenticated: resp.IsAuthenticated}
	if resp.IsAuthenticated {
		out.User = &userPayload{
			ID:       resp.AccountID,
			Username: resp.Username,
			Email:    resp.Email,
		}
	}

	return out, nil
}
