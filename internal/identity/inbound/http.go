package inbound

import (
	"context"

	"github.com/organaize/organaize/internal/identity/usecase"
	"github.com/organaize/organaize/internal/pkg/config"
	"github.com/organaize/organaize/internal/pkg/router"
)

type uc interface {
	Signup(ctx context.Context, in usecase.SignupInput) (*usecase.SignupOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error)
	ResendOTP(ctx context.Context, in usecase.ResendOTPInput) error
	ResetPassword(ctx context.Context, in usecase.ResetPasswordInput) error

	Logout(ctx context.Context, token string) error
	AuthStatus(ctx context.Context, token string) *usecase.AuthStatusOutput
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, cfg config.Config) {
	end := &HTTPEndpoint{uc: uc, cfg: cfg}

	// Account lifecycle
	r.POST("/api/signup", end.Signup)
	r.POST("/api/verify-otp", end.VerifyOTP)
	r.POST("/api/resend-otp", end.ResendOTP)
	r.POST("/api/reset-password", end.ResetPassword)

	// Session
	r.POST("/api/login", end.Login)
	r.POST("/api/logout", end.Logout)
	r.GET("/api/auth-status", end.AuthStatus)
}
