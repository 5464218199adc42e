package usecase

import (
	"context"
	"log/slog"
)

type AuthStatusOutput struct {
	IsAuthenticated bool
	AccountID       int64
	Username        string
	Email           string
}

// AuthStatus reports whether token carries a live session. It never fails on
// a bad token; the SPA polls this on load to decide which view to render.
func (s *Usecase) AuthStatus(ctx context.Context, token string) *AuthStatusOutput {
	ctx, span := s.startSpan(ctx, "AuthStatus")
	defer span.End()

	if token == "" {
		return &AuthStatusOutput{}
	}

	claims, err := s.jwt.Verify(token)
	if err != nil {
		return &AuthStatusOutput{}
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check session revocation", "account_id", claims.UserID, "error", err)
		return &AuthStatusOutput{}
	}
	if revoked {
		return &AuthStatusOutput{}
	}

	return &AuthStatusOutput{
		IsAuthenticated: true,
		AccountID:       claims.UserID,
		Username:        claims.UserName,
		Email:           claims.UserEmail,
	}
}
