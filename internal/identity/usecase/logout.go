package usecase

import (
	"context"
	"log/slog"
)

// Logout revokes the session carried by token, if any. The token ID goes on
// the denylist for the token's remaining lifetime; an absent or invalid token
// still succeeds so the client can always clear its cookie.
func (s *Usecase) Logout(ctx context.Context, token string) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if token == "" {
		return nil
	}

	claims, err := s.jwt.Verify(token)
	if err != nil {
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(s.clock.Now())
	if err := s.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to revoke session", "account_id", claims.UserID, "error", err)
	}

	return nil
}
