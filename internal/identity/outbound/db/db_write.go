package db

import (
	"context"

	"github.com/organaize/organaize/internal/identity/entity"
)

const upsertVerificationCode = `
INSERT INTO verification_codes (id, account_id, code, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (account_id) DO UPDATE
SET code = EXCLUDED.code, created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at
`

// UpsertVerificationCode replaces the pending code in a single statement, so
// at most one row per account ever exists and the swap is atomic.
func (s *DB) UpsertVerificationCode(ctx context.Context, vc entity.VerificationCode) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertVerificationCode")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, upsertVerificationCode, vc.ID, vc.AccountID, vc.Code, vc.CreatedAt, vc.ExpiresAt)
	return s.mapError(err)
}

const markAccountVerified = `
UPDATE accounts SET verified = TRUE, updated_at = NOW() WHERE id = $1
`

func (s *DB) MarkAccountVerified(ctx context.Context, accountID int64) (err error) {
	ctx, span := s.startSpan(ctx, "MarkAccountVerified")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, markAccountVerified, accountID)
	return s.mapError(err)
}

const updateAccountPassword = `
UPDATE accounts SET password = $2, updated_at = NOW() WHERE id = $1
`

func (s *DB) UpdateAccountPassword(ctx context.Context, accountID int64, hashed string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAccountPassword")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, updateAccountPassword, accountID, hashed)
	return s.mapError(err)
}
