package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/organaize/organaize/internal/identity/entity"
)

const createAccount = `
INSERT INTO accounts (id, username, email, password, verified)
VALUES ($1, $2, $3, $4, FALSE)
`

const createVerificationCode = `
INSERT INTO verification_codes (id, account_id, code, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5)
`

// CreateAccountWithVerification inserts the account and its first pending code
// in one transaction, so a signup never leaves an account without a code to
// verify against.
func (s *DB) CreateAccountWithVerification(ctx context.Context, acc entity.NewAccount, vc entity.VerificationCode) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccountWithVerification")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	if _, err = tx.Exec(ctx, createAccount, acc.ID, acc.Username, acc.Email, acc.Password); err != nil {
		err = s.mapError(err)
		return err
	}

	if _, err = tx.Exec(ctx, createVerificationCode, vc.ID, vc.AccountID, vc.Code, vc.CreatedAt, vc.ExpiresAt); err != nil {
		err = s.mapError(err)
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		err = s.mapError(err)
		return err
	}

	return nil
}
