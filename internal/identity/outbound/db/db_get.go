package db

import (
	"context"

	"github.com/organaize/organaize/internal/identity/entity"
)

const getAccountByUsername = `
SELECT id, username, email, password, verified, created_at, updated_at
FROM accounts
WHERE username = $1
`

func (s *DB) GetAccountByUsername(ctx context.Context, username string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByUsername")
	defer func() { s.endSpan(span, err) }()

	var acc entity.Account
	err = s.conn.QueryRow(ctx, getAccountByUsername, username).Scan(
		&acc.ID, &acc.Username, &acc.Email, &acc.Password, &acc.Verified, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &acc, nil
}

const getAccountByEmail = `
SELECT id, username, email, password, verified, created_at, updated_at
FROM accounts
WHERE email = $1
`

func (s *DB) GetAccountByEmail(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { s.endSpan(span, err) }()

	var acc entity.Account
	err = s.conn.QueryRow(ctx, getAccountByEmail, email).Scan(
		&acc.ID, &acc.Username, &acc.Email, &acc.Password, &acc.Verified, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &acc, nil
}

const getVerificationCodeByAccountID = `
SELECT id, account_id, code, created_at, expires_at
FROM verification_codes
WHERE account_id = $1
`

func (s *DB) GetVerificationCodeByAccountID(ctx context.Context, accountID int64) (_ *entity.VerificationCode, err error) {
	ctx, span := s.startSpan(ctx, "GetVerificationCodeByAccountID")
	defer func() { s.endSpan(span, err) }()

	var vc entity.VerificationCode
	err = s.conn.QueryRow(ctx, getVerificationCodeByAccountID, accountID).Scan(
		&vc.ID, &vc.AccountID, &vc.Code, &vc.CreatedAt, &vc.ExpiresAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &vc, nil
}
