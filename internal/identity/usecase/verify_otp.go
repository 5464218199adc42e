package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/organaize/organaize/internal/pkg/goerror"
)

type VerifyOTPInput struct {
	Email string `validate:"required,email"`
	OTP   string `validate:"required"`
}

type VerifyOTPOutput struct {
	AccountID int64
	Username  string
	Email     string
}

// VerifyOTP checks the submitted code against the pending verification row
// and marks the account verified on a match.
//
// An already-verified account short-circuits to success so repeated submits of
// a consumed code stay harmless. An expired code only fails the request; it
// never deletes the account or the row. A wrong code mutates nothing, so the
// stored code stays valid for another attempt.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &VerifyOTPOutput{AccountID: acc.ID, Username: acc.Username, Email: acc.Email}

	if acc.Verified {
		return out, nil
	}

	vc, err := s.repoDB.GetVerificationCodeByAccountID(ctx, acc.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("No verification code found for this account", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get verification code", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if s.clock.Now().After(vc.ExpiresAt) {
		return nil, goerror.NewBusiness("OTP has expired", goerror.CodeInvalidFormat)
	}

	code, err := strconv.Atoi(strings.TrimSpace(in.OTP))
	if err != nil || code != vc.Code {
		return nil, goerror.NewBusiness("Invalid OTP", goerror.CodeInvalidFormat)
	}

	if err := s.repoDB.MarkAccountVerified(ctx, acc.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark account verified", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return out, nil
}
