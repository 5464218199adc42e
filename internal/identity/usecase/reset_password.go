package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/organaize/organaize/internal/pkg/goerror"
)

type ResetPasswordInput struct {
	Email           string `validate:"required,email"`
	NewPassword     string `validate:"required,password"`
	ConfirmPassword string `validate:"required"`
}

// ResetPassword replaces the account's password digest.
//
// The confirmation mismatch check runs before any store access. A new password
// equal to the current one is rejected. Nothing here requires a prior OTP or
// other ownership proof; that matches the current product flow and is a known
// gap, tracked for a future reset-token gate.
func (s *Usecase) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	ctx, span := s.startSpan(ctx, "ResetPassword")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if in.NewPassword != in.ConfirmPassword {
		return goerror.NewBusiness("Passwords do not match", goerror.CodeInvalidFormat)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if s.hasher.Verify(acc.Password, in.NewPassword) {
		return goerror.NewBusiness("New password must be different from the old password", goerror.CodeInvalidFormat)
	}

	hashedPassword, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateAccountPassword(ctx, acc.ID, string(hashedPassword)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update account password", "account_id", acc.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
