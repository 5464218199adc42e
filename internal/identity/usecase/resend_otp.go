package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/organaize/organaize/internal/pkg/goerror"
)

type ResendOTPInput struct {
	Email string `validate:"required,email"`
}

// ResendOTP replaces the pending verification code with a fresh one and queues
// delivery. The old code becomes unusable even if it had time left.
func (s *Usecase) ResendOTP(ctx context.Context, in ResendOTPInput) error {
	ctx, span := s.startSpan(ctx, "ResendOTP")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	return s.issueVerification(ctx, acc)
}
