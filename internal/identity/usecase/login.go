package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/organaize/organaize/internal/pkg/goerror"
)

type LoginInput struct {
	Username string `validate:"required"` // username or email
	Password string `validate:"required"`
}

type LoginOutput struct {
	Verified  bool
	Token     string // set only when Verified
	AccountID int64
	Username  string
	Email     string
}

// Login authenticates by username or email. A verified account gets a session
// token; an unverified one gets exactly one fresh verification code and is
// routed back to the OTP step.
//
// Unknown identifier and wrong password collapse into the same error so the
// response never reveals which accounts exist.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByUsername(ctx, in.Username)
	if errors.Is(err, goerror.ErrNotFound) {
		acc, err = s.repoDB.GetAccountByEmail(ctx, strings.ToLower(in.Username))
	}
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Username/email or password incorrect", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account", "identifier", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.hasher.Verify(acc.Password, in.Password) {
		slog.WarnContext(ctx, "login with wrong password", "account_id", acc.ID)
		return nil, goerror.NewBusiness("Username/email or password incorrect", goerror.CodeUnauthorized)
	}

	if !acc.Verified {
		if err := s.issueVerification(ctx, acc); err != nil {
			return nil, err
		}

		return &LoginOutput{
			Verified:  false,
			AccountID: acc.ID,
			Username:  acc.Username,
			Email:     acc.Email,
		}, nil
	}

	token, err := s.jwt.Generate(acc.ID, acc.Username, acc.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{
		Verified:  true,
		Token:     token,
		AccountID: acc.ID,
		Username:  acc.Username,
		Email:     acc.Email,
	}, nil
}
