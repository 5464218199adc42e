package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/organaize/organaize/internal/identity/entity"
	"github.com/organaize/organaize/internal/pkg/goerror"
)

type SignupInput struct {
	Username string `validate:"required,alphanum,min=3,max=30"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

type SignupOutput struct {
	AccountID int64
	Email     string
}

// Signup creates an unverified account together with its first verification
// code, then hands the code to the notification pipeline. No session is
// established until the email is verified.
func (s *Usecase) Signup(ctx context.Context, in SignupInput) (*SignupOutput, error) {
	ctx, span := s.startSpan(ctx, "Signup")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	// Advisory pre-checks for friendlier messages. The unique indexes remain
	// the source of truth; a race here surfaces as a conflict on insert.
	if _, err := s.repoDB.GetAccountByUsername(ctx, in.Username); err == nil {
		return nil, goerror.NewBusiness("Username already exists", goerror.CodeInvalidFormat)
	} else if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by username", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if _, err := s.repoDB.GetAccountByEmail(ctx, in.Email); err == nil {
		return nil, goerror.NewBusiness("Email already exists", goerror.CodeInvalidFormat)
	} else if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashedPassword, err := s.hasher.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	code, err := s.codes.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate verification code", "error", err)
		return nil, goerror.NewServer(err)
	}

	newAccount := entity.NewAccount{
		ID:       int64(s.uid.Generate()),
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashedPassword),
	}

	now := s.clock.Now()
	vc := entity.VerificationCode{
		ID:        int64(s.uid.Generate()),
		AccountID: newAccount.ID,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.otpTTL()),
	}

	if err := s.repoDB.CreateAccountWithVerification(ctx, newAccount, vc); err != nil {
		switch {
		case errors.Is(err, entity.ErrUsernameTaken):
			return nil, goerror.NewBusiness("Username already exists", goerror.CodeInvalidFormat)
		case errors.Is(err, entity.ErrEmailTaken):
			return nil, goerror.NewBusiness("Email already exists", goerror.CodeInvalidFormat)
		default:
			slog.ErrorContext(ctx, "failed to repo create account", "email", in.Email, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	if err := s.repoMessaging.PublishOTPIssued(ctx, OTPIssuedEvent{
		AccountID: newAccount.ID,
		Username:  newAccount.Username,
		Email:     newAccount.Email,
		Code:      vc.Code,
		ExpiresAt: vc.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "account_id", newAccount.ID, "error", err)
	}

	return &SignupOutput{AccountID: newAccount.ID, Email: newAccount.Email}, nil
}
