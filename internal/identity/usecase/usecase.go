package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/organaize/organaize/internal/identity/entity"
	"github.com/organaize/organaize/internal/pkg/clock"
	"github.com/organaize/organaize/internal/pkg/config"
	"github.com/organaize/organaize/internal/pkg/goerror"
	"github.com/organaize/organaize/internal/pkg/hash"
	"github.com/organaize/organaize/internal/pkg/instrument"
	"github.com/organaize/organaize/internal/pkg/jwt"
	"github.com/organaize/organaize/internal/pkg/otp"
	"github.com/organaize/organaize/internal/pkg/sessionstore"
	"github.com/organaize/organaize/internal/pkg/uid"
	"github.com/organaize/organaize/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// OTPIssuedEvent signals that a fresh verification code must be delivered to
// the account's email address.
type OTPIssuedEvent struct {
	AccountID int64
	Username  string
	Email     string
	Code      int
	ExpiresAt time.Time
}

type repoMessaging interface {
	PublishOTPIssued(ctx context.Context, msg OTPIssuedEvent) error
}

type repoDB interface {
	GetAccountByUsername(ctx context.Context, username string) (*entity.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetVerificationCodeByAccountID(ctx context.Context, accountID int64) (*entity.VerificationCode, error)

	CreateAccountWithVerification(ctx context.Context, acc entity.NewAccount, code entity.VerificationCode) error
	UpsertVerificationCode(ctx context.Context, code entity.VerificationCode) error
	MarkAccountVerified(ctx context.Context, accountID int64) error
	UpdateAccountPassword(ctx context.Context, accountID int64, hashed string) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	hasher        hash.Hash
	uid           uid.NumberID
	codes         otp.Generator
	clock         clock.Clocker
	jwt           jwt.JWT
	sessions      sessionstore.SessionStore
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Hasher        hash.Hash
	UID           uid.NumberID
	Codes         otp.Generator
	Clock         clock.Clocker
	JWT           jwt.JWT
	Sessions      sessionstore.SessionStore
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hasher:        dep.Hasher,
		uid:           dep.UID,
		codes:         dep.Codes,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		sessions:      dep.Sessions,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) otpTTL() time.Duration {
	return s.cfg.GetMinute("modules.identity.otp_ttl_minutes")
}

// issueVerification generates a new code for the account, replaces any pending
// verification row, and asks the notification pipeline to deliver it. Publish
// failures are logged, never surfaced: email delivery is best-effort.
func (s *Usecase) issueVerification(ctx context.Context, acc *entity.Account) error {
	code, err := s.codes.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate verification code", "account_id", acc.ID, "error", err)
		return goerror.NewServer(err)
	}

	now := s.clock.Now()
	vc := entity.VerificationCode{
		ID:        int64(s.uid.Generate()),
		AccountID: acc.ID,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.otpTTL()),
	}

	if err := s.repoDB.UpsertVerificationCode(ctx, vc); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert verification code", "account_id", acc.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOTPIssued(ctx, OTPIssuedEvent{
		AccountID: acc.ID,
		Username:  acc.Username,
		Email:     acc.Email,
		Code:      vc.Code,
		ExpiresAt: vc.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "account_id", acc.ID, "error", err)
	}

	return nil
}
