package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/organaize/organaize/internal/pkg/config"
	"github.com/organaize/organaize/internal/pkg/instrument"
	"github.com/organaize/organaize/internal/pkg/mail"
	"github.com/organaize/organaize/internal/pkg/validator"
)

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func newTestUsecase(t *testing.T) (*Usecase, *fakeMail, fixedClock) {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  notification:
    support_email: support@organaize.com
    company_name: Organaize
`))
	if err != nil {
		t.Fatalf("new config: %v", err)
	}

	clk := fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	repoMail := &fakeMail{}

	uc := NewNotification(Dependency{
		Config:     cfg,
		Clock:      clk,
		Validator:  v10,
		RepoMail:   repoMail,
		Instrument: instrument.NewNoop(),
	})

	return uc, repoMail, clk
}

func TestConsumeOTPIssued(t *testing.T) {
	uc, repoMail, clk := newTestUsecase(t)

	err := uc.ConsumeOTPIssued(context.Background(), ConsumeOTPIssuedInput{
		AccountID: 7,
		Username:  "alice",
		Email:     "alice@example.com",
		Code:      4321,
		ExpiresAt: clk.now.Add(15 * time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("consume otp issued: %v", err)
	}

	if len(repoMail.sent) != 1 {
		t.Fatalf("expected one sent email, got %d", len(repoMail.sent))
	}

	msg := repoMail.sent[0]
	if len(msg.To) != 1 || msg.To[0] != "alice@example.com" {
		t.Fatalf("unexpected recipient %v", msg.To)
	}
	if msg.Subject != otpEmailSubject {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	for _, want := range []string{"alice", "4321", "15 minutes", "Organaize", "support@organaize.com"} {
		if !strings.Contains(msg.HTMLBody, want) {
			t.Fatalf("email body missing %q:\n%s", want, msg.HTMLBody)
		}
	}
}

func TestConsumeOTPIssuedInvalidPayloadDropped(t *testing.T) {
	uc, repoMail, clk := newTestUsecase(t)

	err := uc.ConsumeOTPIssued(context.Background(), ConsumeOTPIssuedInput{
		AccountID: 7,
		Username:  "alice",
		Email:     "not-an-email",
		Code:      99,
		ExpiresAt: clk.now.Add(15 * time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("invalid payload must be dropped, not redelivered: %v", err)
	}
	if len(repoMail.sent) != 0 {
		t.Fatal("invalid payload must not produce an email")
	}
}

func TestConsumeOTPIssuedExpiredSkipped(t *testing.T) {
	uc, repoMail, clk := newTestUsecase(t)

	err := uc.ConsumeOTPIssued(context.Background(), ConsumeOTPIssuedInput{
		AccountID: 7,
		Username:  "alice",
		Email:     "alice@example.com",
		Code:      4321,
		ExpiresAt: clk.now.Add(-time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("expired code must be skipped, not redelivered: %v", err)
	}
	if len(repoMail.sent) != 0 {
		t.Fatal("expired code must not produce an email")
	}
}

func TestConsumeOTPIssuedSendFailureReturned(t *testing.T) {
	uc, repoMail, clk := newTestUsecase(t)
	repoMail.err = errors.New("smtp down")

	err := uc.ConsumeOTPIssued(context.Background(), ConsumeOTPIssuedInput{
		AccountID: 7,
		Username:  "alice",
		Email:     "alice@example.com",
		Code:      4321,
		ExpiresAt: clk.now.Add(15 * time.Minute).Unix(),
	})
	if err == nil {
		t.Fatal("send failure must be returned so the broker redelivers")
	}
}
