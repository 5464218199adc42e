package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/organaize/organaize/internal/pkg/mail"
)

const otpEmailSubject = "Your verification code"

const otpEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222;">
  <p>Hi {{.username}},</p>
  <p>Use this code to verify your email address:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{{.code}}</p>
  <p>The code expires in {{.expires_minutes}} minutes. If you didn't request it, you can ignore this email.</p>
  <p>&mdash; {{.company_name}} &middot; {{.support_email}} &middot; {{.year}}</p>
</body>
</html>`

type ConsumeOTPIssuedInput struct {
	AccountID int64  `validate:"required,gt=0"`
	Username  string `validate:"required"`
	Email     string `validate:"required,email"`
	Code      int    `validate:"required,min=1000,max=9999"`
	ExpiresAt int64  `validate:"required"`
}

// ConsumeOTPIssued renders and delivers the verification-code email. A payload
// that fails validation is dropped (it will never become deliverable); a
// delivery failure is returned so the broker redelivers.
func (s *Usecase) ConsumeOTPIssued(ctx context.Context, in ConsumeOTPIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	expiresIn := time.Unix(in.ExpiresAt, 0).Sub(s.clock.Now())
	if expiresIn <= 0 {
		slog.WarnContext(ctx, "otp already expired, skipping delivery", "account_id", in.AccountID)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["username"] = in.Username
	data["code"] = strconv.Itoa(in.Code)
	data["expires_minutes"] = int(expiresIn.Round(time.Minute).Minutes())

	body, err := s.renderTemplate("otp_email", otpEmailTemplate, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render otp email", "account_id", in.AccountID, "error", err)
		return nil
	}

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  otpEmailSubject,
		HTMLBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "account_id", in.AccountID, "error", err)
		return err
	}

	return nil
}
