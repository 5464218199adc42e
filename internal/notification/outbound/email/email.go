package email

import (
	"context"
	"time"

	"github.com/organaize/organaize/internal/pkg/instrument"
	"github.com/organaize/organaize/internal/pkg/mail"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
)

// Mail delivers messages through the SMTP client with bounded retries, so a
// transient relay hiccup doesn't bounce the message back to the broker.
type Mail struct {
	client      mail.Mail
	ins         instrument.Instrumentation
	maxRetries  uint64
	baseBackoff time.Duration
}

func New(client mail.Mail, ins instrument.Instrumentation, maxRetries uint64, baseBackoff time.Duration) *Mail {
	if baseBackoff <= 0 {
		baseBackoff = 500 * time.Millisecond
	}

	return &Mail{
		client:      client,
		ins:         ins,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (m *Mail) Send(ctx context.Context, msg mail.Message) error {
	ctx, span := m.ins.Tracer("notification.outbound.email").Start(ctx, "Send")
	defer span.End()

	b := retry.NewFibonacci(m.baseBackoff)
	b = retry.WithCappedDuration(10*time.Second, b)
	b = retry.WithMaxRetries(m.maxRetries, b)

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := m.client.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
