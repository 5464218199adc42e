package notification

import (
	"context"

	"github.com/organaize/organaize/internal/notification/inbound"
	"github.com/organaize/organaize/internal/notification/outbound/email"
	"github.com/organaize/organaize/internal/notification/usecase"
	"github.com/organaize/organaize/internal/pkg/clock"
	"github.com/organaize/organaize/internal/pkg/config"
	"github.com/organaize/organaize/internal/pkg/goroutine"
	"github.com/organaize/organaize/internal/pkg/instrument"
	"github.com/organaize/organaize/internal/pkg/mail"
	"github.com/organaize/organaize/internal/pkg/messaging"
	"github.com/organaize/organaize/internal/pkg/uid"
	"github.com/organaize/organaize/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context
	Messaging  messaging.Messaging
	Config     config.Config
	Instrument instrument.Instrumentation
	UUID       uid.StringID
	Clock      clock.Clocker
	Goroutine  *goroutine.Manager
	Validator  validator.Validator
	Mail       mail.Mail
}

func New(dep Dependency) error {
	repoMail := email.New(
		dep.Mail,
		dep.Instrument,
		dep.Config.GetUint64("modules.notification.email_max_retries"),
		dep.Config.GetSecond("modules.notification.email_retry_backoff_seconds"),
	)

	uc := usecase.NewNotification(usecase.Dependency{
		Config:     dep.Config,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		RepoMail:   repoMail,
		Instrument: dep.Instrument,
	})

	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
