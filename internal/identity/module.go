package identity

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/organaize/organaize/internal/identity/inbound"
	"github.com/organaize/organaize/internal/identity/outbound/db"
	"github.com/organaize/organaize/internal/identity/outbound/mq"
	"github.com/organaize/organaize/internal/identity/usecase"
	"github.com/organaize/organaize/internal/pkg/clock"
	"github.com/organaize/organaize/internal/pkg/config"
	"github.com/organaize/organaize/internal/pkg/hash"
	"github.com/organaize/organaize/internal/pkg/instrument"
	"github.com/organaize/organaize/internal/pkg/jwt"
	"github.com/organaize/organaize/internal/pkg/messaging"
	"github.com/organaize/organaize/internal/pkg/otp"
	"github.com/organaize/organaize/internal/pkg/router"
	"github.com/organaize/organaize/internal/pkg/sessionstore"
	"github.com/organaize/organaize/internal/pkg/uid"
	"github.com/organaize/organaize/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Sessions   sessionstore.SessionStore  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Hasher     hash.Hash                  `validate:"required"`
	Codes      otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Hasher:        dep.Hasher,
		UID:           dep.UID,
		Codes:         dep.Codes,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Sessions:      dep.Sessions,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Config)

	return nil
}
