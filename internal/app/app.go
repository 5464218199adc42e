package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/organaize/organaize/internal/pkg/clock"
	"github.com/organaize/organaize/internal/pkg/config"
	"github.com/organaize/organaize/internal/pkg/goroutine"
	"github.com/organaize/organaize/internal/pkg/hash"
	"github.com/organaize/organaize/internal/pkg/instrument"
	"github.com/organaize/organaize/internal/pkg/jwt"
	"github.com/organaize/organaize/internal/pkg/mail"
	"github.com/organaize/organaize/internal/pkg/messaging"
	"github.com/organaize/organaize/internal/pkg/otp"
	"github.com/organaize/organaize/internal/pkg/router"
	"github.com/organaize/organaize/internal/pkg/sessionstore"
	"github.com/organaize/organaize/internal/pkg/uid"
	"github.com/organaize/organaize/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hasher    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	codes     otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	sessions  sessionstore.SessionStore
	mail      mail.Mail
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
