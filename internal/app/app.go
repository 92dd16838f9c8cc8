// Package app wires configuration, infrastructure, and modules into a
// runnable service.
package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kodefy/authstep/internal/pkg/clock"
	"github.com/kodefy/authstep/internal/pkg/config"
	"github.com/kodefy/authstep/internal/pkg/hash"
	"github.com/kodefy/authstep/internal/pkg/instrument"
	"github.com/kodefy/authstep/internal/pkg/jwt"
	"github.com/kodefy/authstep/internal/pkg/messaging"
	"github.com/kodefy/authstep/internal/pkg/otp"
	"github.com/kodefy/authstep/internal/pkg/router"
	"github.com/kodefy/authstep/internal/pkg/secretbox"
	"github.com/kodefy/authstep/internal/pkg/uid"
	"github.com/kodefy/authstep/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	secrets   secretbox.Box
	uid       uid.NumberID
	uuid      uid.StringID
	totp      otp.OTP
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

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
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
