package app

import (
	"log/slog"
	"os"

	"github.com/kodefy/authstep/internal/auth"
)

func (a *App) initModules() {
	if err := auth.New(auth.Dependency{
		DBConn:     a.dbConn,
		Router:     a.router,
		Messaging:  a.messaging,
		Instrument: a.ins,
		UID:        a.uid,
		Bcrypt:     a.bcrypt,
		Secrets:    a.secrets,
		Clock:      a.clock,
		Totp:       a.totp,
		Validator:  a.validator,
		JWT:        a.jwt,
	}); err != nil {
		slog.Error("failed to init module auth", "error", err)
		os.Exit(1)
	}
}
