// Package auth wires the two-stage login module: HTTP endpoints, the
// authentication usecase, and its storage and messaging adapters.
package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kodefy/authstep/internal/auth/inbound"
	"github.com/kodefy/authstep/internal/auth/outbound/db"
	"github.com/kodefy/authstep/internal/auth/outbound/mq"
	"github.com/kodefy/authstep/internal/auth/usecase"
	"github.com/kodefy/authstep/internal/pkg/clock"
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

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Secrets    secretbox.Box              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Totp       otp.OTP                    `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Bcrypt:        dep.Bcrypt,
		Secrets:       dep.Secrets,
		UID:           dep.UID,
		Totp:          dep.Totp,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
