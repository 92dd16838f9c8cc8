package usecase

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/kodefy/authstep/internal/auth/entity"
	"github.com/kodefy/authstep/internal/pkg/clock"
	"github.com/kodefy/authstep/internal/pkg/hash"
	"github.com/kodefy/authstep/internal/pkg/instrument"
	"github.com/kodefy/authstep/internal/pkg/jwt"
	"github.com/kodefy/authstep/internal/pkg/otp"
	"github.com/kodefy/authstep/internal/pkg/secretbox"
	"github.com/kodefy/authstep/internal/pkg/uid"
	"github.com/kodefy/authstep/internal/pkg/validator"
)

// UserRegisteredEvent is published after a successful registration.
type UserRegisteredEvent struct {
	UserID int64
	Email  string
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	CreateUser(ctx context.Context, in entity.NewUser) error
	UpdateUserTOTP(ctx context.Context, id int64, secret []byte, enabled bool) error
}

// Usecase implements the two-stage login protocol: register, password login,
// TOTP enrollment, and second-factor verification.
type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	bcrypt        hash.Hash
	secrets       secretbox.Box
	uid           uid.NumberID
	totp          otp.OTP
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Bcrypt        hash.Hash
	Secrets       secretbox.Box
	UID           uid.NumberID
	Totp          otp.OTP
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		bcrypt:        dep.Bcrypt,
		secrets:       dep.Secrets,
		uid:           dep.UID,
		totp:          dep.Totp,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

func (s *Usecase) totpScope(userID int64) secretbox.Scope {
	return secretbox.Scope{UserID: userID, Purpose: "totp_seed"}
}
