package inbound

import (
	"context"

	"github.com/kodefy/authstep/internal/auth/usecase"
	"github.com/kodefy/authstep/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	SetupTwoFactor(ctx context.Context, in usecase.SetupTwoFactorInput) (*usecase.SetupTwoFactorOutput, error)
	VerifyTwoFactor(ctx context.Context, in usecase.VerifyTwoFactorInput) (*usecase.VerifyTwoFactorOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/register", end.Register)
	r.POST("/login", end.Login)

	// The pending token travels in the request body, so these routes carry
	// no Authorization header.
	r.POST("/2fa/setup", end.SetupTwoFactor)
	r.POST("/2fa/verify", end.VerifyTwoFactor)
}
