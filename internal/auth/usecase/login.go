package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/kodefy/authstep/internal/pkg/goerror"
	"github.com/kodefy/authstep/internal/pkg/jwt"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	TOTPEnabled bool
	// TempToken is set when the account has a second factor and the login
	// must continue through VerifyTwoFactor.
	TempToken string
	// AccessToken is set when no second factor is enabled and the login
	// completes in one step.
	AccessToken string
}

// Login verifies the password and either completes the login directly or
// hands back a short-lived pending token for the TOTP step. Accounts with a
// second factor never receive an access token here.
//
// The distinct unknown-user and bad-password messages mirror the existing
// client contract. Collapsing them into one response is a known hardening
// candidate that changes observable behavior.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.TrimSpace(in.Email)

	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", email)
		return nil, goerror.NewBusiness("user does not exist", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, goerror.NewBusiness("incorrect password", goerror.CodeUnauthorized)
	}

	if !user.TOTPEnabled {
		accessToken, err := s.jwt.Generate(user.ID, user.Email, jwt.StageAuthenticated)
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate access token", "user_id", user.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		return &LoginOutput{AccessToken: accessToken}, nil
	}

	tempToken, err := s.jwt.Generate(user.ID, user.Email, jwt.StagePendingSecondFactor)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate pending token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{TOTPEnabled: true, TempToken: tempToken}, nil
}
