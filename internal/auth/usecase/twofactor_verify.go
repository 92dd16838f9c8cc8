package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kodefy/authstep/internal/pkg/goerror"
	"github.com/kodefy/authstep/internal/pkg/jwt"
)

type VerifyTwoFactorInput struct {
	TempToken string `validate:"required"`
	Code      string `validate:"required,len=6,numeric"`
}

type VerifyTwoFactorOutput struct {
	AccessToken string
}

// VerifyTwoFactor checks the TOTP code against the user's stored secret and
// completes the login. Only a PendingSecondFactor token is accepted. A wrong
// code leaves the pending token usable until its own expiry, so the client
// can retry; codes are not single-use within their window.
func (s *Usecase) VerifyTwoFactor(ctx context.Context, in VerifyTwoFactorInput) (*VerifyTwoFactorOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyTwoFactor")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	claims, err := s.jwt.Verify(in.TempToken)
	if err != nil {
		slog.WarnContext(ctx, "invalid token on two-factor verify", "error", err)
		return nil, goerror.NewToken("invalid or expired token")
	}

	if claims.Stage != jwt.StagePendingSecondFactor {
		slog.WarnContext(ctx, "token stage not allowed on two-factor verify", "user_id", claims.UserID, "stage", string(claims.Stage))
		return nil, goerror.NewToken("invalid or expired token")
	}

	user, err := s.repoDB.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", claims.UserID)
		return nil, goerror.NewBusiness("user not found", goerror.CodeBadRequest)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !user.TOTPEnabled || len(user.TOTPSecret) == 0 {
		slog.WarnContext(ctx, "two-factor not enabled for user", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid two-factor code", goerror.CodeUnauthorized)
	}

	secret, err := s.secrets.Open(user.TOTPSecret, s.totpScope(user.ID))
	if err != nil {
		slog.ErrorContext(ctx, "failed to open totp secret", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.totp.Validate(in.Code, string(secret), s.clock.Now()) {
		slog.WarnContext(ctx, "totp code rejected", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid two-factor code", goerror.CodeUnauthorized)
	}

	accessToken, err := s.jwt.Generate(user.ID, user.Email, jwt.StageAuthenticated)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyTwoFactorOutput{AccessToken: accessToken}, nil
}
