package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kodefy/authstep/internal/pkg/goerror"
)

type SetupTwoFactorInput struct {
	TempToken string `validate:"required"`
}

type SetupTwoFactorOutput struct {
	Secret     string
	OtpauthURL string
	QRDataURI  string
}

// SetupTwoFactor provisions a fresh TOTP secret for the token's user and
// enables the second factor. A token of either stage is accepted. Each call
// overwrites the previous secret, so only the newest one verifies afterwards.
//
// The secret and enabled flag are persisted in one store write before the
// enrollment payload is returned; a store failure must not leave the client
// holding a secret the server never saved.
func (s *Usecase) SetupTwoFactor(ctx context.Context, in SetupTwoFactorInput) (*SetupTwoFactorOutput, error) {
	ctx, span := s.startSpan(ctx, "SetupTwoFactor")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	claims, err := s.jwt.Verify(in.TempToken)
	if err != nil {
		slog.WarnContext(ctx, "invalid token on two-factor setup", "error", err)
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

	key, err := s.totp.Generate(user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate totp secret", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	sealed, err := s.secrets.Seal([]byte(key.Secret), s.totpScope(user.ID))
	if err != nil {
		slog.ErrorContext(ctx, "failed to seal totp secret", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateUserTOTP(ctx, user.ID, sealed, true); err != nil {
		slog.ErrorContext(ctx, "failed to repo update user totp", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	qr, err := s.totp.QRDataURI(key)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render totp qr", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SetupTwoFactorOutput{
		Secret:     key.Secret,
		OtpauthURL: key.URL,
		QRDataURI:  qr,
	}, nil
}
