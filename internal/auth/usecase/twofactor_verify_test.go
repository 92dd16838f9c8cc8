package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodefy/authstep/internal/pkg/goerror"
	"github.com/kodefy/authstep/internal/pkg/jwt"
)

// enroll registers a user, enables the second factor, and returns the TOTP
// secret plus a fresh pending token.
func enroll(t *testing.T, f *fixture, email string) (secret, tempToken string) {
	t.Helper()

	f.register(t, email, "Secret123")
	login := f.login(t, email, "Secret123")

	setup, err := f.uc.SetupTwoFactor(context.Background(), SetupTwoFactorInput{TempToken: login.AccessToken})
	require.NoError(t, err)

	pending := f.login(t, email, "Secret123")
	require.NotEmpty(t, pending.TempToken)

	return setup.Secret, pending.TempToken
}

func TestVerifyTwoFactor(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		secret, tempToken := enroll(t, f, "bob@example.com")

		code, err := f.totp.GenerateCode(secret, f.clock.Now())
		require.NoError(t, err)

		out, err := f.uc.VerifyTwoFactor(context.Background(), VerifyTwoFactorInput{
			TempToken: tempToken,
			Code:      code,
		})
		require.NoError(t, err)
		require.NotEmpty(t, out.AccessToken)

		claims, err := f.jwt.Verify(out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, jwt.StageAuthenticated, claims.Stage)
	})

	t.Run("WrongCode", func(t *testing.T) {
		f := newFixture(t)
		_, tempToken := enroll(t, f, "bob@example.com")

		out, err := f.uc.VerifyTwoFactor(context.Background(), VerifyTwoFactorInput{
			TempToken: tempToken,
			Code:      "000000",
		})
		gerr := requireGoError(t, err, goerror.CodeUnauthorized)
		assert.Equal(t, "invalid two-factor code", gerr.Msg())
		assert.Nil(t, out)
	})

	t.Run("PendingTokenStaysUsableAfterWrongCode", func(t *testing.T) {
		f := newFixture(t)
		secret, tempToken := enroll(t, f, "bob@example.com")

		_, err := f.uc.VerifyTwoFactor(context.Background(), VerifyTwoFactorInput{
			TempToken: tempToken,
			Code:      "000000",
		})
		require.Error(t, err)

		code, err := f.totp.GenerateCode(secret, f.clock.Now())
		require.NoError(t, err)

		_, err = f.uc.VerifyTwoFactor(context.Background(), VerifyTwoFactorInput{
			TempToken: tempToken,
			Code:      code,
		})
		assert.NoError(t, err)
	})

	t.Run("CodeReuseWithinWindowSucceeds", func(t *testing.T) {
		f := newFixture(t)
		secret, tempToken := enroll(t, f, "bob@example.com")

		code, err := f.totp.GenerateCode(secret, f.clock.Now())
		require.NoError(t, err)

		_, err = f.uc.VerifyTwoFactor(context.Background(), VerifyTwoFactorInput{TempToken: tempToken, Code: code})
		require.NoError(t, err)

		// Codes are not single-use inside their validity window.
		_, err = f.uc.VerifyTwoFactor(context.Background(), VerifyTwoFactorInput{TempToken: tempToken, Code: code})
		assert.NoError(t, err)
	})

	t.Run("AuthenticatedStageRejected", func(t *testing.T) {
		f := newFixture(t)
		secret, tempToken := enroll(t, f, "bob@example.com")

		code, err := f.totp.GenerateCode(secret, f.clock.Now())
		require.NoError(t, err)

		out, err := f.uc.VerifyTwoFactor(context.Background(), VerifyTwoFactorInput{TempToken: tempToken, Code: code})
		require.NoError(t, err)

		_, err = f.uc.VerifyTwoFactor(context.Background(), VerifyTwoFactorInput{
			TempToken: out.AccessToken,
			Code:      code,
		})
		gerr := requireGoError(t, err, goerror.CodeUnauthorized)
		assert.Equal(t, goerror.TypeToken, gerr.Type())
	})

	t.Run("ExpiredTokenRejectedRegardlessOfCode", func(t *testing.T) {
		f := newFixture(t)
		secret, tempToken := enroll(t, f, "bob@example.com")

		f.clock.advance(6 * time.Minute)

		code, err := f.totp.GenerateCode(secret, f.clock.Now())
		require.NoError(t, err)

		_, err = f.uc.VerifyTwoFactor(context.Background(), VerifyTwoFactorInput{
			TempToken: tempToken,
			Code:      code,
		})
		gerr := requireGoError(t, err, goerror.CodeUnauthorized)
		assert.Equal(t, goerror.TypeToken, gerr.Type())
	})

	t.Run("UnknownUser", func(t *testing.T) {
		f := newFixture(t)
		reg := f.register(t, "bob@example.com", "Secret123")
		login := f.login(t, "bob@example.com", "Secret123")

		_, err := f.uc.SetupTwoFactor(context.Background(), SetupTwoFactorInput{TempToken: login.AccessToken})
		require.NoError(t, err)

		pending := f.login(t, "bob@example.com", "Secret123")
		f.store.deleteUser(reg.UserID)

		_, err = f.uc.VerifyTwoFactor(context.Background(), VerifyTwoFactorInput{
			TempToken: pending.TempToken,
			Code:      "123456",
		})
		requireGoError(t, err, goerror.CodeBadRequest)
	})

	t.Run("SecondFactorNotEnabled", func(t *testing.T) {
		f := newFixture(t)
		reg := f.register(t, "alice@example.com", "Secret123")

		tempToken, err := f.jwt.Generate(reg.UserID, reg.Email, jwt.StagePendingSecondFactor)
		require.NoError(t, err)

		_, err = f.uc.VerifyTwoFactor(context.Background(), VerifyTwoFactorInput{
			TempToken: tempToken,
			Code:      "123456",
		})
		gerr := requireGoError(t, err, goerror.CodeUnauthorized)
		assert.Equal(t, "invalid two-factor code", gerr.Msg())
	})

	t.Run("MalformedCode", func(t *testing.T) {
		f := newFixture(t)
		_, tempToken := enroll(t, f, "bob@example.com")

		_, err := f.uc.VerifyTwoFactor(context.Background(), VerifyTwoFactorInput{
			TempToken: tempToken,
			Code:      "12ab56",
		})
		requireGoError(t, err, goerror.CodeInvalidInput)
	})
}
