package otp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOTPGenerate(t *testing.T) {
	totp := NewTOTP("authstep-test")

	key, err := totp.Generate("alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, key.Secret)
	assert.Contains(t, key.URL, "otpauth://totp/")
	assert.Contains(t, key.URL, "authstep-test")
}

func TestTOTPValidateWindow(t *testing.T) {
	totp := NewTOTP("authstep-test")
	now := time.Date(2026, 3, 1, 12, 0, 15, 0, time.UTC)

	key, err := totp.Generate("alice@example.com")
	require.NoError(t, err)

	t.Run("CurrentCode", func(t *testing.T) {
		code, err := totp.GenerateCode(key.Secret, now)
		require.NoError(t, err)
		assert.True(t, totp.Validate(code, key.Secret, now))
	})

	t.Run("OneStepBehind", func(t *testing.T) {
		code, err := totp.GenerateCode(key.Secret, now.Add(-30*time.Second))
		require.NoError(t, err)
		assert.True(t, totp.Validate(code, key.Secret, now))
	})

	t.Run("OneStepAhead", func(t *testing.T) {
		code, err := totp.GenerateCode(key.Secret, now.Add(30*time.Second))
		require.NoError(t, err)
		assert.True(t, totp.Validate(code, key.Secret, now))
	})

	t.Run("ThreeStepsBehind", func(t *testing.T) {
		code, err := totp.GenerateCode(key.Secret, now.Add(-90*time.Second))
		require.NoError(t, err)
		assert.False(t, totp.Validate(code, key.Secret, now))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other, err := totp.Generate("bob@example.com")
		require.NoError(t, err)

		code, err := totp.GenerateCode(other.Secret, now)
		require.NoError(t, err)
		assert.False(t, totp.Validate(code, key.Secret, now))
	})
}

func TestTOTPQRDataURI(t *testing.T) {
	totp := NewTOTP("authstep-test")

	key, err := totp.Generate("alice@example.com")
	require.NoError(t, err)

	qr, err := totp.QRDataURI(key)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(qr, "data:image/png;base64,"))
	assert.Greater(t, len(qr), len("data:image/png;base64,"))
}
