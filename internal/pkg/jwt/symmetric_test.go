package jwt

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodefy/authstep/internal/pkg/uid"
)

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.t
}

func newTestJWT(t *testing.T, clk *fixedClock) *Symmetric {
	t.Helper()

	s, err := NewSymmetric(Config{
		Secret:     []byte(strings.Repeat("s", 64)),
		Issuer:     "authstep-test",
		Audiences:  []string{"clients"},
		PendingTTL: 5 * time.Minute,
		AccessTTL:  time.Hour,
		Clock:      clk,
		UID:        uid.NewUUID(),
	})
	require.NoError(t, err)

	return s
}

func TestNewSymmetricRejectsShortKey(t *testing.T) {
	_, err := NewSymmetric(Config{Secret: []byte("too-short")})
	assert.ErrorIs(t, err, ErrSigningKeyTooShort)
}

func TestSymmetricGenerateVerify(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestJWT(t, clk)

	t.Run("PendingStage", func(t *testing.T) {
		token, err := s.Generate(42, "alice@example.com", StagePendingSecondFactor)
		require.NoError(t, err)

		claims, err := s.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, StagePendingSecondFactor, claims.Stage)
		assert.Equal(t, clk.t.Add(5*time.Minute).Unix(), claims.ExpiresAt.Unix())
	})

	t.Run("AuthenticatedStage", func(t *testing.T) {
		token, err := s.Generate(42, "alice@example.com", StageAuthenticated)
		require.NoError(t, err)

		claims, err := s.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, StageAuthenticated, claims.Stage)
		assert.Equal(t, clk.t.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	})
}

func TestSymmetricVerifyExpired(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestJWT(t, clk)

	token, err := s.Generate(7, "bob@example.com", StagePendingSecondFactor)
	require.NoError(t, err)

	clk.t = clk.t.Add(6 * time.Minute)

	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSymmetricVerifyTampered(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestJWT(t, clk)

	token, err := s.Generate(7, "bob@example.com", StageAuthenticated)
	require.NoError(t, err)

	_, err = s.Verify(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSymmetricVerifyClaimsEnforced(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestJWT(t, clk)
	secret := []byte(strings.Repeat("s", 64))

	base := func() Claims {
		return Claims{
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    "authstep-test",
				Audience:  []string{"clients"},
				IssuedAt:  gojwt.NewNumericDate(clk.t),
				ExpiresAt: gojwt.NewNumericDate(clk.t.Add(time.Hour)),
			},
			UserID: 7,
			Email:  "bob@example.com",
			Stage:  StageAuthenticated,
		}
	}

	mint := func(t *testing.T, method gojwt.SigningMethod, claims Claims) string {
		t.Helper()

		token, err := gojwt.NewWithClaims(method, claims).SignedString(secret)
		require.NoError(t, err)

		return token
	}

	t.Run("MatchingClaims", func(t *testing.T) {
		claims, err := s.Verify(mint(t, gojwt.SigningMethodHS512, base()))
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
	})

	t.Run("ForeignIssuer", func(t *testing.T) {
		claims := base()
		claims.Issuer = "some-other-service"

		_, err := s.Verify(mint(t, gojwt.SigningMethodHS512, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("ForeignAudience", func(t *testing.T) {
		claims := base()
		claims.Audience = []string{"other-aud"}

		_, err := s.Verify(mint(t, gojwt.SigningMethodHS512, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WeakerMethodSameKey", func(t *testing.T) {
		_, err := s.Verify(mint(t, gojwt.SigningMethodHS256, base()))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("MissingExpiry", func(t *testing.T) {
		claims := base()
		claims.ExpiresAt = nil

		_, err := s.Verify(mint(t, gojwt.SigningMethodHS512, claims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSymmetricVerifyWrongKey(t *testing.T) {
	clk := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestJWT(t, clk)

	other, err := NewSymmetric(Config{
		Secret:     []byte(strings.Repeat("o", 64)),
		Issuer:     "authstep-test",
		PendingTTL: 5 * time.Minute,
		AccessTTL:  time.Hour,
		Clock:      clk,
		UID:        uid.NewUUID(),
	})
	require.NoError(t, err)

	token, err := other.Generate(7, "bob@example.com", StageAuthenticated)
	require.NoError(t, err)

	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
