// Package jwt issues and verifies the signed tokens that carry a login
// across the two authentication stages.
package jwt

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kodefy/authstep/internal/pkg/clock"
	"github.com/kodefy/authstep/internal/pkg/uid"
)

var (
	// ErrSigningKeyTooShort is returned when the HS512 secret is under 64 bytes.
	ErrSigningKeyTooShort = errors.New("signing key must be at least 64 bytes")

	// ErrInvalidSigningMethod is returned when a token was signed with an
	// unexpected algorithm.
	ErrInvalidSigningMethod = errors.New("invalid signing method")

	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("token is expired")

	// ErrInvalidToken is returned when a token fails signature or claim checks.
	ErrInvalidToken = errors.New("invalid token")
)

// Stage identifies how far through the login flow a token's holder is.
type Stage string

const (
	// StagePendingSecondFactor marks a token minted after password
	// verification, before the TOTP code has been checked.
	StagePendingSecondFactor Stage = "pending_2fa"

	// StageAuthenticated marks a fully authenticated session token.
	StageAuthenticated Stage = "authenticated"
)

// Claims is the payload carried by every token this service mints.
type Claims struct {
	gojwt.RegisteredClaims

	UserID int64  `json:"user_id,string"`
	Email  string `json:"email"`
	Stage  Stage  `json:"stage"`
}

// JWT mints and verifies stage-scoped tokens.
type JWT interface {
	// Generate mints a token for the user at the given stage. Pending tokens
	// and authenticated tokens get different lifetimes.
	Generate(userID int64, email string, stage Stage) (string, error)

	// Verify parses and validates a token, returning its claims.
	Verify(token string) (Claims, error)
}

// Config carries the knobs for token generation.
type Config struct {
	Secret     []byte
	Issuer     string
	Audiences  []string
	PendingTTL time.Duration
	AccessTTL  time.Duration
	Clock      clock.Clocker
	UID        uid.StringID
}
