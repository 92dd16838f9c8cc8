package jwt

import (
	"errors"
	"strconv"

	gojwt "github.com/golang-jwt/jwt/v5"
)

const minKeySize = 64

// Symmetric signs and verifies tokens with HMAC-SHA512.
type Symmetric struct {
	cfg Config
}

// NewSymmetric validates the signing key length and returns an HS512 signer.
func NewSymmetric(cfg Config) (*Symmetric, error) {
	if len(cfg.Secret) < minKeySize {
		return nil, ErrSigningKeyTooShort
	}

	return &Symmetric{cfg: cfg}, nil
}

// Generate mints a token for the user at the given stage.
func (s *Symmetric) Generate(userID int64, email string, stage Stage) (string, error) {
	now := s.cfg.Clock.Now()

	ttl := s.cfg.AccessTTL
	if stage == StagePendingSecondFactor {
		ttl = s.cfg.PendingTTL
	}

	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        s.cfg.UID.Generate(),
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    s.cfg.Issuer,
			Audience:  s.cfg.Audiences,
			IssuedAt:  gojwt.NewNumericDate(now),
			NotBefore: gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Email:  email,
		Stage:  stage,
	}

	return gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString(s.cfg.Secret)
}

// Verify parses and validates a token, returning its claims. The signing
// method, issuer, audience, and expiry claim are all required to match what
// Generate produces.
func (s *Symmetric) Verify(token string) (Claims, error) {
	var claims Claims

	parsed, err := gojwt.ParseWithClaims(token, &claims,
		func(t *gojwt.Token) (any, error) {
			if t.Method != gojwt.SigningMethodHS512 {
				return nil, ErrInvalidSigningMethod
			}

			return s.cfg.Secret, nil
		},
		gojwt.WithIssuer(s.cfg.Issuer),
		gojwt.WithAudience(s.cfg.Audiences...),
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS512.Alg()}),
		gojwt.WithIssuedAt(),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.cfg.Clock.Now),
	)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}

		return Claims{}, ErrInvalidToken
	}

	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
