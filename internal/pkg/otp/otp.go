// Package otp wraps pquerna/otp for time-based one-time passwords, including
// provisioning URIs and QR rendering for authenticator enrollment.
package otp

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	period     = 30
	skew       = 1
	secretSize = 20
	qrSize     = 200
)

// Key is a freshly provisioned TOTP secret with its otpauth URI.
type Key struct {
	Secret string
	URL    string
}

// OTP generates and validates time-based one-time passwords.
type OTP interface {
	// Generate provisions a new secret for the account.
	Generate(accountName string) (Key, error)

	// QRDataURI renders the key's otpauth URI as a PNG data URI suitable for
	// embedding in an <img> tag.
	QRDataURI(key Key) (string, error)

	// Validate reports whether code is valid for secret at the given time,
	// allowing one period of clock skew either way.
	Validate(code, secret string, at time.Time) bool

	// GenerateCode computes the code for secret at the given time.
	GenerateCode(secret string, at time.Time) (string, error)
}

// TOTP is the production OTP implementation. Codes are 6 digits, SHA-1,
// with a 30 second period, matching the common authenticator defaults.
type TOTP struct {
	issuer string
}

// NewTOTP returns a TOTP generator whose provisioning URIs carry the issuer.
func NewTOTP(issuer string) *TOTP {
	return &TOTP{issuer: issuer}
}

// Generate provisions a new secret for the account.
func (t *TOTP) Generate(accountName string) (Key, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      t.issuer,
		AccountName: accountName,
		Period:      period,
		SecretSize:  secretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return Key{}, err
	}

	return Key{Secret: key.Secret(), URL: key.URL()}, nil
}

// QRDataURI renders the key's otpauth URI as a PNG data URI.
func (t *TOTP) QRDataURI(key Key) (string, error) {
	parsed, err := otp.NewKeyFromURL(key.URL)
	if err != nil {
		return "", err
	}

	img, err := parsed.Image(qrSize, qrSize)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Validate reports whether code is valid for secret at the given time.
func (t *TOTP) Validate(code, secret string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    period,
		Skew:      skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})

	return err == nil && ok
}

// GenerateCode computes the code for secret at the given time.
func (t *TOTP) GenerateCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, at, totp.ValidateOpts{
		Period:    period,
		Skew:      skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
}
