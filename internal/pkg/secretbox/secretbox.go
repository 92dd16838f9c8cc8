// Package secretbox encrypts TOTP seeds at rest with AES-256-GCM. Each
// ciphertext is bound to a scope so a value copied between rows fails to open.
package secretbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
)

const (
	keySize   = 32
	nonceSize = 12
	version   = byte(1)
)

var (
	// ErrInvalidKeySize is returned when the key is not 32 bytes.
	ErrInvalidKeySize = errors.New("secretbox: key must be 32 bytes")

	// ErrInvalidCiphertext is returned when a sealed value is malformed or
	// fails authentication.
	ErrInvalidCiphertext = errors.New("secretbox: invalid ciphertext")
)

// Scope identifies what a sealed value belongs to. Opening with a different
// scope than the one used to seal fails.
type Scope struct {
	UserID  int64
	Purpose string
}

func (s Scope) aad() []byte {
	sum := sha256.Sum256([]byte(strconv.FormatInt(s.UserID, 10) + ":" + s.Purpose))

	return sum[:]
}

// Box seals and opens scope-bound secrets.
type Box interface {
	Seal(plaintext []byte, scope Scope) ([]byte, error)
	Open(sealed []byte, scope Scope) ([]byte, error)
}

// AESGCM is a Box backed by AES-256-GCM with random nonces.
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM builds a Box from a 32 byte key.
func NewAESGCM(key []byte) (*AESGCM, error) {
	if len(key) != keySize {
		return nil, ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &AESGCM{aead: aead}, nil
}

// Seal encrypts plaintext bound to scope. The output layout is
// version || nonce || ciphertext.
func (b *AESGCM) Seal(plaintext []byte, scope Scope) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("secretbox: nonce: %w", err)
	}

	out := make([]byte, 0, 1+nonceSize+len(plaintext)+b.aead.Overhead())
	out = append(out, version)
	out = append(out, nonce...)

	return b.aead.Seal(out, nonce, plaintext, scope.aad()), nil
}

// Open decrypts a sealed value, verifying it was sealed under the same scope.
func (b *AESGCM) Open(sealed []byte, scope Scope) ([]byte, error) {
	if len(sealed) < 1+nonceSize+b.aead.Overhead() {
		return nil, ErrInvalidCiphertext
	}

	if sealed[0] != version {
		return nil, ErrInvalidCiphertext
	}

	nonce := sealed[1 : 1+nonceSize]
	plaintext, err := b.aead.Open(nil, nonce, sealed[1+nonceSize:], scope.aad())
	if err != nil {
		return nil, ErrInvalidCiphertext
	}

	return plaintext, nil
}
