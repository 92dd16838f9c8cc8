package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashVerify(t *testing.T) {
	b := NewBcrypt(bcrypt.MinCost)

	hashed, err := b.Hash("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", string(hashed))

	assert.True(t, b.Verify(string(hashed), "Secret123"))
	assert.False(t, b.Verify(string(hashed), "secret123"))
	assert.False(t, b.Verify(string(hashed), ""))
}

func TestBcryptVerifyMalformedHash(t *testing.T) {
	b := NewBcrypt(bcrypt.MinCost)

	assert.False(t, b.Verify("not-a-bcrypt-hash", "Secret123"))
	assert.False(t, b.Verify("", "Secret123"))
}

func TestBcryptCostClamped(t *testing.T) {
	b := NewBcrypt(1000)

	hashed, err := b.Hash("Secret123")
	require.NoError(t, err)
	assert.True(t, b.Verify(string(hashed), "Secret123"))
}
