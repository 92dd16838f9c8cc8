package secretbox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAESGCMRejectsBadKey(t *testing.T) {
	_, err := NewAESGCM([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestAESGCMRoundTrip(t *testing.T) {
	box, err := NewAESGCM(bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)

	scope := Scope{UserID: 7, Purpose: "totp_seed"}

	sealed, err := box.Seal([]byte("JBSWY3DPEHPK3PXP"), scope)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("JBSWY3DPEHPK3PXP"), sealed)

	opened, err := box.Open(sealed, scope)
	require.NoError(t, err)
	assert.Equal(t, []byte("JBSWY3DPEHPK3PXP"), opened)
}

func TestAESGCMOpenWrongScope(t *testing.T) {
	box, err := NewAESGCM(bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)

	sealed, err := box.Seal([]byte("seed"), Scope{UserID: 7, Purpose: "totp_seed"})
	require.NoError(t, err)

	t.Run("DifferentUser", func(t *testing.T) {
		_, err := box.Open(sealed, Scope{UserID: 8, Purpose: "totp_seed"})
		assert.ErrorIs(t, err, ErrInvalidCiphertext)
	})

	t.Run("DifferentPurpose", func(t *testing.T) {
		_, err := box.Open(sealed, Scope{UserID: 7, Purpose: "other"})
		assert.ErrorIs(t, err, ErrInvalidCiphertext)
	})
}

func TestAESGCMOpenTampered(t *testing.T) {
	box, err := NewAESGCM(bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)

	scope := Scope{UserID: 7, Purpose: "totp_seed"}
	sealed, err := box.Seal([]byte("seed"), scope)
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0x01

	_, err = box.Open(sealed, scope)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestAESGCMOpenMalformed(t *testing.T) {
	box, err := NewAESGCM(bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)

	_, err = box.Open([]byte{0x01, 0x02}, Scope{UserID: 7, Purpose: "totp_seed"})
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}
