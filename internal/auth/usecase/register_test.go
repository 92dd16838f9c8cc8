package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodefy/authstep/internal/pkg/goerror"
)

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)

		out := f.register(t, "alice@example.com", "Secret123")
		assert.NotZero(t, out.UserID)
		assert.Equal(t, "alice@example.com", out.Email)

		stored, err := f.store.GetUserByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.False(t, stored.TOTPEnabled)
		assert.NotEqual(t, "Secret123", stored.Password)

		require.Len(t, f.msg.published, 1)
		assert.Equal(t, out.UserID, f.msg.published[0].UserID)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice@example.com", "Secret123")

		_, err := f.uc.Register(context.Background(), RegisterInput{
			Email:    "alice@example.com",
			Password: "Another123",
		})
		requireGoError(t, err, goerror.CodeConflict)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Register(context.Background(), RegisterInput{Email: "not-an-email", Password: "short"})
		requireGoError(t, err, goerror.CodeInvalidInput)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		f := newFixture(t)
		f.store.createErr = errors.New("connection refused")

		_, err := f.uc.Register(context.Background(), RegisterInput{
			Email:    "alice@example.com",
			Password: "Secret123",
		})
		requireGoError(t, err, goerror.CodeInternal)
	})

	t.Run("PublishFailureDoesNotFailRegistration", func(t *testing.T) {
		f := newFixture(t)
		f.msg.err = errors.New("broker down")

		out := f.register(t, "alice@example.com", "Secret123")
		assert.NotZero(t, out.UserID)
		assert.Empty(t, f.msg.published)
	})
}
