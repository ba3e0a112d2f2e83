// internal/auth/auth_test.go
package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "skillpulse/internal/errors"
)

func TestStaticVerifier(t *testing.T) {
	t.Run("resolves configured tokens", func(t *testing.T) {
		v, err := NewStaticVerifier([]string{"tok-a=user-a", "tok-b=user-b"})
		require.NoError(t, err)

		userID, err := v.Verify(context.Background(), "tok-b")
		require.NoError(t, err)
		assert.Equal(t, "user-b", userID)
	})

	t.Run("unknown token is an authentication error", func(t *testing.T) {
		v, err := NewStaticVerifier([]string{"tok-a=user-a"})
		require.NoError(t, err)

		_, err = v.Verify(context.Background(), "nope")

		var authErr *apperrors.AuthenticationError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("malformed entries are rejected", func(t *testing.T) {
		_, err := NewStaticVerifier([]string{"missing-separator"})
		assert.Error(t, err)

		_, err = NewStaticVerifier([]string{"=user"})
		assert.Error(t, err)
	})
}
