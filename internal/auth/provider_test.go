package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	provider, err := NewStaticProvider("admin", "admin", "test-secret")
	require.NoError(t, err)

	t.Run("valid credentials issue a verifiable token", func(t *testing.T) {
		token, err := provider.Authenticate("admin", "admin")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		require.NoError(t, err)
		require.True(t, parsed.Valid)

		subject, err := parsed.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, "admin", subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := provider.Authenticate("admin", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := provider.Authenticate("root", "admin")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
