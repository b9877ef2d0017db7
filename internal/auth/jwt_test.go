package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-of-sufficient-length!!"

func TestValidateAccessToken(t *testing.T) {
	m := NewJWTManager(testSecret, "textbook-catalog")

	t.Run("round trip", func(t *testing.T) {
		token, err := m.GenerateAccessToken("mdr.admin", time.Minute)
		require.NoError(t, err)

		username, err := m.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, "mdr.admin", username)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := m.ValidateAccessToken("")
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := m.ValidateAccessToken("not.a.jwt")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := m.GenerateAccessToken("mdr.admin", -time.Minute)
		require.NoError(t, err)

		_, err = m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("another-secret-key-of-sufficient-len", "textbook-catalog")
		token, err := other.GenerateAccessToken("mdr.admin", time.Minute)
		require.NoError(t, err)

		_, err = m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTManager(testSecret, "someone-else")
		token, err := other.GenerateAccessToken("mdr.admin", time.Minute)
		require.NoError(t, err)

		_, err = m.ValidateAccessToken(token)
		assert.ErrorContains(t, err, "issuer")
	})
}
