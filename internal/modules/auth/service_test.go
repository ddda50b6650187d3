package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/pkg/jwt"
)

func TestLogin(t *testing.T) {
	tokens := jwt.New("test-secret", time.Hour)
	svc, err := NewService("secret-pass", tokens)
	require.NoError(t, err)

	token, err := svc.Login("secret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.Login("wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
