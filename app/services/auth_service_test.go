package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/766ms/Glam-rent-v1/pkg/apperr"
	"github.com/766ms/Glam-rent-v1/pkg/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, token, err := env.auth.Register("María", "maria@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.IsAdmin)
	assert.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	loggedIn, loginToken, err := env.auth.Login("maria@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.Register("María", "maria@example.com", "s3cret-password")
	require.NoError(t, err)

	_, _, err = env.auth.Register("Other María", "maria@example.com", "another-password")
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.Register("María", "maria@example.com", "s3cret-password")
	require.NoError(t, err)

	// Wrong password and unknown email produce the same error.
	_, _, err = env.auth.Login("maria@example.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	wrongPass := apperr.Message(err)

	_, _, err = env.auth.Login("nobody@example.com", "s3cret-password")
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	assert.Equal(t, wrongPass, apperr.Message(err))
}

func TestResolveIdentity(t *testing.T) {
	env := newTestEnv(t)

	user, _, err := env.auth.Register("María", "maria@example.com", "s3cret-password")
	require.NoError(t, err)

	identity, err := env.auth.Resolve(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, "maria@example.com", identity.Email)
	assert.False(t, identity.IsAdmin)

	_, err = env.auth.Resolve(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}
