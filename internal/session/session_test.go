package session

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, sub int64) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub})
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestFromToken(t *testing.T) {
	sess, err := FromToken(signedToken(t, 42))
	require.NoError(t, err)
	assert.False(t, sess.IsAnonymous())
	assert.Equal(t, int64(42), sess.UserID())
}

func TestFromToken_EmptyIsAnonymous(t *testing.T) {
	sess, err := FromToken("")
	require.NoError(t, err)
	assert.True(t, sess.IsAnonymous())
	assert.Equal(t, int64(0), sess.UserID())
	assert.Empty(t, sess.Token())
}

func TestFromToken_Garbage(t *testing.T) {
	_, err := FromToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestOwns(t *testing.T) {
	sess, err := FromToken(signedToken(t, 42))
	require.NoError(t, err)
	assert.True(t, sess.Owns(42))
	assert.False(t, sess.Owns(7))
	assert.False(t, Anonymous().Owns(42), "anonymous owns nothing")
	assert.False(t, Anonymous().Owns(0))
}

func TestContextRoundTrip(t *testing.T) {
	sess, err := FromToken(signedToken(t, 9))
	require.NoError(t, err)

	ctx := NewContext(context.Background(), sess)
	assert.Equal(t, sess, FromContext(ctx))
	assert.True(t, FromContext(context.Background()).IsAnonymous())
}
