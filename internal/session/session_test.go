package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chatlink/internal/models"
)

func TestSession_ZeroValueAnonymous(t *testing.T) {
	t.Parallel()

	s := New()

	require.False(t, s.Authenticated())
	require.False(t, s.Linked())
	require.False(t, s.Registered())
	require.Empty(t, s.UserID())
	require.Empty(t, s.ChatUserID())
	require.Empty(t, s.Bearer())
}

func TestSetAuthenticated_OK(t *testing.T) {
	t.Parallel()

	s := New()
	exp := time.Now().Add(time.Hour)

	require.NoError(t, s.SetAuthenticated("usr-abc", "tok", exp))
	require.True(t, s.Authenticated())
	require.Equal(t, "usr-abc", s.UserID())

	tok, gotExp := s.AuthToken()
	require.Equal(t, "tok", tok)
	require.Equal(t, exp, gotExp)
}

func TestSetAuthenticated_PartialIdentity(t *testing.T) {
	t.Parallel()

	s := New()
	exp := time.Now().Add(time.Hour)

	require.ErrorIs(t, s.SetAuthenticated("", "tok", exp), ErrPartialIdentity)
	require.ErrorIs(t, s.SetAuthenticated("usr-abc", "", exp), ErrPartialIdentity)
	require.ErrorIs(t, s.SetAuthenticated("usr-abc", "tok", time.Time{}), ErrPartialIdentity)
	require.False(t, s.Authenticated())
}

func TestInvalidate_ClearsEverything(t *testing.T) {
	t.Parallel()

	s := New()
	require.NoError(t, s.SetAuthenticated("usr-abc", "tok", time.Now().Add(time.Hour)))
	s.SetChatUserID("08123456789")
	s.MarkLinked()
	s.SetBearer(models.TokenBundle{AccessToken: "bearer"}, time.Now().Add(time.Hour))

	s.Invalidate()

	require.False(t, s.Authenticated())
	require.False(t, s.Linked())
	require.False(t, s.Registered())
	require.Empty(t, s.UserID())
	require.Empty(t, s.ChatUserID())
	require.Empty(t, s.Bearer())
	require.True(t, s.BearerExpires().IsZero())
}

func TestMarkLinked_SetsRegistered(t *testing.T) {
	t.Parallel()

	s := New()
	s.MarkLinked()

	require.True(t, s.Linked())
	require.True(t, s.Registered())
}

func TestSetBearer_EmptyTokenNotPresent(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetBearer(models.TokenBundle{}, time.Time{})

	require.Empty(t, s.Bearer())
}
