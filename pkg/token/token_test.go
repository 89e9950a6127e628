package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("secret", "exchange", time.Hour)

	signed, expiresAt, err := m.Issue("user-1", "alice@example.com", "ADMIN")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager("secret", "exchange", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	signed, _, err := m.Issue("user-1", "a@example.com", "USER")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignIssuerAndSecret(t *testing.T) {
	other := NewManager("secret", "someone-else", time.Hour)
	signed, _, err := other.Issue("user-1", "a@example.com", "USER")
	require.NoError(t, err)

	m := NewManager("secret", "exchange", time.Hour)
	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongKey := NewManager("another-secret", "exchange", time.Hour)
	signed, _, err = wrongKey.Issue("user-1", "a@example.com", "USER")
	require.NoError(t, err)
	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	m := NewManager("secret", "exchange", time.Hour)
	_, err := m.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
