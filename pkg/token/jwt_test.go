package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	userID := uuid.New()

	signed, tokenID, expiresAt, err := m.Issue(userID, "owner", "owner@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Sub)
	assert.Equal(t, "owner", claims.Role)
	assert.Equal(t, tokenID, claims.ID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, _, _, err := NewManager("a", time.Hour).Issue(uuid.New(), "customer", "c@example.com")
	require.NoError(t, err)

	_, err = NewManager("b", time.Hour).Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	signed, _, _, err := m.Issue(uuid.New(), "customer", "c@example.com")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(signed)
	assert.Error(t, err)
}
