// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormTokenIssue(t *testing.T) {
	svc := NewFormTokenService(24*time.Hour, 32)

	token, expiresAt, err := svc.Issue()
	require.NoError(t, err)
	assert.Len(t, token, 32)
	assert.True(t, expiresAt.After(time.Now()))

	for _, c := range token {
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		assert.True(t, isAlnum, "token must be alphanumeric, got %q", c)
	}

	// Tokens must be unique across issues
	other, _, err := svc.Issue()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestFormTokenValidate(t *testing.T) {
	t.Run("unknown token", func(t *testing.T) {
		svc := NewFormTokenService(24*time.Hour, 32)
		status, _ := svc.Validate("nonexistent")
		assert.Equal(t, FormTokenNotFound, status)
	})

	t.Run("valid token", func(t *testing.T) {
		svc := NewFormTokenService(24*time.Hour, 32)
		token, expiresAt, err := svc.Issue()
		require.NoError(t, err)

		status, exp := svc.Validate(token)
		assert.Equal(t, FormTokenValid, status)
		assert.Equal(t, expiresAt, exp)
	})

	t.Run("expired token is deleted", func(t *testing.T) {
		svc := NewFormTokenService(-time.Second, 32)
		token, _, err := svc.Issue()
		require.NoError(t, err)

		status, _ := svc.Validate(token)
		assert.Equal(t, FormTokenExpired, status)

		// A second lookup must report not-found, not expired
		status, _ = svc.Validate(token)
		assert.Equal(t, FormTokenNotFound, status)
	})

	t.Run("used token", func(t *testing.T) {
		svc := NewFormTokenService(24*time.Hour, 32)
		token, _, err := svc.Issue()
		require.NoError(t, err)

		svc.Consume(token)

		status, _ := svc.Validate(token)
		assert.Equal(t, FormTokenUsed, status)
	})
}

func TestFormTokenConsumeUnknown(t *testing.T) {
	svc := NewFormTokenService(24*time.Hour, 32)
	// Consuming a token that was never issued must not panic or create an entry
	svc.Consume("never-issued")
	status, _ := svc.Validate("never-issued")
	assert.Equal(t, FormTokenNotFound, status)
}

func TestFormTokenReapExpired(t *testing.T) {
	svc := NewFormTokenService(24*time.Hour, 32)

	fresh, _, err := svc.Issue()
	require.NoError(t, err)

	expired := NewFormTokenService(-time.Second, 32)
	_, _, err = expired.Issue()
	require.NoError(t, err)
	_, _, err = expired.Issue()
	require.NoError(t, err)

	removed, remaining := expired.ReapExpired()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, remaining)

	removed, remaining = svc.ReapExpired()
	assert.Equal(t, 0, removed)
	assert.Equal(t, 1, remaining)

	status, _ := svc.Validate(fresh)
	assert.Equal(t, FormTokenValid, status)
}
