package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPStore_IssueAndVerify(t *testing.T) {
	s := NewOTPStore()

	code, err := s.Issue("user@example.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	assert.True(t, s.Verify("user@example.com", code))
	// Consumed on first success.
	assert.False(t, s.Verify("user@example.com", code))
}

func TestOTPStore_WrongCode(t *testing.T) {
	s := NewOTPStore()
	code, err := s.Issue("user@example.com")
	require.NoError(t, err)

	assert.False(t, s.Verify("user@example.com", "000000"))
	// The right code still works after a wrong attempt.
	assert.True(t, s.Verify("user@example.com", code))
}

func TestOTPStore_TooManyAttempts(t *testing.T) {
	s := NewOTPStore()
	code, err := s.Issue("user@example.com")
	require.NoError(t, err)

	for i := 0; i < maxAttempts; i++ {
		assert.False(t, s.Verify("user@example.com", "999999"))
	}
	// Code invalidated after repeated failures.
	assert.False(t, s.Verify("user@example.com", code))
}

func TestOTPStore_Expiration(t *testing.T) {
	s := NewOTPStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })

	code, err := s.Issue("user@example.com")
	require.NoError(t, err)

	now = now.Add(codeTTL + time.Second)
	assert.False(t, s.Verify("user@example.com", code))
}

func TestOTPStore_WrongAttemptKeepsExpiry(t *testing.T) {
	s := NewOTPStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })

	code, err := s.Issue("user@example.com")
	require.NoError(t, err)

	// A wrong guess near the end of the window must not reset it.
	now = now.Add(codeTTL - time.Minute)
	assert.False(t, s.Verify("user@example.com", "000000"))

	now = now.Add(2 * time.Minute)
	assert.False(t, s.Verify("user@example.com", code))
}

func TestOTPStore_ReissueReplaces(t *testing.T) {
	s := NewOTPStore()
	first, err := s.Issue("user@example.com")
	require.NoError(t, err)
	second, err := s.Issue("user@example.com")
	require.NoError(t, err)

	if first != second {
		assert.False(t, s.Verify("user@example.com", first))
	}
	assert.True(t, s.Verify("user@example.com", second))
}

func TestOTPStore_EmptyIdentity(t *testing.T) {
	s := NewOTPStore()
	_, err := s.Issue("")
	assert.Error(t, err)
}
