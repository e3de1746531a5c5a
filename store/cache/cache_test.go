package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New(10, time.Minute)

	c.Set("k", []byte("v"), 0)

	value, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), value)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_Overwrite(t *testing.T) {
	c := New(10, time.Minute)

	c.Set("k", []byte("first"), 0)
	c.Set("k", []byte("second"), 0)

	value, _ := c.Get("k")
	assert.Equal(t, []byte("second"), value)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Expiration(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := New(10, time.Minute)
	c.SetClock(func() time.Time { return now })

	c.Set("k", []byte("v"), 30*time.Second)

	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(31 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_EvictsOldest(t *testing.T) {
	c := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), []byte("v"), 0)
	}
	// Touch k0 so k1 becomes the eviction candidate.
	c.Get("k0")
	c.Set("k3", []byte("v"), 0)

	_, ok := c.Get("k1")
	assert.False(t, ok)
	_, ok = c.Get("k0")
	assert.True(t, ok)
	assert.Equal(t, 3, c.Len())
}

func TestCache_Invalidate(t *testing.T) {
	c := New(10, time.Minute)
	c.Set("geocode:delhi", []byte("a"), 0)
	c.Set("geocode:mumbai", []byte("b"), 0)
	c.Set("otp:alice", []byte("c"), 0)

	removed := c.Invalidate("geocode:*")
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())

	removed = c.Invalidate("otp:alice")
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, c.Len())
}
