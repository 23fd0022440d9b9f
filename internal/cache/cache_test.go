package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryGetSet(t *testing.T) {
	c := NewMemory()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("key", "value", 0)
	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestMemoryTTL(t *testing.T) {
	c := NewMemory()
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("short", "v", time.Minute)

	_, ok := c.Get("short")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("short")
	assert.False(t, ok, "expired entries are dropped on read")

	c.Set("forever", "v", 0)
	now = now.Add(240 * time.Hour)
	_, ok = c.Get("forever")
	assert.True(t, ok, "zero ttl never expires")
}
