package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemory().(*memoryCache)
	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "sliders", []item{{Name: "a", Order: 1}}, time.Minute))

	var got []item
	found, err := c.Get(ctx, "sliders", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a", got[0].Name)

	now = now.Add(2 * time.Minute)
	found, err = c.Get(ctx, "sliders", &got)
	require.NoError(t, err)
	assert.False(t, found, "expired entries are not returned")
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	require.NoError(t, c.Set(ctx, "k", item{Name: "x"}, 0))
	require.NoError(t, c.Delete(ctx, "k", "missing"))

	var got item
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheExpiredReadKeepsNewerValue(t *testing.T) {
	ctx := context.Background()
	c := NewMemory().(*memoryCache)
	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", item{Name: "old"}, time.Minute))
	now = now.Add(2 * time.Minute)

	// a writer refreshes the key between the read lock and the expiry delete
	replaced := false
	c.now = func() time.Time {
		if !replaced {
			replaced = true
			c.mu.Lock()
			c.items["k"] = memoryItem{data: []byte(`{"name":"new"}`), expiresAt: now.Add(time.Minute)}
			c.mu.Unlock()
		}
		return now
	}

	var got item
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "new", got.Name)
}

func TestMemoryCacheSweepsUnreadEntries(t *testing.T) {
	ctx := context.Background()
	c := NewMemory().(*memoryCache)
	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "a", item{Name: "a"}, time.Second))
	require.NoError(t, c.Set(ctx, "b", item{Name: "b"}, 0))

	now = now.Add(2 * sweepInterval)
	require.NoError(t, c.Set(ctx, "c", item{Name: "c"}, time.Minute))

	c.mu.RLock()
	defer c.mu.RUnlock()
	assert.NotContains(t, c.items, "a")
	assert.Contains(t, c.items, "b")
	assert.Contains(t, c.items, "c")
}
