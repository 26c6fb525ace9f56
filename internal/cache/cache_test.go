package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	c := New(true)

	etag := c.Set("grid:daily", []byte(`{"rows":[]}`), time.Minute)
	require.NotEmpty(t, etag)

	data, gotETag, ok := c.Get("grid:daily")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"rows":[]}`), data)
	assert.Equal(t, etag, gotETag)
}

func TestGetMissAndExpiry(t *testing.T) {
	c := New(true)

	_, _, ok := c.Get("absent")
	assert.False(t, ok)

	c.Set("short", []byte("x"), -time.Second)
	_, _, ok = c.Get("short")
	assert.False(t, ok, "expired entries must not be served")
}

func TestDisabledCacheStillComputesETags(t *testing.T) {
	c := New(false)

	etag := c.Set("k", []byte("payload"), time.Minute)
	assert.NotEmpty(t, etag)

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestETagIsStablePerPayload(t *testing.T) {
	a := ComputeETag([]byte("payload"))
	b := ComputeETag([]byte("payload"))
	other := ComputeETag([]byte("different"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.True(t, len(a) > 4 && a[:3] == `W/"`, "weak etag format")
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("payload"))

	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))
}

func TestStats(t *testing.T) {
	c := New(true)
	c.Set("live", []byte("a"), time.Minute)
	c.Set("dead", []byte("b"), -time.Second)

	stats := c.Stats()
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, 2, stats["total_keys"])
	assert.Equal(t, 1, stats["active_keys"])
	assert.Equal(t, 1, stats["expired_keys"])
}
