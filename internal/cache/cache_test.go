package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyVariesWithOptions(t *testing.T) {
	doc := "INT. CAFE - DAY\n\nHe waits."
	plain := Key(doc, false)
	numbered := Key(doc, true)

	assert.NotEqual(t, plain, numbered, "options not part of the key")
	assert.Equal(t, plain, Key(doc, false), "key is not deterministic")
	assert.NotEqual(t, plain, Key("other text", false), "different documents share a key")
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	key := Key("doc", false)

	_, found := c.Get(key)
	require.False(t, found, "hit before Set")

	require.NoError(t, c.Set(key, []byte("report"), time.Minute))

	val, found := c.Get(key)
	require.True(t, found)
	assert.Equal(t, "report", string(val))

	require.NoError(t, c.Delete(key))
	_, found = c.Get(key)
	assert.False(t, found, "hit after Delete")
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	key := Key("doc", false)
	require.NoError(t, c.Set(key, []byte("x"), time.Millisecond))

	time.Sleep(5 * time.Millisecond)
	_, found := c.Get(key)
	assert.False(t, found, "expired entry still served")
}

func TestClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set(Key("a", false), []byte("1"), time.Minute))
	require.NoError(t, c.Set(Key("b", false), []byte("2"), time.Minute))

	require.NoError(t, c.Clear())
	_, found := c.Get(Key("a", false))
	assert.False(t, found, "entry survived Clear")
}
