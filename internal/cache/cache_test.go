package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string
	Count int
}

func TestCache(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		c := New(16, time.Minute)

		key, err := c.Key("books:list", "leo", 1)
		require.NoError(t, err)

		c.Set(key, payload{Name: "algebra", Count: 3})

		var got payload
		require.True(t, c.Get(key, &got))
		assert.Equal(t, payload{Name: "algebra", Count: 3}, got)
	})

	t.Run("miss", func(t *testing.T) {
		c := New(16, time.Minute)

		var got payload
		assert.False(t, c.Get("absent", &got))
	})

	t.Run("same parts same key, different parts different key", func(t *testing.T) {
		c := New(16, time.Minute)

		a1, err := c.Key("ns", "leo", 1)
		require.NoError(t, err)
		a2, err := c.Key("ns", "leo", 1)
		require.NoError(t, err)
		b, err := c.Key("ns", "ana", 1)
		require.NoError(t, err)

		assert.Equal(t, a1, a2)
		assert.NotEqual(t, a1, b)
	})

	t.Run("invalidate retires old keys", func(t *testing.T) {
		c := New(16, time.Minute)

		key, err := c.Key("books:list", "leo")
		require.NoError(t, err)
		c.Set(key, payload{Name: "stale"})

		c.Invalidate("books:list")

		fresh, err := c.Key("books:list", "leo")
		require.NoError(t, err)
		assert.NotEqual(t, key, fresh)

		var got payload
		assert.False(t, c.Get(fresh, &got))
	})

	t.Run("invalidate scoped to the namespace", func(t *testing.T) {
		c := New(16, time.Minute)

		before, err := c.Key("books:options")
		require.NoError(t, err)

		c.Invalidate("books:list")

		after, err := c.Key("books:options")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("entries expire", func(t *testing.T) {
		c := New(16, 20*time.Millisecond)

		key, err := c.Key("ns")
		require.NoError(t, err)
		c.Set(key, payload{Name: "x"})

		time.Sleep(60 * time.Millisecond)

		var got payload
		assert.False(t, c.Get(key, &got))
	})

	t.Run("purge", func(t *testing.T) {
		c := New(16, time.Minute)

		key, err := c.Key("ns")
		require.NoError(t, err)
		c.Set(key, payload{Name: "x"})

		c.Purge()

		var got payload
		assert.False(t, c.Get(key, &got))
	})
}

func TestCanonicalUsername(t *testing.T) {
	assert.Equal(t, "leo", CanonicalUsername("  LEO "))
}
