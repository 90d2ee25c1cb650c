package cache_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/nudger/pkg/utils/cache"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestCache(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	c := cache.New[string, int](time.Hour, cache.WithNow(clock.Now))

	t.Run("miss on empty cache", func(t *testing.T) {
		_, ok := c.Get("users")
		gt.Value(t, ok).Equal(false)
	})

	t.Run("hit before expiry", func(t *testing.T) {
		c.Set("users", 42)
		clock.now = clock.now.Add(59 * time.Minute)

		v, ok := c.Get("users")
		gt.Value(t, ok).Equal(true)
		gt.Number(t, v).Equal(42)
	})

	t.Run("miss at expiry and entry is evicted", func(t *testing.T) {
		clock.now = clock.now.Add(time.Minute)

		_, ok := c.Get("users")
		gt.Value(t, ok).Equal(false)
		gt.Number(t, c.Len()).Equal(0)
	})

	t.Run("set refreshes expiry", func(t *testing.T) {
		c.Set("absences", 1)
		clock.now = clock.now.Add(30 * time.Minute)
		c.Set("absences", 2)
		clock.now = clock.now.Add(45 * time.Minute)

		v, ok := c.Get("absences")
		gt.Value(t, ok).Equal(true)
		gt.Number(t, v).Equal(2)
	})
}
