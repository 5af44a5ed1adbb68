// Wayfarer - Travel Itinerary Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(t *testing.T, ttl time.Duration) (*Cache[string], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string]("test", ttl, time.Hour)
	c.now = clock.Now
	t.Cleanup(c.Close)
	return c, clock
}

func TestCacheBasicOperations(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t, time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Get(key1) = %q, want value1", value)
	}

	if _, exists := c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.TotalKeys != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 key", stats)
	}
	if rate := c.HitRate(); rate != 50 {
		t.Errorf("HitRate() = %v, want 50", rate)
	}
}

func TestCacheExpiration(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache(t, time.Minute)
	c.Set("key1", "value1")
	c.SetWithTTL("key2", "value2", time.Hour)

	clock.Advance(2 * time.Minute)

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if _, exists := c.Get("key2"); !exists {
		t.Error("Expected key2 to outlive the default TTL")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after lazy expiry", c.Len())
	}
}

func TestCacheCleanup(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache(t, time.Minute)
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("key%d", i), "v")
	}
	c.SetWithTTL("long", "v", time.Hour)

	clock.Advance(2 * time.Minute)
	c.cleanup()

	stats := c.GetStats()
	if stats.TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, want 1", stats.TotalKeys)
	}
	if stats.Evictions != 5 {
		t.Errorf("Evictions = %d, want 5", stats.Evictions)
	}
	if !stats.LastCleanup.Equal(clock.Now()) {
		t.Errorf("LastCleanup = %v, want %v", stats.LastCleanup, clock.Now())
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t, time.Minute)
	c.Set("u1\x00lisbon", "a")
	c.Set("u1\x00porto", "b")
	c.Set("u10\x00lisbon", "c")
	c.Set("other", "d")

	c.Delete("other")
	c.Delete("missing")
	if _, exists := c.Get("other"); exists {
		t.Error("Expected other to be deleted")
	}

	if removed := c.DeletePrefix("u1\x00"); removed != 2 {
		t.Errorf("DeletePrefix() = %d, want 2", removed)
	}
	if _, exists := c.Get("u10\x00lisbon"); !exists {
		t.Error("DeletePrefix removed a key of another user")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if got := c.GetStats().Evictions; got != 4 {
		t.Errorf("Evictions = %d, want 4", got)
	}
}

func TestCacheCloseIdempotent(t *testing.T) {
	t.Parallel()

	c := New[int]("close", time.Minute, time.Millisecond)
	c.Close()
	c.Close()
}

func TestCacheConcurrentAccess(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%10)
				c.Set(key, fmt.Sprint(n))
				c.Get(key)
				if j%25 == 0 {
					c.DeletePrefix("k1")
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 10 {
		t.Errorf("Len() = %d, want at most 10", c.Len())
	}
}
