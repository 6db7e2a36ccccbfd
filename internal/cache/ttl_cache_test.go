package cache

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Minute)

	value, ok := c.Get("a")
	if !ok || value != 1 {
		t.Fatalf("expected 1, got %d (%v)", value, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Nanosecond)
	time.Sleep(time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected expired entry to be dropped")
	}
	if c.Len() != 0 {
		t.Fatalf("expected lazy expiry to delete the entry")
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, 0)

	if _, ok := c.Get("a"); !ok {
		t.Fatalf("zero ttl entry must not expire")
	}
}

func TestTTLCacheDelete(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Minute)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected deleted entry to be gone")
	}
}
