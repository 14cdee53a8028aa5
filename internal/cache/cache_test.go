package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Hour, 0)
	defer c.Close()

	if _, ok := c.Get("hola"); ok {
		t.Fatalf("expected miss on empty cache")
	}

	c.Set("hola", "respuesta")
	got, ok := c.Get("hola")
	if !ok || got != "respuesta" {
		t.Fatalf("expected hit with %q, got %q ok=%v", "respuesta", got, ok)
	}
}

func TestMemoryCache_KeysAreExact(t *testing.T) {
	c := NewMemoryCache(time.Hour, 0)
	defer c.Close()

	c.Set("hola", "r1")
	if _, ok := c.Get("Hola"); ok {
		t.Fatalf("expected case variant to be a different key")
	}
	if _, ok := c.Get("hola "); ok {
		t.Fatalf("expected whitespace variant to be a different key")
	}
}

func TestMemoryCache_LazyExpiry(t *testing.T) {
	c := NewMemoryCache(10*time.Millisecond, 0)
	defer c.Close()

	c.Set("k", "v")
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected entry to be expired")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted on read, len=%d", c.Len())
	}
}

func TestMemoryCache_BackgroundSweep(t *testing.T) {
	c := NewMemoryCache(10*time.Millisecond, 20*time.Millisecond)
	defer c.Close()

	c.Set("k1", "v1")
	c.Set("k2", "v2")

	deadline := time.Now().Add(time.Second)
	for c.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if c.Len() != 0 {
		t.Fatalf("expected sweep to evict expired entries, len=%d", c.Len())
	}
}

func TestMemoryCache_LastWriteWins(t *testing.T) {
	c := NewMemoryCache(time.Hour, 0)
	defer c.Close()

	c.Set("k", "first")
	c.Set("k", "second")
	got, ok := c.Get("k")
	if !ok || got != "second" {
		t.Fatalf("expected last write to win, got %q ok=%v", got, ok)
	}
}
