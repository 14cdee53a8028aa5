package cache

import (
	"sync"
	"time"
)

// ReplyCache guarda respuestas generadas, indexadas por el texto exacto del
// mensaje. Es una optimización de latencia: perder entradas solo degrada a
// cache-miss.
type ReplyCache interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache implementa ReplyCache en memoria con TTL fijo por entrada.
// Expira de forma perezosa en Get y con un sweep periódico en background.
// Sin coordinación entre requests concurrentes con la misma clave: cada una
// puede fallar el Get y escribir; gana el último Set.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	stop    chan struct{}
	once    sync.Once
}

func NewMemoryCache(ttl, sweepInterval time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go c.sweepLoop(sweepInterval)
	}
	return c
}

func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().UTC().After(e.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

func (c *MemoryCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().UTC().Add(c.ttl),
	}
}

// Len devuelve la cantidad de entradas vivas o no barridas todavía.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close detiene el sweep en background.
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *MemoryCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryCache) sweep() {
	now := time.Now().UTC()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
