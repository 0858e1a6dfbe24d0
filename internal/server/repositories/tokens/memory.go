package tokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

type memoryEntry struct {
	token   string
	expires time.Time // zero: never
}

// MemoryCache is an in-process Cache for single-node runs and tests.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache returns an empty cache. A zero ttl disables expiry; now may
// be nil to use time.Now.
func NewMemoryCache(ttl time.Duration, now func() time.Time) *MemoryCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *MemoryCache) SetToken(ctx context.Context, username, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := memoryEntry{token: token}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[common.TokenKey(username)] = e
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) GetToken(ctx context.Context, username string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.RLock()
	e, ok := c.entries[common.TokenKey(username)]
	c.mu.RUnlock()

	if !ok {
		return "", common.ErrorNotFound
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		return "", common.ErrorNotFound
	}
	return e.token, nil
}
