// Package otp keeps pending one-time passcodes in process memory, keyed by
// email. Expiry is checked lazily on access; there is no background sweep.
//
// The cache is only visible to the process that owns it. Running more than
// one server instance needs a shared store with the same atomic
// compare-and-delete contract as Consume.
package otp

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 5 * time.Minute

type entry struct {
	code      string
	expiresAt time.Time
}

// Cache maps email to at most one pending code.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache returns an empty cache. A non-positive ttl selects DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// TTL reports the validity window applied by Put.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Put stores code for email, replacing any code issued earlier.
func (c *Cache) Put(email, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[email] = entry{code: code, expiresAt: c.now().Add(c.ttl)}
}

// Consume checks code against the pending entry for email in one critical
// section:
//   - no entry: common.ErrOTPExpiredOrMissing, cache untouched
//   - expired entry: common.ErrOTPExpiredOrMissing, entry removed
//   - wrong code: common.ErrOTPMismatch, entry kept for another attempt
//   - match: nil, entry removed so the code cannot be replayed
func (c *Cache) Consume(email, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[email]
	if !ok {
		return common.ErrOTPExpiredOrMissing
	}

	if !c.now().Before(e.expiresAt) {
		delete(c.entries, email)
		return common.ErrOTPExpiredOrMissing
	}

	if subtle.ConstantTimeCompare([]byte(e.code), []byte(code)) != 1 {
		return common.ErrOTPMismatch
	}

	delete(c.entries, email)
	return nil
}

// ConsumeIfValid is Consume reduced to a boolean.
func (c *Cache) ConsumeIfValid(email, code string) bool {
	return c.Consume(email, code) == nil
}

// Len returns the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
