// ABOUTME: Thread-safe in-memory OTP store with per-code expiry
// ABOUTME: Suitable for single-process deployments and tests

package otp

import (
	"context"
	"sync"
	"time"
)

// memoryEntry stores a pending code and its expiry.
type memoryEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is a thread-safe in-memory Store. Expired entries are
// dropped lazily on access; there is no background goroutine to manage.
type MemoryStore struct {
	mu      sync.Mutex
	pending map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory OTP store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pending: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Put stores a code for the target, replacing any pending one.
func (m *MemoryStore) Put(_ context.Context, target, code string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending[target] = memoryEntry{
		code:      code,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

// Consume atomically checks and removes the pending code for the
// target. A matching unexpired code returns true exactly once.
func (m *MemoryStore) Consume(_ context.Context, target, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.pending[target]
	if !ok {
		return false, nil
	}

	if m.now().After(entry.expiresAt) {
		delete(m.pending, target)
		return false, nil
	}

	if entry.code != code {
		return false, nil
	}

	delete(m.pending, target)
	return true, nil
}
