package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const defaultCleanupInterval = time.Minute

// MemoryStore keeps session records in process memory. It is the
// fallback backend for single-instance deployments without Redis;
// sessions do not survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	cleanupDone     chan struct{}
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often expired records are swept.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(m *MemoryStore) {
		m.cleanupInterval = d
	}
}

// NewMemoryStore creates an in-memory session store and starts its
// background sweeper. Call Close to stop the sweeper.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	m := &MemoryStore{
		records:         make(map[string]Record),
		cleanupInterval: defaultCleanupInterval,
		stopCleanup:     make(chan struct{}),
		cleanupDone:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	go m.cleanupLoop()

	return m
}

func (m *MemoryStore) cleanupLoop() {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.removeExpired(time.Now())
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *MemoryStore) removeExpired(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, rec := range m.records {
		if rec.Expired(now) {
			delete(m.records, id)
		}
	}
}

// Get returns the record for sessionID, or (nil, nil) when absent.
// Records past their expiry count as absent even before the sweeper
// catches up.
func (m *MemoryStore) Get(ctx context.Context, sessionID string) (*Record, error) {
	m.mu.RLock()
	rec, ok := m.records[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if rec.Expired(time.Now()) {
		m.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// refreshed the record between the two locks.
		if cur, ok := m.records[sessionID]; ok && cur.Expired(time.Now()) {
			delete(m.records, sessionID)
		}
		m.mu.Unlock()
		return nil, nil
	}

	out := rec
	return &out, nil
}

func (m *MemoryStore) Set(ctx context.Context, rec Record) error {
	if rec.SessionID == "" {
		return fmt.Errorf("session: missing session id")
	}

	if !rec.ExpiresAt.After(time.Now()) {
		return m.Delete(ctx, rec.SessionID)
	}

	m.mu.Lock()
	m.records[rec.SessionID] = rec
	m.mu.Unlock()

	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.records, sessionID)
	m.mu.Unlock()
	return nil
}

// Close stops the background sweeper. Stored records stay readable.
func (m *MemoryStore) Close() error {
	close(m.stopCleanup)
	<-m.cleanupDone
	return nil
}
