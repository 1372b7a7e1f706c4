package repository

import (
	"context"
	"sync"
	"time"
)

// MockCache is an in-process CacheRepository used when no Redis address is
// configured, and in tests.
type MockCache struct {
	mu      sync.Mutex
	Data    map[string]string
	expires map[string]time.Time
	now     func() time.Time
}

func NewMockCache() *MockCache {
	return &MockCache{
		Data:    make(map[string]string),
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MockCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if exp, ok := m.expires[key]; ok && !m.now().Before(exp) {
		delete(m.Data, key)
		delete(m.expires, key)
		return "", false
	}
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Data[key] = value
	if ttl > 0 {
		m.expires[key] = m.now().Add(ttl)
	} else {
		delete(m.expires, key)
	}
	return nil
}
