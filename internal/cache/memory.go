package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Memory is the single-process backend used when no Redis URL is configured.
type Memory struct {
	c *ristretto.Cache
}

func NewMemory() (*Memory, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1_000,
		MaxCost:     8 << 20, // bytes
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Memory{c: c}, nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Set waits for the write buffer to drain so a following Get observes it.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.c.SetWithTTL(key, value, int64(len(value)), ttl)
	m.c.Wait()
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error {
	m.c.Close()
	return nil
}
