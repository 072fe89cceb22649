package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func setupTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	r, err := NewRedis("redis://"+mr.Addr(), "")
	if err != nil {
		mr.Close()
		t.Fatalf("NewRedis: %v", err)
	}
	return r, mr
}

func TestRedisGetMissing(t *testing.T) {
	r, mr := setupTestRedis(t)
	defer mr.Close()
	defer r.Close()

	if _, ok := r.Get(context.Background(), "volumes"); ok {
		t.Error("Get should miss for a new key")
	}
}

func TestRedisSetAndGet(t *testing.T) {
	r, mr := setupTestRedis(t)
	defer mr.Close()
	defer r.Close()

	ctx := context.Background()
	r.Set(ctx, "hlYields", []byte(`{"dex":"Hyperliquid"}`), time.Minute)

	got, ok := r.Get(ctx, "hlYields")
	if !ok || string(got) != `{"dex":"Hyperliquid"}` {
		t.Errorf("Get = %q, %v", got, ok)
	}
	if !mr.Exists(keyPrefix + "hlYields") {
		t.Error("key should be stored with prefix")
	}
}

func TestRedisTTLExpiry(t *testing.T) {
	r, mr := setupTestRedis(t)
	defer mr.Close()
	defer r.Close()

	ctx := context.Background()
	r.Set(ctx, "volumes", []byte("[]"), 30*time.Second)
	mr.FastForward(31 * time.Second)

	if _, ok := r.Get(ctx, "volumes"); ok {
		t.Error("Get should miss after TTL")
	}
}

func TestRedisDownIsMiss(t *testing.T) {
	r, mr := setupTestRedis(t)
	defer r.Close()

	ctx := context.Background()
	r.Set(ctx, "volumes", []byte("[]"), time.Minute)
	mr.Close()

	if _, ok := r.Get(ctx, "volumes"); ok {
		t.Error("Get should miss when Redis is down")
	}
	if err := r.Ping(ctx); err == nil {
		t.Error("Ping should fail when Redis is down")
	}
}

func TestNewRedisBadURL(t *testing.T) {
	if _, err := NewRedis("not-a-url", ""); err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestMemorySetAndGet(t *testing.T) {
	m, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	defer m.Close()

	ctx := context.Background()
	if _, ok := m.Get(ctx, "volumes"); ok {
		t.Error("Get should miss for a new key")
	}

	m.Set(ctx, "volumes", []byte(`[{"dex":"Lighter","volume":1}]`), time.Minute)
	got, ok := m.Get(ctx, "volumes")
	if !ok || string(got) != `[{"dex":"Lighter","volume":1}]` {
		t.Errorf("Get = %q, %v", got, ok)
	}
	if err := m.Ping(ctx); err != nil {
		t.Errorf("Ping = %v", err)
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	m, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	defer m.Close()

	ctx := context.Background()
	m.Set(ctx, "volumes", []byte("[]"), 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	if _, ok := m.Get(ctx, "volumes"); ok {
		t.Error("Get should miss after TTL")
	}
}
