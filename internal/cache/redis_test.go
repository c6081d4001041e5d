package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/jo-hoe/imgsuite/internal/scenario"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	cache := NewRedisCache(server.Addr(), time.Hour)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, server
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache, _ := newTestCache(t)

	stored := &scenario.StepResult{
		Position:   3,
		Command:    "oiiotool --info -v a.gif",
		ExitCode:   0,
		Stdout:     "a.gif : 8 x 4, 3 channel, uint8 gif\n",
		DurationMS: 12,
	}
	if err := cache.Set("key-1", stored); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	result, ok, err := cache.Get("key-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if result.Command != stored.Command {
		t.Errorf("expected command %q, got %q", stored.Command, result.Command)
	}
	if result.Stdout != stored.Stdout {
		t.Errorf("expected stdout %q, got %q", stored.Stdout, result.Stdout)
	}
	if result.Position != 3 {
		t.Errorf("expected position 3, got %d", result.Position)
	}
}

func TestRedisCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	result, ok, err := cache.Get("absent")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if ok {
		t.Error("expected a cache miss")
	}
	if result != nil {
		t.Error("expected nil result on miss")
	}
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	cache, server := newTestCache(t)

	if err := cache.Set("key-1", &scenario.StepResult{Command: "x"}); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	server.FastForward(2 * time.Hour)

	_, ok, err := cache.Get("key-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if ok {
		t.Error("expected entry to expire after TTL")
	}
}

func TestRedisCache_ServerDown(t *testing.T) {
	server := miniredis.RunT(t)
	cache := NewRedisCache(server.Addr(), time.Hour)
	t.Cleanup(func() { _ = cache.Close() })

	server.Close()

	if _, _, err := cache.Get("key-1"); err == nil {
		t.Error("expected error when redis is unreachable")
	}
	if err := cache.Set("key-1", &scenario.StepResult{}); err == nil {
		t.Error("expected error when redis is unreachable")
	}
}
