package memory

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get = %q, want %q", got, "value")
	}
}

func TestMemoryCache_MissingKey(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)

	_, err := cache.Get(context.Background(), "absent")
	if err != ErrCacheMiss {
		t.Errorf("Get = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := cache.Get(ctx, "key"); err != ErrCacheMiss {
		t.Errorf("Get after Delete = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	if _, err := cache.Get(ctx, "key"); err != ErrCacheMiss {
		t.Errorf("Get after expiry = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_ReturnsCopy(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	original := []byte("value")
	if err := cache.Set(ctx, "key", original, time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	original[0] = 'X'

	first, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(first) != "value" {
		t.Errorf("cached value mutated through the caller's slice: %q", first)
	}

	first[0] = 'Y'
	second, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(second) != "value" {
		t.Errorf("cached value mutated through a returned slice: %q", second)
	}
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cache.Get(ctx, "key"); err != context.Canceled {
		t.Errorf("Get with cancelled context = %v, want context.Canceled", err)
	}
	if err := cache.Set(ctx, "key", []byte("v"), time.Minute); err != context.Canceled {
		t.Errorf("Set with cancelled context = %v, want context.Canceled", err)
	}
}
