package kv

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedis(client), mr
}

func TestRedisGetSetDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.SetWithTTL(ctx, "k", "v1", time.Minute); err != nil {
		t.Fatalf("SetWithTTL failed: %v", err)
	}
	val, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != "v1" {
		t.Fatalf("expected v1, got %q", val)
	}

	// Overwrite replaces both value and TTL.
	if err := store.SetWithTTL(ctx, "k", "v2", time.Hour); err != nil {
		t.Fatalf("SetWithTTL failed: %v", err)
	}
	ttl, err := store.TTLRemaining(ctx, "k")
	if err != nil {
		t.Fatalf("TTLRemaining failed: %v", err)
	}
	if ttl <= time.Minute {
		t.Fatalf("expected refreshed TTL, got %v", ttl)
	}

	if err := store.Delete(ctx, "k", "missing"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRedisDeleteNoKeys(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Delete(context.Background()); err != nil {
		t.Fatalf("expected nil for empty delete, got %v", err)
	}
}

func TestRedisTTLRemainingMissing(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.TTLRemaining(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisCheckAndIncrementCap(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		allowed, count, _, err := store.CheckAndIncrement(ctx, "cnt", 3, time.Hour)
		if err != nil {
			t.Fatalf("CheckAndIncrement %d failed: %v", i, err)
		}
		if !allowed {
			t.Fatalf("expected call %d to be allowed", i)
		}
		if count != i {
			t.Fatalf("expected count %d, got %d", i, count)
		}
	}

	allowed, count, remaining, err := store.CheckAndIncrement(ctx, "cnt", 3, time.Hour)
	if err != nil {
		t.Fatalf("CheckAndIncrement failed: %v", err)
	}
	if allowed {
		t.Fatal("expected denial at cap")
	}
	if count != 3 {
		t.Fatalf("expected count to stay at 3, got %d", count)
	}
	if remaining <= 0 || remaining > time.Hour {
		t.Fatalf("expected remaining TTL within the window, got %v", remaining)
	}
}

func TestRedisCheckAndIncrementFixedWindow(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if _, _, _, err := store.CheckAndIncrement(ctx, "cnt", 3, time.Minute); err != nil {
		t.Fatalf("CheckAndIncrement failed: %v", err)
	}

	mr.FastForward(30 * time.Second)

	// Later increments must not refresh the TTL set by the first one.
	_, _, remaining, err := store.CheckAndIncrement(ctx, "cnt", 3, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndIncrement failed: %v", err)
	}
	if remaining > 30*time.Second {
		t.Fatalf("expected window to keep its original deadline, got %v", remaining)
	}

	mr.FastForward(31 * time.Second)

	// Window expired, counter restarts from one.
	_, count, _, err := store.CheckAndIncrement(ctx, "cnt", 3, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndIncrement failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected restarted counter at 1, got %d", count)
	}
}

func TestRedisCheckAndIncrementConcurrent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	const workers = 32
	const cap = 5

	var allowedTotal atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			allowed, count, _, err := store.CheckAndIncrement(ctx, "cnt", cap, time.Hour)
			if err != nil {
				t.Errorf("CheckAndIncrement failed: %v", err)
				return
			}
			if count > cap {
				t.Errorf("counter overshot cap: %d", count)
			}
			if allowed {
				allowedTotal.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := allowedTotal.Load(); got != cap {
		t.Fatalf("expected exactly %d allowed increments, got %d", cap, got)
	}
}

func TestRedisUnavailable(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	mr.Close()

	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from Get, got %v", err)
	}
	if err := store.SetWithTTL(ctx, "k", "v", time.Minute); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from SetWithTTL, got %v", err)
	}
	if _, _, _, err := store.CheckAndIncrement(ctx, "k", 1, time.Minute); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from CheckAndIncrement, got %v", err)
	}
}
