package rate

import (
	"context"
	"testing"
	"time"

	"github.com/MrEthical07/phoneAuth/internal/kv"
)

func TestGateCheckAndIncrement(t *testing.T) {
	gate := New(kv.NewMemory())
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		allowed, count, _, err := gate.CheckAndIncrement(ctx, "k", 2, time.Minute)
		if err != nil {
			t.Fatalf("CheckAndIncrement failed: %v", err)
		}
		if !allowed || count != i {
			t.Fatalf("expected allowed count %d, got allowed=%v count=%d", i, allowed, count)
		}
	}

	allowed, _, _, err := gate.CheckAndIncrement(ctx, "k", 2, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndIncrement failed: %v", err)
	}
	if allowed {
		t.Fatal("expected denial at cap")
	}
}

func TestGateReset(t *testing.T) {
	gate := New(kv.NewMemory())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, _, _, err := gate.CheckAndIncrement(ctx, "k", 2, time.Minute); err != nil {
			t.Fatalf("CheckAndIncrement failed: %v", err)
		}
	}

	if err := gate.Reset(ctx, "k"); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	allowed, count, _, err := gate.CheckAndIncrement(ctx, "k", 2, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndIncrement failed: %v", err)
	}
	if !allowed || count != 1 {
		t.Fatalf("expected fresh counter after reset, got allowed=%v count=%d", allowed, count)
	}
}

func TestGateKeysIndependent(t *testing.T) {
	gate := New(kv.NewMemory())
	ctx := context.Background()

	if _, _, _, err := gate.CheckAndIncrement(ctx, "a", 1, time.Minute); err != nil {
		t.Fatalf("CheckAndIncrement failed: %v", err)
	}

	allowed, count, _, err := gate.CheckAndIncrement(ctx, "b", 1, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndIncrement failed: %v", err)
	}
	if !allowed || count != 1 {
		t.Fatalf("expected independent counter for second key, got allowed=%v count=%d", allowed, count)
	}
}
