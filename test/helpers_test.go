//go:build integration
// +build integration

package test

import (
	"testing"
	"time"

	phoneAuth "github.com/MrEthical07/phoneAuth"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newIntegrationEngine(t *testing.T, notifier phoneAuth.Notifier) (*phoneAuth.Engine, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	builder := phoneAuth.New().WithRedis(rdb)
	if notifier != nil {
		builder = builder.WithNotifier(notifier)
	}

	engine, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine, mr
}

func awaitDelivery(t *testing.T, events <-chan phoneAuth.DeliveryEvent) phoneAuth.DeliveryEvent {
	t.Helper()

	select {
	case event := <-events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery event")
		return phoneAuth.DeliveryEvent{}
	}
}
