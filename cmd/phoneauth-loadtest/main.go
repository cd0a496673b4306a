// Command phoneauth-loadtest exercises the OTP engine under concurrency
// and reports throughput, latency percentiles, and cap accounting. With
// no -redis-addr it spins up miniredis in-process, so it doubles as a
// quick demonstration that the request cap holds exactly under load.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	phoneAuth "github.com/MrEthical07/phoneAuth"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		phones      = flag.Int("phones", 10000, "number of distinct phone identities")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 100000, "request operations to issue")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if *phones <= 0 || *concurrency <= 0 || *ops <= 0 {
		log.Fatal("phones, concurrency, and ops must be > 0")
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			log.WithError(err).Fatal("failed to start miniredis")
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		log.WithField("addr", addr).Info("using miniredis")
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		log.WithField("addr", addr).Info("using redis")
	}
	defer cleanup()

	cfg := phoneAuth.DefaultConfig()

	engine, err := phoneAuth.New().
		WithConfig(cfg).
		WithRedis(client).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		log.WithError(err).Fatal("engine build failed")
	}
	defer engine.Close()

	var (
		wg          sync.WaitGroup
		cursor      int64
		issued      int64
		rateLimited int64
		failures    int64
		mu          sync.Mutex
		latencies   = make([]time.Duration, 0, *ops)
	)

	start := time.Now()
	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= *ops {
					return
				}
				phone := fmt.Sprintf("+1555%07d", i%*phones)

				opStart := time.Now()
				res, err := engine.RequestOtp(ctx, phone)
				elapsed := time.Since(opStart)

				mu.Lock()
				latencies = append(latencies, elapsed)
				mu.Unlock()

				switch {
				case err != nil:
					atomic.AddInt64(&failures, 1)
				case res.Success:
					atomic.AddInt64(&issued, 1)
				default:
					atomic.AddInt64(&rateLimited, 1)
				}
			}
		}()
	}
	wg.Wait()
	total := time.Since(start)

	sort.Slice(latencies, func(a, b int) bool { return latencies[a] < latencies[b] })

	expectedIssued := int64(*phones) * int64(cfg.RequestLimit.MaxRequests)
	if int64(*ops) < expectedIssued {
		expectedIssued = int64(*ops)
	}

	log.WithFields(logrus.Fields{
		"ops":        *ops,
		"elapsed":    total.Round(time.Millisecond).String(),
		"throughput": fmt.Sprintf("%.0f op/s", float64(*ops)/total.Seconds()),
	}).Info("request phase done")
	log.WithFields(logrus.Fields{
		"issued":          issued,
		"expected_issued": expectedIssued,
		"rate_limited":    rateLimited,
		"errors":          failures,
	}).Info("cap accounting")
	log.WithFields(logrus.Fields{
		"p50": percentile(latencies, 0.50).String(),
		"p95": percentile(latencies, 0.95).String(),
		"p99": percentile(latencies, 0.99).String(),
	}).Info("latency")

	if issued != expectedIssued {
		log.WithFields(logrus.Fields{
			"issued":   issued,
			"expected": expectedIssued,
		}).Error("request cap violated")
		os.Exit(1)
	}
	log.Info("request cap held exactly")
}

func percentile(sorted []time.Duration, q float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * q)
	return sorted[idx]
}
