package phoneAuth

import (
	"errors"

	"github.com/MrEthical07/phoneAuth/internal/kv"
	"github.com/MrEthical07/phoneAuth/internal/limiters"
	"github.com/MrEthical07/phoneAuth/internal/rate"
	"github.com/MrEthical07/phoneAuth/internal/stores"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by phoneAuth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// The store is always injected here, at the composition root, and
// passed down explicitly. No package-level client exists anywhere in
// the module, which is what lets tests swap in the clock-driven memory
// store.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	store  kv.Store

	generator CodeGenerator
	notifier  Notifier
	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithStore injects a custom [kv.Store], overriding WithRedis. Used to
// run on the in-memory store, or any other backend that honors the
// Store contract.
func (b *Builder) WithStore(store kv.Store) *Builder {
	b.store = store
	return b
}

// WithGenerator describes the withgenerator operation and its observable behavior.
//
// WithGenerator does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithGenerator(gen CodeGenerator) *Builder {
	b.generator = gen
	return b
}

// WithNotifier describes the withnotifier operation and its observable behavior.
//
// WithNotifier does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		if b.redis == nil {
			return nil, errors.New("redis client or store required")
		}
		store = kv.NewRedis(b.redis)
	}

	generator := b.generator
	if generator == nil {
		generator = cryptoGenerator{digits: cfg.OTP.Digits}
	}

	gate := rate.New(store)

	engine := &Engine{
		config: cfg,
		store:  store,
		requestLimiter: limiters.NewRequestLimiter(gate, limiters.RequestConfig{
			MaxRequests: cfg.RequestLimit.MaxRequests,
			Window:      cfg.RequestLimit.Window,
		}),
		failures: limiters.NewFailureCounter(gate, limiters.FailureConfig{
			MaxAttempts: cfg.Verification.MaxFailedAttempts,
			CounterTTL:  cfg.Verification.FailureCounterTTL,
		}),
		lockout: limiters.NewLockoutGuard(store, limiters.LockoutConfig{
			Duration: cfg.Lockout.Duration,
		}),
		challenges: stores.NewChallengeStore(store, cfg.OTP.ChallengeTTL),
		generator:  generator,
		audit:      newAuditDispatcher(cfg.Audit, b.auditSink),
		delivery:   newDeliveryDispatcher(cfg.Delivery, b.notifier),
		metrics:    NewMetrics(cfg.Metrics),
	}

	b.built = true

	return engine, nil
}
