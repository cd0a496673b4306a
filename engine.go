package phoneAuth

import (
	"context"
	"fmt"
	"time"

	"github.com/MrEthical07/phoneAuth/internal/kv"
	"github.com/MrEthical07/phoneAuth/internal/limiters"
	"github.com/MrEthical07/phoneAuth/internal/stores"
	"github.com/google/uuid"
)

// Engine defines a public type used by phoneAuth APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// The engine keeps no per-phone state in memory: every durable fact
// lives in the injected [kv.Store], so any number of engine instances
// may serve the same phones concurrently.
type Engine struct {
	config         Config
	store          kv.Store
	requestLimiter *limiters.RequestLimiter
	failures       *limiters.FailureCounter
	lockout        *limiters.LockoutGuard
	challenges     *stores.ChallengeStore
	generator      CodeGenerator
	audit          *auditDispatcher
	delivery       *deliveryDispatcher
	metrics        *Metrics
}

// Close describes the close operation and its observable behavior.
//
// Close drains and stops the audit and delivery dispatchers. It does
// not close the store or the Redis client; the composition root owns
// those.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.delivery != nil {
		e.delivery.Close()
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// DeliveryDropped describes the deliverydropped operation and its observable behavior.
func (e *Engine) DeliveryDropped() uint64 {
	if e == nil || e.delivery == nil {
		return 0
	}
	return e.delivery.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) observeLatency(start time.Time) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(MetricRequestLatency, time.Since(start))
}

// storeFailure classifies a store round-trip error as an infrastructure
// failure. It must never be collapsed into a business outcome: a Redis
// outage reported as "rate limited" would send users away for an hour
// over a deploy hiccup.
func (e *Engine) storeFailure(err error) error {
	e.metricInc(MetricStoreError)
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func (e *Engine) emitAudit(ctx context.Context, eventType, phone string, success bool, outcome Outcome, metadata map[string]string) {
	if e == nil || e.audit == nil {
		return
	}
	e.audit.Emit(ctx, AuditEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now(),
		EventType: eventType,
		Phone:     phone,
		Success:   success,
		Outcome:   outcomeString(outcome),
		Metadata:  metadata,
	})
}

func outcomeString(o Outcome) string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeLockedOut:
		return "locked_out"
	case OutcomeChallengeMissing:
		return "challenge_missing"
	case OutcomeInvalidCode:
		return "invalid_code"
	default:
		return "unknown"
	}
}

// ceilMinutes rounds a remaining duration up to whole minutes, with a
// floor of one so user-facing messages never promise "0 minutes" while
// a window is still active.
func ceilMinutes(d time.Duration) int {
	if d <= 0 {
		return 1
	}
	minutes := int((d + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		return 1
	}
	return minutes
}
