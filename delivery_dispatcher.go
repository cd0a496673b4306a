package phoneAuth

import (
	"context"
	"sync"
	"sync/atomic"
)

// deliveryDispatcher decouples the notifier from the request path.
// RequestOtp hands the event to a buffered channel and returns; a
// single worker goroutine drains it into the Notifier. A slow or dead
// notifier therefore never blocks or fails an accepted request, which
// is exactly the fire-and-forget contract of otp.requested.
type deliveryDispatcher struct {
	cfg       DeliveryConfig
	notifier  Notifier
	ch        chan DeliveryEvent
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

func newDeliveryDispatcher(cfg DeliveryConfig, notifier Notifier) *deliveryDispatcher {
	if notifier == nil {
		notifier = NoOpNotifier{}
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}

	d := &deliveryDispatcher{
		cfg:      cfg,
		notifier: notifier,
		ch:       make(chan DeliveryEvent, cfg.BufferSize),
		done:     make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *deliveryDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case event := <-d.ch:
			d.notifier.Deliver(context.Background(), event)
		case <-d.done:
			for {
				select {
				case event := <-d.ch:
					d.notifier.Deliver(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}

// Emit describes the emit operation and its observable behavior.
//
// Emit may return an error when input validation, dependency calls, or security checks fail.
// Emit does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (d *deliveryDispatcher) Emit(ctx context.Context, event DeliveryEvent) {
	if d == nil || d.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.cfg.DropIfFull {
		select {
		case d.ch <- event:
		case <-d.done:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.ch <- event:
	case <-ctx.Done():
	case <-d.done:
	}
}

// Close describes the close operation and its observable behavior.
func (d *deliveryDispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

// Dropped describes the dropped operation and its observable behavior.
func (d *deliveryDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
