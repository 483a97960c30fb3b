package notify

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecomjrm/storefront-api/internal/lock"
)

const dispatchLockKey = "lock:webhook-dispatch"

// DeliveryWorker drains due webhook deliveries on an interval. A distributed
// lock keeps concurrent worker instances from double-sending.
type DeliveryWorker struct {
	Dispatcher *Dispatcher
	Locker     lock.Locker
	LockTTL    time.Duration
	Interval   time.Duration
	Batch      int32
	Log        zerolog.Logger
}

// Run polls for due deliveries until the context is cancelled.
func (w DeliveryWorker) Run(ctx context.Context) error {
	if w.Dispatcher == nil {
		return errors.New("webhook worker: dispatcher not configured")
	}
	interval := w.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Tick(ctx); err != nil && !errors.Is(err, context.Canceled) {
				w.Log.Error().Err(err).Msg("webhook dispatch tick failed")
			}
		}
	}
}

// Tick runs a single locked dispatch pass.
func (w DeliveryWorker) Tick(ctx context.Context) error {
	ttl := w.LockTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	batch := w.Batch
	if batch <= 0 {
		batch = 20
	}
	if w.Locker.R == nil {
		return w.Dispatcher.WorkOnce(ctx, batch)
	}
	return w.Locker.WithLock(ctx, dispatchLockKey, ttl, func(ctx context.Context) error {
		return w.Dispatcher.WorkOnce(ctx, batch)
	})
}
