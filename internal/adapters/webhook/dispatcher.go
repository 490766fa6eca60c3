package webhook

import (
	"condo-package-service/internal/ports"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher delivers webhook events without blocking the caller.
// The "we don't care about the result" decision is deliberate: a
// rejected or timed-out notification never reverses a package state
// change, it only shows up in the log.
type Dispatcher struct {
	Notifier ports.WebhookNotifier
	Logger   *zap.Logger
	Timeout  time.Duration

	wg sync.WaitGroup
}

func NewDispatcher(notifier ports.WebhookNotifier, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		Notifier: notifier,
		Logger:   logger,
		Timeout:  15 * time.Second,
	}
}

// Dispatch hands the event to a background goroutine and returns
// immediately. The delivery may still be in flight when the caller
// reports success to its own client.
func (d *Dispatcher) Dispatch(event ports.WebhookEvent) {
	if d.Notifier == nil {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.Timeout)
		defer cancel()

		if err := d.Notifier.Notify(ctx, event); err != nil {
			d.Logger.Warn("webhook dispatch failed",
				zap.String("event", event.Kind),
				zap.String("package_id", event.PackageID),
				zap.Error(err),
			)
			return
		}

		d.Logger.Debug("webhook dispatched",
			zap.String("event", event.Kind),
			zap.String("package_id", event.PackageID),
		)
	}()
}

// Wait blocks until in-flight dispatches finish. Used on shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
