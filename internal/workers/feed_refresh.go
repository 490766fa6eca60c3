package workers

import (
	"condo-package-service/internal/services"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// FeedRefreshWorker re-warms the recent-deliveries read model on an
// interval, so the scan screen's feed stays fresh between deliveries.
type FeedRefreshWorker struct {
	feed   *services.FeedService
	logger *zap.Logger
	every  time.Duration
	busy   atomic.Bool
}

func NewFeedRefreshWorker(feed *services.FeedService, logger *zap.Logger, every time.Duration) *FeedRefreshWorker {
	return &FeedRefreshWorker{feed: feed, logger: logger, every: every}
}

func (w *FeedRefreshWorker) Schedule() string {
	return fmt.Sprintf("@every %s", w.every)
}

func (w *FeedRefreshWorker) Ready(time.Time) bool {
	return !w.busy.Load()
}

func (w *FeedRefreshWorker) Execute() {
	w.busy.Store(true)
	defer w.busy.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), w.every)
	defer cancel()

	if _, err := w.feed.Refresh(ctx); err != nil {
		w.logger.Warn("feed refresh failed", zap.Error(err))
		return
	}

	w.logger.Debug("feed refreshed")
}
