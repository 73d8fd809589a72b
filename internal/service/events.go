package service

import (
	"context"
	"time"

	"pos-service/pkg/notify"

	"go.uber.org/zap"
)

// publishStockEvents dispatches inventory-changed events as fire-and-forget
// background work, after the owning transaction has committed. Failures are
// logged and dropped; delivery carries no ordering guarantee relative to the
// HTTP response.
func publishStockEvents(log *zap.Logger, notifier notify.Notifier, events []notify.StockEvent) {
	if len(events) == 0 {
		return
	}
	go func(events []notify.StockEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := notifier.Publish(ctx, events); err != nil {
			log.Warn("failed to publish stock events", zap.Error(err))
		}
	}(events)
}
