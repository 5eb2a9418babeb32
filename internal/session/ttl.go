package session

import (
	"context"
	"log/slog"
	"time"
)

// StartTTLWorker runs a background goroutine that periodically sweeps idle
// sessions out of the store. Without it the store grows without bound.
func StartTTLWorker(ctx context.Context, store Store, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		slog.Info("session TTL worker started", "interval", interval, "ttl", ttl)

		for {
			select {
			case <-ticker.C:
				if removed := store.Sweep(ttl); removed > 0 {
					slog.Info("session TTL worker swept idle sessions",
						"removed", removed,
						"remaining", store.Len())
				}
			case <-ctx.Done():
				slog.Info("session TTL worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}
