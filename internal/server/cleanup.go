package server

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/logging"
)

type cleanupTask struct {
	name string
	run  func(ctx context.Context) (int64, error)
}

// runCleanup runs every task once per interval until ctx is done. A failing
// task is logged and retried on the next tick.
func runCleanup(ctx context.Context, interval time.Duration, logger logging.Logger, tasks []cleanupTask) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, t := range tasks {
				n, err := t.run(ctx)
				if err != nil {
					logger.Warn(ctx, "cleanup failed", "task", t.name, "error", err)
					continue
				}
				if n > 0 {
					logger.Info(ctx, "expired records removed", "task", t.name, "count", n)
				}
			}
		}
	}
}
