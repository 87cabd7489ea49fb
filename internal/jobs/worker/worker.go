package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yungbote/humanizer-backend/internal/observability"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/services"
)

const jobName = "usage_reset"

// Worker sweeps expired usage windows on a ticker. It is the fallback for
// deployments without Temporal and is safe to run on every replica since
// the sweep is idempotent.
type Worker struct {
	log      *logger.Logger
	usage    services.UsageService
	metrics  *observability.Metrics
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWorker(baseLog *logger.Logger, usage services.UsageService, metrics *observability.Metrics, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Worker{
		log:      baseLog.With("component", "UsageResetWorker"),
		usage:    usage,
		metrics:  metrics,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs one sweep right away, then one per interval until Stop or ctx
// cancellation. A second Start is a no-op.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.log.Info("Starting usage reset worker", "interval", w.interval.String())

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.runOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				w.log.Info("Usage reset worker stopped")
				return
			case <-ticker.C:
				w.runOnce(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	w.wg.Wait()
}

func (w *Worker) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.metrics.IncWorkerRun(jobName, "panic")
			w.log.Error("Usage reset panicked", "panic", fmt.Sprint(r))
		}
	}()
	n, err := w.usage.ResetExpired(ctx, w.now())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.metrics.IncWorkerRun(jobName, "error")
		w.log.Warn("Usage reset failed", "error", err)
		return
	}
	w.metrics.IncWorkerRun(jobName, "ok")
	if n > 0 {
		w.log.Debug("Usage reset sweep", "profiles", n)
	}
}
