package temporalworker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/activity"
	temporalsdkclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/yungbote/humanizer-backend/internal/observability"
	"github.com/yungbote/humanizer-backend/internal/platform/envutil"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/services"
	"github.com/yungbote/humanizer-backend/internal/temporalx"
	"github.com/yungbote/humanizer-backend/internal/temporalx/usagereset"
)

type Runner struct {
	log     *logger.Logger
	cfg     temporalx.Config
	tc      temporalsdkclient.Client
	usage   services.UsageService
	metrics *observability.Metrics
}

func NewRunner(log *logger.Logger, cfg temporalx.Config, tc temporalsdkclient.Client, usage services.UsageService, metrics *observability.Metrics) (*Runner, error) {
	if tc == nil {
		return nil, fmt.Errorf("temporal client is not configured")
	}
	if usage == nil {
		return nil, fmt.Errorf("temporal worker missing deps")
	}
	return &Runner{
		log:     log.With("component", "TemporalWorker"),
		cfg:     cfg,
		tc:      tc,
		usage:   usage,
		metrics: metrics,
	}, nil
}

// Start polls the task queue until ctx is cancelled and schedules the usage
// reset cron. Start failures are retried with backoff up to
// TEMPORAL_WORKER_START_MAX_WAIT.
func (r *Runner) Start(ctx context.Context) error {
	r.log.Info("Starting Temporal worker", "address", r.cfg.Address, "namespace", r.cfg.Namespace, "task_queue", r.cfg.TaskQueue)

	maxWait := envutil.Duration("TEMPORAL_WORKER_START_MAX_WAIT", 60*time.Second)
	backoff := envutil.Duration("TEMPORAL_WORKER_START_BACKOFF", 250*time.Millisecond)
	backoffMax := envutil.Duration("TEMPORAL_WORKER_START_BACKOFF_MAX", 5*time.Second)
	deadline := time.Now().Add(maxWait)

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		w := r.newWorker()
		startErr := w.Start()
		if startErr == nil {
			go func() {
				<-ctx.Done()
				w.Stop()
			}()
			r.log.Info("Temporal worker started", "task_queue", r.cfg.TaskQueue, "attempts", attempt)
			return usagereset.EnsureScheduled(ctx, r.log, r.tc, r.cfg.TaskQueue, r.cfg.UsageResetCron)
		}
		w.Stop()

		var nfe *serviceerror.NamespaceNotFound
		if errors.As(startErr, &nfe) && r.cfg.AutoRegisterNamespace {
			if err := temporalx.EnsureNamespace(ctx, r.log, r.cfg); err != nil {
				r.log.Warn("Temporal namespace ensure failed", "namespace", r.cfg.Namespace, "error", err)
			}
		}
		if maxWait <= 0 || time.Now().After(deadline) {
			if errors.As(startErr, &nfe) {
				return fmt.Errorf("temporal namespace not found (namespace=%s): %w", r.cfg.Namespace, startErr)
			}
			return startErr
		}
		r.log.Warn("Temporal worker failed to start; retrying", "attempt", attempt, "error", startErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(temporalx.ClampBackoff(backoff, backoffMax, attempt)):
		}
	}
}

func (r *Runner) newWorker() worker.Worker {
	concurrency := max(envutil.Int("WORKER_CONCURRENCY", 2), 1)
	w := worker.New(r.tc, r.cfg.TaskQueue, worker.Options{
		MaxConcurrentActivityExecutionSize:     concurrency,
		MaxConcurrentWorkflowTaskExecutionSize: concurrency,
	})
	Register(w, &usagereset.Activities{Log: r.log, Usage: r.usage, Metrics: r.metrics})
	return w
}

// registry is the subset of worker.Registry that Register needs. The SDK test
// environment satisfies it too.
type registry interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// Register binds the usage reset workflow and activity under their stable
// names.
func Register(w registry, acts *usagereset.Activities) {
	w.RegisterWorkflowWithOptions(usagereset.Workflow, workflow.RegisterOptions{Name: usagereset.WorkflowName})
	w.RegisterActivityWithOptions(acts.Reset, activity.RegisterOptions{Name: usagereset.ActivityReset})
}
