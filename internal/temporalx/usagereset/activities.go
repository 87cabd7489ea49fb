package usagereset

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/humanizer-backend/internal/observability"
	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/services"
)

type Activities struct {
	Log     *logger.Logger
	Usage   services.UsageService
	Metrics *observability.Metrics
}

// Reset zeroes every profile whose reset date is at or before now. Running
// it twice for the same instant is harmless because reset dates move forward.
func (a *Activities) Reset(ctx context.Context, now time.Time) (Result, error) {
	if a == nil || a.Usage == nil {
		return Result{}, fmt.Errorf("usagereset: activity not configured")
	}
	n, err := a.Usage.ResetExpired(ctx, now)
	if err != nil {
		a.Metrics.IncWorkerRun(WorkflowName, "error")
		return Result{}, err
	}
	a.Metrics.IncWorkerRun(WorkflowName, "ok")
	if a.Log != nil {
		a.Log.Debug("Usage reset sweep", "profiles", n, "at", now)
	}
	return Result{Reset: n, At: now.UTC()}, nil
}
