package usagereset

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// Workflow runs one reset sweep. The cron schedule on the start options
// repeats it; each run is a fresh execution with its own history.
func Workflow(ctx workflow.Context) (Result, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    10 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    2 * time.Minute,
			MaximumAttempts:    3,
		},
	})

	var out Result
	err := workflow.ExecuteActivity(ctx, ActivityReset, workflow.Now(ctx)).Get(ctx, &out)
	if err != nil {
		workflow.GetLogger(ctx).Error("Usage reset failed", "error", err)
		return out, err
	}
	workflow.GetLogger(ctx).Info("Usage reset done", "profiles", out.Reset)
	return out, nil
}
