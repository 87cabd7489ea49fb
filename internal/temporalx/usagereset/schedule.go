package usagereset

import (
	"context"
	"errors"
	"fmt"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	temporalsdkclient "go.temporal.io/sdk/client"

	"github.com/yungbote/humanizer-backend/internal/platform/logger"
)

// EnsureScheduled starts the cron workflow unless it is already running.
// Every API replica calls this at boot, so an existing execution is success.
func EnsureScheduled(ctx context.Context, log *logger.Logger, tc temporalsdkclient.Client, taskQueue, cron string) error {
	if tc == nil {
		return fmt.Errorf("usagereset: temporal client is not configured")
	}
	opts := temporalsdkclient.StartWorkflowOptions{
		ID:                    WorkflowID,
		TaskQueue:             taskQueue,
		CronSchedule:          cron,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		// Surface a running chain as an error instead of silently
		// returning its handle.
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := tc.ExecuteWorkflow(ctx, opts, WorkflowName)
	if err != nil {
		var started *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &started) {
			if log != nil {
				log.Debug("Usage reset cron already scheduled", "workflow_id", WorkflowID)
			}
			return nil
		}
		return fmt.Errorf("schedule usage reset: %w", err)
	}
	if log != nil {
		log.Info("Scheduled usage reset cron", "workflow_id", run.GetID(), "run_id", run.GetRunID(), "cron", cron)
	}
	return nil
}
