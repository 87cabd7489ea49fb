package usagereset

import "time"

const (
	WorkflowName  = "usage_reset"
	ActivityReset = "usage_reset_sweep"
	// WorkflowID is fixed so only one cron chain exists per namespace.
	WorkflowID = "usage-reset-cron"
)

type Result struct {
	Reset int64     `json:"reset"`
	At    time.Time `json:"at"`
}
