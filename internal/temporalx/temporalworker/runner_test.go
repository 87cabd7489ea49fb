package temporalworker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/services"
	"github.com/yungbote/humanizer-backend/internal/temporalx"
	"github.com/yungbote/humanizer-backend/internal/temporalx/usagereset"
)

type stubUsage struct {
	services.UsageService
	calls int
}

func (s *stubUsage) ResetExpired(context.Context, time.Time) (int64, error) {
	s.calls++
	return 2, nil
}

func TestNewRunnerRequiresDeps(t *testing.T) {
	_, err := NewRunner(logger.Nop(), temporalx.Config{}, nil, &stubUsage{}, nil)
	assert.Error(t, err)
}

func TestRegisterUsesStableNames(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	usage := &stubUsage{}
	Register(env, &usagereset.Activities{Usage: usage})

	env.ExecuteWorkflow(usagereset.WorkflowName)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var out usagereset.Result
	require.NoError(t, env.GetWorkflowResult(&out))
	assert.Equal(t, int64(2), out.Reset)
	assert.Equal(t, 1, usage.calls)
}
