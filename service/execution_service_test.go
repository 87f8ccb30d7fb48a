package service

import (
	"testing"
	"time"

	"github.com/mimiclabs/mimic/automation"
	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/persistence/inmem"
	"github.com/mimiclabs/mimic/verify"
	"github.com/stretchr/testify/require"
)

func newTestExecutionService() (*ExecutionService, *inmem.InMemWorkflowDao, *inmem.InMemExecutionLogDao) {
	workflows := inmem.NewInMemWorkflowDao()
	logs := inmem.NewInMemExecutionLogDao()
	svc := NewExecutionService(config.Default().Automation, workflows, logs,
		automation.NewHeadlessDesktop(time.Second), automation.HeadlessBrowser{}, automation.LocalFiles{},
		verify.NoopVerifier{}, nil)
	return svc, workflows, logs
}

func TestRunUpdatesStatsAndLog(t *testing.T) {
	svc, workflows, logs := newTestExecutionService()
	wf := model.Workflow{
		Name: "small run",
		Steps: []model.Step{
			{StepNumber: 1, ActionType: model.ACTION_TYPE_CLICK, Target: "10,10"},
			{StepNumber: 2, ActionType: model.ACTION_TYPE_TYPE, Value: "hello"},
		},
	}
	require.NoError(t, workflows.Save(&wf))

	result, err := svc.Run(wf.Id, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, 2, result.StepsCompleted)

	loaded, err := workflows.Get(wf.Id)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.TimesRun)
	require.Equal(t, 1, loaded.TimesSucceeded)
	require.NotNil(t, loaded.LastRun)

	history, err := logs.ListByWorkflow(wf.Id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, result.RunId, history[0].RunId)
}

func TestRunFailureCountsRunButNotSuccess(t *testing.T) {
	svc, workflows, _ := newTestExecutionService()
	wf := model.Workflow{
		Name: "bad action",
		Steps: []model.Step{
			{StepNumber: 1, ActionType: "teleport", Target: "nowhere"},
		},
	}
	require.NoError(t, workflows.Save(&wf))

	result, err := svc.Run(wf.Id, nil)
	require.NoError(t, err)
	require.False(t, result.Success)

	loaded, err := workflows.Get(wf.Id)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.TimesRun)
	require.Equal(t, 0, loaded.TimesSucceeded)
}

func TestRunUnknownWorkflow(t *testing.T) {
	svc, _, _ := newTestExecutionService()
	_, err := svc.Run("missing", nil)
	require.Error(t, err)
}

func TestControlsWithNoRunInProgress(t *testing.T) {
	svc, _, _ := newTestExecutionService()
	require.False(t, svc.Pause())
	require.False(t, svc.Resume())
	require.False(t, svc.Stop())
	require.Equal(t, model.RUN_COMPLETED, svc.RunState())
}
