package executor

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mimiclabs/mimic/analytics"
	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/logger"
	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/util"
	"github.com/mimiclabs/mimic/verify"
	"go.uber.org/zap"
)

// Executor replays a stored workflow step by step and tracks exactly one
// run; create a fresh Executor per run. Pause and stop flags are the only
// state shared with the invoking goroutine; they are observed with atomic
// reads at every step boundary and while paused. Cancellation is
// cooperative: a dispatched action is never interrupted mid-flight.
type Executor struct {
	handlers  *dispatcher
	verifier  verify.Verifier
	collector *analytics.StepCollector
	conf      config.AutomationConfig

	paused  atomic.Bool
	stopped atomic.Bool
	state   atomic.Int32
}

func New(handlers *dispatcher, verifier verify.Verifier, collector *analytics.StepCollector, conf config.AutomationConfig) *Executor {
	e := &Executor{
		handlers:  handlers,
		verifier:  verifier,
		collector: collector,
		conf:      conf,
	}
	e.state.Store(int32(model.RUN_STARTING))
	return e
}

func (e *Executor) Pause() {
	e.paused.Store(true)
}

func (e *Executor) Resume() {
	e.paused.Store(false)
}

func (e *Executor) Stop() {
	e.stopped.Store(true)
}

func (e *Executor) State() model.RunState {
	return model.RunState(e.state.Load())
}

// Execute replays the workflow and always returns a complete result, even
// for a zero-step or immediately-stopped run.
func (e *Executor) Execute(wf model.Workflow, input map[string]any) model.ExecutionResult {
	result := model.ExecutionResult{
		RunId:        uuid.New().String(),
		WorkflowId:   wf.Id,
		WorkflowName: wf.Name,
		StartedAt:    time.Now(),
		StepsTotal:   len(wf.Steps),
	}
	logger.Info("executing workflow", zap.String("workflow", wf.Id), zap.String("name", wf.Name), zap.Int("steps", len(wf.Steps)))

	if !wf.Runnable() {
		logger.Warn("workflow has no steps", zap.String("workflow", wf.Id))
		result.Success = true
		result.Warning = "workflow has no steps"
		e.state.Store(int32(model.RUN_COMPLETED))
		return e.finish(result)
	}

	data := runData(wf, input)
	e.state.Store(int32(model.RUN_RUNNING))

	for _, step := range wf.Steps {
		if stopped := e.waitWhilePaused(); stopped {
			result.Success = false
			e.state.Store(int32(model.RUN_STOPPED))
			logger.Info("run stopped", zap.String("workflow", wf.Id), zap.Int("at_step", step.StepNumber))
			return e.finish(result)
		}

		stepResult := e.runStep(wf, step, data, result.RunId)
		result.Steps = append(result.Steps, stepResult)

		if !stepResult.Success {
			result.Success = false
			result.ErrorMessage = fmt.Sprintf("step %d failed: %s", step.StepNumber, stepResult.Error)
			e.state.Store(int32(model.RUN_FAILED))
			logger.Error("run failed", zap.String("workflow", wf.Id), zap.Int("step", step.StepNumber), zap.String("reason", stepResult.Error))
			return e.finish(result)
		}
		result.StepsCompleted++
	}

	result.Success = true
	e.state.Store(int32(model.RUN_COMPLETED))
	logger.Info("run completed", zap.String("workflow", wf.Id), zap.Int("steps", result.StepsCompleted))
	return e.finish(result)
}

func (e *Executor) runStep(wf model.Workflow, step model.Step, data map[string]any, runId string) model.StepResult {
	stepResult := model.StepResult{
		StepNumber: step.StepNumber,
		ActionType: step.ActionType,
		Target:     step.Target,
		Value:      step.Value,
		Timestamp:  time.Now(),
	}

	if step.Guard != "" {
		ok, err := EvalGuard(step.Guard, data)
		if err != nil {
			stepResult.Error = fmt.Sprintf("guard evaluation failed: %v", err)
			e.record(wf, step, runId, stepResult.Error)
			return stepResult
		}
		if !ok {
			stepResult.Success = true
			stepResult.Skipped = true
			logger.Debug("step skipped by guard", zap.Int("step", step.StepNumber))
			return stepResult
		}
	}

	target := util.ResolveTokens(data, step.Target)
	value := util.ResolveTokens(data, step.Value)
	stepResult.Target = target
	stepResult.Value = value

	before := e.verifier.CaptureFrame()
	err := e.handlers.Dispatch(step.ActionType, target, value)
	if step.WaitAfterMs > 0 {
		time.Sleep(time.Duration(step.WaitAfterMs) * time.Millisecond)
	}
	after := e.verifier.CaptureFrame()

	if err == nil && step.Verification != "" {
		if !e.verifier.Compare(step.Verification, before, after) {
			err = fmt.Errorf("verification failed: %s", step.Verification)
		}
	}

	if err != nil {
		stepResult.Error = err.Error()
		e.record(wf, step, runId, stepResult.Error)
		return stepResult
	}
	stepResult.Success = true
	e.record(wf, step, runId, "")
	return stepResult
}

// waitWhilePaused polls the pause flag at the step boundary. It reports
// whether a stop was requested, which also ends a paused run.
func (e *Executor) waitWhilePaused() bool {
	for e.paused.Load() && !e.stopped.Load() {
		e.state.Store(int32(model.RUN_PAUSED))
		time.Sleep(time.Duration(e.conf.PausePollMs) * time.Millisecond)
	}
	if e.stopped.Load() {
		return true
	}
	e.state.Store(int32(model.RUN_RUNNING))
	return false
}

func (e *Executor) finish(result model.ExecutionResult) model.ExecutionResult {
	result.CompletedAt = time.Now()
	result.ExecutionTimeMs = result.CompletedAt.Sub(result.StartedAt).Milliseconds()
	return result
}

func (e *Executor) record(wf model.Workflow, step model.Step, runId string, reason string) {
	if e.collector == nil {
		return
	}
	if reason == "" {
		e.collector.RecordStepSuccess(wf.Id, runId, step)
	} else {
		e.collector.RecordStepFailure(wf.Id, runId, step, reason)
	}
}

// runData builds the data map visible to guards and `{$.path}` tokens:
// variable defaults overridden by run input, plus the raw input itself.
func runData(wf model.Workflow, input map[string]any) map[string]any {
	variables := make(map[string]any)
	for _, v := range wf.Variables {
		variables[v.Name] = v.Default
	}
	for k, v := range input {
		variables[k] = v
	}
	if input == nil {
		input = map[string]any{}
	}
	return map[string]any{
		"variables": variables,
		"input":     input,
	}
}
