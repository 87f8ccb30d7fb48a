package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/mimiclabs/mimic/analytics"
	"github.com/mimiclabs/mimic/automation"
	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/executor"
	"github.com/mimiclabs/mimic/logger"
	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/persistence"
	"github.com/mimiclabs/mimic/verify"
	"go.uber.org/zap"
)

// ExecutionService runs stored workflows one at a time, updates run
// statistics and appends to the execution log. The executor for the
// in-flight run is kept so pause/stop requests can reach it.
type ExecutionService struct {
	conf      config.AutomationConfig
	workflows persistence.WorkflowDao
	logs      persistence.ExecutionLogDao
	desktop   automation.DesktopDriver
	browser   automation.BrowserDriver
	files     automation.FileDriver
	verifier  verify.Verifier
	collector *analytics.StepCollector

	runMu   sync.Mutex
	current *executor.Executor
	curMu   sync.Mutex
}

func NewExecutionService(conf config.AutomationConfig, workflows persistence.WorkflowDao, logs persistence.ExecutionLogDao,
	desktop automation.DesktopDriver, browser automation.BrowserDriver, files automation.FileDriver,
	verifier verify.Verifier, collector *analytics.StepCollector) *ExecutionService {
	return &ExecutionService{
		conf:      conf,
		workflows: workflows,
		logs:      logs,
		desktop:   desktop,
		browser:   browser,
		files:     files,
		verifier:  verifier,
		collector: collector,
	}
}

// Run executes a stored workflow and always produces a complete result
// when the workflow exists.
func (s *ExecutionService) Run(workflowId string, input map[string]any) (model.ExecutionResult, error) {
	wf, err := s.workflows.Get(workflowId)
	if err != nil {
		return model.ExecutionResult{}, fmt.Errorf("cannot run workflow %s: %w", workflowId, err)
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	exec := executor.New(executor.NewDispatcher(s.desktop, s.browser, s.files), s.verifier, s.collector, s.conf)
	s.setCurrent(exec)
	defer s.setCurrent(nil)

	result := exec.Execute(*wf, input)

	s.recordStats(wf.Id, result)
	if err := s.logs.Append(result); err != nil {
		logger.Error("failed to append execution log", zap.String("workflow", wf.Id), zap.Error(err))
	}
	return result, nil
}

// Pause suspends the in-flight run at the next step boundary.
func (s *ExecutionService) Pause() bool {
	if exec := s.getCurrent(); exec != nil {
		exec.Pause()
		return true
	}
	return false
}

func (s *ExecutionService) Resume() bool {
	if exec := s.getCurrent(); exec != nil {
		exec.Resume()
		return true
	}
	return false
}

func (s *ExecutionService) Stop() bool {
	if exec := s.getCurrent(); exec != nil {
		exec.Stop()
		return true
	}
	return false
}

func (s *ExecutionService) RunState() model.RunState {
	if exec := s.getCurrent(); exec != nil {
		return exec.State()
	}
	return model.RUN_COMPLETED
}

func (s *ExecutionService) History(workflowId string) ([]model.ExecutionResult, error) {
	return s.logs.ListByWorkflow(workflowId)
}

func (s *ExecutionService) recordStats(workflowId string, result model.ExecutionResult) {
	wf, err := s.workflows.Get(workflowId)
	if err != nil {
		return
	}
	wf.TimesRun++
	if result.Success {
		wf.TimesSucceeded++
	}
	now := time.Now()
	wf.LastRun = &now
	if err := s.workflows.Update(*wf); err != nil {
		logger.Error("failed to update workflow stats", zap.String("workflow", workflowId), zap.Error(err))
	}
}

func (s *ExecutionService) setCurrent(exec *executor.Executor) {
	s.curMu.Lock()
	defer s.curMu.Unlock()
	s.current = exec
}

func (s *ExecutionService) getCurrent() *executor.Executor {
	s.curMu.Lock()
	defer s.curMu.Unlock()
	return s.current
}
