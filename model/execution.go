package model

import "time"

type RunState int32

const RUN_STARTING RunState = 1
const RUN_RUNNING RunState = 2
const RUN_PAUSED RunState = 3
const RUN_COMPLETED RunState = 4
const RUN_STOPPED RunState = 5
const RUN_FAILED RunState = 6

func (s RunState) String() string {
	switch s {
	case RUN_STARTING:
		return "starting"
	case RUN_RUNNING:
		return "running"
	case RUN_PAUSED:
		return "paused"
	case RUN_COMPLETED:
		return "completed"
	case RUN_STOPPED:
		return "stopped"
	case RUN_FAILED:
		return "failed"
	}
	return "unknown"
}

type StepResult struct {
	StepNumber int        `json:"step_number"`
	ActionType ActionType `json:"action_type"`
	Target     string     `json:"target"`
	Value      string     `json:"value"`
	Success    bool       `json:"success"`
	Skipped    bool       `json:"skipped,omitempty"`
	Error      string     `json:"error,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}

// ExecutionResult is created fresh for every run and appended to the
// execution log once the run ends. It is never mutated afterwards.
type ExecutionResult struct {
	RunId           string       `json:"run_id"`
	WorkflowId      string       `json:"workflow_id"`
	WorkflowName    string       `json:"workflow_name"`
	StartedAt       time.Time    `json:"started_at"`
	CompletedAt     time.Time    `json:"completed_at"`
	Success         bool         `json:"success"`
	StepsCompleted  int          `json:"steps_completed"`
	StepsTotal      int          `json:"steps_total"`
	ExecutionTimeMs int64        `json:"execution_time"`
	Steps           []StepResult `json:"steps"`
	ErrorMessage    string       `json:"error_message,omitempty"`
	Warning         string       `json:"warning,omitempty"`
}
