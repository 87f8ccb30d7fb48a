package model

import "time"

type ActionType string

const ACTION_TYPE_CLICK ActionType = "click"
const ACTION_TYPE_DOUBLE_CLICK ActionType = "double_click"
const ACTION_TYPE_RIGHT_CLICK ActionType = "right_click"
const ACTION_TYPE_TYPE ActionType = "type"
const ACTION_TYPE_PRESS_KEY ActionType = "press_key"
const ACTION_TYPE_HOTKEY ActionType = "hotkey"
const ACTION_TYPE_SCROLL ActionType = "scroll"
const ACTION_TYPE_MOVE_MOUSE ActionType = "move_mouse"
const ACTION_TYPE_LAUNCH_APP ActionType = "launch_app"
const ACTION_TYPE_CLOSE_APP ActionType = "close_app"
const ACTION_TYPE_SWITCH_WINDOW ActionType = "switch_window"
const ACTION_TYPE_NAVIGATE ActionType = "navigate"
const ACTION_TYPE_CLICK_ELEMENT ActionType = "click_element"
const ACTION_TYPE_FILL_FORM ActionType = "fill_form"
const ACTION_TYPE_SELECT_DROPDOWN ActionType = "select_dropdown"
const ACTION_TYPE_OPEN_FILE ActionType = "open_file"
const ACTION_TYPE_SAVE_FILE ActionType = "save_file"
const ACTION_TYPE_MOVE_FILE ActionType = "move_file"
const ACTION_TYPE_RENAME_FILE ActionType = "rename_file"

// Step is one unit of automation. Steps are immutable once the workflow is
// persisted; edits replace the whole step list.
type Step struct {
	StepNumber   int        `json:"step_number"`
	ActionType   ActionType `json:"action_type"`
	Target       string     `json:"target"`
	Value        string     `json:"value"`
	WaitAfterMs  int        `json:"wait_after"`
	Verification string     `json:"verification"`
	// Guard is an optional javascript expression evaluated against the
	// run's data map; the step is skipped when it yields false.
	Guard string `json:"guard,omitempty"`
}

type VariableType string

const VARIABLE_TYPE_AUTO VariableType = "auto"
const VARIABLE_TYPE_USER_INPUT VariableType = "user_input"

type Variable struct {
	Name    string       `json:"name"`
	Type    VariableType `json:"type"`
	Default string       `json:"default"`
}

type Workflow struct {
	Id                      string     `json:"id"`
	Name                    string     `json:"name"`
	Description             string     `json:"description"`
	Category                string     `json:"category"`
	Steps                   []Step     `json:"steps"`
	Variables               []Variable `json:"variables"`
	Triggers                []string   `json:"triggers"`
	Confidence              float64    `json:"confidence"`
	PatternConfidence       float64    `json:"pattern_confidence,omitempty"`
	SessionsUsed            []string   `json:"sessions_used,omitempty"`
	EstimatedTimeManual     string     `json:"estimated_time_manual"`
	EstimatedTimeAuto       string     `json:"estimated_time_auto"`
	EstimatedSavingsSeconds int        `json:"estimated_savings"`
	TimesRun                int        `json:"times_run"`
	TimesSucceeded          int        `json:"times_succeeded"`
	CreatedAt               time.Time  `json:"created_at"`
	LastRun                 *time.Time `json:"last_run,omitempty"`
}

func (w *Workflow) Runnable() bool {
	return len(w.Steps) > 0
}

type WorkflowRunRequest struct {
	Input map[string]any `json:"input"`
}
