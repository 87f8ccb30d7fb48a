package generator

import (
	"context"
	"fmt"
	"testing"

	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/model"
	"github.com/stretchr/testify/require"
)

type stubTextGen struct {
	response string
	err      error
}

func (s *stubTextGen) Generate(ctx context.Context, prompt string, systemPrompt string) (string, error) {
	return s.response, s.err
}

func (s *stubTextGen) Available(ctx context.Context) bool {
	return s.err == nil
}

func sampleTimeline() model.Timeline {
	return model.Timeline{
		SessionId: "s1",
		Entries: []model.TimelineEntry{
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_MOUSE_PRESS, Data: map[string]any{"x": float64(10), "y": float64(20)}},
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_KEY_PRESS, Data: map[string]any{"key": "a"}},
			{Type: model.ENTRY_TYPE_OCR, Text: "Save As"},
		},
	}
}

func TestGenerateFromValidResponse(t *testing.T) {
	response := "```json\n" + `{
		"workflow_name": "Enter invoice data",
		"description": "Types invoice values into a spreadsheet",
		"confidence": 0.85,
		"category": "excel",
		"estimated_time_manual": "2 minutes",
		"estimated_time_auto": "30 seconds",
		"steps": [
			{"step_number": 7, "action_type": "click", "target": "100,200", "wait_after": 250, "verification": "screenshot_comparison"},
			{"action_type": "type", "value": "42"}
		],
		"variables": [{"name": "invoice_id", "type": "user_input", "default": "0000"}],
		"triggers": ["manual", "scheduled"]
	}` + "\n```"

	gen := NewGenerator(&stubTextGen{response: response}, config.Default().Generation)
	wf := gen.Generate(context.Background(), sampleTimeline())

	require.Equal(t, "Enter invoice data", wf.Name)
	require.Equal(t, 0.85, wf.Confidence)
	require.Equal(t, "excel", wf.Category)
	require.Len(t, wf.Steps, 2)
	// step numbers are renumbered densely from 1 regardless of input
	require.Equal(t, 1, wf.Steps[0].StepNumber)
	require.Equal(t, 2, wf.Steps[1].StepNumber)
	require.Equal(t, 250, wf.Steps[0].WaitAfterMs)
	require.Equal(t, defaultWaitMs, wf.Steps[1].WaitAfterMs)
	require.Equal(t, model.ACTION_TYPE_TYPE, wf.Steps[1].ActionType)
	require.Equal(t, 90, wf.EstimatedSavingsSeconds)
	require.Equal(t, []string{"manual", "scheduled"}, wf.Triggers)
	require.Equal(t, []model.Variable{{Name: "invoice_id", Type: model.VARIABLE_TYPE_USER_INPUT, Default: "0000"}}, wf.Variables)
}

func TestGenerateFallbackOnGeneratorError(t *testing.T) {
	gen := NewGenerator(&stubTextGen{err: fmt.Errorf("connection refused")}, config.Default().Generation)
	wf := gen.Generate(context.Background(), sampleTimeline())

	require.NotEmpty(t, wf.Steps)
	require.LessOrEqual(t, wf.Confidence, 0.5)
	require.Equal(t, model.ACTION_TYPE_CLICK, wf.Steps[0].ActionType)
	require.Equal(t, "10,20", wf.Steps[0].Target)
	require.Equal(t, model.ACTION_TYPE_TYPE, wf.Steps[1].ActionType)
	require.Equal(t, "a", wf.Steps[1].Value)
}

func TestGenerateFallbackOnMalformedResponse(t *testing.T) {
	gen := NewGenerator(&stubTextGen{response: "I am unable to help with that."}, config.Default().Generation)
	wf := gen.Generate(context.Background(), sampleTimeline())

	require.NotEmpty(t, wf.Steps)
	require.LessOrEqual(t, wf.Confidence, 0.5)
}

func TestGenerateFallbackOnMissingRequiredFields(t *testing.T) {
	// parses but has no workflow_name
	gen := NewGenerator(&stubTextGen{response: `{"description": "x", "confidence": 0.9, "steps": []}`}, config.Default().Generation)
	wf := gen.Generate(context.Background(), sampleTimeline())
	require.Equal(t, "Recorded Workflow", wf.Name)

	// confidence has the wrong type
	gen = NewGenerator(&stubTextGen{response: `{"workflow_name": "n", "description": "x", "confidence": "high", "steps": []}`}, config.Default().Generation)
	wf = gen.Generate(context.Background(), sampleTimeline())
	require.Equal(t, "Recorded Workflow", wf.Name)
}

func TestGenerateFallbackOnUnusableSteps(t *testing.T) {
	// well-formed response but nothing executable in it
	gen := NewGenerator(&stubTextGen{response: `{"workflow_name": "n", "description": "d", "confidence": 0.9, "steps": []}`}, config.Default().Generation)
	wf := gen.Generate(context.Background(), sampleTimeline())
	require.Equal(t, "Recorded Workflow", wf.Name)
	require.NotEmpty(t, wf.Steps)

	// steps present but none of them are objects
	gen = NewGenerator(&stubTextGen{response: `{"workflow_name": "n", "description": "d", "confidence": 0.9, "steps": ["click", "type"]}`}, config.Default().Generation)
	wf = gen.Generate(context.Background(), sampleTimeline())
	require.Equal(t, "Recorded Workflow", wf.Name)
	require.NotEmpty(t, wf.Steps)
}

func TestGenerateAcceptsDetectedStepsKey(t *testing.T) {
	response := `{"workflow_name": "n", "description": "d", "confidence": 0.7,
		"detected_steps": [{"action_type": "press_key", "target": "enter"}]}`
	gen := NewGenerator(&stubTextGen{response: response}, config.Default().Generation)
	wf := gen.Generate(context.Background(), sampleTimeline())

	require.Len(t, wf.Steps, 1)
	require.Equal(t, model.ACTION_TYPE_PRESS_KEY, wf.Steps[0].ActionType)
}
