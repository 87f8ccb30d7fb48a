package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/llm"
	"github.com/mimiclabs/mimic/logger"
	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/sequence"
	"go.uber.org/zap"
)

const fallbackConfidence = 0.3
const defaultWaitMs = 500

// Generator turns a representative timeline into a structured workflow. The
// text generator's output is treated as untrusted input: it is extracted,
// validated and repaired, and on any failure the generator synthesizes a
// deterministic workflow from the raw events so the caller always gets
// something runnable.
type Generator struct {
	textGen llm.TextGenerator
	conf    config.GenerationConfig
}

func NewGenerator(textGen llm.TextGenerator, conf config.GenerationConfig) *Generator {
	return &Generator{textGen: textGen, conf: conf}
}

func (g *Generator) Generate(ctx context.Context, t model.Timeline) model.Workflow {
	prompt := BuildPrompt(t, g.conf) + "\n\nIMPORTANT: Respond with valid JSON only. No markdown, no code blocks, just pure JSON."

	response, err := g.textGen.Generate(ctx, prompt, systemPrompt)
	if err != nil {
		logger.Warn("text generator unavailable, synthesizing fallback workflow", zap.String("session", t.SessionId), zap.Error(err))
		return Fallback(t)
	}

	raw, err := ExtractJSON(response)
	if err != nil {
		logger.Warn("unparseable generator response, synthesizing fallback workflow", zap.String("session", t.SessionId), zap.Error(err))
		return Fallback(t)
	}

	wf, err := repair(raw)
	if err != nil {
		logger.Warn("generator response failed validation, synthesizing fallback workflow", zap.String("session", t.SessionId), zap.Error(err))
		return Fallback(t)
	}
	logger.Info("workflow generated", zap.String("session", t.SessionId), zap.String("name", wf.Name), zap.Int("steps", len(wf.Steps)))
	return wf
}

// repair builds a typed workflow from the decoded response, coercing loose
// field types and renumbering steps densely from 1. Missing or wrong-typed
// required fields are an error, which sends the caller to the fallback.
func repair(raw map[string]any) (model.Workflow, error) {
	name, ok := raw["workflow_name"].(string)
	if !ok || name == "" {
		return model.Workflow{}, fmt.Errorf("missing workflow_name")
	}
	description, ok := raw["description"].(string)
	if !ok {
		return model.Workflow{}, fmt.Errorf("missing description")
	}
	confidence, ok := raw["confidence"].(float64)
	if !ok {
		return model.Workflow{}, fmt.Errorf("missing confidence")
	}
	rawSteps, ok := raw["steps"].([]any)
	if !ok {
		rawSteps, ok = raw["detected_steps"].([]any)
	}
	if !ok {
		return model.Workflow{}, fmt.Errorf("missing steps")
	}

	wf := model.Workflow{
		Name:                name,
		Description:         description,
		Confidence:          confidence,
		Category:            coerceString(raw["category"], "general"),
		EstimatedTimeManual: coerceString(raw["estimated_time_manual"], "0 seconds"),
		EstimatedTimeAuto:   coerceString(raw["estimated_time_auto"], "0 seconds"),
		Triggers:            coerceStrings(raw["triggers"], []string{"manual"}),
		Variables:           coerceVariables(raw["variables"]),
		CreatedAt:           time.Now(),
	}

	for i, rawStep := range rawSteps {
		stepMap, ok := rawStep.(map[string]any)
		if !ok {
			continue
		}
		wf.Steps = append(wf.Steps, model.Step{
			StepNumber:   i + 1,
			ActionType:   model.ActionType(coerceString(stepMap["action_type"], "unknown")),
			Target:       coerceString(stepMap["target"], ""),
			Value:        coerceString(stepMap["value"], ""),
			WaitAfterMs:  coerceInt(stepMap["wait_after"], defaultWaitMs),
			Verification: coerceString(stepMap["verification"], ""),
			Guard:        coerceString(stepMap["guard"], ""),
		})
	}
	if len(wf.Steps) == 0 {
		return model.Workflow{}, fmt.Errorf("no usable steps")
	}
	renumber(wf.Steps)

	manual := ParseTimeSeconds(wf.EstimatedTimeManual)
	auto := ParseTimeSeconds(wf.EstimatedTimeAuto)
	if manual > auto {
		wf.EstimatedSavingsSeconds = manual - auto
	}
	return wf, nil
}

// Fallback synthesizes a minimal deterministic workflow directly from the
// timeline's raw click and keypress events, one step per event.
func Fallback(t model.Timeline) model.Workflow {
	wf := model.Workflow{
		Name:                "Recorded Workflow",
		Description:         "Workflow captured from user actions (text generator unavailable for analysis)",
		Confidence:          fallbackConfidence,
		Category:            "general",
		EstimatedTimeManual: "60 seconds",
		EstimatedTimeAuto:   "30 seconds",
		Triggers:            []string{"manual"},
		CreatedAt:           time.Now(),
	}
	for _, entry := range t.Entries {
		if entry.Type != model.ENTRY_TYPE_EVENT {
			continue
		}
		step, ok := fallbackStep(entry)
		if !ok {
			continue
		}
		step.StepNumber = len(wf.Steps) + 1
		wf.Steps = append(wf.Steps, step)
	}
	wf.EstimatedSavingsSeconds = ParseTimeSeconds(wf.EstimatedTimeManual) - ParseTimeSeconds(wf.EstimatedTimeAuto)
	return wf
}

func fallbackStep(entry model.TimelineEntry) (model.Step, bool) {
	step := model.Step{
		WaitAfterMs:  defaultWaitMs,
		Verification: "screenshot_comparison",
	}
	switch entry.EventType {
	case model.EVENT_TYPE_MOUSE_PRESS:
		step.ActionType = model.ACTION_TYPE_CLICK
		step.Target = coordTarget(entry.Data)
	case model.EVENT_TYPE_KEY_PRESS:
		step.ActionType = model.ACTION_TYPE_TYPE
		step.Value = coerceString(entry.Data["key"], "")
	case model.EVENT_TYPE_WINDOW_CHANGE:
		step.ActionType = model.ACTION_TYPE_SWITCH_WINDOW
		step.Target = coerceString(entry.Data["window_title"], "")
	default:
		return model.Step{}, false
	}
	return step, true
}

func coordTarget(data map[string]any) string {
	token := sequence.Token(model.TimelineEntry{
		Type:      model.ENTRY_TYPE_EVENT,
		EventType: model.EVENT_TYPE_MOUSE_PRESS,
		Data:      data,
	})
	// click(x,y) -> "x,y"
	return token[len("click(") : len(token)-1]
}

func renumber(steps []model.Step) {
	for i := range steps {
		steps[i].StepNumber = i + 1
	}
}

func coerceString(v any, fallback string) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return fmt.Sprintf("%v", s)
	case bool:
		return fmt.Sprintf("%v", s)
	}
	return fallback
}

func coerceInt(v any, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if seconds := ParseTimeSeconds(n + " seconds"); seconds > 0 {
			return seconds
		}
	}
	return fallback
}

func coerceStrings(v any, fallback []string) []string {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return fallback
	}
	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func coerceVariables(v any) []model.Variable {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []model.Variable
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := coerceString(m["name"], "")
		if name == "" {
			continue
		}
		out = append(out, model.Variable{
			Name:    name,
			Type:    model.VariableType(coerceString(m["type"], string(model.VARIABLE_TYPE_AUTO))),
			Default: coerceString(m["default"], ""),
		})
	}
	return out
}
