package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/model"
)

const systemPrompt = `You are an expert at analyzing user interactions and creating automatable workflows.
You understand desktop applications, web browsers, and file operations.
You create precise, executable workflows that can be automated.
Always output valid JSON.`

// BuildPrompt renders a bounded-size textual context for the text
// generator: a capped timeline excerpt with truncated text fields plus a
// transcript excerpt.
func BuildPrompt(t model.Timeline, conf config.GenerationConfig) string {
	entries := t.Entries
	if len(entries) > conf.MaxTimelineLength {
		entries = entries[:conf.MaxTimelineLength]
	}

	var timelineText strings.Builder
	for _, entry := range entries {
		switch entry.Type {
		case model.ENTRY_TYPE_EVENT:
			data, _ := json.Marshal(entry.Data)
			fmt.Fprintf(&timelineText, "%s - %s: %s\n", entry.Timestamp, entry.EventType, data)
		case model.ENTRY_TYPE_OCR:
			fmt.Fprintf(&timelineText, "%s - OCR Text: %s\n", entry.Timestamp, truncate(entry.Text, conf.OcrTextLimit))
		case model.ENTRY_TYPE_TRANSCRIPT:
			fmt.Fprintf(&timelineText, "%s - Audio: %s\n", entry.Timestamp, truncate(entry.Text, conf.TranscriptLimit))
		}
	}

	transcript := truncate(t.Transcript, conf.TranscriptLimit)
	if transcript == "" {
		transcript = "None"
	}

	return fmt.Sprintf(`You are analyzing desktop activity to build automatable workflows.

CONTEXT:
Session: %s
Duration: %d events recorded
Transcript: %s

TIMELINE:
%s
TASK:
Generate a JSON workflow that captures this as an automatable task.

OUTPUT FORMAT:
{
  "workflow_name": "Descriptive name",
  "description": "What this workflow does",
  "confidence": 0.0-1.0,
  "category": "excel|browser|file_ops|general",
  "estimated_time_manual": "X seconds",
  "estimated_time_auto": "Y seconds",
  "steps": [
    {
      "step_number": 1,
      "action_type": "launch_app|click|type|save_file|hotkey|etc",
      "target": "What to interact with",
      "value": "What to input (if applicable)",
      "wait_after": milliseconds,
      "verification": "How to confirm success"
    }
  ],
  "variables": [
    {
      "name": "variable_name",
      "type": "auto|user_input",
      "default": "default_value"
    }
  ],
  "triggers": ["manual", "scheduled", "event-based"]
}

RULES:
1. Be specific about click locations (use cell references, button names, coordinates)
2. Identify variables (things that change each time)
3. Add verification steps for critical actions
4. Estimate realistic time savings
5. Only output valid JSON, no markdown`,
		t.SessionId, len(entries), transcript, timelineText.String())
}

func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit]
}
