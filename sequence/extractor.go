package sequence

import (
	"encoding/json"
	"fmt"

	"github.com/mimiclabs/mimic/model"
)

// Extractor converts a timeline into a symbolic action sequence. Two
// sessions performing the same actions produce textually identical tokens
// even when timestamps differ. Pure; safe for concurrent use.
type Extractor struct {
	include map[model.EventType]bool
}

func NewExtractor(eventTypes ...model.EventType) *Extractor {
	if len(eventTypes) == 0 {
		eventTypes = []model.EventType{
			model.EVENT_TYPE_MOUSE_PRESS,
			model.EVENT_TYPE_KEY_PRESS,
			model.EVENT_TYPE_WINDOW_CHANGE,
		}
	}
	include := make(map[model.EventType]bool, len(eventTypes))
	for _, et := range eventTypes {
		include[et] = true
	}
	return &Extractor{include: include}
}

// Extract returns the symbolic sequence for a timeline. Only event entries
// of the configured kinds contribute tokens; ocr and transcript entries are
// excluded (they feed the generation prompt instead).
func (e *Extractor) Extract(t model.Timeline) []string {
	var seq []string
	for _, entry := range t.Entries {
		if entry.Type != model.ENTRY_TYPE_EVENT {
			continue
		}
		if !e.include[entry.EventType] {
			continue
		}
		seq = append(seq, Token(entry))
	}
	return seq
}

// Token renders a single event entry as its canonical action token.
func Token(entry model.TimelineEntry) string {
	switch entry.EventType {
	case model.EVENT_TYPE_MOUSE_PRESS:
		return fmt.Sprintf("click(%s,%s)", numField(entry.Data, "x"), numField(entry.Data, "y"))
	case model.EVENT_TYPE_KEY_PRESS:
		return fmt.Sprintf("type(%s)", stringField(entry.Data, "key"))
	case model.EVENT_TYPE_WINDOW_CHANGE:
		return fmt.Sprintf("switch_window(%s)", stringField(entry.Data, "window_title"))
	}
	data, _ := json.Marshal(entry.Data)
	return fmt.Sprintf("%s(%s)", entry.EventType, data)
}

func stringField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	v, ok := data[key]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// numField renders a numeric field without a trailing decimal point; JSON
// decoding turns every number into float64.
func numField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	switch v := data[key].(type) {
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case int:
		return fmt.Sprintf("%d", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
