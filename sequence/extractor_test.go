package sequence

import (
	"testing"

	"github.com/mimiclabs/mimic/model"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	timeline := model.Timeline{
		SessionId: "s1",
		Entries: []model.TimelineEntry{
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_MOUSE_PRESS, Data: map[string]any{"x": float64(412), "y": float64(290)}},
			{Type: model.ENTRY_TYPE_OCR, Text: "Save As"},
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_KEY_PRESS, Data: map[string]any{"key": "a"}},
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_WINDOW_CHANGE, Data: map[string]any{"window_title": "Notepad"}},
			{Type: model.ENTRY_TYPE_TRANSCRIPT, Text: "now I save the file"},
		},
	}

	seq := NewExtractor().Extract(timeline)
	require.Equal(t, []string{"click(412,290)", "type(a)", "switch_window(Notepad)"}, seq)
}

func TestExtractConfiguredEvents(t *testing.T) {
	timeline := model.Timeline{
		Entries: []model.TimelineEntry{
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_MOUSE_PRESS, Data: map[string]any{"x": 1, "y": 2}},
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_KEY_PRESS, Data: map[string]any{"key": "q"}},
		},
	}

	seq := NewExtractor(model.EVENT_TYPE_KEY_PRESS).Extract(timeline)
	require.Equal(t, []string{"type(q)"}, seq)
}

func TestExtractDeterministicAcrossSessions(t *testing.T) {
	entry := func(ts string) model.TimelineEntry {
		return model.TimelineEntry{Timestamp: ts, Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_MOUSE_PRESS, Data: map[string]any{"x": 5, "y": 6}}
	}
	first := NewExtractor().Extract(model.Timeline{Entries: []model.TimelineEntry{entry("10:00:00")}})
	second := NewExtractor().Extract(model.Timeline{Entries: []model.TimelineEntry{entry("17:30:12")}})
	require.Equal(t, first, second)
}
