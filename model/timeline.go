package model

import "time"

type EntryType string

const ENTRY_TYPE_EVENT EntryType = "event"
const ENTRY_TYPE_OCR EntryType = "ocr"
const ENTRY_TYPE_TRANSCRIPT EntryType = "transcript"

type EventType string

const EVENT_TYPE_MOUSE_PRESS EventType = "mouse_press"
const EVENT_TYPE_KEY_PRESS EventType = "key_press"
const EVENT_TYPE_WINDOW_CHANGE EventType = "window_change"

// TimelineEntry is one record in a session timeline. Event entries carry
// EventType and Data; ocr and transcript entries carry Text.
type TimelineEntry struct {
	Timestamp string         `json:"timestamp"`
	Type      EntryType      `json:"type"`
	EventType EventType      `json:"event_type,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Text      string         `json:"text,omitempty"`
}

// Timeline is the merged record of one observation session. It is produced
// by the capture side and never mutated after the session ends.
type Timeline struct {
	SessionId  string          `json:"session_id"`
	Transcript string          `json:"transcript,omitempty"`
	Entries    []TimelineEntry `json:"timeline"`
}

type Session struct {
	SessionId         string     `json:"session_id"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           time.Time  `json:"end_time"`
	EventsCount       int        `json:"events_count"`
	LearnedWorkflowId string     `json:"learned_workflow_id,omitempty"`
	LearnedAt         *time.Time `json:"learned_at,omitempty"`
}
