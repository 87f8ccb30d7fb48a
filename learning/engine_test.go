package learning

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/generator"
	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/persistence/inmem"
	"github.com/stretchr/testify/require"
)

type stubTextGen struct {
	err error
}

func (s *stubTextGen) Generate(ctx context.Context, prompt string, systemPrompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return `{"workflow_name": "Learned task", "description": "d", "confidence": 0.8,
		"steps": [{"action_type": "click", "target": "10,10"}]}`, nil
}

func (s *stubTextGen) Available(ctx context.Context) bool { return s.err == nil }

type fixture struct {
	engine    *Engine
	workflows *inmem.InMemWorkflowDao
	sessions  *inmem.InMemSessionDao
	timelines *inmem.InMemTimelineDao
}

func newFixture(t *testing.T) *fixture {
	conf := config.Default()
	gen := generator.NewGenerator(&stubTextGen{}, conf.Generation)
	workflows := inmem.NewInMemWorkflowDao()
	sessions := inmem.NewInMemSessionDao()
	timelines := inmem.NewInMemTimelineDao()
	return &fixture{
		engine:    NewEngine(conf.Pattern, gen, workflows, sessions, timelines),
		workflows: workflows,
		sessions:  sessions,
		timelines: timelines,
	}
}

func repeatedTimeline(sessionId string) model.Timeline {
	return model.Timeline{
		SessionId: sessionId,
		Entries: []model.TimelineEntry{
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_WINDOW_CHANGE, Data: map[string]any{"window_title": "Excel"}},
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_MOUSE_PRESS, Data: map[string]any{"x": 100, "y": 200}},
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_KEY_PRESS, Data: map[string]any{"key": "4"}},
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_KEY_PRESS, Data: map[string]any{"key": "2"}},
		},
	}
}

func (f *fixture) addLearnedSession(t *testing.T, sessionId string) {
	require.NoError(t, f.timelines.Save(repeatedTimeline(sessionId)))
	require.NoError(t, f.sessions.Save(model.Session{
		SessionId:         sessionId,
		StartTime:         time.Now(),
		LearnedWorkflowId: "wf-previous",
	}))
}

func TestLearnFromSessionTriggersAtThreshold(t *testing.T) {
	f := newFixture(t)
	f.addLearnedSession(t, "s1")
	f.addLearnedSession(t, "s2")
	require.NoError(t, f.sessions.Save(model.Session{SessionId: "s3", StartTime: time.Now()}))
	require.NoError(t, f.timelines.Save(repeatedTimeline("s3")))

	wf, err := f.engine.LearnFromSession(context.Background(), repeatedTimeline("s3"))
	require.NoError(t, err)
	require.NotNil(t, wf)
	require.NotEmpty(t, wf.Id)
	require.ElementsMatch(t, []string{"s1", "s2", "s3"}, wf.SessionsUsed)
	require.Greater(t, wf.PatternConfidence, 0.0)

	// the current session is marked learned
	session, err := f.sessions.Get("s3")
	require.NoError(t, err)
	require.Equal(t, wf.Id, session.LearnedWorkflowId)
}

func TestLearnFromSessionNotEnoughHistory(t *testing.T) {
	f := newFixture(t)
	f.addLearnedSession(t, "s1")

	wf, err := f.engine.LearnFromSession(context.Background(), repeatedTimeline("s2"))
	require.NoError(t, err)
	require.Nil(t, wf)

	workflows, err := f.workflows.List()
	require.NoError(t, err)
	require.Empty(t, workflows)
}

func TestLearnFromSessionIgnoresDissimilarHistory(t *testing.T) {
	f := newFixture(t)
	f.addLearnedSession(t, "s1")
	f.addLearnedSession(t, "s2")

	different := model.Timeline{
		SessionId: "s3",
		Entries: []model.TimelineEntry{
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_MOUSE_PRESS, Data: map[string]any{"x": 1, "y": 1}},
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_MOUSE_PRESS, Data: map[string]any{"x": 2, "y": 2}},
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_MOUSE_PRESS, Data: map[string]any{"x": 3, "y": 3}},
			{Type: model.ENTRY_TYPE_EVENT, EventType: model.EVENT_TYPE_MOUSE_PRESS, Data: map[string]any{"x": 4, "y": 4}},
		},
	}

	wf, err := f.engine.LearnFromSession(context.Background(), different)
	require.NoError(t, err)
	require.Nil(t, wf)
}

func TestLearnFromSessionsBatch(t *testing.T) {
	f := newFixture(t)
	timelines := []model.Timeline{repeatedTimeline("s1"), repeatedTimeline("s2"), repeatedTimeline("s3")}
	for _, timeline := range timelines {
		require.NoError(t, f.timelines.Save(timeline))
		require.NoError(t, f.sessions.Save(model.Session{SessionId: timeline.SessionId, StartTime: time.Now()}))
	}

	workflows, err := f.engine.LearnFromSessions(context.Background(), timelines)
	require.NoError(t, err)
	require.Len(t, workflows, 1)
	require.ElementsMatch(t, []string{"s1", "s2", "s3"}, workflows[0].SessionsUsed)
	require.Greater(t, workflows[0].PatternConfidence, 0.0)
}

func TestLearnFromSessionsSecondMineYieldsNothing(t *testing.T) {
	f := newFixture(t)
	timelines := []model.Timeline{repeatedTimeline("s1"), repeatedTimeline("s2"), repeatedTimeline("s3")}
	for _, timeline := range timelines {
		require.NoError(t, f.timelines.Save(timeline))
		require.NoError(t, f.sessions.Save(model.Session{SessionId: timeline.SessionId, StartTime: time.Now()}))
	}

	first, err := f.engine.LearnFromSessions(context.Background(), timelines)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// all three sessions are marked learned, so a second pass over the same
	// set must not persist a duplicate workflow
	second, err := f.engine.LearnFromSessions(context.Background(), timelines)
	require.NoError(t, err)
	require.Empty(t, second)

	workflows, err := f.workflows.List()
	require.NoError(t, err)
	require.Len(t, workflows, 1)
}

func TestLearnFromSessionsBelowThreshold(t *testing.T) {
	f := newFixture(t)
	timelines := []model.Timeline{repeatedTimeline("s1"), repeatedTimeline("s2")}

	workflows, err := f.engine.LearnFromSessions(context.Background(), timelines)
	require.NoError(t, err)
	require.Empty(t, workflows)
}

func TestLearnFromSessionGeneratorDownStillLearns(t *testing.T) {
	conf := config.Default()
	gen := generator.NewGenerator(&stubTextGen{err: fmt.Errorf("unavailable")}, conf.Generation)
	workflows := inmem.NewInMemWorkflowDao()
	sessions := inmem.NewInMemSessionDao()
	timelines := inmem.NewInMemTimelineDao()
	f := &fixture{
		engine:    NewEngine(conf.Pattern, gen, workflows, sessions, timelines),
		workflows: workflows,
		sessions:  sessions,
		timelines: timelines,
	}
	f.addLearnedSession(t, "s1")
	f.addLearnedSession(t, "s2")
	require.NoError(t, f.sessions.Save(model.Session{SessionId: "s3", StartTime: time.Now()}))

	wf, err := f.engine.LearnFromSession(context.Background(), repeatedTimeline("s3"))
	require.NoError(t, err)
	require.NotNil(t, wf)
	require.NotEmpty(t, wf.Steps)
	require.LessOrEqual(t, wf.Confidence, 0.5)
}
