package learning

import (
	"context"
	"time"

	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/generator"
	"github.com/mimiclabs/mimic/logger"
	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/pattern"
	"github.com/mimiclabs/mimic/persistence"
	"github.com/mimiclabs/mimic/sequence"
	"go.uber.org/zap"
)

// Engine orchestrates learning per completed session: extract the symbolic
// sequence, compare against history, and trigger workflow generation once
// the occurrence threshold is reached. "No pattern yet" is a normal
// outcome, not an error.
type Engine struct {
	conf      config.PatternConfig
	extractor *sequence.Extractor
	detector  *pattern.Detector
	generator *generator.Generator
	workflows persistence.WorkflowDao
	sessions  persistence.SessionDao
	timelines persistence.TimelineDao
}

func NewEngine(conf config.PatternConfig, gen *generator.Generator,
	workflows persistence.WorkflowDao, sessions persistence.SessionDao, timelines persistence.TimelineDao) *Engine {
	return &Engine{
		conf:      conf,
		extractor: sequence.NewExtractor(),
		detector:  pattern.NewDetector(conf),
		generator: gen,
		workflows: workflows,
		sessions:  sessions,
		timelines: timelines,
	}
}

// LearnFromSession is the single-session fast path. It compares the
// finished session against every already-learned historical session; when
// similar sessions plus the current one reach the occurrence threshold, a
// workflow is generated and persisted. Returns (nil, nil) when more
// sessions are still needed.
func (e *Engine) LearnFromSession(ctx context.Context, timeline model.Timeline) (*model.Workflow, error) {
	logger.Info("learning from session", zap.String("session", timeline.SessionId))

	seq := e.extractor.Extract(timeline)
	if len(seq) == 0 {
		logger.Info("session has no actionable events", zap.String("session", timeline.SessionId))
		return nil, nil
	}

	similar, err := e.findSimilarLearnedSessions(seq)
	if err != nil {
		return nil, err
	}

	if len(similar)+1 < e.conf.MinOccurrences {
		logger.Info("no pattern detected yet, need more similar sessions",
			zap.String("session", timeline.SessionId), zap.Int("similar", len(similar)))
		return nil, nil
	}

	logger.Info("pattern detected", zap.String("session", timeline.SessionId), zap.Int("sessions", len(similar)+1))
	wf := e.generator.Generate(ctx, timeline)
	wf.PatternConfidence = patternConfidence(len(similar)+1, e.conf.MinOccurrences)
	wf.SessionsUsed = append(similar, timeline.SessionId)

	if err := e.workflows.Save(&wf); err != nil {
		return nil, err
	}
	e.markLearned(timeline.SessionId, wf.Id)
	logger.Info("generated workflow", zap.String("workflow", wf.Id), zap.String("name", wf.Name))
	return &wf, nil
}

// LearnFromSessions is the batch path: mine a list of historical sessions
// for yet-undiscovered patterns and generate one workflow per pattern from
// a representative timeline. Sessions that already produced a workflow are
// excluded, so repeated mining passes never regenerate the same pattern.
func (e *Engine) LearnFromSessions(ctx context.Context, timelines []model.Timeline) ([]model.Workflow, error) {
	logger.Info("mining sessions for patterns", zap.Int("sessions", len(timelines)))

	sequences := make([]pattern.SessionSequence, 0, len(timelines))
	for _, t := range timelines {
		if session, err := e.sessions.Get(t.SessionId); err == nil && session.LearnedWorkflowId != "" {
			logger.Debug("skipping already learned session", zap.String("session", t.SessionId))
			continue
		}
		seq := e.extractor.Extract(t)
		if len(seq) == 0 {
			continue
		}
		sequences = append(sequences, pattern.SessionSequence{SessionId: t.SessionId, Tokens: seq})
	}

	patterns := e.detector.Detect(sequences)

	var workflows []model.Workflow
	for _, p := range patterns {
		representative := representativeTimeline(timelines, p)
		if representative == nil {
			continue
		}
		wf := e.generator.Generate(ctx, *representative)
		wf.PatternConfidence = p.Confidence
		wf.SessionsUsed = p.Sessions
		if err := e.workflows.Save(&wf); err != nil {
			return workflows, err
		}
		for _, sessionId := range p.Sessions {
			e.markLearned(sessionId, wf.Id)
		}
		workflows = append(workflows, wf)
		logger.Info("generated workflow from pattern", zap.String("workflow", wf.Id), zap.Float64("confidence", p.Confidence))
	}
	return workflows, nil
}

// findSimilarLearnedSessions returns ids of historical sessions that
// already produced a workflow and whose sequences are similar enough to
// the given one.
func (e *Engine) findSimilarLearnedSessions(seq []string) ([]string, error) {
	sessions, err := e.sessions.List()
	if err != nil {
		return nil, err
	}
	var similar []string
	for _, session := range sessions {
		if session.LearnedWorkflowId == "" {
			continue
		}
		timeline, err := e.timelines.Get(session.SessionId)
		if err != nil {
			logger.Debug("timeline missing for learned session", zap.String("session", session.SessionId), zap.Error(err))
			continue
		}
		if sequence.Similarity(seq, e.extractor.Extract(*timeline)) >= e.conf.MinSimilarity {
			similar = append(similar, session.SessionId)
		}
	}
	return similar, nil
}

func (e *Engine) markLearned(sessionId string, workflowId string) {
	session, err := e.sessions.Get(sessionId)
	if err != nil {
		return
	}
	now := time.Now()
	session.LearnedWorkflowId = workflowId
	session.LearnedAt = &now
	if err := e.sessions.Save(*session); err != nil {
		logger.Error("failed to mark session learned", zap.String("session", sessionId), zap.Error(err))
	}
}

func representativeTimeline(timelines []model.Timeline, p model.Pattern) *model.Timeline {
	inPattern := make(map[string]bool, len(p.Sessions))
	for _, s := range p.Sessions {
		inPattern[s] = true
	}
	for i := range timelines {
		if inPattern[timelines[i].SessionId] {
			return &timelines[i]
		}
	}
	if len(timelines) > 0 {
		return &timelines[0]
	}
	return nil
}

// patternConfidence grows with the number of matching sessions, capped at
// 0.8 for the fast path.
func patternConfidence(sessions int, minOccurrences int) float64 {
	confidence := 0.5 + float64(sessions-minOccurrences)*0.1
	if confidence > 0.8 {
		confidence = 0.8
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}
