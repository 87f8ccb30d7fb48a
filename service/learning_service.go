package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/learning"
	"github.com/mimiclabs/mimic/logger"
	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/persistence"
	"github.com/mimiclabs/mimic/util"
	"go.uber.org/zap"
)

// LearningService accepts finished sessions and drives the learning
// pipeline on a background worker, one session at a time. An optional tick
// worker periodically mines all stored sessions for patterns the fast path
// missed.
type LearningService struct {
	engine    *learning.Engine
	sessions  persistence.SessionDao
	timelines persistence.TimelineDao
	worker    *util.Worker
	miner     *util.TickWorker
	wg        *sync.WaitGroup
}

func NewLearningService(conf config.LearningConfig, engine *learning.Engine,
	sessions persistence.SessionDao, timelines persistence.TimelineDao, wg *sync.WaitGroup) *LearningService {
	s := &LearningService{
		engine:    engine,
		sessions:  sessions,
		timelines: timelines,
		wg:        wg,
	}
	s.worker = util.NewWorker("learning", wg, s.handleSessionTask, conf.WorkerCapacity)
	if conf.MineIntervalSeconds > 0 {
		s.miner = util.NewTickWorker("pattern-miner", conf.MineIntervalSeconds, s.mineAll, wg)
	}
	return s
}

func (s *LearningService) Start() {
	s.worker.Start()
	if s.miner != nil {
		s.miner.Start()
	}
}

func (s *LearningService) Stop() error {
	s.worker.Stop()
	if s.miner != nil {
		s.miner.Stop()
	}
	return nil
}

// SessionCompleted registers a finished session with its timeline and
// queues it for learning.
func (s *LearningService) SessionCompleted(timeline model.Timeline) error {
	if timeline.SessionId == "" {
		return fmt.Errorf("timeline has no session id")
	}
	if err := s.timelines.Save(timeline); err != nil {
		return err
	}
	events := 0
	for _, entry := range timeline.Entries {
		if entry.Type == model.ENTRY_TYPE_EVENT {
			events++
		}
	}
	session := model.Session{
		SessionId:   timeline.SessionId,
		StartTime:   time.Now(),
		EndTime:     time.Now(),
		EventsCount: events,
	}
	// a re-submitted session keeps its learning history but picks up the
	// freshly counted events
	if existing, err := s.sessions.Get(timeline.SessionId); err == nil {
		session.StartTime = existing.StartTime
		session.LearnedWorkflowId = existing.LearnedWorkflowId
		session.LearnedAt = existing.LearnedAt
	}
	if err := s.sessions.Save(session); err != nil {
		return err
	}
	s.worker.Sender() <- util.Task(timeline.SessionId)
	return nil
}

// Mine runs the batch path over every stored session timeline.
func (s *LearningService) Mine(ctx context.Context) ([]model.Workflow, error) {
	sessions, err := s.sessions.List()
	if err != nil {
		return nil, err
	}
	var timelines []model.Timeline
	for _, session := range sessions {
		timeline, err := s.timelines.Get(session.SessionId)
		if err != nil {
			continue
		}
		timelines = append(timelines, *timeline)
	}
	return s.engine.LearnFromSessions(ctx, timelines)
}

func (s *LearningService) handleSessionTask(task util.Task) error {
	sessionId, ok := task.(string)
	if !ok {
		return fmt.Errorf("unexpected task type %T", task)
	}
	timeline, err := s.timelines.Get(sessionId)
	if err != nil {
		return err
	}
	wf, err := s.engine.LearnFromSession(context.Background(), *timeline)
	if err != nil {
		return err
	}
	if wf == nil {
		logger.Info("session queued for future pattern detection", zap.String("session", sessionId))
	}
	return nil
}

func (s *LearningService) mineAll() {
	workflows, err := s.Mine(context.Background())
	if err != nil {
		logger.Error("periodic pattern mining failed", zap.Error(err))
		return
	}
	if len(workflows) > 0 {
		logger.Info("periodic pattern mining generated workflows", zap.Int("count", len(workflows)))
	}
}
