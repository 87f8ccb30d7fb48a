package inmem

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/persistence"
)

var _ persistence.WorkflowDao = new(InMemWorkflowDao)
var _ persistence.SessionDao = new(InMemSessionDao)
var _ persistence.TimelineDao = new(InMemTimelineDao)
var _ persistence.ExecutionLogDao = new(InMemExecutionLogDao)

// InMemWorkflowDao keeps workflows in a mutex-guarded map. Used by tests
// and by --storage-impl memory.
type InMemWorkflowDao struct {
	mu        sync.Mutex
	workflows map[string]model.Workflow
}

func NewInMemWorkflowDao() *InMemWorkflowDao {
	return &InMemWorkflowDao{workflows: make(map[string]model.Workflow)}
}

func (dao *InMemWorkflowDao) Save(wf *model.Workflow) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	if wf.Id == "" {
		wf.Id = uuid.New().String()
	}
	dao.workflows[wf.Id] = *wf
	return nil
}

func (dao *InMemWorkflowDao) Get(id string) (*model.Workflow, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	wf, ok := dao.workflows[id]
	if !ok {
		return nil, persistence.NotFoundError{Kind: "workflow", Id: id}
	}
	return &wf, nil
}

func (dao *InMemWorkflowDao) List() ([]model.Workflow, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	workflows := make([]model.Workflow, 0, len(dao.workflows))
	for _, wf := range dao.workflows {
		workflows = append(workflows, wf)
	}
	sort.Slice(workflows, func(i, j int) bool {
		return workflows[i].CreatedAt.After(workflows[j].CreatedAt)
	})
	return workflows, nil
}

func (dao *InMemWorkflowDao) Update(wf model.Workflow) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	if _, ok := dao.workflows[wf.Id]; !ok {
		return persistence.NotFoundError{Kind: "workflow", Id: wf.Id}
	}
	dao.workflows[wf.Id] = wf
	return nil
}

func (dao *InMemWorkflowDao) Delete(id string) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	if _, ok := dao.workflows[id]; !ok {
		return persistence.NotFoundError{Kind: "workflow", Id: id}
	}
	delete(dao.workflows, id)
	return nil
}

type InMemSessionDao struct {
	mu       sync.Mutex
	sessions map[string]model.Session
}

func NewInMemSessionDao() *InMemSessionDao {
	return &InMemSessionDao{sessions: make(map[string]model.Session)}
}

func (dao *InMemSessionDao) Save(session model.Session) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	dao.sessions[session.SessionId] = session
	return nil
}

func (dao *InMemSessionDao) Get(sessionId string) (*model.Session, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	session, ok := dao.sessions[sessionId]
	if !ok {
		return nil, persistence.NotFoundError{Kind: "session", Id: sessionId}
	}
	return &session, nil
}

func (dao *InMemSessionDao) List() ([]model.Session, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	sessions := make([]model.Session, 0, len(dao.sessions))
	for _, session := range dao.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartTime.Before(sessions[j].StartTime)
	})
	return sessions, nil
}

type InMemTimelineDao struct {
	mu        sync.Mutex
	timelines map[string]model.Timeline
}

func NewInMemTimelineDao() *InMemTimelineDao {
	return &InMemTimelineDao{timelines: make(map[string]model.Timeline)}
}

func (dao *InMemTimelineDao) Save(timeline model.Timeline) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	dao.timelines[timeline.SessionId] = timeline
	return nil
}

func (dao *InMemTimelineDao) Get(sessionId string) (*model.Timeline, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	timeline, ok := dao.timelines[sessionId]
	if !ok {
		return nil, persistence.NotFoundError{Kind: "timeline", Id: sessionId}
	}
	return &timeline, nil
}

type InMemExecutionLogDao struct {
	mu   sync.Mutex
	logs map[string][]model.ExecutionResult
}

func NewInMemExecutionLogDao() *InMemExecutionLogDao {
	return &InMemExecutionLogDao{logs: make(map[string][]model.ExecutionResult)}
}

func (dao *InMemExecutionLogDao) Append(result model.ExecutionResult) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	dao.logs[result.WorkflowId] = append(dao.logs[result.WorkflowId], result)
	return nil
}

func (dao *InMemExecutionLogDao) ListByWorkflow(workflowId string) ([]model.ExecutionResult, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	results := make([]model.ExecutionResult, len(dao.logs[workflowId]))
	copy(results, dao.logs[workflowId])
	return results, nil
}
