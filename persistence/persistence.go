package persistence

import (
	"fmt"

	"github.com/mimiclabs/mimic/model"
)

type StorageLayerError struct {
	Message string
}

func (e StorageLayerError) Error() string {
	return fmt.Sprintf("storage layer error %s", e.Message)
}

type NotFoundError struct {
	Kind string
	Id   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Id)
}

// WorkflowDao stores learned workflows. Save assigns an id when the
// workflow has none; Update replaces the whole record, matching the rule
// that edits replace the entire step list.
type WorkflowDao interface {
	Save(wf *model.Workflow) error

	Get(id string) (*model.Workflow, error)

	List() ([]model.Workflow, error)

	Update(wf model.Workflow) error

	Delete(id string) error
}

type SessionDao interface {
	Save(session model.Session) error

	Get(sessionId string) (*model.Session, error)

	List() ([]model.Session, error)
}

type TimelineDao interface {
	Save(timeline model.Timeline) error

	Get(sessionId string) (*model.Timeline, error)
}

// ExecutionLogDao is an append-only log of run results, one per run.
type ExecutionLogDao interface {
	Append(result model.ExecutionResult) error

	ListByWorkflow(workflowId string) ([]model.ExecutionResult, error)
}
