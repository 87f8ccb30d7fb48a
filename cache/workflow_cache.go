package cache

import (
	"time"

	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/persistence"
	c "github.com/patrickmn/go-cache"
)

var _ persistence.WorkflowDao = new(CachedWorkflowDao)

// CachedWorkflowDao is a read-through cache in front of a WorkflowDao.
// Executions load the same workflow repeatedly; the store is not expected
// to be hot.
type CachedWorkflowDao struct {
	delegate persistence.WorkflowDao
	cache    *c.Cache
}

func NewCachedWorkflowDao(delegate persistence.WorkflowDao) *CachedWorkflowDao {
	return &CachedWorkflowDao{
		delegate: delegate,
		cache:    c.New(10*time.Minute, 10*time.Minute),
	}
}

func (dao *CachedWorkflowDao) Save(wf *model.Workflow) error {
	if err := dao.delegate.Save(wf); err != nil {
		return err
	}
	dao.cache.Set(wf.Id, *wf, c.DefaultExpiration)
	return nil
}

func (dao *CachedWorkflowDao) Get(id string) (*model.Workflow, error) {
	if cached, found := dao.cache.Get(id); found {
		wf := cached.(model.Workflow)
		return &wf, nil
	}
	wf, err := dao.delegate.Get(id)
	if err != nil {
		return nil, err
	}
	dao.cache.Set(id, *wf, c.DefaultExpiration)
	return wf, nil
}

func (dao *CachedWorkflowDao) List() ([]model.Workflow, error) {
	return dao.delegate.List()
}

func (dao *CachedWorkflowDao) Update(wf model.Workflow) error {
	if err := dao.delegate.Update(wf); err != nil {
		return err
	}
	dao.cache.Set(wf.Id, wf, c.DefaultExpiration)
	return nil
}

func (dao *CachedWorkflowDao) Delete(id string) error {
	if err := dao.delegate.Delete(id); err != nil {
		return err
	}
	dao.cache.Delete(id)
	return nil
}
