package cache

import (
	"testing"

	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/persistence/inmem"
	"github.com/stretchr/testify/require"
)

func TestCachedWorkflowDao(t *testing.T) {
	backing := inmem.NewInMemWorkflowDao()
	dao := NewCachedWorkflowDao(backing)

	wf := model.Workflow{Name: "cached", Steps: []model.Step{{StepNumber: 1, ActionType: model.ACTION_TYPE_CLICK, Target: "1,1"}}}
	require.NoError(t, dao.Save(&wf))

	loaded, err := dao.Get(wf.Id)
	require.NoError(t, err)
	require.Equal(t, "cached", loaded.Name)

	// update through the cache must be visible on the next read
	wf.Name = "renamed"
	require.NoError(t, dao.Update(wf))
	loaded, err = dao.Get(wf.Id)
	require.NoError(t, err)
	require.Equal(t, "renamed", loaded.Name)

	require.NoError(t, dao.Delete(wf.Id))
	_, err = dao.Get(wf.Id)
	require.Error(t, err)
}
