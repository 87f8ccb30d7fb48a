package container

import (
	"github.com/mimiclabs/mimic/cache"
	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/persistence"
	"github.com/mimiclabs/mimic/persistence/inmem"
	rd "github.com/mimiclabs/mimic/persistence/redis"
)

// DIContainer wires the storage layer for the selected backend. All
// workflow reads go through the definition cache.
type DIContainer struct {
	initialized     bool
	workflowDao     persistence.WorkflowDao
	sessionDao      persistence.SessionDao
	timelineDao     persistence.TimelineDao
	executionLogDao persistence.ExecutionLogDao
}

func NewDiContainer() *DIContainer {
	return &DIContainer{}
}

func (d *DIContainer) Init(conf config.Config) {
	defer func() { d.initialized = true }()

	switch conf.StorageType {
	case config.STORAGE_TYPE_REDIS:
		rdConf := rd.Config{
			Addrs:     conf.RedisConfig.Addrs,
			Namespace: conf.RedisConfig.Namespace,
		}
		d.workflowDao = cache.NewCachedWorkflowDao(rd.NewRedisWorkflowDao(rdConf))
		d.sessionDao = rd.NewRedisSessionDao(rdConf)
		d.timelineDao = rd.NewRedisTimelineDao(rdConf)
		d.executionLogDao = rd.NewRedisExecutionLogDao(rdConf)
	default:
		d.workflowDao = cache.NewCachedWorkflowDao(inmem.NewInMemWorkflowDao())
		d.sessionDao = inmem.NewInMemSessionDao()
		d.timelineDao = inmem.NewInMemTimelineDao()
		d.executionLogDao = inmem.NewInMemExecutionLogDao()
	}
}

func (d *DIContainer) GetWorkflowDao() persistence.WorkflowDao {
	if !d.initialized {
		panic("persistence not initialized")
	}
	return d.workflowDao
}

func (d *DIContainer) GetSessionDao() persistence.SessionDao {
	if !d.initialized {
		panic("persistence not initialized")
	}
	return d.sessionDao
}

func (d *DIContainer) GetTimelineDao() persistence.TimelineDao {
	if !d.initialized {
		panic("persistence not initialized")
	}
	return d.timelineDao
}

func (d *DIContainer) GetExecutionLogDao() persistence.ExecutionLogDao {
	if !d.initialized {
		panic("persistence not initialized")
	}
	return d.executionLogDao
}
