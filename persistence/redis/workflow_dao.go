package redis

import (
	"context"

	"github.com/google/uuid"
	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/persistence"
	"github.com/mimiclabs/mimic/util"
	rd "github.com/redis/go-redis/v9"
)

var _ persistence.WorkflowDao = new(redisWorkflowDao)

const WORKFLOWS string = "WORKFLOWS"

type redisWorkflowDao struct {
	baseDao
	encoderDecoder util.EncoderDecoder[model.Workflow]
}

func NewRedisWorkflowDao(conf Config) *redisWorkflowDao {
	return &redisWorkflowDao{
		baseDao:        *newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.Workflow](),
	}
}

func (dao *redisWorkflowDao) Save(wf *model.Workflow) error {
	if wf.Id == "" {
		wf.Id = uuid.New().String()
	}
	key := dao.getNamespaceKey(WORKFLOWS)
	data, err := dao.encoderDecoder.Encode(*wf)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := dao.redisClient.HSet(ctx, key, wf.Id, data).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (dao *redisWorkflowDao) Get(id string) (*model.Workflow, error) {
	key := dao.getNamespaceKey(WORKFLOWS)
	ctx := context.Background()
	val, err := dao.redisClient.HGet(ctx, key, id).Result()
	if err == rd.Nil {
		return nil, persistence.NotFoundError{Kind: "workflow", Id: id}
	}
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return dao.encoderDecoder.Decode([]byte(val))
}

func (dao *redisWorkflowDao) List() ([]model.Workflow, error) {
	key := dao.getNamespaceKey(WORKFLOWS)
	ctx := context.Background()
	values, err := dao.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	workflows := make([]model.Workflow, 0, len(values))
	for _, val := range values {
		wf, err := dao.encoderDecoder.Decode([]byte(val))
		if err != nil {
			return nil, err
		}
		workflows = append(workflows, *wf)
	}
	return workflows, nil
}

func (dao *redisWorkflowDao) Update(wf model.Workflow) error {
	if _, err := dao.Get(wf.Id); err != nil {
		return err
	}
	return dao.Save(&wf)
}

func (dao *redisWorkflowDao) Delete(id string) error {
	key := dao.getNamespaceKey(WORKFLOWS)
	ctx := context.Background()
	removed, err := dao.redisClient.HDel(ctx, key, id).Result()
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	if removed == 0 {
		return persistence.NotFoundError{Kind: "workflow", Id: id}
	}
	return nil
}
