package redis

import (
	"context"

	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/persistence"
	"github.com/mimiclabs/mimic/util"
)

var _ persistence.ExecutionLogDao = new(redisExecutionLogDao)

const EXECUTIONS string = "EXECUTIONS"

type redisExecutionLogDao struct {
	baseDao
	encoderDecoder util.EncoderDecoder[model.ExecutionResult]
}

func NewRedisExecutionLogDao(conf Config) *redisExecutionLogDao {
	return &redisExecutionLogDao{
		baseDao:        *newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.ExecutionResult](),
	}
}

func (dao *redisExecutionLogDao) Append(result model.ExecutionResult) error {
	data, err := dao.encoderDecoder.Encode(result)
	if err != nil {
		return err
	}
	ctx := context.Background()
	err = dao.redisClient.RPush(ctx, dao.getNamespaceKey(EXECUTIONS, result.WorkflowId), data).Err()
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (dao *redisExecutionLogDao) ListByWorkflow(workflowId string) ([]model.ExecutionResult, error) {
	ctx := context.Background()
	values, err := dao.redisClient.LRange(ctx, dao.getNamespaceKey(EXECUTIONS, workflowId), 0, -1).Result()
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	results := make([]model.ExecutionResult, 0, len(values))
	for _, val := range values {
		result, err := dao.encoderDecoder.Decode([]byte(val))
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}
