package redis

import (
	"context"

	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/persistence"
	"github.com/mimiclabs/mimic/util"
	rd "github.com/redis/go-redis/v9"
)

var _ persistence.SessionDao = new(redisSessionDao)
var _ persistence.TimelineDao = new(redisTimelineDao)

const SESSIONS string = "SESSIONS"
const TIMELINE string = "TIMELINE"

type redisSessionDao struct {
	baseDao
	encoderDecoder util.EncoderDecoder[model.Session]
}

func NewRedisSessionDao(conf Config) *redisSessionDao {
	return &redisSessionDao{
		baseDao:        *newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.Session](),
	}
}

func (dao *redisSessionDao) Save(session model.Session) error {
	data, err := dao.encoderDecoder.Encode(session)
	if err != nil {
		return err
	}
	ctx := context.Background()
	err = dao.redisClient.HSet(ctx, dao.getNamespaceKey(SESSIONS), session.SessionId, data).Err()
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (dao *redisSessionDao) Get(sessionId string) (*model.Session, error) {
	ctx := context.Background()
	val, err := dao.redisClient.HGet(ctx, dao.getNamespaceKey(SESSIONS), sessionId).Result()
	if err == rd.Nil {
		return nil, persistence.NotFoundError{Kind: "session", Id: sessionId}
	}
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return dao.encoderDecoder.Decode([]byte(val))
}

func (dao *redisSessionDao) List() ([]model.Session, error) {
	ctx := context.Background()
	values, err := dao.redisClient.HGetAll(ctx, dao.getNamespaceKey(SESSIONS)).Result()
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	sessions := make([]model.Session, 0, len(values))
	for _, val := range values {
		session, err := dao.encoderDecoder.Decode([]byte(val))
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, nil
}

type redisTimelineDao struct {
	baseDao
	encoderDecoder util.EncoderDecoder[model.Timeline]
}

func NewRedisTimelineDao(conf Config) *redisTimelineDao {
	return &redisTimelineDao{
		baseDao:        *newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.Timeline](),
	}
}

func (dao *redisTimelineDao) Save(timeline model.Timeline) error {
	data, err := dao.encoderDecoder.Encode(timeline)
	if err != nil {
		return err
	}
	ctx := context.Background()
	err = dao.redisClient.Set(ctx, dao.getNamespaceKey(TIMELINE, timeline.SessionId), data, 0).Err()
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (dao *redisTimelineDao) Get(sessionId string) (*model.Timeline, error) {
	ctx := context.Background()
	val, err := dao.redisClient.Get(ctx, dao.getNamespaceKey(TIMELINE, sessionId)).Result()
	if err == rd.Nil {
		return nil, persistence.NotFoundError{Kind: "timeline", Id: sessionId}
	}
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return dao.encoderDecoder.Decode([]byte(val))
}
