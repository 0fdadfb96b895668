package session

import (
	"context"
	"encoding/json"
	"fmt"
	"ptmd-service/internal/app/contracts"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/pkg/exceptions"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "ptmd:session:%s"

type redisSessionService struct {
	Redis *redis.Client
}

func NewRedisSessionService(redisClient *redis.Client) contracts.SessionService {
	return &redisSessionService{
		Redis: redisClient,
	}
}

func (s *redisSessionService) CreateSession(ctx context.Context, session *models.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return exceptions.ErrRedisSet(err)
	}

	key := fmt.Sprintf(sessionKeyPrefix, session.SessionID)
	if err := s.Redis.Set(ctx, key, payload, ttl).Err(); err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

func (s *redisSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	key := fmt.Sprintf(sessionKeyPrefix, sessionID)
	payload, err := s.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, exceptions.ErrSessionInvalid(err)
		}
		return nil, exceptions.ErrRedisGet(err)
	}

	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, exceptions.ErrRedisGet(err)
	}
	return &session, nil
}

func (s *redisSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf(sessionKeyPrefix, sessionID)
	if err := s.Redis.Del(ctx, key).Err(); err != nil {
		return exceptions.ErrRedisDelete(err)
	}
	return nil
}
