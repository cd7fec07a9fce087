package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinic-whatsapp-scheduler/internal/domain/entity"
	domainRepo "clinic-whatsapp-scheduler/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// sessionRepository keeps conversation sessions in Redis as JSON values.
// Every Set replaces the whole session and refreshes the idle TTL, so an
// abandoned conversation eventually expires on its own.
type sessionRepository struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewSessionRepository(redisClient *redis.Client, ttl time.Duration) domainRepo.SessionRepository {
	return &sessionRepository{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (r *sessionRepository) Get(ctx context.Context, phone string) (*entity.ConversationSession, error) {
	data, err := r.redisClient.Get(ctx, sessionKey(phone)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get session for %s: %w", phone, err)
	}

	var session entity.ConversationSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("decode session for %s: %w", phone, err)
	}
	return &session, nil
}

func (r *sessionRepository) Set(ctx context.Context, phone string, session *entity.ConversationSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session for %s: %w", phone, err)
	}
	if err := r.redisClient.Set(ctx, sessionKey(phone), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("set session for %s: %w", phone, err)
	}
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context, phone string) error {
	if err := r.redisClient.Del(ctx, sessionKey(phone)).Err(); err != nil {
		return fmt.Errorf("clear session for %s: %w", phone, err)
	}
	return nil
}

// ClearAll removes every session key. Used by the administrative reset.
func (r *sessionRepository) ClearAll(ctx context.Context) error {
	iter := r.redisClient.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("clear all sessions: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan sessions: %w", err)
	}
	return nil
}

func sessionKey(phone string) string {
	return sessionKeyPrefix + phone
}
