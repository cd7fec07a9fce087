package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisSlotKeyPrefix namespaces slot reservation keys.
const RedisSlotKeyPrefix = "slot:"

// RedisSlotService is the serialization point for booking commits. Reserving a
// slot is a single SETNX, so of all concurrent attempts on the same
// (date, time) exactly one wins; the database unique index remains the durable
// backstop if Redis state is lost.
type RedisSlotService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	loc         *time.Location
}

func NewRedisSlotService(redisClient *redis.Client, log *logrus.Logger, loc *time.Location) *RedisSlotService {
	return &RedisSlotService{
		redisClient: redisClient,
		log:         log,
		loc:         loc,
	}
}

// Reserve atomically claims the (date, time) slot. Returns false when another
// booking already holds it.
func (s *RedisSlotService) Reserve(ctx context.Context, date, tm string) (bool, error) {
	key := s.slotKey(date, tm)
	ok, err := s.redisClient.SetNX(ctx, key, "booked", s.slotTTL(date)).Result()
	if err != nil {
		s.log.Warnf("Failed to reserve slot %s: %+v", key, err)
		return false, fmt.Errorf("reserve slot %s: %w", key, err)
	}
	return ok, nil
}

// Release frees a reservation after a failed commit (compensation path).
func (s *RedisSlotService) Release(ctx context.Context, date, tm string) error {
	key := s.slotKey(date, tm)
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		s.log.Warnf("Failed to release slot %s: %+v", key, err)
		return fmt.Errorf("release slot %s: %w", key, err)
	}
	return nil
}

// ClearAll removes every reservation key. Used by the administrative reset.
func (s *RedisSlotService) ClearAll(ctx context.Context) error {
	iter := s.redisClient.Scan(ctx, 0, RedisSlotKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("clear slot reservations: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan slot reservations: %w", err)
	}
	return nil
}

func (s *RedisSlotService) slotKey(date, tm string) string {
	return fmt.Sprintf("%s%s:%s", RedisSlotKeyPrefix, date, tm)
}

// slotTTL keeps a reservation until 24 hours after the appointment date, so
// keys clean themselves up once the slot can no longer be booked.
func (s *RedisSlotService) slotTTL(date string) time.Duration {
	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return 24 * time.Hour
	}
	ttl := time.Until(day.AddDate(0, 0, 2))
	if ttl <= 0 {
		return time.Minute
	}
	return ttl
}
