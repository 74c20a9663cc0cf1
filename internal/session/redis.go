package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ortholink/exercise-service/internal/models"
)

// redisStore keeps session state in Redis so multiple service instances can
// share it. State still expires: the TTL bounds abandoned sessions, and an
// explicit Delete (logout) removes everything at once.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func sessionKey(id string) string   { return "session:" + id }
func completedKey(id string) string { return "session:" + id + ":completed" }
func locksKey(id, exerciseID string) string {
	return "session:" + id + ":locks:" + exerciseID
}

func (s *redisStore) Create(ctx context.Context, session *models.LearnerSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ok, err := s.client.SetNX(ctx, sessionKey(session.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return ErrAlreadyExists
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*models.LearnerSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var session models.LearnerSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.ensure(ctx, id); err != nil {
		return err
	}

	keys := []string{sessionKey(id), completedKey(id)}
	iter := s.client.Scan(ctx, 0, locksKey(id, "*"), 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan session locks: %w", err)
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *redisStore) MarkCompleted(ctx context.Context, sessionID, exerciseID string) (bool, error) {
	if err := s.ensure(ctx, sessionID); err != nil {
		return false, err
	}

	added, err := s.client.SAdd(ctx, completedKey(sessionID), exerciseID).Result()
	if err != nil {
		return false, fmt.Errorf("mark completed: %w", err)
	}
	s.client.Expire(ctx, completedKey(sessionID), s.ttl)
	return added > 0, nil
}

func (s *redisStore) CompletedSet(ctx context.Context, sessionID string) (map[string]bool, error) {
	if err := s.ensure(ctx, sessionID); err != nil {
		return nil, err
	}

	members, err := s.client.SMembers(ctx, completedKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load completed set: %w", err)
	}
	completed := make(map[string]bool, len(members))
	for _, id := range members {
		completed[id] = true
	}
	return completed, nil
}

func (s *redisStore) LockItem(ctx context.Context, sessionID, exerciseID, subItemID string) (int, error) {
	if err := s.ensure(ctx, sessionID); err != nil {
		return 0, err
	}

	key := locksKey(sessionID, exerciseID)
	if err := s.client.SAdd(ctx, key, subItemID).Err(); err != nil {
		return 0, fmt.Errorf("lock item: %w", err)
	}
	s.client.Expire(ctx, key, s.ttl)

	locked, err := s.client.SCard(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("count locked items: %w", err)
	}
	return int(locked), nil
}

func (s *redisStore) LockedItems(ctx context.Context, sessionID, exerciseID string) (map[string]bool, error) {
	if err := s.ensure(ctx, sessionID); err != nil {
		return nil, err
	}

	members, err := s.client.SMembers(ctx, locksKey(sessionID, exerciseID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load locked items: %w", err)
	}
	locked := make(map[string]bool, len(members))
	for _, id := range members {
		locked[id] = true
	}
	return locked, nil
}

func (s *redisStore) ensure(ctx context.Context, sessionID string) error {
	exists, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if exists == 0 {
		return ErrNotFound
	}
	return nil
}
