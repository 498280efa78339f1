package kv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

// RedisStore persists keys in Redis, namespaced under a common prefix.
// Writes are published on a pub/sub channel so other processes sharing the
// same namespace observe changes. Observation only: subscribers are told
// which key changed, never handed the value, and nothing is coordinated.
type RedisStore struct {
	notifier
	client     *redis.Client
	namespace  string
	instanceID string
	pubsub     *redis.PubSub
	done       chan struct{}
}

// NewRedisStore connects to Redis and starts the change-feed listener.
func NewRedisStore(client *redis.Client, namespace string) (*RedisStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	s := &RedisStore{
		client:     client,
		namespace:  namespace,
		instanceID: uuid.New().String(),
		done:       make(chan struct{}),
	}

	s.pubsub = client.Subscribe(context.Background(), s.channel())
	go s.listen()

	logger.Info("Redis store initialized", map[string]interface{}{
		"namespace": namespace,
	})
	return s, nil
}

func (s *RedisStore) prefixed(key string) string {
	return s.namespace + ":" + key
}

func (s *RedisStore) channel() string {
	return s.namespace + ":changes"
}

func (s *RedisStore) Get(key string) (string, bool, error) {
	value, err := s.client.Get(context.Background(), s.prefixed(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(key, value string) error {
	ctx := context.Background()
	if err := s.client.Set(ctx, s.prefixed(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	s.notify(key)
	s.publish(ctx, key)
	return nil
}

func (s *RedisStore) Delete(key string) error {
	ctx := context.Background()
	if err := s.client.Del(ctx, s.prefixed(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	s.notify(key)
	s.publish(ctx, key)
	return nil
}

func (s *RedisStore) publish(ctx context.Context, key string) {
	payload := s.instanceID + "|" + key
	if err := s.client.Publish(ctx, s.channel(), payload).Err(); err != nil {
		logger.Warn("Failed to publish change notification", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// listen forwards change notifications from other instances to local
// subscribers. Our own publishes are skipped; local subscribers already
// heard about those synchronously in Set/Delete.
func (s *RedisStore) listen() {
	ch := s.pubsub.Channel()
	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			instanceID, key, found := strings.Cut(msg.Payload, "|")
			if !found || instanceID == s.instanceID {
				continue
			}
			s.notify(key)
		}
	}
}

func (s *RedisStore) Close() error {
	close(s.done)
	if err := s.pubsub.Close(); err != nil {
		logger.Warn("Failed to close redis pubsub", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return s.client.Close()
}
