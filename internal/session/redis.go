package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/petshopzn/storefront-gateway/internal/config"
	"github.com/petshopzn/storefront-gateway/internal/domain"
)

// RedisStore persists sessions in Redis, one token key and one user key per
// session id, mirroring the two durable client entries.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis using the provided configuration.
func NewRedisStore(cfg config.RedisConfig, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &RedisStore{client: client}
}

// Close closes the client.
func (s *RedisStore) Close() {
	if s != nil && s.client != nil {
		_ = s.client.Close()
	}
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return errors.New("redis client not configured")
	}
	return s.client.Ping(ctx).Err()
}

func tokenKey(sid string) string { return "session:" + sid + ":token" }
func userKey(sid string) string  { return "session:" + sid + ":user" }

// Read loads both entries for sid. A missing or corrupt slot yields no
// session; transport failures are returned so callers can distinguish them.
func (s *RedisStore) Read(ctx context.Context, sid string) (*domain.Session, error) {
	values, err := s.client.MGet(ctx, tokenKey(sid), userKey(sid)).Result()
	if err != nil {
		return nil, err
	}
	token, _ := values[0].(string)
	rawUser, _ := values[1].(string)
	return decodeSession(token, rawUser), nil
}

// Write stores both entries atomically with the given lifetime.
func (s *RedisStore) Write(ctx context.Context, sid string, sess *domain.Session, ttl time.Duration) error {
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, tokenKey(sid), sess.Token, ttl)
	pipe.Set(ctx, userKey(sid), raw, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Clear removes both entries.
func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	return s.client.Del(ctx, tokenKey(sid), userKey(sid)).Err()
}
