package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists analysis records in Redis. Each record is stored as a
// JSON string; per-user history ordering lives in a sorted set scored by
// creation time.
type RedisStore struct {
	client       *redis.Client
	keyPrefix    string
	ttl          time.Duration
	historyLimit int
	logger       *errors.Logger
}

// NewRedisStore creates a Redis-backed store and verifies connectivity
func NewRedisStore(cfg config.StorageConfig, logger *errors.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"Failed to connect to Redis", err).WithContext("addr", cfg.Redis.Addr)
	}

	if logger != nil {
		logger.Info("Connected to Redis store",
			"addr", cfg.Redis.Addr,
			"db", cfg.Redis.DB,
			"key_prefix", cfg.Redis.KeyPrefix,
			"history_limit", cfg.HistoryLimit)
	}

	return &RedisStore{
		client:       client,
		keyPrefix:    cfg.Redis.KeyPrefix,
		ttl:          cfg.Redis.TTL,
		historyLimit: cfg.HistoryLimit,
		logger:       logger,
	}, nil
}

func (s *RedisStore) recordKey(userID, analysisID string) string {
	return fmt.Sprintf("%s:analysis:%s:%s", s.keyPrefix, userID, analysisID)
}

func (s *RedisStore) historyKey(userID string) string {
	return fmt.Sprintf("%s:history:%s", s.keyPrefix, userID)
}

// Save stores the record and trims the user's history sorted set
func (s *RedisStore) Save(ctx context.Context, record *AnalysisRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"Failed to encode analysis record", err)
	}

	historyKey := s.historyKey(record.UserID)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.recordKey(record.UserID, record.ID), payload, s.ttl)
	pipe.ZAdd(ctx, historyKey, redis.Z{
		Score:  float64(record.CreatedAt.UnixNano()),
		Member: record.ID,
	})
	if s.ttl > 0 {
		pipe.Expire(ctx, historyKey, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"Failed to save analysis record", err).WithContext("analysis_id", record.ID)
	}

	return s.trimHistory(ctx, record.UserID)
}

// trimHistory drops the oldest history entries beyond the limit
func (s *RedisStore) trimHistory(ctx context.Context, userID string) error {
	if s.historyLimit <= 0 {
		return nil
	}

	historyKey := s.historyKey(userID)
	count, err := s.client.ZCard(ctx, historyKey).Result()
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"Failed to read history size", err)
	}
	overflow := count - int64(s.historyLimit)
	if overflow <= 0 {
		return nil
	}

	oldest, err := s.client.ZRange(ctx, historyKey, 0, overflow-1).Result()
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"Failed to read oldest history entries", err)
	}

	pipe := s.client.TxPipeline()
	for _, id := range oldest {
		pipe.Del(ctx, s.recordKey(userID, id))
		pipe.ZRem(ctx, historyKey, id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"Failed to trim history", err)
	}

	return nil
}

// Get returns the user's record
func (s *RedisStore) Get(ctx context.Context, userID, analysisID string) (*AnalysisRecord, error) {
	payload, err := s.client.Get(ctx, s.recordKey(userID, analysisID)).Bytes()
	if err == redis.Nil {
		return nil, notFoundError(analysisID)
	}
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"Failed to load analysis record", err).WithContext("analysis_id", analysisID)
	}

	var record AnalysisRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"Failed to decode analysis record", err).WithContext("analysis_id", analysisID)
	}

	return &record, nil
}

// List returns the user's history summaries, newest first
func (s *RedisStore) List(ctx context.Context, userID string) ([]types.AnalysisSummary, error) {
	ids, err := s.client.ZRevRange(ctx, s.historyKey(userID), 0, -1).Result()
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"Failed to load history", err)
	}

	summaries := make([]types.AnalysisSummary, 0, len(ids))
	for _, id := range ids {
		record, err := s.Get(ctx, userID, id)
		if err != nil {
			// Expired record still referenced by the sorted set; skip it.
			continue
		}
		summaries = append(summaries, record.Summary())
	}

	return summaries, nil
}

// Delete removes the user's record
func (s *RedisStore) Delete(ctx context.Context, userID, analysisID string) error {
	deleted, err := s.client.Del(ctx, s.recordKey(userID, analysisID)).Result()
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"Failed to delete analysis record", err).WithContext("analysis_id", analysisID)
	}
	if deleted == 0 {
		return notFoundError(analysisID)
	}

	if err := s.client.ZRem(ctx, s.historyKey(userID), analysisID).Err(); err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"Failed to remove history entry", err).WithContext("analysis_id", analysisID)
	}

	return nil
}

// Ping reports Redis reachability
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreUnavailable,
			"Redis ping failed", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
