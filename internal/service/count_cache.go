package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bibocomdigital/bibomarket-frontend/internal/model"
	"github.com/bibocomdigital/bibomarket-frontend/pkg/logger"
)

// countCache holds short-lived follower/following counter snapshots.
// Snapshots are derived state: a miss or a Redis failure just falls
// through to the backend, never to the caller.
type countCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func newCountCache(rdb *redis.Client, ttl time.Duration) *countCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &countCache{rdb: rdb, ttl: ttl}
}

func countKey(userID int64) string { return fmt.Sprintf("follow:counts:%d", userID) }

func (c *countCache) get(ctx context.Context, userID int64) (*model.FollowCounts, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, countKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var counts model.FollowCounts
	if err := json.Unmarshal(data, &counts); err != nil {
		return nil, false
	}
	return &counts, true
}

func (c *countCache) set(ctx context.Context, userID int64, counts *model.FollowCounts) {
	if c == nil || c.rdb == nil {
		return
	}
	payload, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, countKey(userID), payload, c.ttl).Err(); err != nil {
		logger.Warn("count cache set failed", zap.Int64("user", userID), zap.Error(err))
	}
}

// invalidate drops the snapshot after a mutation so the next read
// re-derives it from server truth.
func (c *countCache) invalidate(ctx context.Context, userID int64) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, countKey(userID)).Err(); err != nil {
		logger.Warn("count cache invalidate failed", zap.Int64("user", userID), zap.Error(err))
	}
}
