package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"skilltracker_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "skilltracker:report"

// ReportCache 以 JSON 形式缓存只读报表。
// rdb 为 nil 或 TTL 为 0 时关闭；Redis 出错只记录日志并回源。
type ReportCache struct {
	rdb *redis.Client
	ttl atomic.Int64
	log *zap.Logger
}

func NewReportCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *ReportCache {
	if log == nil {
		log = zap.NewNop()
	}
	c := &ReportCache{rdb: rdb, log: log}
	c.SetTTL(ttl)
	return c
}

// SetTTL 配置热更新时调用
func (c *ReportCache) SetTTL(ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}
	c.ttl.Store(int64(ttl))
}

func (c *ReportCache) TTL() time.Duration {
	return time.Duration(c.ttl.Load())
}

func (c *ReportCache) Enabled() bool {
	return c != nil && c.rdb != nil && c.TTL() > 0
}

func Key(userID uint, kind string) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, userID, kind)
}

// Get 命中时把缓存内容解码到 dest
func (c *ReportCache) Get(ctx context.Context, userID uint, kind string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}

	raw, err := c.rdb.Get(ctx, Key(userID, kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		monitoring.ReportCacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	if err != nil {
		monitoring.ReportCacheLookups.WithLabelValues("error").Inc()
		c.log.Warn("report cache read failed", zap.String("kind", kind), zap.Uint("user_id", userID), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		monitoring.ReportCacheLookups.WithLabelValues("error").Inc()
		c.log.Warn("report cache entry corrupted", zap.String("kind", kind), zap.Uint("user_id", userID), zap.Error(err))
		return false
	}
	monitoring.ReportCacheLookups.WithLabelValues("hit").Inc()
	return true
}

func (c *ReportCache) Set(ctx context.Context, userID uint, kind string, value interface{}) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("report cache encode failed", zap.String("kind", kind), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, Key(userID, kind), raw, c.TTL()).Err(); err != nil {
		c.log.Warn("report cache write failed", zap.String("kind", kind), zap.Uint("user_id", userID), zap.Error(err))
	}
}

// Invalidate 删除用户的全部报表缓存
func (c *ReportCache) Invalidate(ctx context.Context, userID uint) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	pattern := fmt.Sprintf("%s:%d:*", keyPrefix, userID)
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Remember 先读缓存，未命中时调用 load 并回写
func Remember[T any](ctx context.Context, c *ReportCache, userID uint, kind string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if c.Get(ctx, userID, kind, &cached) {
		return cached, nil
	}
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	c.Set(ctx, userID, kind, v)
	return v, nil
}
