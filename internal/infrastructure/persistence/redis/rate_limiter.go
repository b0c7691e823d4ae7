package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// slidingWindow 原子地清理窗口外记录、计数并在未超限时记录本次请求
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count >= limit then
  return 0
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window * 2)
return 1
`)

// RateLimiter 滑动窗口限流器
type RateLimiter struct {
	client *Client
	now    func() time.Time
}

// NewRateLimiter 创建限流器
func NewRateLimiter(client *Client) *RateLimiter {
	return &RateLimiter{client: client, now: time.Now}
}

// BuildSessionRateLimitKey 构建会话级限流键
func BuildSessionRateLimitKey(sessionID, endpoint string) string {
	return fmt.Sprintf("ratelimit:%s:%s", sessionID, endpoint)
}

// Allow 窗口内请求数未达 limit 时放行并计入本次请求
func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := l.now().UnixMilli()
	var allowed bool
	err := l.client.do(ctx, "RateLimit", key, func(ctx context.Context) error {
		trace.SpanFromContext(ctx).SetAttributes(
			attribute.Int("ratelimit.limit", limit),
			attribute.Int64("ratelimit.window_ms", window.Milliseconds()),
		)
		member := strconv.FormatInt(now, 10) + "-" + uuid.NewString()
		n, err := slidingWindow.Run(ctx, l.client.rdb, []string{key}, now, window.Milliseconds(), limit, member).Int()
		if err != nil {
			return err
		}
		allowed = n == 1
		trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("ratelimit.allowed", allowed))
		return nil
	})
	return allowed, err
}

// Remaining 当前窗口内的剩余配额
func (l *RateLimiter) Remaining(ctx context.Context, key string, limit int, window time.Duration) (int, error) {
	now := l.now().UnixMilli()
	var count int64
	err := l.client.do(ctx, "ZCount", key, func(ctx context.Context) error {
		var err error
		count, err = l.client.rdb.ZCount(ctx, key, strconv.FormatInt(now-window.Milliseconds(), 10), "+inf").Result()
		return err
	})
	if err != nil {
		return 0, err
	}
	return max(limit-int(count), 0), nil
}
