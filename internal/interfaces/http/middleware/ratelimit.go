package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lecture-tranquille-api/internal/infrastructure/persistence/redis"
	"lecture-tranquille-api/internal/interfaces/http/dto"
	"lecture-tranquille-api/pkg/errors"
	"lecture-tranquille-api/pkg/logger"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled bool
	// Requests 每个窗口内允许的请求数
	Requests int
	Window   time.Duration
	// Endpoint 限流键中的接口名
	Endpoint string
}

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Remaining(ctx context.Context, key string, limit int, window time.Duration) (int, error)
}

// RateLimit 按会话限流的中间件，会话 ID 取自路径参数 sid
func RateLimit(cfg RateLimitConfig, limiter RateLimiter) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	if cfg.Requests <= 0 {
		cfg.Requests = 10
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "default"
	}

	return func(c *gin.Context) {
		sid := c.Param("sid")
		if sid == "" {
			sid = "anonymous"
		}
		key := redis.BuildSessionRateLimitKey(sid, cfg.Endpoint)
		ctx := c.Request.Context()

		allowed, err := limiter.Allow(ctx, key, cfg.Requests, cfg.Window)
		if err != nil {
			// 限流器故障时放行
			logger.Warn(ctx, "rate limiter unavailable", "key", key, "error", err.Error())
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
			dto.ErrorWithDetail(c, http.StatusTooManyRequests, "rate limit exceeded", &dto.ErrorDetail{
				ErrorCode: string(errors.CodeTooManyRequests),
			})
			c.Abort()
			return
		}

		if remaining, err := limiter.Remaining(ctx, key, cfg.Requests, cfg.Window); err == nil {
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}
		c.Next()
	}
}
