// Package redis 提供会话存储、目录缓存和限流的 Redis 实现
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lecture-tranquille-api/internal/config"
)

var tracer = otel.Tracer("redis")

const (
	defaultPoolSize    = 10
	defaultDialTimeout = 5 * time.Second
)

// Client Redis 客户端
type Client struct {
	rdb *redis.Client
}

func options(cfg *config.RedisConfig) *redis.Options {
	opts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = defaultPoolSize
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}
	return opts
}

// NewClient 创建 Redis 客户端并验证连接
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(options(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), defaultDialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}

// HealthCheck 健康检查
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.do(ctx, "Ping", "", func(ctx context.Context) error {
		res, err := c.rdb.Ping(ctx).Result()
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
		if res != "PONG" {
			return fmt.Errorf("unexpected ping response: %s", res)
		}
		return nil
	})
}

// do 在 span 中执行一次命令；redis.Nil 不记为错误
func (c *Client) do(ctx context.Context, op, key string, fn func(ctx context.Context) error) error {
	attrs := []attribute.KeyValue{attribute.String("db.operation", op)}
	if key != "" {
		attrs = append(attrs, attribute.String("redis.key", key))
	}
	ctx, span := tracer.Start(ctx, "redis."+op, trace.WithAttributes(attrs...))
	defer span.End()

	err := fn(ctx)
	if err != nil && !IsNil(err) {
		span.RecordError(err)
	}
	return err
}

// IsNil 检查是否为 redis.Nil 错误
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
