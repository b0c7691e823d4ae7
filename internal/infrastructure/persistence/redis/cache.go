package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"lecture-tranquille-api/pkg/logger"
	"lecture-tranquille-api/pkg/metrics"
)

// Cache JSON 读穿缓存，同一键的并发未命中只加载一次
type Cache struct {
	client *Client
	prefix string
	group  singleflight.Group
}

// NewCache 创建缓存，所有键都以 prefix: 开头
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) key(parts ...any) string {
	key := c.prefix
	for _, p := range parts {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}

// Fetch 读取 key 并解码到 dst；未命中时调用 load 并回填。
// Redis 故障时直接使用 load 的结果，不回填。
func (c *Cache) Fetch(ctx context.Context, key string, ttl time.Duration, dst any, load func(ctx context.Context) (any, error)) error {
	var raw []byte
	err := c.client.do(ctx, "Get", key, func(ctx context.Context) error {
		var err error
		raw, err = c.client.rdb.Get(ctx, key).Bytes()
		return err
	})
	switch {
	case err == nil:
		metrics.CacheLookups.WithLabelValues(c.prefix, "hit").Inc()
		return json.Unmarshal(raw, dst)
	case !IsNil(err):
		metrics.CacheLookups.WithLabelValues(c.prefix, "error").Inc()
		logger.Warn(ctx, "cache unavailable, reading through", "key", key, "error", err.Error())
		v, err := load(ctx)
		if err != nil {
			return err
		}
		return reencode(v, dst)
	}

	metrics.CacheLookups.WithLabelValues(c.prefix, "miss").Inc()
	v, err, _ := c.group.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		_ = c.client.do(ctx, "Set", key, func(ctx context.Context) error {
			return c.client.rdb.Set(ctx, key, data, ttl).Err()
		})
		return data, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(v.([]byte), dst)
}

func reencode(v, dst any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// Purge 删除 prefix 下的全部键，返回删除数量
func (c *Cache) Purge(ctx context.Context) (int, error) {
	deleted := 0
	err := c.client.do(ctx, "Purge", c.prefix+":*", func(ctx context.Context) error {
		iter := c.client.rdb.Scan(ctx, 0, c.prefix+":*", 100).Iterator()
		batch := make([]string, 0, 100)
		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			n, err := c.client.rdb.Del(ctx, batch...).Result()
			deleted += int(n)
			batch = batch[:0]
			return err
		}
		for iter.Next(ctx) {
			batch = append(batch, iter.Val())
			if len(batch) == cap(batch) {
				if err := flush(); err != nil {
					return err
				}
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
		return flush()
	})
	return deleted, err
}
