package redis

import (
	"context"
	"time"

	"lecture-tranquille-api/internal/domain/entity"
	"lecture-tranquille-api/internal/domain/repository"
	"lecture-tranquille-api/pkg/logger"
)

// CatalogCachePrefix 目录缓存键前缀
const CatalogCachePrefix = "catalog"

// CachedCatalog 目录只读缓存，目录只在初始化时写入
type CachedCatalog struct {
	next  repository.CatalogRepository
	cache *Cache
	ttl   time.Duration
}

// NewCachedCatalog 包装目录仓储
func NewCachedCatalog(next repository.CatalogRepository, cache *Cache, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{next: next, cache: cache, ttl: ttl}
}

func fetch[T any](ctx context.Context, c *CachedCatalog, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := c.cache.Fetch(ctx, key, c.ttl, &out, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	return out, err
}

// ListTextsByLevel 按学段获取文本
func (c *CachedCatalog) ListTextsByLevel(ctx context.Context, level string) ([]*entity.Text, error) {
	return fetch(ctx, c, c.cache.key("texts", level), func(ctx context.Context) ([]*entity.Text, error) {
		return c.next.ListTextsByLevel(ctx, level)
	})
}

// GetText 获取文本；不存在的 ID 也会缓存（null），返回 nil, nil
func (c *CachedCatalog) GetText(ctx context.Context, id int64) (*entity.Text, error) {
	return fetch(ctx, c, c.cache.key("text", id), func(ctx context.Context) (*entity.Text, error) {
		return c.next.GetText(ctx, id)
	})
}

// ListMultipleChoice 获取选择题
func (c *CachedCatalog) ListMultipleChoice(ctx context.Context, textID int64) ([]*entity.MultipleChoiceQuestion, error) {
	return fetch(ctx, c, c.cache.key("qcm", textID), func(ctx context.Context) ([]*entity.MultipleChoiceQuestion, error) {
		return c.next.ListMultipleChoice(ctx, textID)
	})
}

// ListOpenQuestions 获取开放题
func (c *CachedCatalog) ListOpenQuestions(ctx context.Context, textID int64) ([]*entity.OpenQuestion, error) {
	return fetch(ctx, c, c.cache.key("open", textID), func(ctx context.Context) ([]*entity.OpenQuestion, error) {
		return c.next.ListOpenQuestions(ctx, textID)
	})
}

// Invalidate 清空目录缓存，重新导入目录后调用
func (c *CachedCatalog) Invalidate(ctx context.Context) error {
	n, err := c.cache.Purge(ctx)
	if err != nil {
		return err
	}
	logger.Info(ctx, "catalog cache invalidated", "keys", n)
	return nil
}
