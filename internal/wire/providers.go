package wire

import (
	"context"
	"fmt"
	"time"

	"lecture-tranquille-api/internal/config"
	"lecture-tranquille-api/internal/domain/repository"
	"lecture-tranquille-api/internal/infrastructure/illustration"
	"lecture-tranquille-api/internal/infrastructure/persistence/database"
	"lecture-tranquille-api/internal/infrastructure/persistence/memory"
	"lecture-tranquille-api/internal/infrastructure/persistence/redis"
	"lecture-tranquille-api/internal/interfaces/http/handler"
	"lecture-tranquille-api/internal/interfaces/http/middleware"
	"lecture-tranquille-api/internal/workflow/chain"
	workflowport "lecture-tranquille-api/internal/workflow/port"
	workflowprompt "lecture-tranquille-api/internal/workflow/prompt"
	"lecture-tranquille-api/pkg/errors"
	"lecture-tranquille-api/pkg/logger"
)

const sessionSweepInterval = time.Minute

// Bootstrap 初始化命令所需的依赖
type Bootstrap struct {
	DB        *database.Client
	TxManager *database.TxManager
	Catalog   *database.CatalogRepository
	// CatalogCache Redis 未启用或未配置缓存时为 nil
	CatalogCache *redis.CachedCatalog
	Renderer     *illustration.Renderer
}

// ProvideDatabaseClient 提供数据库客户端
func ProvideDatabaseClient(cfg *config.Config) (*database.Client, func(), error) {
	client, err := database.NewClient(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClientOptional Redis 未启用时返回 nil；启用但不可达时启动失败
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		logger.Info(ctx, "redis disabled, using in-process session store")
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideCatalogCache 目录缓存，需要 Redis 且 catalog_ttl > 0
func ProvideCatalogCache(cfg *config.Config, client *redis.Client, repo *database.CatalogRepository) *redis.CachedCatalog {
	if client == nil || cfg.Cache.CatalogTTL <= 0 {
		return nil
	}
	return redis.NewCachedCatalog(repo, redis.NewCache(client, redis.CatalogCachePrefix), cfg.Cache.CatalogTTL)
}

// ProvideCatalogRepository 有缓存时走缓存，否则直接读数据库
func ProvideCatalogRepository(cached *redis.CachedCatalog, repo *database.CatalogRepository) repository.CatalogRepository {
	if cached != nil {
		return cached
	}
	return repo
}

// ProvideSessionStore 按配置选择会话存储
func ProvideSessionStore(ctx context.Context, cfg *config.Config, client *redis.Client) (repository.SessionStore, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		if client == nil {
			return nil, nil, errors.New(errors.CodeConfigurationError, "session store redis requires cache.redis.enabled")
		}
		return redis.NewSessionStore(client, cfg.Session.KeyPrefix, cfg.Session.TTL), func() {}, nil
	case config.SessionStoreMemory, "":
		store := memory.NewSessionStore(cfg.Session.TTL)
		sweepCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		go store.RunSweeper(sweepCtx, sessionSweepInterval)
		return store, cancel, nil
	default:
		return nil, nil, errors.New(errors.CodeConfigurationError, fmt.Sprintf("unknown session store: %s", cfg.Session.Store))
	}
}

// ProvideRateLimiter Redis 未启用时不限流
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(db *database.Client, client *redis.Client) *handler.HealthHandler {
	if client == nil {
		return handler.NewHealthHandler(db, nil)
	}
	return handler.NewHealthHandler(db, client)
}

// ProvideChildTextChain 使用默认提供商的生成链
func ProvideChildTextChain(cfg *config.Config, factory workflowport.ChatModelFactory, builder *workflowprompt.Builder) *chain.ChildTextChain {
	return chain.NewChildTextChain(factory, builder, cfg.LLM.DefaultProvider)
}

// ProvideIllustrationConfig 提供插图配置
func ProvideIllustrationConfig(cfg *config.Config) *config.IllustrationConfig {
	return &cfg.Illustration
}
