//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"lecture-tranquille-api/internal/application/catalog"
	"lecture-tranquille-api/internal/application/generation"
	"lecture-tranquille-api/internal/application/reading"
	"lecture-tranquille-api/internal/config"
	"lecture-tranquille-api/internal/domain/repository"
	"lecture-tranquille-api/internal/infrastructure/illustration"
	"lecture-tranquille-api/internal/infrastructure/llm"
	"lecture-tranquille-api/internal/infrastructure/persistence/database"
	"lecture-tranquille-api/internal/interfaces/http/handler"
	"lecture-tranquille-api/internal/interfaces/http/router"
	"lecture-tranquille-api/internal/workflow/chain"
	workflowport "lecture-tranquille-api/internal/workflow/port"
	workflowprompt "lecture-tranquille-api/internal/workflow/prompt"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		DatabaseSet,
		RedisSet,
		GenerationSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializeBootstrap 初始化数据库与插图依赖（用于 bootstrap 命令）
func InitializeBootstrap(ctx context.Context, cfg *config.Config) (*Bootstrap, func(), error) {
	wire.Build(
		DatabaseSet,
		ProvideRedisClientOptional,
		ProvideCatalogCache,
		ProvideIllustrationConfig,
		illustration.NewRenderer,
		wire.Struct(new(Bootstrap), "*"),
	)
	return nil, nil, nil
}

// DatabaseSet 数据库提供者集合
var DatabaseSet = wire.NewSet(
	ProvideDatabaseClient,
	database.NewTxManager,
	database.NewCatalogRepository,
	database.NewResultRepository,
	wire.Bind(new(repository.Transactor), new(*database.TxManager)),
	wire.Bind(new(repository.ResultRepository), new(*database.ResultRepository)),
)

// RedisSet Redis 相关提供者集合，Redis 未启用时各组件退化为进程内实现或关闭
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvideCatalogCache,
	ProvideCatalogRepository,
	ProvideSessionStore,
	ProvideRateLimiter,
)

// GenerationSet 文本生成提供者集合
var GenerationSet = wire.NewSet(
	llm.NewEinoFactory,
	workflowprompt.NewRegistry,
	workflowprompt.NewBuilder,
	ProvideChildTextChain,
	generation.NewClient,
	generation.NewService,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	wire.Bind(new(generation.TextChain), new(*chain.ChildTextChain)),
	wire.Bind(new(generation.Generator), new(*generation.Client)),
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideIllustrationConfig,
	illustration.NewRenderer,
	wire.Bind(new(catalog.IllustrationRenderer), new(*illustration.Renderer)),
	reading.NewService,
	catalog.NewService,
	ProvideHealthHandler,
	handler.NewCatalogHandler,
	handler.NewSessionHandler,
	wire.Struct(new(router.RouterHandlers), "*"),
	router.NewWithDeps,
)
