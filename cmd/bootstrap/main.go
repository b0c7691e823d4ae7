// Package main 初始化命令：建表、导入文本目录、预生成插图
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"lecture-tranquille-api/internal/config"
	"lecture-tranquille-api/internal/domain/entity"
	"lecture-tranquille-api/internal/infrastructure/seed"
	"lecture-tranquille-api/internal/wire"
	"lecture-tranquille-api/pkg/logger"
)

var seedReset bool

var (
	rootCmd = &cobra.Command{
		Use:           "bootstrap",
		Short:         "Prepare the reading catalog database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog and results tables",
		RunE:  runMigrate,
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Load the embedded text catalog when the database is empty",
		RunE:  runSeed,
	}

	illustrationsCmd = &cobra.Command{
		Use:   "illustrations",
		Short: "Render every missing text illustration",
		RunE:  runIllustrations,
	}
)

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "Delete texts, questions and results before loading")
	rootCmd.AddCommand(migrateCmd, seedCmd, illustrationsCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}
}

// setup 加载配置并初始化依赖
func setup(ctx context.Context) (*wire.Bootstrap, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Observability.Logging.Level, "text")
	return wire.InitializeBootstrap(ctx, cfg)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	deps, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := deps.DB.AutoMigrate(ctx); err != nil {
		return err
	}
	fmt.Printf("Schema migrated (%s)\n", deps.DB.Driver())
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	deps, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := deps.DB.AutoMigrate(ctx); err != nil {
		return err
	}
	catalog, err := seed.Load()
	if err != nil {
		return err
	}
	n, err := seed.NewSeeder(deps.Catalog, deps.TxManager).Seed(ctx, catalog, seedReset)
	if err != nil {
		return err
	}
	if n > 0 && deps.CatalogCache != nil {
		if err := deps.CatalogCache.Invalidate(ctx); err != nil {
			logger.Warn(ctx, "failed to invalidate catalog cache", "error", err.Error())
		}
	}
	fmt.Printf("Texts inserted: %d\n", n)
	return nil
}

func runIllustrations(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	deps, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	rendered := 0
	for _, band := range entity.AgeBands() {
		texts, err := deps.Catalog.ListTextsByLevel(ctx, band.Level)
		if err != nil {
			return err
		}
		for _, t := range texts {
			path, err := deps.Renderer.Ensure(ctx, t)
			if err != nil {
				return fmt.Errorf("text %d: %w", t.ID, err)
			}
			logger.Debug(ctx, "illustration ready", "text_id", t.ID, "path", path)
			rendered++
		}
	}
	fmt.Printf("Illustrations ready: %d\n", rendered)
	return nil
}
