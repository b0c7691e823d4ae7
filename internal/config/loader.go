package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// DirEnv 覆盖配置目录的环境变量
const DirEnv = "LECTURE_CONFIG_DIR"

// Load 从 configs 目录（或 LECTURE_CONFIG_DIR）加载配置
func Load() (*Config, error) {
	dir := os.Getenv(DirEnv)
	if dir == "" {
		dir = "configs"
	}
	return LoadFrom(dir)
}

// LoadFrom 依次叠加 config.yaml、config.<APP_ENV>.yaml 和环境变量，最后补齐默认值
func LoadFrom(dir string) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	v := viper.New()
	v.SetConfigType("yaml")
	layers := []struct {
		name     string
		optional bool
	}{
		{"config.yaml", false},
		{"config." + env + ".yaml", true},
	}
	for _, l := range layers {
		if err := mergeFile(v, filepath.Join(dir, l.name), l.optional); err != nil {
			return nil, err
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeFile 展开 ${VAR:default} 后合并进 v；optional 文件不存在时跳过
func mergeFile(v *viper.Viper, path string, optional bool) error {
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
	case optional && os.IsNotExist(err):
		return nil
	default:
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := v.MergeConfig(strings.NewReader(expandEnv(string(raw)))); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ${NAME} 或 ${NAME:default}
var placeholder = regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

// expandEnv 替换占位符；变量未设置且无默认值时替换为空串
func expandEnv(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		parts := placeholder.FindStringSubmatch(m)
		if val, ok := os.LookupEnv(parts[1]); ok {
			return val
		}
		return parts[2]
	})
}

var defaults = map[string]any{
	"app.name":    "lecture-tranquille-api",
	"app.version": "v0.0.0",
	"app.env":     "development",

	"server.http.host":          "0.0.0.0",
	"server.http.port":          8080,
	"server.http.read_timeout":  "30s",
	"server.http.write_timeout": "90s",
	"server.http.idle_timeout":  "120s",

	"database.driver":                      DriverSQLite,
	"database.sqlite.path":                 "lecture.db",
	"database.postgres.host":               "localhost",
	"database.postgres.port":               5432,
	"database.postgres.user":               "postgres",
	"database.postgres.database":           "lecture",
	"database.postgres.ssl_mode":           "disable",
	"database.postgres.max_open_conns":     20,
	"database.postgres.max_idle_conns":     5,
	"database.postgres.conn_max_lifetime":  "30m",
	"database.postgres.conn_max_idle_time": "5m",

	"cache.redis.enabled":        false,
	"cache.redis.host":           "localhost",
	"cache.redis.port":           6379,
	"cache.redis.db":             0,
	"cache.redis.pool_size":      20,
	"cache.redis.min_idle_conns": 2,
	"cache.redis.dial_timeout":   "5s",
	"cache.redis.read_timeout":   "3s",
	"cache.redis.write_timeout":  "3s",
	"cache.catalog_ttl":          "10m",

	"session.store":      SessionStoreMemory,
	"session.ttl":        "12h",
	"session.key_prefix": "lecture:session",

	"llm.default_provider":              "openrouter",
	"llm.providers.openrouter.base_url": "https://openrouter.ai/api/v1",
	"llm.providers.openrouter.model":    "meta-llama/llama-3.2-3b-instruct:free",
	"llm.providers.openrouter.timeout":  "60s",

	"illustration.dir":    "images",
	"illustration.width":  400,
	"illustration.height": 300,

	"observability.logging.level":       "info",
	"observability.logging.format":      "json",
	"observability.tracing.enabled":     false,
	"observability.tracing.endpoint":    "localhost:4317",
	"observability.tracing.sample_rate": 1.0,
	"observability.metrics.enabled":     true,
	"observability.metrics.path":        "/metrics",

	"security.rate_limit.enabled":   true,
	"security.rate_limit.requests":  10,
	"security.rate_limit.window":    "1m",
	"security.cors.allowed_origins": []string{"*"},
}
