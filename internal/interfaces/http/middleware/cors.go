package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig 跨域配置，空字段取默认值
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

func orDefault(v []string, def ...string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}

// CORS 跨域中间件。会话 ID 放在路径里，不需要凭据
func CORS(cfg CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: orDefault(cfg.AllowedOrigins, "*"),
		AllowMethods: orDefault(cfg.AllowedMethods,
			http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions),
		AllowHeaders:  orDefault(cfg.AllowedHeaders, "Origin", "Content-Type", "X-Request-ID"),
		ExposeHeaders: []string{"X-Request-ID", "X-Trace-ID", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:        12 * time.Hour,
	})
}
