// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// HealthChecker 依赖健康检查
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

const readinessTimeout = 2 * time.Second

// HealthHandler 存活与就绪检查
type HealthHandler struct {
	db    HealthChecker
	redis HealthChecker
}

// NewHealthHandler redis 未启用时传 nil
func NewHealthHandler(db HealthChecker, redis HealthChecker) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status string `json:"status"`
}

// DependencyStatus 单个依赖的检查结果
type DependencyStatus struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

// ReadinessResponse 就绪检查响应
type ReadinessResponse struct {
	Status string                       `json:"status"`
	Checks map[string]*DependencyStatus `json:"checks"`
}

// Health 健康检查
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Live 存活检查
// @Tags System
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready 就绪检查，数据库必需，Redis 仅在启用时检查。各依赖并行探测
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} ReadinessResponse
// @Failure 503 {object} ReadinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	resp := ReadinessResponse{Status: "ok", Checks: map[string]*DependencyStatus{
		"database": {Status: "missing", Error: "database client not configured"},
		"redis":    {Status: "disabled"},
	}}
	probes := map[string]HealthChecker{}
	if h.db != nil {
		probes["database"] = h.db
	}
	if h.redis != nil {
		probes["redis"] = h.redis
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for name, checker := range probes {
		g.Go(func() error {
			st := probe(gctx, checker)
			mu.Lock()
			resp.Checks[name] = st
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if resp.Checks["database"].Status != "ok" || resp.Checks["redis"].Status == "error" {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func probe(ctx context.Context, checker HealthChecker) *DependencyStatus {
	start := time.Now()
	st := &DependencyStatus{Status: "ok"}
	if err := checker.HealthCheck(ctx); err != nil {
		st.Status = "error"
		st.Error = err.Error()
	}
	st.LatencyMs = time.Since(start).Milliseconds()
	return st
}
