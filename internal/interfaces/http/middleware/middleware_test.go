package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"lecture-tranquille-api/internal/interfaces/http/dto"
	apperrors "lecture-tranquille-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type countingLimiter struct {
	limit int
	seen  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.seen[key]++
	return l.seen[key] <= l.limit, nil
}

func (l *countingLimiter) Remaining(_ context.Context, key string, _ int, _ time.Duration) (int, error) {
	return l.limit - l.seen[key], nil
}

func newLimitedEngine(cfg RateLimitConfig, limiter RateLimiter) *gin.Engine {
	r := gin.New()
	r.POST("/v1/sessions/:sid/generate", RateLimit(cfg, limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func post(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
	return w
}

func TestRateLimitPerSession(t *testing.T) {
	limiter := &countingLimiter{limit: 2, seen: map[string]int{}}
	r := newLimitedEngine(RateLimitConfig{Enabled: true, Requests: 2, Window: time.Minute, Endpoint: "generate"}, limiter)

	assert.Equal(t, http.StatusOK, post(r, "/v1/sessions/a/generate").Code)
	w := post(r, "/v1/sessions/a/generate")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = post(r, "/v1/sessions/a/generate")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")

	// 其他会话不受影响
	assert.Equal(t, http.StatusOK, post(r, "/v1/sessions/b/generate").Code)
	assert.Equal(t, 3, limiter.seen["ratelimit:a:generate"])
}

func TestRateLimitDisabledOrFailing(t *testing.T) {
	r := newLimitedEngine(RateLimitConfig{Enabled: false}, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, post(r, "/v1/sessions/a/generate").Code)
	}

	failing := &countingLimiter{err: errors.New("redis down"), seen: map[string]int{}}
	r = newLimitedEngine(RateLimitConfig{Enabled: true, Requests: 1}, failing)
	assert.Equal(t, http.StatusOK, post(r, "/v1/sessions/a/generate").Code)
}

func TestRecoveryReturnsJSON(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":"1007"`)
}

func TestRecoveryAfterPartialWriteKeepsStatus(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/v1/sessions/:sid/state", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/sessions/s1/state", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestRecoveryRepanicsAbortHandler(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/abort", func(*gin.Context) { panic(http.ErrAbortHandler) })

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abort", nil))
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-1", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 100))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	got := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, got)
	assert.Len(t, got, 36)
}

func TestRequestIDRejectsUnprintableValues(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"a b", "x\ty", "<script>"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, id, w.Header().Get(RequestIDHeader))
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	}
}

func TestTraceContextTagsSessionAndErrorCode(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	r := gin.New()
	r.Use(RequestID(), Trace("test", otelgin.WithTracerProvider(tp)), TraceContext())
	r.POST("/v1/sessions/:sid/generate", func(c *gin.Context) {
		dto.AppError(c, apperrors.New(apperrors.CodeStaleWidget, "stale widget"))
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/s-42/generate", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	attrs := map[attribute.Key]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	assert.Equal(t, "s-42", attrs["session.id"])
	assert.Equal(t, "req-7", attrs["http.request_id"])
	assert.Equal(t, "4003", attrs["app.error_code"])
}
