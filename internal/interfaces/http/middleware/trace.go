package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lecture-tranquille-api/internal/interfaces/http/dto"
	"lecture-tranquille-api/pkg/logger"
	"lecture-tranquille-api/pkg/tracer"
)

// Trace 为每个请求开启 span
func Trace(serviceName string, opts ...otelgin.Option) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, opts...)
}

// TraceContext 把 trace/span ID 写入日志上下文和 X-Trace-ID，并给 span 标上会话 ID、请求 ID
// 以及响应中的应用错误码（如 4003 控件过期），便于按会话排查。须放在 Trace 之后。
func TraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		traceID, spanID := tracer.IDs(ctx)
		if traceID == "" {
			c.Next()
			return
		}

		c.Set("trace_id", traceID)
		c.Set("span_id", spanID)
		c.Header("X-Trace-ID", traceID)
		ctx = logger.WithContext(ctx, logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(logger.WithContext(ctx, logger.SpanIDKey, spanID))

		span := trace.SpanFromContext(ctx)
		if sid := c.Param("sid"); sid != "" {
			span.SetAttributes(attribute.String("session.id", sid))
		}
		if rid := c.GetString("request_id"); rid != "" {
			span.SetAttributes(attribute.String("http.request_id", rid))
		}

		c.Next()

		if code := c.GetString(dto.ErrorCodeKey); code != "" {
			span.SetAttributes(attribute.String("app.error_code", code))
		}
	}
}
