// Package middleware 提供 HTTP 中间件
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"lecture-tranquille-api/internal/interfaces/http/dto"
	apperrors "lecture-tranquille-api/pkg/errors"
	"lecture-tranquille-api/pkg/logger"
)

// Recovery 捕获 panic，记录所在路由和会话后返回 500；响应已开始写出时只中断链路
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.Error(c.Request.Context(), "panic recovered", fmt.Errorf("%v", rec),
				"route", c.FullPath(),
				"method", c.Request.Method,
				"session_id", c.Param("sid"),
				"stack", string(debug.Stack()),
			)
			c.Abort()
			if c.Writer.Written() {
				return
			}
			dto.AppError(c, apperrors.New(apperrors.CodeInternalError, "internal server error"))
		}()
		c.Next()
	}
}
