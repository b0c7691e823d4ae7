package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lecture-tranquille-api/internal/interfaces/http/dto"
	"lecture-tranquille-api/pkg/errors"
	"lecture-tranquille-api/pkg/logger"
)

// respondError 返回应用错误，服务端错误额外写日志
func respondError(ctx context.Context, c *gin.Context, msg string, err error) {
	if appErr := errors.AsAppError(err); appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error(ctx, msg, err, "path", c.FullPath())
	}
	dto.AppError(c, err)
}

// bindJSON 绑定请求体，失败时返回 400
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// withSession 把会话 ID 写入日志上下文
func withSession(c *gin.Context) (context.Context, string) {
	id := dto.BindSessionID(c)
	return logger.WithContext(c.Request.Context(), logger.SessionIDKey, id), id
}
