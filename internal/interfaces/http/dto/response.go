// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "lecture-tranquille-api/pkg/errors"
)

// Response 统一响应结构
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	ErrorCode   string   `json:"error_code,omitempty"`
	Details     string   `json:"details,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Error   *ErrorDetail `json:"error,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
}

// suggestions 面向前端的处理提示
var suggestions = map[apperrors.ErrorCode][]string{
	apperrors.CodeSessionNotFound:    {"create a new session with POST /api/v1/sessions"},
	apperrors.CodeStaleWidget:        {"reload the session and use the current widget keys"},
	apperrors.CodeUnknownQuestion:    {"fetch the quiz of the selected text first"},
	apperrors.CodeTooManyRequests:    {"wait before generating another text"},
	apperrors.CodeConfigurationError: {"set the LLM API key for the configured provider"},
}

func reply[T any](c *gin.Context, status int, message string, data T) {
	c.JSON(status, Response[T]{
		Code:    status,
		Message: message,
		Data:    data,
		TraceID: c.GetString("trace_id"),
	})
}

// Success 返回 200
func Success[T any](c *gin.Context, data T) {
	reply(c, http.StatusOK, "success", data)
}

// Created 返回 201
func Created[T any](c *gin.Context, data T) {
	reply(c, http.StatusCreated, "created", data)
}

// NoContent 返回 204
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ErrorCodeKey gin 上下文中记录本次响应应用错误码的键
const ErrorCodeKey = "error_code"

// ErrorWithDetail 返回带详情的错误响应
func ErrorWithDetail(c *gin.Context, status int, message string, detail *ErrorDetail) {
	if detail != nil && detail.ErrorCode != "" {
		c.Set(ErrorCodeKey, detail.ErrorCode)
	}
	c.JSON(status, ErrorResponse{
		Code:    status,
		Message: message,
		Error:   detail,
		TraceID: c.GetString("trace_id"),
	})
}

// BadRequest 参数错误
func BadRequest(c *gin.Context, details string) {
	ErrorWithDetail(c, http.StatusBadRequest, "invalid request", &ErrorDetail{
		ErrorCode: string(apperrors.CodeInvalidParam),
		Details:   details,
	})
}

// AppError 按应用错误码返回响应，非应用错误按 500 处理
func AppError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &ErrorDetail{
		ErrorCode:   string(appErr.Code),
		Details:     appErr.Detail,
		Suggestions: suggestions[appErr.Code],
	})
}
