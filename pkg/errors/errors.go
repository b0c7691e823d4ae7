// Package errors 定义带错误码的应用错误及其 HTTP 状态映射
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码
type ErrorCode string

const (
	// 通用 1xxx
	CodeUnknown         ErrorCode = "1000"
	CodeInvalidParam    ErrorCode = "1001"
	CodeTooManyRequests ErrorCode = "1006"
	CodeInternalError   ErrorCode = "1007"

	// 资源 3xxx
	CodeSessionNotFound ErrorCode = "3001"
	CodeTextNotFound    ErrorCode = "3002"

	// 阅读流程 4xxx
	CodeInvalidTransition  ErrorCode = "4001"
	CodeOutOfRangeInput    ErrorCode = "4002"
	CodeStaleWidget        ErrorCode = "4003"
	CodeUnknownQuestion    ErrorCode = "4004"
	CodeEmptyCreationInput ErrorCode = "4005"

	// 依赖 5xxx
	CodeDatabaseError      ErrorCode = "5001"
	CodeCacheError         ErrorCode = "5002"
	CodeStorageError       ErrorCode = "5004"
	CodeConfigurationError ErrorCode = "5005"
	CodeBackendError       ErrorCode = "5006"
)

// 未列出的错误码对应 500。阶段不允许的事件不算失败，返回 200
var httpStatus = map[ErrorCode]int{
	CodeInvalidTransition:  http.StatusOK,
	CodeInvalidParam:       http.StatusBadRequest,
	CodeEmptyCreationInput: http.StatusBadRequest,
	CodeUnknownQuestion:    http.StatusBadRequest,
	CodeSessionNotFound:    http.StatusNotFound,
	CodeTextNotFound:       http.StatusNotFound,
	CodeStaleWidget:        http.StatusConflict,
	CodeOutOfRangeInput:    http.StatusUnprocessableEntity,
	CodeTooManyRequests:    http.StatusTooManyRequests,
	CodeConfigurationError: http.StatusServiceUnavailable,
	CodeBackendError:       http.StatusBadGateway,
}

// StatusOf 错误码对应的 HTTP 状态码
func StatusOf(code ErrorCode) int {
	if s, ok := httpStatus[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 附加面向调用方的细节
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// New 创建应用错误
func New(code ErrorCode, message string) *AppError {
	return Wrap(nil, code, message)
}

// Wrap 用错误码包装 err，err 可为 nil
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: StatusOf(code), Err: err}
}

// IsAppError 错误链中是否有 AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError 取出错误链中的 AppError，没有时包装为 CodeUnknown
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}

// HasCode 错误链中是否有指定错误码的 AppError
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
