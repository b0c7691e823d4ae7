// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// CreateSessionRequest 创建会话请求
type CreateSessionRequest struct {
	// Level 学段编码或年龄标签，可为空
	Level string `json:"level"`
}

// SelectLevelRequest 切换年龄段请求
type SelectLevelRequest struct {
	Level string `json:"level" binding:"required"`
}

// SelectTextRequest 选择文本请求
type SelectTextRequest struct {
	TextID int64 `json:"text_id" binding:"required"`
}

// WordsReadRequest 调整读完词数请求
type WordsReadRequest struct {
	WordsRead *int `json:"words_read" binding:"required"`
}

// AnswerRequest 提交选择题答案请求
type AnswerRequest struct {
	Key    string `json:"key" binding:"required"`
	Answer string `json:"answer" binding:"required"`
}

// RevealRequest 展示开放题参考答案请求
type RevealRequest struct {
	Key string `json:"key" binding:"required"`
}

// DraftRequest 保存控件草稿请求
type DraftRequest struct {
	WidgetKey string `json:"widget_key" binding:"required"`
	Value     string `json:"value"`
}

// GenerateRequest 创作或改写请求
type GenerateRequest struct {
	// Level 学段编码或年龄标签，为空时使用会话年龄段
	Level string `json:"level"`
	// Mode story | sleep_meditation | science_explainer，或对应的展示标签
	Mode string `json:"mode"`
	Text string `json:"text"`
	// WidgetKey 创作输入框的控件键，提供时必须属于当前 epoch
	WidgetKey string `json:"widget_key"`
}

// BindSessionID 从 URI 绑定会话 ID
func BindSessionID(c *gin.Context) string {
	return c.Param("sid")
}

// BindTextID 从 URI 绑定文本 ID
func BindTextID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("tid"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// BindLimit 绑定 limit 查询参数
func BindLimit(c *gin.Context, defaultVal int) int {
	limit := parseIntWithDefault(c.Query("limit"), defaultVal)
	if limit < 1 {
		limit = defaultVal
	}
	if limit > 100 {
		limit = 100
	}
	return limit
}

// parseIntWithDefault 解析整数，失败时返回默认值
func parseIntWithDefault(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
