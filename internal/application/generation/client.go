// Package generation 实现儿童文本生成：输入净化、提示词构造与单次后端调用
package generation

import (
	"context"
	"errors"
	"time"

	"lecture-tranquille-api/internal/workflow/port"
	"lecture-tranquille-api/internal/workflow/prompt"
	"lecture-tranquille-api/pkg/logger"
)

// FailureKind 生成失败类型
type FailureKind string

const (
	FailureConfiguration FailureKind = "configuration"
	FailureBackend       FailureKind = "backend"
)

// 面向用户的失败提示，不包含任何技术细节
const (
	MessageConfiguration = "❌ Erreur de configuration : la clé API n'est pas configurée."
	MessageBackend       = "😔 Désolé, je n'arrive pas à générer le texte pour le moment. Réessaie plus tard."
)

// Failure 类型化的失败原因
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// Result 要么是生成文本，要么是失败原因，二者互斥
type Result struct {
	Text    string
	Failure *Failure
}

// OK 是否生成成功
func (r Result) OK() bool {
	return r.Failure == nil
}

func success(text string) Result {
	return Result{Text: text}
}

func failure(kind FailureKind) Result {
	msg := MessageBackend
	if kind == FailureConfiguration {
		msg = MessageConfiguration
	}
	return Result{Failure: &Failure{Kind: kind, Message: msg}}
}

// TextChain 单次调用后端并返回首个补全
type TextChain interface {
	Invoke(ctx context.Context, req prompt.Request) (string, error)
}

// Client 生成客户端：把后端错误收敛为友好提示，原始错误只写日志
type Client struct {
	chain TextChain
}

// NewClient 创建生成客户端
func NewClient(chain TextChain) *Client {
	return &Client{chain: chain}
}

// Generate 执行一次同步生成，不缓存、不重试
func (c *Client) Generate(ctx context.Context, req prompt.Request) Result {
	start := time.Now()
	text, err := c.chain.Invoke(ctx, req)
	if err == nil {
		logger.Debug(ctx, "child text generated",
			"mode", string(req.Mode),
			"amendment", req.IsAmendment(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return success(text)
	}

	if errors.Is(err, port.ErrMissingCredential) {
		logger.Warn(ctx, "generation backend credential missing", "error", err.Error())
		return failure(FailureConfiguration)
	}
	logger.Error(ctx, "generation backend call failed", err,
		"mode", string(req.Mode),
		"amendment", req.IsAmendment(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return failure(FailureBackend)
}
