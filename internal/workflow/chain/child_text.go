package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	llmctx "lecture-tranquille-api/internal/domain/service"
	workflowport "lecture-tranquille-api/internal/workflow/port"
	workflowprompt "lecture-tranquille-api/internal/workflow/prompt"
)

// 工作流名称，用于回调指标与追踪
const (
	WorkflowChildTextCreate = "child_text_create"
	WorkflowChildTextAmend  = "child_text_amend"
)

// ErrEmptyResponse 后端返回空内容
var ErrEmptyResponse = errors.New("empty llm response")

// ChildTextChain 单次同步调用：渲染提示词后请求 ChatModel，不流式、不重试
type ChildTextChain struct {
	factory  workflowport.ChatModelFactory
	builder  *workflowprompt.Builder
	provider string
}

func NewChildTextChain(factory workflowport.ChatModelFactory, builder *workflowprompt.Builder, provider string) *ChildTextChain {
	return &ChildTextChain{factory: factory, builder: builder, provider: strings.TrimSpace(provider)}
}

// Invoke 返回首个补全的文本内容，不做任何修改
func (c *ChildTextChain) Invoke(ctx context.Context, req workflowprompt.Request) (string, error) {
	if c == nil || c.factory == nil || c.builder == nil {
		return "", fmt.Errorf("llm factory not configured")
	}

	workflow := WorkflowChildTextCreate
	if req.IsAmendment() {
		workflow = WorkflowChildTextAmend
	}
	ctx = llmctx.WithCallLabels(ctx, workflow, c.provider)

	// 先取模型：凭证缺失时不会发生任何网络调用
	chatModel, err := c.factory.Get(ctx, c.provider)
	if err != nil {
		return "", err
	}

	p, err := c.builder.Build(ctx, req)
	if err != nil {
		return "", err
	}

	outMsg, err := chatModel.Generate(ctx, p.Messages())
	if err != nil {
		return "", err
	}
	if outMsg == nil || strings.TrimSpace(outMsg.Content) == "" {
		return "", ErrEmptyResponse
	}
	return outMsg.Content, nil
}
