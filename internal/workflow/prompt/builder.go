// Package prompt 管理儿童文本生成的提示词模板
package prompt

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"lecture-tranquille-api/internal/domain/entity"
)

// Request 生成请求，按值传递，构造后不再修改
type Request struct {
	AgeBand entity.AgeBand
	Mode    entity.ContentMode
	// Input 已净化的用户输入
	Input string
	// PriorText 非空时为改写请求
	PriorText string
}

// IsAmendment 是否为改写已有文本
func (r Request) IsAmendment() bool {
	return r.PriorText != ""
}

// Prompt 渲染后的系统指令与用户指令
type Prompt struct {
	System string
	User   string
}

// Messages 转为 eino 消息列表
func (p Prompt) Messages() []*schema.Message {
	return []*schema.Message{schema.SystemMessage(p.System), schema.UserMessage(p.User)}
}

// Builder 根据年龄段、内容类型和可选的原文构造提示词，无 I/O
type Builder struct {
	registry *Registry
}

// NewBuilder 创建提示词构造器
func NewBuilder(registry *Registry) *Builder {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Builder{registry: registry}
}

// PromptIDFor 选择用户指令模板：有原文时改写，否则按内容类型
func PromptIDFor(req Request) PromptID {
	if req.IsAmendment() {
		return PromptAmendmentV1
	}
	switch req.Mode.Normalize() {
	case entity.ContentModeSleepMeditation:
		return PromptSleepMeditationV1
	case entity.ContentModeScienceExplainer:
		return PromptScienceExplainerV1
	default:
		return PromptStoryV1
	}
}

// Build 渲染提示词。模板全部内嵌且变量齐全，返回错误只可能源于模板损坏。
func (b *Builder) Build(ctx context.Context, req Request) (Prompt, error) {
	// 标签和长度要求一律取自年龄段表，请求里只需带学段或标签
	band, ok := entity.ResolveAgeBand(req.AgeBand.Level)
	if !ok {
		band, _ = entity.ResolveAgeBand(req.AgeBand.Label)
	}

	tpl, err := b.registry.ChatTemplate(PromptIDFor(req))
	if err != nil {
		return Prompt{}, err
	}
	msgs, err := tpl.Format(ctx, map[string]any{
		"age":      band.Label,
		"length":   band.LengthGuideline,
		"mode":     req.Mode.Label(),
		"input":    req.Input,
		"existing": req.PriorText,
	})
	if err != nil {
		return Prompt{}, fmt.Errorf("failed to render prompt: %w", err)
	}
	if len(msgs) != 2 {
		return Prompt{}, fmt.Errorf("unexpected prompt message count: %d", len(msgs))
	}
	return Prompt{System: msgs[0].Content, User: msgs[1].Content}, nil
}
