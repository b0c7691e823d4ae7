package service

import (
	"context"
	"strings"
)

const unknownLabel = "unknown"

type callLabelsKey struct{}

// CallLabels 模型调用的指标与追踪标签
type CallLabels struct {
	// Workflow child_text_create | child_text_amend
	Workflow string
	Provider string
}

// WithCallLabels 把标签写入 ctx，空值保留为 unknown
func WithCallLabels(ctx context.Context, workflow, provider string) context.Context {
	return context.WithValue(ctx, callLabelsKey{}, CallLabels{
		Workflow: labelOrUnknown(workflow),
		Provider: labelOrUnknown(provider),
	})
}

// CallLabelsFromContext 读取标签，未设置时均为 unknown
func CallLabelsFromContext(ctx context.Context) CallLabels {
	if ctx != nil {
		if l, ok := ctx.Value(callLabelsKey{}).(CallLabels); ok {
			return l
		}
	}
	return CallLabels{Workflow: unknownLabel, Provider: unknownLabel}
}

func labelOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return unknownLabel
	}
	return s
}
