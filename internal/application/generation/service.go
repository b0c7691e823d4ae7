package generation

import (
	"context"

	"lecture-tranquille-api/internal/application/safety"
	"lecture-tranquille-api/internal/domain/entity"
	"lecture-tranquille-api/internal/domain/service"
	"lecture-tranquille-api/internal/workflow/prompt"
	"lecture-tranquille-api/pkg/logger"
	"lecture-tranquille-api/pkg/metrics"
)

// Generator 生成客户端抽象
type Generator interface {
	Generate(ctx context.Context, req prompt.Request) Result
}

// Input 一次创作或改写请求
type Input struct {
	AgeBand entity.AgeBand
	Mode    entity.ContentMode
	// Text 用户原始输入，尚未净化
	Text string
	// PriorText 当前已生成的文本，非空时为改写
	PriorText string
}

// Outcome 生成流水线的结果
type Outcome struct {
	Result  Result
	Request prompt.Request
	Verdict safety.Verdict
}

// Service 净化 -> 构造请求 -> 调用后端
type Service struct {
	generator Generator
}

// NewService 创建生成服务
func NewService(generator Generator) *Service {
	return &Service{generator: generator}
}

// Run 执行完整流水线，任何失败都收敛为 Result.Failure
func (s *Service) Run(ctx context.Context, in Input) Outcome {
	mode := in.Mode.Normalize()
	verdict := safety.SanitizeWithVerdict(in.Text, mode)
	if verdict.Replaced() {
		metrics.SafetySubstitutionsTotal.WithLabelValues(string(mode), string(verdict.Reason)).Inc()
		logger.Info(ctx, "creation input replaced by fallback", "mode", string(mode), "reason", string(verdict.Reason))
	}

	req := prompt.Request{
		AgeBand:   in.AgeBand,
		Mode:      mode,
		Input:     verdict.Text,
		PriorText: in.PriorText,
	}
	res := s.generator.Generate(ctx, req)

	kind := "create"
	if req.IsAmendment() {
		kind = "amend"
	}
	status := "success"
	if !res.OK() {
		status = string(res.Failure.Kind)
	} else {
		metrics.GeneratedWordCount.WithLabelValues(string(mode)).Observe(float64(service.CountWords(res.Text)))
	}
	metrics.GenerationTotal.WithLabelValues(string(mode), kind, status).Inc()

	return Outcome{Result: res, Request: req, Verdict: verdict}
}
