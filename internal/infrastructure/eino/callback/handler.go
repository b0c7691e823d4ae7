package callback

import (
	"context"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	cbtemplate "github.com/cloudwego/eino/utils/callbacks"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"lecture-tranquille-api/internal/domain/service"
	"lecture-tranquille-api/pkg/logger"
	"lecture-tranquille-api/pkg/metrics"
)

var tracer = otel.Tracer("eino")

// callState OnStart 写入、OnEnd/OnError 读取
type callState struct {
	labels service.CallLabels
	model  string
	start  time.Time
}

type callStateKey struct{}

func stateFrom(ctx context.Context) callState {
	if st, ok := ctx.Value(callStateKey{}).(callState); ok {
		return st
	}
	return callState{labels: service.CallLabelsFromContext(ctx)}
}

func (s callState) observe(status string) {
	metrics.LLMCallTotal.WithLabelValues(s.labels.Workflow, s.labels.Provider, s.model, status).Inc()
	if !s.start.IsZero() {
		metrics.LLMCallDuration.WithLabelValues(s.labels.Workflow, s.labels.Provider, s.model).Observe(time.Since(s.start).Seconds())
	}
}

func newChatModelCallbackHandler() *cbtemplate.ModelCallbackHandler {
	return &cbtemplate.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *model.CallbackInput) context.Context {
			st := callState{
				labels: service.CallLabelsFromContext(ctx),
				start:  time.Now(),
			}
			if input != nil && input.Config != nil {
				st.model = input.Config.Model
			}
			ctx = context.WithValue(ctx, callStateKey{}, st)

			attrs := []attribute.KeyValue{
				attribute.String("eino.workflow", st.labels.Workflow),
				attribute.String("llm.provider", st.labels.Provider),
				attribute.String("llm.model", st.model),
			}
			if info != nil {
				attrs = append(attrs, attribute.String("eino.type", info.Type))
			}
			ctx, _ = tracer.Start(ctx, "llm.generate", trace.WithAttributes(attrs...))
			return ctx
		},

		OnEnd: func(ctx context.Context, _ *einocb.RunInfo, output *model.CallbackOutput) context.Context {
			st := stateFrom(ctx)
			if output != nil && output.Config != nil && output.Config.Model != "" {
				st.model = output.Config.Model
			}
			st.observe("success")

			span := trace.SpanFromContext(ctx)
			if output != nil && output.TokenUsage != nil {
				usage := output.TokenUsage
				metrics.LLMTokensUsed.WithLabelValues(st.labels.Workflow, st.labels.Provider, st.model, "prompt").Add(float64(usage.PromptTokens))
				metrics.LLMTokensUsed.WithLabelValues(st.labels.Workflow, st.labels.Provider, st.model, "completion").Add(float64(usage.CompletionTokens))
				span.SetAttributes(
					attribute.Int("llm.prompt_tokens", usage.PromptTokens),
					attribute.Int("llm.completion_tokens", usage.CompletionTokens),
				)
				logger.Debug(ctx, "llm call finished",
					"workflow", st.labels.Workflow,
					"model", st.model,
					"prompt_tokens", usage.PromptTokens,
					"completion_tokens", usage.CompletionTokens,
				)
			}
			span.End()
			return ctx
		},

		OnError: func(ctx context.Context, _ *einocb.RunInfo, err error) context.Context {
			stateFrom(ctx).observe("error")

			span := trace.SpanFromContext(ctx)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return ctx
		},
	}
}
