package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecture-tranquille-api/internal/domain/entity"
	workflowport "lecture-tranquille-api/internal/workflow/port"
	workflowprompt "lecture-tranquille-api/internal/workflow/prompt"
)

type fakeChatModel struct {
	reply *schema.Message
	err   error
	calls [][]*schema.Message
}

func (m *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.calls = append(m.calls, input)
	return m.reply, m.err
}

func (m *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

type fakeFactory struct {
	model *fakeChatModel
	err   error
	names []string
}

func (f *fakeFactory) Get(_ context.Context, name string) (model.BaseChatModel, error) {
	f.names = append(f.names, name)
	if f.err != nil {
		return nil, f.err
	}
	return f.model, nil
}

func newChain(f *fakeFactory) *ChildTextChain {
	return NewChildTextChain(f, workflowprompt.NewBuilder(nil), " openrouter ")
}

func storyRequest() workflowprompt.Request {
	return workflowprompt.Request{AgeBand: entity.DefaultAgeBand(), Mode: entity.ContentModeStory, Input: "un ours"}
}

func TestInvokeSendsSystemAndUserMessages(t *testing.T) {
	m := &fakeChatModel{reply: schema.AssistantMessage("  Il était une fois un ours.  ", nil)}
	f := &fakeFactory{model: m}

	out, err := newChain(f).Invoke(context.Background(), storyRequest())
	require.NoError(t, err)
	assert.Equal(t, "  Il était une fois un ours.  ", out)
	assert.Equal(t, []string{"openrouter"}, f.names)

	require.Len(t, m.calls, 1)
	require.Len(t, m.calls[0], 2)
	assert.Equal(t, schema.System, m.calls[0][0].Role)
	assert.Equal(t, schema.User, m.calls[0][1].Role)
	assert.Equal(t, "Écris une histoire douce et imaginative à partir de cette idée : un ours", m.calls[0][1].Content)
}

func TestInvokeMissingCredentialNeverCallsModel(t *testing.T) {
	m := &fakeChatModel{}
	f := &fakeFactory{model: m, err: workflowport.ErrMissingCredential}

	_, err := newChain(f).Invoke(context.Background(), storyRequest())
	assert.ErrorIs(t, err, workflowport.ErrMissingCredential)
	assert.Empty(t, m.calls)
}

func TestInvokeBackendError(t *testing.T) {
	boom := errors.New("503 upstream")
	f := &fakeFactory{model: &fakeChatModel{err: boom}}

	_, err := newChain(f).Invoke(context.Background(), storyRequest())
	assert.ErrorIs(t, err, boom)
}

func TestInvokeEmptyResponse(t *testing.T) {
	for _, reply := range []*schema.Message{nil, schema.AssistantMessage(" \n", nil)} {
		f := &fakeFactory{model: &fakeChatModel{reply: reply}}
		_, err := newChain(f).Invoke(context.Background(), storyRequest())
		assert.ErrorIs(t, err, ErrEmptyResponse)
	}
}
