package client

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/require"
)

type fakeChatModel struct {
	reply *schema.Message
	err   error
	got   []*schema.Message
	opts  []model.Option
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.got = input
	f.opts = opts
	return f.reply, f.err
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

type answer struct {
	Question string `json:"question"`
}

func answerSchema() *ResponseSchema {
	return &ResponseSchema{
		Name:   "answer",
		Strict: true,
		Schema: &jsonschema.Schema{
			Type:                 "object",
			Properties:           map[string]*jsonschema.Schema{"question": {Type: "string"}},
			Required:             []string{"question"},
			AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
		},
	}
}

func TestEinoInvoker_AppendsSchemaInstruction(t *testing.T) {
	fake := &fakeChatModel{reply: schema.AssistantMessage(`{"question":"What is it called?"}`, nil)}
	inv := &EinoInvoker{ChatModel: fake}

	got, err := Generate[answer](context.Background(), inv, []Message{
		{Role: RoleSystem, Content: "You interview founders."},
		{Role: RoleAssistant, Content: "Hello!"},
		{Role: RoleUser, Content: "Hi"},
	}, answerSchema())
	require.NoError(t, err)
	require.Equal(t, "What is it called?", got.Question)

	require.Len(t, fake.got, 2)
	require.Equal(t, schema.System, fake.got[0].Role)
	require.True(t, strings.HasPrefix(fake.got[0].Content, "You interview founders."))
	require.Contains(t, fake.got[0].Content, "named answer")
	require.Contains(t, fake.got[0].Content, `"question"`)
	require.Equal(t, schema.User, fake.got[1].Role)
}

func TestEinoInvoker_NilReplyHasNoChoices(t *testing.T) {
	inv := &EinoInvoker{ChatModel: &fakeChatModel{}}
	resp, err := inv.Invoke(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.NoError(t, err)
	_, err = FirstContent(resp)
	require.ErrorIs(t, err, ErrNoChoices)
}

func TestEinoInvoker_PropagatesModelError(t *testing.T) {
	boom := errors.New("rate limited")
	inv := &EinoInvoker{ChatModel: &fakeChatModel{err: boom}}
	_, err := inv.Invoke(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.ErrorIs(t, err, boom)
}

func TestEinoInvoker_RejectsUnknownRole(t *testing.T) {
	inv := &EinoInvoker{ChatModel: &fakeChatModel{}}
	_, err := inv.Invoke(context.Background(), Request{Messages: []Message{{Role: "tool", Content: "x"}}})
	require.Error(t, err)
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: ProviderClaude})
	require.Error(t, err)
	_, err = New(context.Background(), Config{Provider: "mistral", APIKey: "k"})
	require.ErrorContains(t, err, "unsupported llm provider")
}

func TestEinoInvoker_NativeSchemaAddsResponseFormat(t *testing.T) {
	req := Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}, Schema: answerSchema()}

	plain := &fakeChatModel{reply: schema.AssistantMessage(`{"question":"q"}`, nil)}
	_, err := (&EinoInvoker{ChatModel: plain}).Invoke(context.Background(), req)
	require.NoError(t, err)
	require.Empty(t, plain.opts)

	native := &fakeChatModel{reply: schema.AssistantMessage(`{"question":"q"}`, nil)}
	_, err = (&EinoInvoker{ChatModel: native, NativeSchema: true}).Invoke(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, native.opts, 1)

	// the prompt instruction is still sent for models that ignore response_format
	require.Contains(t, native.got[0].Content, `"question"`)
}

func TestResponseFormat(t *testing.T) {
	raw, err := json.Marshal(responseFormat(answerSchema()))
	require.NoError(t, err)

	var got struct {
		Type       string `json:"type"`
		JSONSchema struct {
			Name   string         `json:"name"`
			Strict bool           `json:"strict"`
			Schema map[string]any `json:"schema"`
		} `json:"json_schema"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, "json_schema", got.Type)
	require.Equal(t, "answer", got.JSONSchema.Name)
	require.True(t, got.JSONSchema.Strict)
	require.Equal(t, "object", got.JSONSchema.Schema["type"])
	require.Equal(t, []any{"question"}, got.JSONSchema.Schema["required"])
}
