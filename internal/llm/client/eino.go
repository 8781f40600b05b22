package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"brandsmith/internal/assets"
)

const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
)

// Config selects and authenticates a chat model.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
}

// EinoInvoker adapts an eino chat model to Invoker.
type EinoInvoker struct {
	ChatModel model.BaseChatModel
	MaxTokens int
	// NativeSchema also sends the response schema as an OpenAI
	// response_format. Replies are validated either way.
	NativeSchema bool
}

// New builds an invoker for the configured provider.
func New(ctx context.Context, cfg Config) (*EinoInvoker, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%s: api key is required", cfg.Provider)
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenAI
	}
	if cfg.Model == "" {
		cfg.Model = assets.DefaultModel(assets.KindChat, cfg.Provider)
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIInvoker(ctx, cfg)
	case ProviderClaude:
		return NewClaudeInvoker(ctx, cfg)
	case ProviderGemini:
		return NewGeminiInvoker(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

func NewOpenAIInvoker(ctx context.Context, cfg Config) (*EinoInvoker, error) {
	m, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create openai chat model: %w", err)
	}
	return &EinoInvoker{ChatModel: m, MaxTokens: cfg.MaxTokens, NativeSchema: true}, nil
}

func NewClaudeInvoker(ctx context.Context, cfg Config) (*EinoInvoker, error) {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	m, err := claude.NewChatModel(ctx, &claude.Config{
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("create claude chat model: %w", err)
	}
	return &EinoInvoker{ChatModel: m, MaxTokens: cfg.MaxTokens}, nil
}

func NewGeminiInvoker(ctx context.Context, cfg Config) (*EinoInvoker, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	m, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: gc,
		Model:  cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini chat model: %w", err)
	}
	return &EinoInvoker{ChatModel: m, MaxTokens: cfg.MaxTokens}, nil
}

func (e *EinoInvoker) Invoke(ctx context.Context, req Request) (*Response, error) {
	input, err := toSchemaMessages(req)
	if err != nil {
		return nil, err
	}

	var opts []model.Option
	if e.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(e.MaxTokens))
	}
	if e.NativeSchema && req.Schema != nil && req.Schema.Schema != nil {
		opts = append(opts, openai.WithExtraFields(map[string]any{"response_format": responseFormat(req.Schema)}))
	}

	out, err := e.ChatModel.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return &Response{}, nil
	}
	return &Response{Choices: []Choice{{Message: Message{Role: RoleAssistant, Content: out.Content}}}}, nil
}

func toSchemaMessages(req Request) ([]*schema.Message, error) {
	msgs := make([]*schema.Message, 0, len(req.Messages)+1)
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			msgs = append(msgs, schema.SystemMessage(m.Content))
		case RoleUser:
			msgs = append(msgs, schema.UserMessage(m.Content))
		case RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(m.Content, nil))
		default:
			return nil, fmt.Errorf("unknown message role %q", m.Role)
		}
	}

	if req.Schema != nil && req.Schema.Schema != nil {
		instruction, err := schemaInstruction(req.Schema)
		if err != nil {
			return nil, err
		}
		msgs = appendSystem(msgs, instruction)
	}

	msgs, _ = normalizeConversationHistory(msgs, "")
	return msgs, nil
}

func schemaInstruction(rs *ResponseSchema) (string, error) {
	raw, err := json.MarshalIndent(rs.Schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schema %s: %w", rs.Name, err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Respond with a single JSON object named %s that matches this JSON schema", rs.Name)
	if rs.Strict {
		b.WriteString(" exactly, with no additional properties")
	}
	b.WriteString(". Do not wrap it in markdown or add any commentary.\n\n")
	b.Write(raw)
	return b.String(), nil
}

// responseFormat is the chat-completions json_schema response format.
func responseFormat(rs *ResponseSchema) map[string]any {
	return map[string]any{
		"type": "json_schema",
		"json_schema": map[string]any{
			"name":   rs.Name,
			"strict": rs.Strict,
			"schema": rs.Schema,
		},
	}
}

// appendSystem extends the leading system message, or inserts one.
func appendSystem(msgs []*schema.Message, text string) []*schema.Message {
	if len(msgs) > 0 && msgs[0].Role == schema.System {
		msgs[0] = schema.SystemMessage(msgs[0].Content + "\n\n" + text)
		return msgs
	}
	return append([]*schema.Message{schema.SystemMessage(text)}, msgs...)
}

const defaultFallbackUserMessage = "Please continue."

// normalizeConversationHistory makes sure the first non-system message is
// from the user, as some providers reject a conversation that opens with an
// assistant turn. Leading assistant messages are dropped; when no user
// message remains, fallback is inserted.
func normalizeConversationHistory(msgs []*schema.Message, fallback string) ([]*schema.Message, bool) {
	start := 0
	for start < len(msgs) && msgs[start].Role == schema.System {
		start++
	}
	if start < len(msgs) && msgs[start].Role == schema.User {
		return msgs, false
	}

	firstUser := -1
	for i := start; i < len(msgs); i++ {
		if msgs[i].Role == schema.User {
			firstUser = i
			break
		}
	}

	out := make([]*schema.Message, 0, len(msgs)+1)
	out = append(out, msgs[:start]...)
	if firstUser >= 0 {
		return append(out, msgs[firstUser:]...), true
	}
	if strings.TrimSpace(fallback) == "" {
		fallback = defaultFallbackUserMessage
	}
	out = append(out, schema.UserMessage(fallback))
	return append(out, msgs[start:]...), true
}
