package client

import (
	"context"
	"errors"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Role tags a message for the model.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// ResponseSchema asks the model for a JSON object matching Schema.
type ResponseSchema struct {
	Name   string
	Schema *jsonschema.Schema
	Strict bool
}

type Request struct {
	Messages []Message
	Schema   *ResponseSchema
}

type Choice struct {
	Message Message
}

type Response struct {
	Choices []Choice
}

// Invoker performs one round trip against a chat model.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (*Response, error)
}

var (
	ErrNoChoices       = errors.New("no response from LLM")
	ErrEmptyContent    = errors.New("empty response from LLM")
	ErrMalformedOutput = errors.New("malformed structured output from LLM")
)

// FirstContent returns the text of the first choice.
func FirstContent(resp *Response) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}
	return content, nil
}
