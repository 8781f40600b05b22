package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeStructured validates the first choice against the request schema
// and unmarshals it into T.
func DecodeStructured[T any](resp *Response, schema *ResponseSchema) (T, error) {
	var out T
	content, err := FirstContent(resp)
	if err != nil {
		return out, err
	}
	raw := []byte(stripCodeFence(content))

	if schema != nil && schema.Schema != nil {
		var instance any
		if err := json.Unmarshal(raw, &instance); err != nil {
			return out, fmt.Errorf("%w: %s: %v", ErrMalformedOutput, schema.Name, err)
		}
		resolved, err := schema.Schema.Resolve(nil)
		if err != nil {
			return out, fmt.Errorf("resolve schema %s: %w", schema.Name, err)
		}
		if err := resolved.Validate(instance); err != nil {
			return out, fmt.Errorf("%w: %s: %v", ErrMalformedOutput, schema.Name, err)
		}
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return out, nil
}

// Generate invokes the model with a schema and decodes the answer.
func Generate[T any](ctx context.Context, inv Invoker, messages []Message, schema *ResponseSchema) (T, error) {
	var zero T
	resp, err := inv.Invoke(ctx, Request{Messages: messages, Schema: schema})
	if err != nil {
		return zero, fmt.Errorf("invoke llm: %w", err)
	}
	return DecodeStructured[T](resp, schema)
}

// stripCodeFence removes a surrounding ``` or ```json fence that some
// models add around JSON answers.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
