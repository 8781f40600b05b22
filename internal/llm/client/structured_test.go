package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func reply(content string) *Response {
	return &Response{Choices: []Choice{{Message: Message{Role: RoleAssistant, Content: content}}}}
}

func TestFirstContentErrors(t *testing.T) {
	_, err := FirstContent(nil)
	require.ErrorIs(t, err, ErrNoChoices)
	_, err = FirstContent(&Response{})
	require.ErrorIs(t, err, ErrNoChoices)
	_, err = FirstContent(reply("  "))
	require.ErrorIs(t, err, ErrEmptyContent)
}

func TestDecodeStructured(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{"plain json", `{"question":"Why?"}`, "Why?", nil},
		{"fenced json", "```json\n{\"question\":\"Why?\"}\n```", "Why?", nil},
		{"missing field", `{}`, "", ErrMalformedOutput},
		{"extra field", `{"question":"Why?","extra":1}`, "", ErrMalformedOutput},
		{"wrong type", `{"question":3}`, "", ErrMalformedOutput},
		{"not json", `Sure! Here you go`, "", ErrMalformedOutput},
		{"empty", ``, "", ErrEmptyContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeStructured[answer](reply(tc.content), answerSchema())
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got.Question)
		})
	}
}

func TestRenderPrompt(t *testing.T) {
	out, err := RenderPrompt(PromptDiscoverySystem, map[string]string{
		"ProjectName":    "Nightjar",
		"InitialConcept": "Coffee for night owls",
	})
	require.NoError(t, err)
	require.Contains(t, out, "Current project: Nightjar")
	require.Contains(t, out, "Initial concept: Coffee for night owls")

	_, err = RenderPrompt("missing.txt", nil)
	require.Error(t, err)
}
