package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviders(t *testing.T) {
	providers, err := Providers()
	require.NoError(t, err)
	require.NotEmpty(t, providers)
	for _, p := range providers {
		assert.Contains(t, []string{KindChat, KindImage}, p.Kind, p.ID)
		assert.NotEmpty(t, p.Models, p.ID)
	}
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, "gpt-5-mini", DefaultModel(KindChat, "openai"))
	assert.Equal(t, "claude-sonnet-4-5", DefaultModel(KindChat, "Claude"))
	assert.Equal(t, "gemini-2.5-flash", DefaultModel(KindChat, "gemini"))
	assert.Equal(t, "imagen-4.0-generate-001", DefaultModel(KindImage, "gemini"))
	assert.Equal(t, "google/gemini-2.5-flash-image", DefaultModel(KindImage, "openrouter"))
	assert.Empty(t, DefaultModel(KindImage, "claude"))
}
