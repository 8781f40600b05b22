package services

import (
	"context"
	"strings"

	"brandsmith/internal/llm/client"
	"brandsmith/internal/models"
)

// StrategySynthesizer turns a discovery transcript into a brand strategy.
type StrategySynthesizer struct {
	llm client.Invoker
}

func NewStrategySynthesizer(llm client.Invoker) *StrategySynthesizer {
	return &StrategySynthesizer{llm: llm}
}

// conversationText labels each message with its speaker.
func conversationText(transcript []models.ChatMessage) string {
	parts := make([]string, 0, len(transcript))
	for _, m := range transcript {
		speaker := "AI"
		if m.Role == models.RoleUser {
			speaker = "User"
		}
		parts = append(parts, speaker+": "+m.Content)
	}
	return strings.Join(parts, "\n\n")
}

func (s *StrategySynthesizer) Synthesize(ctx context.Context, project models.Project, transcript []models.ChatMessage) (models.BrandStrategy, error) {
	system, err := client.RenderPrompt(client.PromptStrategySystem, nil)
	if err != nil {
		return models.BrandStrategy{}, err
	}
	user, err := client.RenderPrompt(client.PromptStrategyUser, map[string]string{
		"ProjectName":    project.Name,
		"InitialConcept": project.InitialConcept,
		"Conversation":   conversationText(transcript),
	})
	if err != nil {
		return models.BrandStrategy{}, err
	}

	return client.Generate[models.BrandStrategy](ctx, s.llm, []client.Message{
		{Role: client.RoleSystem, Content: system},
		{Role: client.RoleUser, Content: user},
	}, brandStrategySchema())
}
