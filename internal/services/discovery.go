package services

import (
	"context"
	"log/slog"

	"brandsmith/internal/llm/client"
	"brandsmith/internal/models"
	"brandsmith/internal/workflow"
)

// DiscoveryInterviewer asks the next discovery question.
type DiscoveryInterviewer struct {
	llm client.Invoker
	log *slog.Logger
}

func NewDiscoveryInterviewer(llm client.Invoker, log *slog.Logger) *DiscoveryInterviewer {
	if log == nil {
		log = slog.Default()
	}
	return &DiscoveryInterviewer{llm: llm, log: log}
}

func (d *DiscoveryInterviewer) NextQuestion(ctx context.Context, project models.Project, transcript []models.ChatMessage) (workflow.Question, error) {
	system, err := client.RenderPrompt(client.PromptDiscoverySystem, map[string]string{
		"ProjectName":    project.Name,
		"InitialConcept": project.InitialConcept,
	})
	if err != nil {
		return workflow.Question{}, err
	}

	messages := make([]client.Message, 0, len(transcript)+1)
	messages = append(messages, client.Message{Role: client.RoleSystem, Content: system})
	for _, m := range transcript {
		messages = append(messages, client.Message{Role: client.Role(m.Role), Content: m.Content})
	}

	q, err := client.Generate[workflow.Question](ctx, d.llm, messages, discoveryQuestionSchema())
	if err != nil {
		return workflow.Question{}, err
	}
	d.log.Debug("discovery question generated", "project", project.ID, "messages", len(transcript))
	return q, nil
}
