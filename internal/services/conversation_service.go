package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/datatypes"

	"brandsmith/internal/events"
	"brandsmith/internal/models"
	"brandsmith/internal/repositories"
	"brandsmith/internal/workflow"
)

// ConversationService runs chat turns against the phase workflow.
type ConversationService interface {
	// SubmitMessage stores the user message, advances the workflow and
	// returns the assistant reply. The user message is kept even when the
	// turn fails.
	SubmitMessage(ctx context.Context, userID, projectID uint, content string) (*models.ChatMessage, error)
	ListMessages(ctx context.Context, userID, projectID uint) ([]models.ChatMessage, error)
}

type conversationService struct {
	projects repositories.ProjectRepository
	messages repositories.MessageRepository
	concepts repositories.ConceptRepository
	machine  *workflow.Machine
	log      *slog.Logger
}

func NewConversationService(
	projects repositories.ProjectRepository,
	messages repositories.MessageRepository,
	concepts repositories.ConceptRepository,
	machine *workflow.Machine,
	log *slog.Logger,
) ConversationService {
	if log == nil {
		log = slog.Default()
	}
	return &conversationService{
		projects: projects,
		messages: messages,
		concepts: concepts,
		machine:  machine,
		log:      log,
	}
}

func (s *conversationService) ListMessages(ctx context.Context, userID, projectID uint) ([]models.ChatMessage, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	return s.messages.ListByProject(ctx, projectID)
}

func (s *conversationService) SubmitMessage(ctx context.Context, userID, projectID uint, content string) (*models.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrInvalidInput)
	}
	project, err := ownedProject(ctx, s.projects, userID, projectID)
	if err != nil {
		return nil, err
	}

	ctx = events.WithProject(ctx, project.ID)
	events.Emit(ctx, events.TurnStarted, events.NewInfo("turn started").With("phase", string(project.CurrentPhase)))

	if err := s.messages.Create(ctx, &models.ChatMessage{
		ProjectID: project.ID,
		Role:      models.RoleUser,
		Content:   content,
	}); err != nil {
		return nil, err
	}

	transcript, err := s.messages.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	concepts, err := s.concepts.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.machine.Advance(ctx, workflow.Turn{
		Project:    *project,
		Transcript: transcript,
		Content:    content,
		Concepts:   concepts,
	})
	if err != nil {
		s.log.Error("turn failed", "project", project.ID, "phase", project.CurrentPhase, "error", err)
		events.Emit(ctx, events.TurnFailed, events.NewError(err.Error()).With("phase", string(project.CurrentPhase)))
		return nil, err
	}

	commit, err := buildCommit(project, outcome)
	if err != nil {
		return nil, err
	}
	if err := s.projects.CommitTurn(ctx, commit); err != nil {
		return nil, err
	}

	if outcome.PhaseChanged(project.CurrentPhase) {
		s.log.Info("phase changed", "project", project.ID, "from", project.CurrentPhase, "to", outcome.NextPhase)
		events.Emit(ctx, events.TurnPhaseChanged, events.NewSuccess("phase changed").
			With("from", string(project.CurrentPhase)).
			With("to", string(outcome.NextPhase)))
	}
	events.Emit(ctx, events.TurnDone, events.NewSuccess("turn completed"))
	return commit.Assistant, nil
}

// buildCommit translates an outcome into the writes of the assistant half.
func buildCommit(project *models.Project, o workflow.Outcome) (repositories.TurnCommit, error) {
	assistant := &models.ChatMessage{
		ProjectID: project.ID,
		Role:      models.RoleAssistant,
		Content:   o.Reply,
	}
	if len(o.AnswerChoices) > 0 {
		assistant.AnswerChoices = datatypes.JSONSlice[string](o.AnswerChoices)
	}

	updates := map[string]interface{}{}
	if o.PhaseChanged(project.CurrentPhase) {
		updates["current_phase"] = o.NextPhase
	}
	if o.Progress != nil {
		updates["progress"] = datatypes.NewJSONType(*o.Progress)
	}
	if o.Strategy != nil {
		encoded, err := models.EncodeStrategy(*o.Strategy)
		if err != nil {
			return repositories.TurnCommit{}, err
		}
		updates["strategy"] = encoded
	}
	if o.SelectedConceptID != nil {
		updates["selected_concept_id"] = *o.SelectedConceptID
	}
	if o.ToolkitMarkdown != nil {
		updates["toolkit_markdown"] = *o.ToolkitMarkdown
	}

	concepts := make([]models.BrandConcept, 0, len(o.NewConcepts))
	for i, c := range o.NewConcepts {
		concepts = append(concepts, c.ToBrandConcept(project.ID, i+1))
	}

	return repositories.TurnCommit{
		ProjectID: project.ID,
		Assistant: assistant,
		Concepts:  concepts,
		Updates:   updates,
	}, nil
}
