// Package workflow decides how a brand project reacts to a user message.
//
// Each phase has one handler. A handler reads the turn and returns an
// Outcome describing the reply and the state changes; it never writes to
// storage itself.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"brandsmith/internal/brand"
	"brandsmith/internal/models"
)

var (
	// ErrGeneration marks failures of the LLM or image collaborators.
	ErrGeneration = errors.New("generation failed")
	// ErrMissingArtifact is returned when a phase needs a strategy or
	// concept that the project does not have, e.g. after a manual phase change.
	ErrMissingArtifact = errors.New("phase prerequisite missing")
	ErrUnknownPhase    = errors.New("unknown phase")
)

// Question is the next discovery question with suggested answers.
type Question struct {
	Question      string   `json:"question"`
	AnswerChoices []string `json:"answerChoices"`
}

type Interviewer interface {
	NextQuestion(ctx context.Context, project models.Project, transcript []models.ChatMessage) (Question, error)
}

type StrategySynthesizer interface {
	Synthesize(ctx context.Context, project models.Project, transcript []models.ChatMessage) (models.BrandStrategy, error)
}

type ConceptGenerator interface {
	Generate(ctx context.Context, project models.Project, strategy models.BrandStrategy) ([]models.VisualConcept, error)
}

// Turn is the input of one conversation step. Transcript already ends with
// the user message carrying Content.
type Turn struct {
	Project    models.Project
	Transcript []models.ChatMessage
	Content    string
	// Concepts are the project's stored concepts in presentation order.
	Concepts []models.BrandConcept
}

// Outcome is what a handler decided. Nil fields mean "unchanged".
type Outcome struct {
	NextPhase         models.Phase
	Reply             string
	AnswerChoices     []string
	Progress          *models.DiscoveryProgress
	Strategy          *models.BrandStrategy
	NewConcepts       []models.VisualConcept
	SelectedConceptID *uint
	ToolkitMarkdown   *string
}

// PhaseChanged reports whether the outcome moves the project.
func (o Outcome) PhaseChanged(from models.Phase) bool {
	return o.NextPhase != from
}

type handler func(ctx context.Context, t Turn) (Outcome, error)

// Machine routes a turn to the handler of the project's current phase.
type Machine struct {
	interviewer Interviewer
	strategist  StrategySynthesizer
	concepts    ConceptGenerator
	now         func() time.Time
	handlers    map[models.Phase]handler
}

type Option func(*Machine)

// WithClock overrides the time used to stamp toolkits.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

func NewMachine(interviewer Interviewer, strategist StrategySynthesizer, concepts ConceptGenerator, opts ...Option) *Machine {
	m := &Machine{
		interviewer: interviewer,
		strategist:  strategist,
		concepts:    concepts,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.handlers = map[models.Phase]handler{
		models.PhaseDiscovery:  m.discovery,
		models.PhaseStrategy:   m.strategy,
		models.PhaseConcepts:   m.selectConcept,
		models.PhaseRefinement: m.refinement,
		models.PhaseToolkit:    m.closed,
		models.PhaseCompleted:  m.closed,
	}
	return m
}

// Advance computes the outcome of a user message.
func (m *Machine) Advance(ctx context.Context, t Turn) (Outcome, error) {
	h, ok := m.handlers[t.Project.CurrentPhase]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownPhase, t.Project.CurrentPhase)
	}
	return h(ctx, t)
}

func (m *Machine) discovery(ctx context.Context, t Turn) (Outcome, error) {
	out := Outcome{NextPhase: models.PhaseDiscovery}

	if brand.IsDiscoveryComplete(t.Transcript) {
		strategy, err := m.strategist.Synthesize(ctx, t.Project, t.Transcript)
		if err != nil {
			return Outcome{}, fmt.Errorf("%w: synthesize strategy: %w", ErrGeneration, err)
		}
		out.NextPhase = models.PhaseStrategy
		out.Strategy = &strategy
		out.Reply = brand.StrategyPresentation(strategy)
	} else {
		q, err := m.interviewer.NextQuestion(ctx, t.Project, t.Transcript)
		if err != nil {
			return Outcome{}, fmt.Errorf("%w: next discovery question: %w", ErrGeneration, err)
		}
		out.Reply = q.Question
		out.AnswerChoices = q.AnswerChoices
	}

	withReply := append(append([]models.ChatMessage(nil), t.Transcript...), models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: out.Reply,
	})
	progress := brand.UpdateProgress(withReply, t.Project.Progress.Data())
	out.Progress = &progress
	return out, nil
}

func (m *Machine) strategy(ctx context.Context, t Turn) (Outcome, error) {
	if !containsFold(t.Content, "approve") {
		return Outcome{NextPhase: models.PhaseStrategy, Reply: brand.StrategyRefinePrompt}, nil
	}

	strategy, err := t.Project.DecodeStrategy()
	if err != nil {
		return Outcome{}, err
	}
	if strategy == nil {
		return Outcome{}, fmt.Errorf("%w: project %d has no strategy", ErrMissingArtifact, t.Project.ID)
	}

	concepts, err := m.concepts.Generate(ctx, t.Project, *strategy)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: generate concepts: %w", ErrGeneration, err)
	}
	return Outcome{
		NextPhase:   models.PhaseConcepts,
		Reply:       brand.ConceptsPresentation(concepts),
		NewConcepts: concepts,
	}, nil
}

func (m *Machine) selectConcept(_ context.Context, t Turn) (Outcome, error) {
	if len(t.Concepts) == 0 {
		return Outcome{}, fmt.Errorf("%w: project %d has no concepts", ErrMissingArtifact, t.Project.ID)
	}

	n, ok := ConceptNumber(t.Content)
	if !ok || n > len(t.Concepts) {
		return Outcome{NextPhase: models.PhaseConcepts, Reply: brand.ConceptSelectionPrompt}, nil
	}

	chosen := t.Concepts[n-1]
	id := chosen.ID
	return Outcome{
		NextPhase:         models.PhaseRefinement,
		Reply:             brand.SelectionConfirmation(chosen),
		SelectedConceptID: &id,
	}, nil
}

func (m *Machine) refinement(_ context.Context, t Turn) (Outcome, error) {
	if !containsFold(t.Content, "generate toolkit") && !containsFold(t.Content, "proceed") {
		return Outcome{NextPhase: models.PhaseRefinement, Reply: brand.RefinementPrompt}, nil
	}

	strategy, err := t.Project.DecodeStrategy()
	if err != nil {
		return Outcome{}, err
	}
	if strategy == nil {
		return Outcome{}, fmt.Errorf("%w: project %d has no strategy", ErrMissingArtifact, t.Project.ID)
	}
	concept := findConcept(t.Concepts, t.Project.SelectedConceptID)
	if concept == nil {
		return Outcome{}, fmt.Errorf("%w: project %d has no selected concept", ErrMissingArtifact, t.Project.ID)
	}

	md, err := brand.RenderToolkit(brand.Toolkit{
		ProjectName: t.Project.Name,
		Strategy:    *strategy,
		Concept:     *concept,
		GeneratedAt: m.now(),
	})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		NextPhase:       models.PhaseCompleted,
		Reply:           brand.ToolkitPresentation(t.Project.Name),
		ToolkitMarkdown: &md,
	}, nil
}

// closed answers every message once the toolkit exists. The toolkit phase
// is only reachable through an explicit phase change and behaves the same.
func (m *Machine) closed(_ context.Context, t Turn) (Outcome, error) {
	return Outcome{NextPhase: t.Project.CurrentPhase, Reply: brand.ClosingMessage}, nil
}

// ConceptNumber parses a concept choice between 1 and 3.
func ConceptNumber(content string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil || n < 1 || n > 3 {
		return 0, false
	}
	return n, true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

func findConcept(concepts []models.BrandConcept, id *uint) *models.BrandConcept {
	if id == nil {
		return nil
	}
	for i := range concepts {
		if concepts[i].ID == *id {
			return &concepts[i]
		}
	}
	return nil
}
