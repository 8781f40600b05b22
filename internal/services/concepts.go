package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"brandsmith/internal/brand"
	"brandsmith/internal/events"
	"brandsmith/internal/llm/client"
	"brandsmith/internal/llm/images"
	"brandsmith/internal/media"
	"brandsmith/internal/models"
)

// maxMoodboardRequests bounds the parallel image calls of one turn.
const maxMoodboardRequests = 3

// MoodboardRenderer produces a public image URL for a prompt.
type MoodboardRenderer interface {
	Render(ctx context.Context, prompt string) (string, error)
}

// MoodboardService generates an image and stores it in the media store.
type MoodboardService struct {
	images images.Generator
	store  *media.Store
}

func NewMoodboardService(gen images.Generator, store *media.Store) *MoodboardService {
	return &MoodboardService{images: gen, store: store}
}

func (m *MoodboardService) Render(ctx context.Context, prompt string) (string, error) {
	img, err := m.images.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return m.store.Save(img)
}

// ConceptGenerator produces the three visual concepts and their moodboards.
type ConceptGenerator struct {
	llm        client.Invoker
	moodboards MoodboardRenderer
	log        *slog.Logger
}

// NewConceptGenerator builds a generator. A nil renderer disables moodboards.
func NewConceptGenerator(llm client.Invoker, moodboards MoodboardRenderer, log *slog.Logger) *ConceptGenerator {
	if log == nil {
		log = slog.Default()
	}
	return &ConceptGenerator{llm: llm, moodboards: moodboards, log: log}
}

type conceptsEnvelope struct {
	Concepts []models.VisualConcept `json:"concepts"`
}

func (g *ConceptGenerator) Generate(ctx context.Context, project models.Project, strategy models.BrandStrategy) ([]models.VisualConcept, error) {
	system, err := client.RenderPrompt(client.PromptConceptsSystem, nil)
	if err != nil {
		return nil, err
	}
	user, err := client.RenderPrompt(client.PromptConceptsUser, map[string]any{
		"ProjectName":    project.Name,
		"InitialConcept": project.InitialConcept,
		"Strategy":       strategy,
	})
	if err != nil {
		return nil, err
	}

	out, err := client.Generate[conceptsEnvelope](ctx, g.llm, []client.Message{
		{Role: client.RoleSystem, Content: system},
		{Role: client.RoleUser, Content: user},
	}, brandConceptsSchema())
	if err != nil {
		return nil, err
	}
	if len(out.Concepts) != 3 {
		return nil, fmt.Errorf("%w: got %d", ErrConceptCount, len(out.Concepts))
	}

	g.attachMoodboards(ctx, out.Concepts, strategy)
	return out.Concepts, nil
}

// attachMoodboards renders one image per concept in parallel. A failed
// image leaves its concept without a moodboard and never fails the batch.
func (g *ConceptGenerator) attachMoodboards(ctx context.Context, concepts []models.VisualConcept, strategy models.BrandStrategy) {
	if g.moodboards == nil {
		return
	}

	var eg errgroup.Group
	eg.SetLimit(maxMoodboardRequests)
	for i := range concepts {
		c := &concepts[i]
		prompt := brand.MoodboardPrompt(*c, strategy)
		eg.Go(func() error {
			url, err := g.moodboards.Render(ctx, prompt)
			if err != nil {
				g.log.Warn("moodboard generation failed", "concept", c.Name, "error", err)
				events.Emit(ctx, events.MoodboardFailed, events.NewWarn("moodboard generation failed").With("concept", c.Name))
				return nil
			}
			c.MoodboardImageURL = url
			return nil
		})
	}
	_ = eg.Wait()
}
