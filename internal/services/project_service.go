package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/datatypes"

	"brandsmith/internal/brand"
	"brandsmith/internal/models"
	"brandsmith/internal/repositories"
)

// MinInitialConceptLength is the shortest accepted initial concept, in
// characters after trimming.
const MinInitialConceptLength = 10

// Toolkit is the downloadable brand guideline of a project.
type Toolkit struct {
	ProjectName string `json:"projectName"`
	Markdown    string `json:"markdown"`
}

type ProjectService interface {
	Create(ctx context.Context, userID uint, name, initialConcept string) (*models.Project, error)
	List(ctx context.Context, userID uint) ([]models.Project, error)
	Get(ctx context.Context, userID, id uint) (*models.Project, error)
	Delete(ctx context.Context, userID, id uint) error
	// SetPhase moves a project to any phase without running the workflow.
	SetPhase(ctx context.Context, userID, id uint, phase string) (*models.Project, error)
	SelectConcept(ctx context.Context, userID, projectID, conceptID uint) (*models.Project, error)
	ListConcepts(ctx context.Context, userID, projectID uint) ([]models.BrandConcept, error)
	Progress(ctx context.Context, userID, id uint) (brand.ProgressView, error)
	Toolkit(ctx context.Context, userID, id uint) (*Toolkit, error)
}

type projectService struct {
	projects repositories.ProjectRepository
	concepts repositories.ConceptRepository
}

func NewProjectService(projects repositories.ProjectRepository, concepts repositories.ConceptRepository) ProjectService {
	return &projectService{projects: projects, concepts: concepts}
}

// ownedProject loads a project and hides it from anyone but its owner.
func ownedProject(ctx context.Context, projects repositories.ProjectRepository, userID, id uint) (*models.Project, error) {
	p, err := projects.Get(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrProjectNotFound
	}
	return p, nil
}

func (s *projectService) Create(ctx context.Context, userID uint, name, initialConcept string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	initialConcept = strings.TrimSpace(initialConcept)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(initialConcept) < MinInitialConceptLength {
		return nil, fmt.Errorf("%w: initial concept must be at least %d characters", ErrInvalidInput, MinInitialConceptLength)
	}

	p := &models.Project{
		UserID:         userID,
		Name:           name,
		InitialConcept: initialConcept,
		CurrentPhase:   models.PhaseDiscovery,
		Progress:       datatypes.NewJSONType(models.DiscoveryProgress{}),
	}
	opening := &models.ChatMessage{
		Role:          models.RoleAssistant,
		Content:       brand.OpeningQuestion,
		AnswerChoices: datatypes.JSONSlice[string](append([]string(nil), brand.OpeningChoices...)),
	}
	if err := s.projects.Create(ctx, p, opening); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context, userID uint) ([]models.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

func (s *projectService) Get(ctx context.Context, userID, id uint) (*models.Project, error) {
	return ownedProject(ctx, s.projects, userID, id)
}

func (s *projectService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := ownedProject(ctx, s.projects, userID, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}

func (s *projectService) SetPhase(ctx context.Context, userID, id uint, phase string) (*models.Project, error) {
	next, ok := models.ParsePhase(phase)
	if !ok {
		return nil, fmt.Errorf("%w: unknown phase %q", ErrInvalidInput, phase)
	}
	if _, err := ownedProject(ctx, s.projects, userID, id); err != nil {
		return nil, err
	}
	if err := s.projects.UpdateByID(ctx, id, map[string]interface{}{"current_phase": next}); err != nil {
		return nil, err
	}
	return s.projects.Get(ctx, id)
}

func (s *projectService) SelectConcept(ctx context.Context, userID, projectID, conceptID uint) (*models.Project, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	c, err := s.concepts.Get(ctx, conceptID)
	if errors.Is(err, repositories.ErrNotFound) || (err == nil && c.ProjectID != projectID) {
		return nil, ErrConceptNotFound
	}
	if err != nil {
		return nil, err
	}

	err = s.projects.UpdateByID(ctx, projectID, map[string]interface{}{
		"selected_concept_id": c.ID,
		"current_phase":       models.PhaseRefinement,
	})
	if err != nil {
		return nil, err
	}
	return s.projects.Get(ctx, projectID)
}

func (s *projectService) ListConcepts(ctx context.Context, userID, projectID uint) ([]models.BrandConcept, error) {
	if _, err := ownedProject(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	return s.concepts.ListByProject(ctx, projectID)
}

func (s *projectService) Progress(ctx context.Context, userID, id uint) (brand.ProgressView, error) {
	p, err := ownedProject(ctx, s.projects, userID, id)
	if err != nil {
		return brand.ProgressView{}, err
	}
	return brand.DisplayProgress(p.Progress.Data()), nil
}

func (s *projectService) Toolkit(ctx context.Context, userID, id uint) (*Toolkit, error) {
	p, err := ownedProject(ctx, s.projects, userID, id)
	if err != nil {
		return nil, err
	}
	if !p.HasToolkit() {
		return nil, ErrToolkitNotReady
	}
	return &Toolkit{ProjectName: p.Name, Markdown: *p.ToolkitMarkdown}, nil
}
