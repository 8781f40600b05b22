package mocks

import (
	"context"

	"brandsmith/internal/models"
	"brandsmith/internal/repositories"
)

type ConceptRepositoryMock struct {
	GetFunc           func(ctx context.Context, id uint) (*models.BrandConcept, error)
	ListByProjectFunc func(ctx context.Context, projectID uint) ([]models.BrandConcept, error)
}

func (m *ConceptRepositoryMock) Get(ctx context.Context, id uint) (*models.BrandConcept, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, repositories.ErrNotFound
}

func (m *ConceptRepositoryMock) ListByProject(ctx context.Context, projectID uint) ([]models.BrandConcept, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID)
	}
	return []models.BrandConcept{}, nil
}
