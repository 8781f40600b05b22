package mocks

import (
	"context"

	"brandsmith/internal/models"
	"brandsmith/internal/repositories"
)

type ProjectRepositoryMock struct {
	CreateFunc     func(ctx context.Context, p *models.Project, opening *models.ChatMessage) error
	GetFunc        func(ctx context.Context, id uint) (*models.Project, error)
	ListByUserFunc func(ctx context.Context, userID uint) ([]models.Project, error)
	UpdateByIDFunc func(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteFunc     func(ctx context.Context, id uint) error
	CommitTurnFunc func(ctx context.Context, commit repositories.TurnCommit) error
}

func (m *ProjectRepositoryMock) Create(ctx context.Context, p *models.Project, opening *models.ChatMessage) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p, opening)
	}
	return nil
}

func (m *ProjectRepositoryMock) Get(ctx context.Context, id uint) (*models.Project, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, repositories.ErrNotFound
}

func (m *ProjectRepositoryMock) ListByUser(ctx context.Context, userID uint) ([]models.Project, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []models.Project{}, nil
}

func (m *ProjectRepositoryMock) UpdateByID(ctx context.Context, id uint, updates map[string]interface{}) error {
	if m.UpdateByIDFunc != nil {
		return m.UpdateByIDFunc(ctx, id, updates)
	}
	return nil
}

func (m *ProjectRepositoryMock) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *ProjectRepositoryMock) CommitTurn(ctx context.Context, commit repositories.TurnCommit) error {
	if m.CommitTurnFunc != nil {
		return m.CommitTurnFunc(ctx, commit)
	}
	return nil
}
