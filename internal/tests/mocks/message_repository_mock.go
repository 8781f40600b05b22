package mocks

import (
	"context"

	"brandsmith/internal/models"
)

type MessageRepositoryMock struct {
	CreateFunc        func(ctx context.Context, m *models.ChatMessage) error
	ListByProjectFunc func(ctx context.Context, projectID uint) ([]models.ChatMessage, error)
}

func (m *MessageRepositoryMock) Create(ctx context.Context, msg *models.ChatMessage) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, msg)
	}
	return nil
}

func (m *MessageRepositoryMock) ListByProject(ctx context.Context, projectID uint) ([]models.ChatMessage, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID)
	}
	return []models.ChatMessage{}, nil
}
