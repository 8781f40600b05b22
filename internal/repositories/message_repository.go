package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"brandsmith/internal/models"
)

type MessageRepository interface {
	Create(ctx context.Context, m *models.ChatMessage) error
	ListByProject(ctx context.Context, projectID uint) ([]models.ChatMessage, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, m *models.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("creating message for project %d: %w", m.ProjectID, err)
	}
	return nil
}

// ListByProject returns the transcript oldest first.
func (r *messageRepository) ListByProject(ctx context.Context, projectID uint) ([]models.ChatMessage, error) {
	var list []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("listing messages for project %d: %w", projectID, err)
	}
	return list, nil
}
