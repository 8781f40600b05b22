package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"brandsmith/internal/models"
)

type ConceptRepository interface {
	Get(ctx context.Context, id uint) (*models.BrandConcept, error)
	ListByProject(ctx context.Context, projectID uint) ([]models.BrandConcept, error)
}

type conceptRepository struct {
	db *gorm.DB
}

func NewConceptRepository(db *gorm.DB) ConceptRepository {
	return &conceptRepository{db: db}
}

func (r *conceptRepository) Get(ctx context.Context, id uint) (*models.BrandConcept, error) {
	var c models.BrandConcept
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, fmt.Errorf("getting concept %d: %w", id, translate(err))
	}
	return &c, nil
}

// ListByProject returns concepts in presentation order.
func (r *conceptRepository) ListByProject(ctx context.Context, projectID uint) ([]models.BrandConcept, error) {
	var list []models.BrandConcept
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position ASC").
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("listing concepts for project %d: %w", projectID, err)
	}
	return list, nil
}
