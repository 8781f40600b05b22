package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"brandsmith/internal/models"
)

// TurnCommit is everything the assistant half of a turn writes. It is
// applied atomically by CommitTurn.
type TurnCommit struct {
	ProjectID uint
	Assistant *models.ChatMessage
	Concepts  []models.BrandConcept
	// Updates holds project column updates keyed by column name.
	Updates map[string]interface{}
}

type ProjectRepository interface {
	Create(ctx context.Context, p *models.Project, opening *models.ChatMessage) error
	Get(ctx context.Context, id uint) (*models.Project, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Project, error)
	UpdateByID(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	CommitTurn(ctx context.Context, commit TurnCommit) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create inserts the project and, when given, its opening assistant message.
func (r *projectRepository) Create(ctx context.Context, p *models.Project, opening *models.ChatMessage) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if opening == nil {
			return nil
		}
		opening.ProjectID = p.ID
		return tx.Create(opening).Error
	})
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

func (r *projectRepository) Get(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, fmt.Errorf("getting project %d: %w", id, translate(err))
	}
	return &p, nil
}

func (r *projectRepository) ListByUser(ctx context.Context, userID uint) ([]models.Project, error) {
	var list []models.Project
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("listing projects for user %d: %w", userID, err)
	}
	return list, nil
}

func (r *projectRepository) UpdateByID(ctx context.Context, id uint, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("updating project %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("updating project %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes the project together with its messages and concepts.
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.BrandConcept{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Project{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
	}
	return nil
}

func (r *projectRepository) CommitTurn(ctx context.Context, commit TurnCommit) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := make(map[string]interface{}, len(commit.Updates)+1)
		for k, v := range commit.Updates {
			updates[k] = v
		}

		if len(commit.Concepts) > 0 {
			// a new batch replaces the previous one and any selection from it
			if err := tx.Where("project_id = ?", commit.ProjectID).Delete(&models.BrandConcept{}).Error; err != nil {
				return fmt.Errorf("clearing concepts: %w", err)
			}
			if _, ok := updates["selected_concept_id"]; !ok {
				updates["selected_concept_id"] = nil
			}
		}

		for i := range commit.Concepts {
			commit.Concepts[i].ProjectID = commit.ProjectID
			if err := tx.Create(&commit.Concepts[i]).Error; err != nil {
				return fmt.Errorf("creating concept: %w", err)
			}
		}

		if commit.Assistant != nil {
			commit.Assistant.ProjectID = commit.ProjectID
			if err := tx.Create(commit.Assistant).Error; err != nil {
				return fmt.Errorf("creating assistant message: %w", err)
			}
		}

		if len(updates) == 0 {
			// still bump updated_at so the project sorts as recently active
			updates["updated_at"] = time.Now()
		}
		res := tx.Model(&models.Project{}).Where("id = ?", commit.ProjectID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("committing turn for project %d: %w", commit.ProjectID, err)
	}
	return nil
}
