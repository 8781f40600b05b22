package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"brandsmith/internal/database"
	"brandsmith/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(database.Config{Path: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedProject(t *testing.T, db *gorm.DB, userID uint, name string) *models.Project {
	t.Helper()
	p := &models.Project{UserID: userID, Name: name, InitialConcept: "A coffee brand for night owls", CurrentPhase: models.PhaseDiscovery}
	require.NoError(t, NewProjectRepository(db).Create(context.Background(), p, &models.ChatMessage{
		Role:          models.RoleAssistant,
		Content:       "What is the name of your brand?",
		AnswerChoices: datatypes.JSONSlice[string]{"a", "b", "c"},
	}))
	return p
}

func TestUserRepository_FindByTokenHash(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &models.User{Name: "ada", TokenHash: "abc123"}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.FindByTokenHash(ctx, "abc123")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = repo.FindByTokenHash(ctx, "missing")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestProjectRepository_CreateWithOpeningMessage(t *testing.T) {
	db := newTestDB(t)
	p := seedProject(t, db, 1, "Nightjar")
	require.NotZero(t, p.ID)

	msgs, err := NewMessageRepository(db).ListByProject(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, models.RoleAssistant, msgs[0].Role)
	require.Equal(t, []string{"a", "b", "c"}, []string(msgs[0].AnswerChoices))
}

func TestProjectRepository_ListByUserOrdersByRecentUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	first := seedProject(t, db, 1, "First")
	second := seedProject(t, db, 1, "Second")
	seedProject(t, db, 2, "Other owner")

	require.NoError(t, repo.UpdateByID(ctx, first.ID, map[string]interface{}{"name": "First renamed"}))

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first.ID, list[0].ID)
	require.Equal(t, second.ID, list[1].ID)
}

func TestProjectRepository_UpdateByIDMissing(t *testing.T) {
	db := newTestDB(t)
	err := NewProjectRepository(db).UpdateByID(context.Background(), 99, map[string]interface{}{"name": "x"})
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestProjectRepository_CommitTurn(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	p := seedProject(t, db, 1, "Nightjar")

	concepts := []models.BrandConcept{
		{Position: 1, Name: "One", PrimaryColor: "#111111", SecondaryColor: "#222222", AccentColor: "#333333"},
		{Position: 2, Name: "Two", PrimaryColor: "#111111", SecondaryColor: "#222222", AccentColor: "#333333"},
		{Position: 3, Name: "Three", PrimaryColor: "#111111", SecondaryColor: "#222222", AccentColor: "#333333"},
	}
	err := repo.CommitTurn(ctx, TurnCommit{
		ProjectID: p.ID,
		Assistant: &models.ChatMessage{Role: models.RoleAssistant, Content: "Here are three concepts"},
		Concepts:  concepts,
		Updates:   map[string]interface{}{"current_phase": models.PhaseConcepts},
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, models.PhaseConcepts, got.CurrentPhase)

	stored, err := NewConceptRepository(db).ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	require.Equal(t, "Two", stored[1].Name)

	msgs, err := NewMessageRepository(db).ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "Here are three concepts", msgs[1].Content)
}

func TestProjectRepository_CommitTurnRollsBackOnMissingProject(t *testing.T) {
	db := newTestDB(t)
	err := NewProjectRepository(db).CommitTurn(context.Background(), TurnCommit{
		ProjectID: 42,
		Assistant: &models.ChatMessage{Role: models.RoleAssistant, Content: "orphan"},
	})
	require.True(t, errors.Is(err, ErrNotFound))

	var count int64
	require.NoError(t, db.Model(&models.ChatMessage{}).Where("project_id = ?", 42).Count(&count).Error)
	require.Zero(t, count)
}

func TestProjectRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	p := seedProject(t, db, 1, "Nightjar")
	require.NoError(t, repo.CommitTurn(ctx, TurnCommit{
		ProjectID: p.ID,
		Concepts:  []models.BrandConcept{{Position: 1, Name: "One"}},
	}))

	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.Get(ctx, p.ID)
	require.True(t, errors.Is(err, ErrNotFound))

	msgs, err := NewMessageRepository(db).ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Empty(t, msgs)
	concepts, err := NewConceptRepository(db).ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Empty(t, concepts)

	require.True(t, errors.Is(repo.Delete(ctx, p.ID), ErrNotFound))
}
