package services

import (
	"log/slog"

	"gorm.io/gorm"

	"brandsmith/internal/llm/client"
	"brandsmith/internal/repositories"
	"brandsmith/internal/workflow"
)

// DbServices aggregates all domain services backed by the database.
// Fields use plural names (e.g., Users) to align with Go conventions
// seen in service/store containers.
type DbServices struct {
	Users         UserService
	Projects      ProjectService
	Conversations ConversationService
}

// Generators are the external collaborators a conversation needs.
type Generators struct {
	LLM        client.Invoker
	Moodboards MoodboardRenderer
}

// NewDbServices constructs the service container using repositories backed by db.
func NewDbServices(db *gorm.DB, gen Generators, log *slog.Logger, opts ...workflow.Option) *DbServices {
	if log == nil {
		log = slog.Default()
	}
	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	conceptRepo := repositories.NewConceptRepository(db)

	machine := workflow.NewMachine(
		NewDiscoveryInterviewer(gen.LLM, log),
		NewStrategySynthesizer(gen.LLM),
		NewConceptGenerator(gen.LLM, gen.Moodboards, log),
		opts...,
	)

	return &DbServices{
		Users:         NewUserService(userRepo),
		Projects:      NewProjectService(projectRepo, conceptRepo),
		Conversations: NewConversationService(projectRepo, messageRepo, conceptRepo, machine, log),
	}
}
