package models

import (
	"time"

	"gorm.io/datatypes"
)

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry of a project's append-only transcript.
// AnswerChoices is only ever set on assistant messages.
type ChatMessage struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	ProjectID     uint                        `gorm:"not null;index" json:"projectId"`
	Role          Role                        `gorm:"size:20;not null" json:"role"`
	Content       string                      `gorm:"type:text;not null" json:"content"`
	AnswerChoices datatypes.JSONSlice[string] `json:"answerChoices,omitempty"`
	CreatedAt     time.Time                   `json:"createdAt"`
}
