package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Project is one brand-identity engagement owned by a user. Strategy,
// selected concept and toolkit stay empty until the workflow produces them.
type Project struct {
	ID                uint                                  `gorm:"primaryKey" json:"id"`
	UserID            uint                                  `gorm:"not null;index" json:"userId"`
	Name              string                                `gorm:"size:255;not null" json:"name"`
	InitialConcept    string                                `gorm:"type:text;not null" json:"initialConcept"`
	CurrentPhase      Phase                                 `gorm:"size:20;not null;default:discovery" json:"currentPhase"`
	Progress          datatypes.JSONType[DiscoveryProgress] `json:"progress"`
	Strategy          datatypes.JSON                        `json:"strategy,omitempty"`
	SelectedConceptID *uint                                 `json:"selectedConceptId,omitempty"`
	ToolkitMarkdown   *string                               `gorm:"type:text" json:"-"`
	CreatedAt         time.Time                             `json:"createdAt"`
	UpdatedAt         time.Time                             `json:"updatedAt"`
}

// HasStrategy reports whether a strategy has been synthesized.
func (p *Project) HasStrategy() bool {
	return len(p.Strategy) > 0 && string(p.Strategy) != "null"
}

// DecodeStrategy returns the stored strategy, or nil when none exists yet.
func (p *Project) DecodeStrategy() (*BrandStrategy, error) {
	if !p.HasStrategy() {
		return nil, nil
	}
	var s BrandStrategy
	if err := json.Unmarshal(p.Strategy, &s); err != nil {
		return nil, fmt.Errorf("decode strategy for project %d: %w", p.ID, err)
	}
	return &s, nil
}

// EncodeStrategy serializes a strategy into the column representation.
func EncodeStrategy(s BrandStrategy) (datatypes.JSON, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode strategy: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// HasToolkit reports whether toolkit markdown has been rendered.
func (p *Project) HasToolkit() bool {
	return p.ToolkitMarkdown != nil && *p.ToolkitMarkdown != ""
}
