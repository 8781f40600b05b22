package models

import "time"

// BrandConcept is one of the three visual directions generated for a
// project. Position is its 1-based place in the presentation.
type BrandConcept struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProjectID         uint      `gorm:"not null;index" json:"projectId"`
	Position          int       `gorm:"not null" json:"position"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Description       string    `gorm:"type:text;not null" json:"description"`
	PrimaryColor      string    `gorm:"size:7;not null" json:"primaryColor"`
	SecondaryColor    string    `gorm:"size:7;not null" json:"secondaryColor"`
	AccentColor       string    `gorm:"size:7;not null" json:"accentColor"`
	DisplayFont       string    `gorm:"size:100;not null" json:"displayFont"`
	BodyFont          string    `gorm:"size:100;not null" json:"bodyFont"`
	VisualStyle       string    `gorm:"type:text;not null" json:"visualStyle"`
	Tagline           string    `gorm:"type:text" json:"tagline"`
	ToneOfVoice       string    `gorm:"type:text" json:"toneOfVoice"`
	MoodboardImageURL *string   `gorm:"type:text" json:"moodboardImageUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// VisualConcept is a concept as produced by generation, before it is
// attached to a project.
type VisualConcept struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	VisualStyle       string `json:"visualStyle"`
	PrimaryColor      string `json:"primaryColor"`
	SecondaryColor    string `json:"secondaryColor"`
	AccentColor       string `json:"accentColor"`
	DisplayFont       string `json:"displayFont"`
	BodyFont          string `json:"bodyFont"`
	Tagline           string `json:"tagline"`
	ToneOfVoice       string `json:"toneOfVoice"`
	MoodboardImageURL string `json:"moodboardImageUrl,omitempty"`
}

// ToBrandConcept attaches a generated concept to a project at position.
func (v VisualConcept) ToBrandConcept(projectID uint, position int) BrandConcept {
	c := BrandConcept{
		ProjectID:      projectID,
		Position:       position,
		Name:           v.Name,
		Description:    v.Description,
		PrimaryColor:   v.PrimaryColor,
		SecondaryColor: v.SecondaryColor,
		AccentColor:    v.AccentColor,
		DisplayFont:    v.DisplayFont,
		BodyFont:       v.BodyFont,
		VisualStyle:    v.VisualStyle,
		Tagline:        v.Tagline,
		ToneOfVoice:    v.ToneOfVoice,
	}
	if v.MoodboardImageURL != "" {
		url := v.MoodboardImageURL
		c.MoodboardImageURL = &url
	}
	return c
}
