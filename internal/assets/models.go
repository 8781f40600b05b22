package assets

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// ModelsData holds the raw JSON catalog of chat and image models.
//
//go:embed models.json
var ModelsData []byte

const (
	KindChat  = "chat"
	KindImage = "image"
)

type Provider struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	Kind        string  `json:"kind"`
	Models      []Model `json:"models"`
}

type Model struct {
	DisplayName string `json:"displayName"`
	APIName     string `json:"apiName"`
	Default     bool   `json:"default,omitempty"`
}

type modelFile struct {
	Providers []Provider `json:"providers"`
}

var (
	catalogOnce sync.Once
	catalog     []Provider
	catalogErr  error
)

// Providers returns the parsed catalog.
func Providers() ([]Provider, error) {
	catalogOnce.Do(func() {
		var parsed modelFile
		if err := json.Unmarshal(ModelsData, &parsed); err != nil {
			catalogErr = fmt.Errorf("parse models asset: %w", err)
			return
		}
		catalog = parsed.Providers
	})
	return catalog, catalogErr
}

// DefaultModel returns the API name of the default model of a provider
// for kind, or "" when the catalog has none.
func DefaultModel(kind, providerID string) string {
	providers, err := Providers()
	if err != nil {
		return ""
	}
	for _, p := range providers {
		if p.Kind != kind || !strings.EqualFold(p.ID, providerID) {
			continue
		}
		for _, m := range p.Models {
			if m.Default {
				return m.APIName
			}
		}
		if len(p.Models) > 0 {
			return p.Models[0].APIName
		}
	}
	return ""
}
