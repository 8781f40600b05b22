package services

import (
	"github.com/google/jsonschema-go/jsonschema"

	"brandsmith/internal/llm/client"
)

func intPtr(n int) *int { return &n }

// closed forbids properties that are not declared. Subschemas must form a
// tree, so every object gets its own instance.
func closed() *jsonschema.Schema { return &jsonschema.Schema{Not: &jsonschema.Schema{}} }

func str() *jsonschema.Schema { return &jsonschema.Schema{Type: "string"} }

func strList() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: str()}
}

func object(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: closed(),
	}
}

func discoveryQuestionSchema() *client.ResponseSchema {
	return &client.ResponseSchema{
		Name:   "discovery_question",
		Strict: true,
		Schema: object(map[string]*jsonschema.Schema{
			"question": str(),
			"answerChoices": {
				Type:     "array",
				Items:    str(),
				MinItems: intPtr(3),
				MaxItems: intPtr(3),
			},
		}, "question", "answerChoices"),
	}
}

func brandStrategySchema() *client.ResponseSchema {
	return &client.ResponseSchema{
		Name:   "brand_strategy",
		Strict: true,
		Schema: object(map[string]*jsonschema.Schema{
			"positioning":        str(),
			"purposeStatement":   str(),
			"targetAudience":     str(),
			"personality":        strList(),
			"values":             strList(),
			"toneOfVoice":        str(),
			"keyDifferentiators": strList(),
		}, "positioning", "purposeStatement", "targetAudience", "personality", "values", "toneOfVoice", "keyDifferentiators"),
	}
}

var conceptFields = []string{
	"name", "description", "visualStyle",
	"primaryColor", "secondaryColor", "accentColor",
	"displayFont", "bodyFont", "tagline", "toneOfVoice",
}

func brandConceptsSchema() *client.ResponseSchema {
	props := make(map[string]*jsonschema.Schema, len(conceptFields))
	for _, f := range conceptFields {
		props[f] = str()
	}
	return &client.ResponseSchema{
		Name:   "brand_concepts",
		Strict: true,
		Schema: object(map[string]*jsonschema.Schema{
			"concepts": {
				Type:     "array",
				Items:    object(props, conceptFields...),
				MinItems: intPtr(3),
				MaxItems: intPtr(3),
			},
		}, "concepts"),
	}
}
