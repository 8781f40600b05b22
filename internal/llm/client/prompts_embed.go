package client

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// embeddedPrompts holds the built-in prompt templates so packaged executables
// can load them without needing access to the source tree.
//
//go:embed prompts/*.txt
var embeddedPrompts embed.FS

var promptTemplates = template.Must(template.New("prompts").Funcs(template.FuncMap{
	"join": func(items []string) string { return strings.Join(items, ", ") },
}).ParseFS(embeddedPrompts, "prompts/*.txt"))

// Prompt names.
const (
	PromptDiscoverySystem = "discovery_system.txt"
	PromptStrategySystem  = "strategy_system.txt"
	PromptStrategyUser    = "strategy_user.txt"
	PromptConceptsSystem  = "concepts_system.txt"
	PromptConceptsUser    = "concepts_user.txt"
)

// RenderPrompt executes the named embedded prompt template with data.
func RenderPrompt(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
