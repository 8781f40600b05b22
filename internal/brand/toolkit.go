package brand

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"brandsmith/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("brand").Funcs(template.FuncMap{
	"boldList": boldList,
	"numbered": numbered,
	"join":     func(items []string) string { return strings.Join(items, ", ") },
}).ParseFS(templateFS, "templates/*.tmpl"))

func boldList(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- **" + it + "**"
	}
	return strings.Join(lines, "\n")
}

func numbered(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, it)
	}
	return strings.Join(lines, "\n")
}

// Toolkit is the input of the toolkit document.
type Toolkit struct {
	ProjectName string
	Strategy    models.BrandStrategy
	Concept     models.BrandConcept
	GeneratedAt time.Time
}

// RenderToolkit renders the brand guideline markdown. The output depends
// only on its input; the copyright year is taken from GeneratedAt.
func RenderToolkit(t Toolkit) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "toolkit.md.tmpl", t); err != nil {
		return "", fmt.Errorf("render toolkit for %q: %w", t.ProjectName, err)
	}
	return buf.String(), nil
}

// ToolkitFilename is the download name of a project's toolkit.
func ToolkitFilename(projectName string) string {
	name := strings.Join(strings.Fields(projectName), "_")
	if name == "" {
		name = "Brand"
	}
	return name + "_Brand_Toolkit.md"
}
