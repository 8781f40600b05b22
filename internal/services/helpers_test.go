package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"brandsmith/internal/database"
	"brandsmith/internal/llm/client"
	"brandsmith/internal/models"
	"brandsmith/internal/workflow"
)

// scriptedLLM answers by schema name with canned JSON.
type scriptedLLM struct {
	mu       sync.Mutex
	calls    map[string]int
	fail     map[string]error
	override map[string]string
}

func newScriptedLLM() *scriptedLLM {
	return &scriptedLLM{calls: map[string]int{}, fail: map[string]error{}, override: map[string]string{}}
}

func (s *scriptedLLM) Invoke(_ context.Context, req client.Request) (*client.Response, error) {
	name := ""
	if req.Schema != nil {
		name = req.Schema.Name
	}
	s.mu.Lock()
	s.calls[name]++
	err := s.fail[name]
	content, overridden := s.override[name]
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if !overridden {
		content = cannedAnswer(name)
	}
	return &client.Response{Choices: []client.Choice{{Message: client.Message{Role: client.RoleAssistant, Content: content}}}}, nil
}

func (s *scriptedLLM) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func testStrategy() models.BrandStrategy {
	return models.BrandStrategy{
		Positioning:        "The coffee for people who work while others sleep.",
		PurposeStatement:   "Make night work feel less lonely.",
		TargetAudience:     "Night-shift nurses, drivers and developers.",
		Personality:        []string{"Warm", "Wry", "Steady", "Curious"},
		Values:             []string{"Care", "Craft", "Honesty"},
		ToneOfVoice:        "Friendly, low-key and reassuring.",
		KeyDifferentiators: []string{"Open all night", "Single origin", "Delivered hot"},
	}
}

func testConcept(name string) map[string]string {
	return map[string]string{
		"name":           name,
		"description":    name + " interprets the night shift.",
		"visualStyle":    name + " style",
		"primaryColor":   "#0B1D3A",
		"secondaryColor": "#F2E8CF",
		"accentColor":    "#FFB000",
		"displayFont":    "Playfair Display",
		"bodyFont":       "Inter",
		"tagline":        "Brewed for the late shift",
		"toneOfVoice":    "Calm and companionable.",
	}
}

func mustJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

func cannedAnswer(schema string) string {
	switch schema {
	case "discovery_question":
		return mustJSON(map[string]any{
			"question":      "Who is your target audience, what is your business model, why does the brand exist, who is in your market, and what tone fits?",
			"answerChoices": []string{"Night workers", "Students", "Everyone"},
		})
	case "brand_strategy":
		return mustJSON(testStrategy())
	case "brand_concepts":
		return mustJSON(map[string]any{"concepts": []map[string]string{
			testConcept("Midnight Oil"),
			testConcept("Neon Diner"),
			testConcept("Quiet Hours"),
		}})
	default:
		return ""
	}
}

// fakeMoodboards fails for prompts mentioning failFor.
type fakeMoodboards struct {
	mu      sync.Mutex
	failFor string
	prompts []string
}

func (f *fakeMoodboards) Render(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.failFor != "" && strings.Contains(prompt, `"`+f.failFor+`"`) {
		return "", errors.New("image backend unavailable")
	}
	return "https://img.example/" + strings.ReplaceAll(strings.SplitN(prompt, `"`, 3)[1], " ", "-") + ".png", nil
}

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

var fixedClock = workflow.WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })

func newTestServices(t *testing.T, llm client.Invoker, moodboards MoodboardRenderer) (*DbServices, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewDbServices(db, Generators{LLM: llm, Moodboards: moodboards}, nil, fixedClock), db
}
