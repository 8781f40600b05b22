package brand

import (
	"strings"

	"brandsmith/internal/models"
)

const (
	// MinDiscoveryMessages is the transcript length below which discovery
	// is never complete.
	MinDiscoveryMessages = 10
	// MinCoveredTopics is how many topic groups must be mentioned.
	MinCoveredTopics = 4
)

var topicGroups = [][]string{
	{"audience", "customer", "user", "target"},
	{"business", "model", "revenue", "commercial"},
	{"purpose", "why", "mission", "vision"},
	{"competitor", "market", "industry"},
	{"value", "personality", "tone"},
}

// CoveredTopics counts the topic groups mentioned anywhere in the transcript.
func CoveredTopics(transcript []models.ChatMessage) int {
	parts := make([]string, 0, len(transcript))
	for _, m := range transcript {
		parts = append(parts, m.Content)
	}
	text := strings.ToLower(strings.Join(parts, " "))

	covered := 0
	for _, group := range topicGroups {
		if containsAny(text, group) {
			covered++
		}
	}
	return covered
}

// IsDiscoveryComplete reports whether the transcript is long enough and
// covers enough topic groups to synthesize a strategy.
func IsDiscoveryComplete(transcript []models.ChatMessage) bool {
	if len(transcript) < MinDiscoveryMessages {
		return false
	}
	return CoveredTopics(transcript) >= MinCoveredTopics
}
