package brand

import (
	"testing"

	"github.com/stretchr/testify/require"

	"brandsmith/internal/models"
)

func padded(n int, contents ...string) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, n)
	for _, c := range contents {
		out = append(out, user(c))
	}
	for len(out) < n {
		out = append(out, assistant("ok"))
	}
	return out
}

func TestIsDiscoveryCompleteRequiresTenMessages(t *testing.T) {
	allTopics := []string{"our audience", "business", "purpose", "competitor", "tone"}
	for n := 5; n < MinDiscoveryMessages; n++ {
		require.False(t, IsDiscoveryComplete(padded(n, allTopics...)), "n=%d", n)
	}
	require.True(t, IsDiscoveryComplete(padded(MinDiscoveryMessages, allTopics...)))
}

func TestIsDiscoveryCompleteCountsTopicGroups(t *testing.T) {
	cases := []struct {
		name     string
		contents []string
		want     bool
	}{
		{"four groups", []string{"Our CUSTOMER", "revenue", "mission", "the market"}, true},
		{"five groups", []string{"target", "commercial", "why", "industry", "personality"}, true},
		{"three groups", []string{"audience", "model", "vision"}, false},
		{"none", []string{"hello"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			transcript := padded(20, tc.contents...)
			require.Equal(t, tc.want, IsDiscoveryComplete(transcript))
		})
	}
}

func TestCoveredTopicsSpansWholeTranscript(t *testing.T) {
	transcript := padded(12, "audience", "business", "purpose")
	require.Equal(t, 3, CoveredTopics(transcript))
	transcript = append(transcript, assistant("What tone fits?"))
	require.Equal(t, 4, CoveredTopics(transcript))
}
