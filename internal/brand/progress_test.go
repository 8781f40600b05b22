package brand

import (
	"testing"

	"github.com/stretchr/testify/require"

	"brandsmith/internal/models"
)

func user(content string) models.ChatMessage {
	return models.ChatMessage{Role: models.RoleUser, Content: content}
}

func assistant(content string) models.ChatMessage {
	return models.ChatMessage{Role: models.RoleAssistant, Content: content}
}

func TestKeywordListsArePinned(t *testing.T) {
	require.Equal(t, []string{"name", "industry", "product", "service", "what do you", "what does"}, Keywords(SectionBasics))
	require.Equal(t, []string{"business model", "revenue", "monetize", "differentiator", "unique", "competitive advantage"}, Keywords(SectionBusiness))
	require.Equal(t, []string{"target audience", "customer", "competitor", "market", "demographic", "psychographic"}, Keywords(SectionMarket))
	require.Equal(t, []string{"purpose", "why", "mission", "values", "personality", "brand traits", "stand for"}, Keywords(SectionStrategy))
	require.Equal(t, []string{"aesthetic", "visual", "style", "look and feel", "touchpoint", "channel", "color", "font"}, Keywords(SectionCreative))
}

func TestDetectSection(t *testing.T) {
	cases := []struct {
		name       string
		transcript []models.ChatMessage
		want       Section
	}{
		{"empty transcript", nil, SectionBasics},
		{"no assistant message", []models.ChatMessage{user("hello market")}, SectionBasics},
		{"no keyword match", []models.ChatMessage{assistant("Tell me more.")}, SectionBasics},
		{"uses latest assistant message", []models.ChatMessage{
			assistant("What is your revenue model?"),
			user("Subscriptions"),
			assistant("Who are your main COMPETITORS?"),
			user("Big chains"),
		}, SectionMarket},
		{"first section in order wins", []models.ChatMessage{assistant("What is the purpose behind your visual identity?")}, SectionStrategy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DetectSection(tc.transcript))
		})
	}
}

func TestSectionProgressScalesFourExchanges(t *testing.T) {
	var transcript []models.ChatMessage
	expected := []int{0, 0, 25, 25, 50, 50, 75, 75, 100, 100, 100}
	for i, want := range expected {
		require.Equal(t, want, SectionProgress(transcript, SectionMarket), "after %d messages", i)
		transcript = append(transcript, user("our market is busy"))
	}
}

func TestUpdateProgressCatchesUpEarlierSections(t *testing.T) {
	transcript := []models.ChatMessage{
		assistant("Who is your target audience?"),
		user("Young professionals, our customer base is urban"),
	}
	got := UpdateProgress(transcript, models.DiscoveryProgress{})
	require.Equal(t, 100, got.Basics)
	require.Equal(t, 100, got.Business)
	require.Equal(t, 25, got.Market)
	require.Zero(t, got.Strategy)
	require.Zero(t, got.Creative)
}

func TestUpdateProgressNeverDecreases(t *testing.T) {
	prev := models.DiscoveryProgress{Basics: 100, Business: 100, Market: 75, Strategy: 50, Creative: 10}
	transcript := []models.ChatMessage{assistant("What is your brand name?")}
	got := UpdateProgress(transcript, prev)
	require.Equal(t, prev, got)
}

func TestUpdateProgressMonotonicOnGrowingTranscript(t *testing.T) {
	turns := []models.ChatMessage{
		assistant("What is the name of your product?"),
		user("Nightjar, a coffee service"),
		assistant("What's your business model and revenue stream?"),
		user("Subscriptions are our revenue"),
		assistant("Who is your target audience and main competitor?"),
		user("Night shift customers; competitor is energy drinks"),
		assistant("What is the purpose and mission of the brand?"),
		user("Our purpose is to fuel night work"),
		assistant("What visual style and color palette do you like?"),
		user("Dark style with neon color accents"),
	}
	var progress models.DiscoveryProgress
	for i := range turns {
		next := UpdateProgress(turns[:i+1], progress)
		require.GreaterOrEqual(t, next.Basics, progress.Basics)
		require.GreaterOrEqual(t, next.Business, progress.Business)
		require.GreaterOrEqual(t, next.Market, progress.Market)
		require.GreaterOrEqual(t, next.Strategy, progress.Strategy)
		require.GreaterOrEqual(t, next.Creative, progress.Creative)

		current := DetectSection(turns[:i+1])
		for _, s := range Sections {
			if s == current {
				break
			}
			require.Equal(t, 100, *sectionScore(&next, s))
		}
		progress = next
	}
	require.Equal(t, 25, progress.Creative)
}

func TestDisplayProgress(t *testing.T) {
	view := DisplayProgress(models.DiscoveryProgress{Basics: 100, Business: 100, Market: 50, Strategy: 13})
	require.Equal(t, 53, view.Overall)
	require.Len(t, view.Sections, 5)
	require.Equal(t, SectionView{Name: "Market", Key: SectionMarket, Progress: 50}, view.Sections[2])
}
