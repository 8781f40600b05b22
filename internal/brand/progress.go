// Package brand holds the pure domain logic of a brand engagement: the
// discovery heuristics, the toolkit document and the chat presentations.
package brand

import (
	"math"
	"strings"

	"brandsmith/internal/models"
)

// Section is one of the five discovery topics.
type Section string

const (
	SectionBasics   Section = "basics"
	SectionBusiness Section = "business"
	SectionMarket   Section = "market"
	SectionStrategy Section = "strategy"
	SectionCreative Section = "creative"
)

// Sections lists the discovery sections in interview order.
var Sections = []Section{SectionBasics, SectionBusiness, SectionMarket, SectionStrategy, SectionCreative}

var sectionKeywords = map[Section][]string{
	SectionBasics:   {"name", "industry", "product", "service", "what do you", "what does"},
	SectionBusiness: {"business model", "revenue", "monetize", "differentiator", "unique", "competitive advantage"},
	SectionMarket:   {"target audience", "customer", "competitor", "market", "demographic", "psychographic"},
	SectionStrategy: {"purpose", "why", "mission", "values", "personality", "brand traits", "stand for"},
	SectionCreative: {"aesthetic", "visual", "style", "look and feel", "touchpoint", "channel", "color", "font"},
}

var sectionLabels = map[Section]string{
	SectionBasics:   "Basics",
	SectionBusiness: "Business",
	SectionMarket:   "Market",
	SectionStrategy: "Strategy",
	SectionCreative: "Creative",
}

const (
	// messagesPerExchange counts a user message and its reply as one exchange.
	messagesPerExchange = 2
	// exchangesPerSection is the number of exchanges that fills a section.
	exchangesPerSection = 4
)

// Keywords returns the keyword list of a section.
func Keywords(s Section) []string {
	return append([]string(nil), sectionKeywords[s]...)
}

func mentions(content string, s Section) bool {
	return containsAny(strings.ToLower(content), sectionKeywords[s])
}

func containsAny(lowered string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}

// DetectSection guesses the section under discussion from the latest
// assistant message. It falls back to basics.
func DetectSection(transcript []models.ChatMessage) Section {
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role != models.RoleAssistant {
			continue
		}
		for _, s := range Sections {
			if mentions(transcript[i].Content, s) {
				return s
			}
		}
		return SectionBasics
	}
	return SectionBasics
}

// SectionProgress scores a section from the number of transcript messages
// that mention it.
func SectionProgress(transcript []models.ChatMessage, s Section) int {
	matching := 0
	for _, m := range transcript {
		if mentions(m.Content, s) {
			matching++
		}
	}
	exchanges := matching / messagesPerExchange
	return min(100, exchanges*100/exchangesPerSection)
}

// UpdateProgress recomputes the current section's score and catches up
// every earlier section to 100. Scores never decrease.
func UpdateProgress(transcript []models.ChatMessage, prev models.DiscoveryProgress) models.DiscoveryProgress {
	next := prev
	current := DetectSection(transcript)

	score := sectionScore(&next, current)
	*score = max(*score, SectionProgress(transcript, current))

	for _, s := range Sections {
		if s == current {
			break
		}
		*sectionScore(&next, s) = 100
	}
	return next
}

func sectionScore(p *models.DiscoveryProgress, s Section) *int {
	switch s {
	case SectionBusiness:
		return &p.Business
	case SectionMarket:
		return &p.Market
	case SectionStrategy:
		return &p.Strategy
	case SectionCreative:
		return &p.Creative
	default:
		return &p.Basics
	}
}

// OverallProgress is the rounded mean of the five section scores.
func OverallProgress(p models.DiscoveryProgress) int {
	total := p.Basics + p.Business + p.Market + p.Strategy + p.Creative
	return int(math.Round(float64(total) / float64(len(Sections))))
}

// SectionView is one row of the progress display.
type SectionView struct {
	Name     string  `json:"name"`
	Key      Section `json:"key"`
	Progress int     `json:"progress"`
}

// ProgressView is the display form of discovery progress.
type ProgressView struct {
	Overall  int           `json:"overall"`
	Sections []SectionView `json:"sections"`
}

func DisplayProgress(p models.DiscoveryProgress) ProgressView {
	view := ProgressView{Overall: OverallProgress(p)}
	for _, s := range Sections {
		view.Sections = append(view.Sections, SectionView{
			Name:     sectionLabels[s],
			Key:      s,
			Progress: *sectionScore(&p, s),
		})
	}
	return view
}
