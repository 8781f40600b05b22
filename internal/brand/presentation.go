package brand

import (
	"fmt"
	"strings"

	"brandsmith/internal/models"
)

// Canned assistant replies for turns that need no generation.
const (
	StrategyRefinePrompt = "I can help refine the strategy. Which element would you like me to adjust? (positioning, purpose, audience, personality, values, tone, or differentiators)"

	ConceptSelectionPrompt = "Please reply with the number of the concept you'd like to move forward with (1, 2, or 3)."

	RefinementPrompt = "Tell me what you'd like changed about the concept, such as colors, typography, tagline or tone. When you're happy with it, reply \"generate toolkit\" or \"proceed\" and I'll assemble your brand toolkit."

	ClosingMessage = "Your brand toolkit is complete. You can download it at any time from the toolkit view, or start a new project to explore another brand."

	OpeningQuestion = "Welcome! Let's start with the basics. What is the name of your brand, and what product or service does it offer?"
)

// OpeningChoices are the suggested answers shown with OpeningQuestion.
var OpeningChoices = []string{
	"We're a new product still looking for a name",
	"We have a name and an established service",
	"We're rebranding an existing business",
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "• " + it
	}
	return strings.Join(lines, "\n")
}

// StrategyPresentation is the reply that presents a fresh strategy for review.
func StrategyPresentation(s models.BrandStrategy) string {
	var b strings.Builder
	b.WriteString("🎯 **Brand Strategy Complete!**\n\n")
	b.WriteString("I've synthesized your discovery conversation into a comprehensive brand strategy. Here's what I've developed:\n\n---\n\n")
	fmt.Fprintf(&b, "**🎪 Brand Positioning**\n%s\n\n", s.Positioning)
	fmt.Fprintf(&b, "**💡 Brand Purpose**\n%s\n\n", s.PurposeStatement)
	fmt.Fprintf(&b, "**👥 Target Audience**\n%s\n\n", s.TargetAudience)
	fmt.Fprintf(&b, "**✨ Brand Personality**\n%s\n\n", bullets(s.Personality))
	fmt.Fprintf(&b, "**🌟 Core Values**\n%s\n\n", bullets(s.Values))
	fmt.Fprintf(&b, "**🗣️ Tone of Voice**\n%s\n\n", s.ToneOfVoice)
	fmt.Fprintf(&b, "**🚀 Key Differentiators**\n%s\n\n---\n\n", bullets(s.KeyDifferentiators))
	b.WriteString(`Does this strategy accurately capture your brand vision? If you'd like me to refine any element, just let me know. Otherwise, reply "approve" and I'll move forward to generate 3 distinct creative concepts based on this strategy.`)
	return b.String()
}

// ConceptsPresentation numbers the concepts from 1 in the given order.
func ConceptsPresentation(concepts []models.VisualConcept) string {
	blocks := make([]string, len(concepts))
	for i, c := range concepts {
		blocks[i] = fmt.Sprintf("**%d. %s**\n%s\n\n🎨 **Visual Style:** %s\n🌈 **Colors:** %s • %s • %s\n✍️ **Typography:** %s + %s\n💬 **Tagline:** \"%s\"\n🗣️ **Tone:** %s",
			i+1, c.Name, c.Description,
			c.VisualStyle,
			c.PrimaryColor, c.SecondaryColor, c.AccentColor,
			c.DisplayFont, c.BodyFont,
			c.Tagline,
			c.ToneOfVoice)
	}

	var b strings.Builder
	b.WriteString("🎨 **Creative Concepts Ready!**\n\n")
	b.WriteString("I've developed 3 distinct visual directions for your brand. Each concept interprets your strategy in a unique way:\n\n")
	b.WriteString(strings.Join(blocks, "\n\n---\n\n"))
	b.WriteString("\n\nWhich concept resonates most with your vision? Reply with the number (1, 2, or 3) to select it.")
	return b.String()
}

// SelectionConfirmation acknowledges a chosen concept and offers refinement.
func SelectionConfirmation(c models.BrandConcept) string {
	return fmt.Sprintf("Great choice! **%s** is now your selected concept.\n\n%s", c.Name, RefinementPrompt)
}

// ToolkitPresentation is the reply once the toolkit has been rendered.
func ToolkitPresentation(projectName string) string {
	return fmt.Sprintf(`🎉 **Your Brand Toolkit is Complete!**

I've assembled a comprehensive Brand Style Guide for **%s** that includes:

✅ **Brand Strategy**
- Positioning statement
- Brand purpose
- Target audience definition
- Personality traits & values
- Tone of voice guidelines

✅ **Visual Identity System**
- Complete color palette
- Typography specifications
- Visual style guidelines
- Tagline and messaging

✅ **Usage Guidelines**
- Do's and don'ts
- Application examples
- Brand voice principles

Your toolkit is ready to download as a markdown document. Use it to keep your brand consistent across every touchpoint!`, projectName)
}

// MoodboardPrompt builds the image prompt for a concept's moodboard.
func MoodboardPrompt(c models.VisualConcept, s models.BrandStrategy) string {
	return fmt.Sprintf("A professional brand moodboard for \"%s\". %s.\nBrand personality: %s.\nVisual style: %s.\nColor palette: %s, %s, %s.\nMood: %s.\nHigh-quality design collage with textures, patterns, and visual elements that capture the brand essence.",
		c.Name, c.VisualStyle,
		strings.Join(s.Personality, ", "),
		c.Description,
		c.PrimaryColor, c.SecondaryColor, c.AccentColor,
		c.ToneOfVoice)
}
