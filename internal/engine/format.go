package engine

import (
	"fmt"
	"strings"

	"github.com/apsara-ai/apsara-server/internal/domain"
)

// FormatRecommendation renders a recommendation as markdown display text.
func FormatRecommendation(rec *domain.Recommendation, p *domain.Profile) string {
	var b strings.Builder

	b.WriteString("## 🎯 Your Personalized Skincare Analysis\n\n")
	b.WriteString("**Skin Type:** " + title(p.SkinType) + "\n")
	b.WriteString("**Main Concerns:** " + strings.Join(p.Concerns, ", ") + "\n\n")

	b.WriteString("### ☀️ Morning Routine:\n")
	for _, step := range rec.MorningRoutine {
		fmt.Fprintf(&b, "**Step %d. %s**\n", step.Step, step.ProductType)
		fmt.Fprintf(&b, "   → %s\n", step.Recommendation)
		if len(step.Ingredients) > 0 {
			fmt.Fprintf(&b, "   *Key ingredients:* %s\n", strings.Join(step.Ingredients, ", "))
		}
		b.WriteString("\n")
	}

	if len(rec.EveningRoutine) > 0 {
		b.WriteString("### 🌙 Evening Routine:\n")
		for _, step := range rec.EveningRoutine {
			fmt.Fprintf(&b, "**%s:** %s\n", step.ProductType, step.Recommendation)
			if step.Frequency != "" {
				fmt.Fprintf(&b, "   *Frequency:* %s\n", step.Frequency)
			}
			b.WriteString("\n")
		}
	}

	if len(rec.WeeklyTreatments) > 0 {
		b.WriteString("### 📅 Weekly Treatments:\n")
		for _, t := range rec.WeeklyTreatments {
			fmt.Fprintf(&b, "• **%s** - %s\n", t.Treatment, t.Frequency)
			fmt.Fprintf(&b, "  %s\n", t.Benefits)
		}
	}

	b.WriteString("\n💡 **Pro Tips:**\n")
	b.WriteString("• Always patch test new products\n")
	b.WriteString("• Introduce actives gradually\n")
	b.WriteString("• Consistency is key for results\n")
	b.WriteString("• Don't forget your neck!\n")

	return b.String()
}

func title(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
