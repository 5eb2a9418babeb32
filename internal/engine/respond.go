package engine

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/apsara-ai/apsara-server/internal/domain"
)

// Question templates, one per slot-filling state. The copy mirrors the
// consultant script the product team signed off on.
const (
	qGreeting = "👋 Hi! I'm your personal skincare consultant. I'll help you build the perfect routine. What's your name?"

	qSkinType = "How would you describe your skin type?\n\n" +
		"• **Oily** - Shiny, prone to breakouts\n" +
		"• **Dry** - Flaky, tight feeling\n" +
		"• **Combination** - Oily T-zone, dry cheeks\n" +
		"• **Normal** - Balanced\n" +
		"• **Sensitive** - Easily irritated"

	qConcerns = "What are your main skin concerns? (You can mention multiple)\n\n" +
		"• Acne & breakouts\n• Fine lines & wrinkles\n• Dark spots & hyperpigmentation\n" +
		"• Large pores\n• Redness & rosacea\n• Dullness\n• Dark circles\n• Uneven texture"

	qAgeRange = "Which age group do you belong to? This helps me recommend age-appropriate products.\n\n" +
		"• Under 20\n• 20-30\n• 30-40\n• 40-50\n• 50+"

	qRoutine = "Tell me about your current skincare routine. What products do you use daily? (cleanser, moisturizer, serum, etc.)"

	qLifestyle = "Let's talk about your lifestyle:\n\n" +
		"• How many hours of sleep do you usually get?\n• Do you wear makeup daily?\n" +
		"• How much water do you drink?\n• Do you spend a lot of time outdoors?"

	qBudget = "What's your monthly skincare budget?\n\n" +
		"• **Budget-friendly** (Under $50)\n• **Mid-range** ($50-150)\n" +
		"• **Premium** ($150-300)\n• **Luxury** ($300+)"

	qAllergies = "Do you have any allergies or ingredients you want to avoid? (e.g., fragrances, essential oils, retinol)"

	analysisLeadIn = "Let me analyze your profile and create your personalized routine..."
)

var (
	chipsSkinType = []string{"Oily", "Dry", "Combination", "Normal", "Sensitive"}
	chipsConcerns = []string{"Acne", "Fine lines", "Dark spots", "Large pores", "Redness"}
	chipsAgeRange = []string{"Under 20", "20-30", "30-40", "40-50", "50+"}
	chipsRoutine  = []string{"Cleanser", "Moisturizer", "Sunscreen", "Serum", "Nothing yet"}
	chipsBudget   = []string{"Budget-friendly", "Mid-range", "Premium", "Luxury"}
	chipsFollowup = []string{"Show morning routine", "Show evening routine", "Explain ingredients", "Start over"}
)

func questionFor(state domain.State) string {
	switch state {
	case domain.StateGreeting:
		return qGreeting
	case domain.StateSkinType:
		return qSkinType
	case domain.StateConcerns:
		return qConcerns
	case domain.StateAgeRange:
		return qAgeRange
	case domain.StateRoutine:
		return qRoutine
	case domain.StateLifestyle:
		return qLifestyle
	case domain.StateBudget:
		return qBudget
	case domain.StateAllergies:
		return qAllergies
	case domain.StateFollowup:
		return "Is there anything else you'd like to know about your routine?"
	default:
		return analysisLeadIn
	}
}

// --- per-state handlers ---

var nameRe = regexp.MustCompile(`(?i)(?:i'm|i am|my name is|call me)\s+(\w+)`)

type greetingHandler struct{}

func (greetingHandler) Next() domain.State { return domain.StateSkinType }

func (greetingHandler) Complete(_ *domain.Profile, msg string) bool {
	return strings.TrimSpace(msg) != ""
}

func (greetingHandler) Respond(_ context.Context, sess *domain.Session, msg string, _ Entities) Reply {
	if m := nameRe.FindStringSubmatch(msg); m != nil {
		name := title(strings.ToLower(m[1]))
		sess.Context["name"] = name
		return Reply{
			Text:        "Nice to meet you, " + name + "! Let's start with the basics. " + qSkinType,
			Suggestions: chipsSkinType,
		}
	}
	return Reply{
		Text:        "Hello! I'm your personal skincare consultant. Let's start with the basics. " + qSkinType,
		Suggestions: chipsSkinType,
	}
}

type skinTypeHandler struct{}

func (skinTypeHandler) Next() domain.State { return domain.StateConcerns }

func (skinTypeHandler) Complete(p *domain.Profile, msg string) bool {
	return p.SkinType != "" || containsAny(strings.ToLower(msg), skinTypeKeywords)
}

func (skinTypeHandler) Respond(_ context.Context, sess *domain.Session, _ string, entities Entities) Reply {
	if entities.Has(EntitySkinType) || sess.Profile.SkinType != "" {
		ack := "Got it! " + title(sess.Profile.SkinType) + " skin needs special care. "
		return Reply{Text: ack + qConcerns, Suggestions: chipsConcerns}
	}
	return Reply{
		Text:        "Please select your skin type from the options above.",
		Suggestions: []string{"Oily", "Dry", "Combination", "Normal", "Not sure"},
	}
}

type concernsHandler struct{}

func (concernsHandler) Next() domain.State { return domain.StateAgeRange }

func (concernsHandler) Complete(p *domain.Profile, msg string) bool {
	return len(p.Concerns) > 0 || containsAny(strings.ToLower(msg), noConcernSignals)
}

func (concernsHandler) Respond(_ context.Context, sess *domain.Session, msg string, _ Entities) Reply {
	if len(sess.Profile.Concerns) > 0 {
		ack := "I understand you're dealing with " + strings.Join(sess.Profile.Concerns, ", ") + ". We'll address these! "
		return Reply{Text: ack + qAgeRange, Suggestions: chipsAgeRange}
	}
	if containsAny(strings.ToLower(msg), noConcernSignals) {
		return Reply{
			Text:        "No major concerns, that's great news! We'll focus on keeping your skin healthy. " + qAgeRange,
			Suggestions: chipsAgeRange,
		}
	}
	return Reply{
		Text:        "What skin concerns would you like to address?",
		Suggestions: []string{"Acne", "Wrinkles", "Dark spots", "Large pores", "None"},
	}
}

type ageRangeHandler struct{}

func (ageRangeHandler) Next() domain.State { return domain.StateRoutine }

func (ageRangeHandler) Complete(p *domain.Profile, msg string) bool {
	return p.AgeRange != "" ||
		containsAny(strings.ToLower(msg), ageIndicators) ||
		containsDigit(msg)
}

func (h ageRangeHandler) Respond(_ context.Context, sess *domain.Session, msg string, _ Entities) Reply {
	if h.Complete(sess.Profile, msg) {
		return Reply{Text: "Thanks! " + qRoutine, Suggestions: chipsRoutine}
	}
	return Reply{Text: qAgeRange, Suggestions: chipsAgeRange}
}

// freeTextHandler covers the routine, lifestyle and budget questions: any
// substantive answer advances, the content itself is kept as opaque notes.
type freeTextHandler struct {
	state domain.State
	next  domain.State
	ack   string
}

func (h freeTextHandler) Next() domain.State { return h.next }

func (h freeTextHandler) Complete(_ *domain.Profile, msg string) bool {
	return substantive(msg)
}

func (h freeTextHandler) Respond(_ context.Context, _ *domain.Session, msg string, _ Entities) Reply {
	if !substantive(msg) {
		return Reply{Text: questionFor(h.state)}
	}
	reply := Reply{Text: h.ack + questionFor(h.next)}
	if h.next == domain.StateBudget {
		reply.Suggestions = chipsBudget
	}
	return reply
}

type allergiesHandler struct{}

func (allergiesHandler) Next() domain.State { return domain.StateAnalysis }

func (allergiesHandler) Complete(_ *domain.Profile, msg string) bool {
	return strings.TrimSpace(msg) != ""
}

func (allergiesHandler) Respond(_ context.Context, _ *domain.Session, msg string, _ Entities) Reply {
	if strings.TrimSpace(msg) == "" {
		return Reply{Text: qAllergies}
	}
	return Reply{
		Text:        "Thanks, that's everything I need! " + analysisLeadIn,
		Suggestions: []string{"Analyze my skin"},
	}
}

type analysisHandler struct {
	products ProductRecommender
	limit    int
}

func (analysisHandler) Next() domain.State { return domain.StateFollowup }

// Complete always holds: the analysis turn is one-shot and moves straight on
// to followup after the recommendation is rendered.
func (analysisHandler) Complete(_ *domain.Profile, _ string) bool { return true }

func (h analysisHandler) Respond(ctx context.Context, sess *domain.Session, _ string, _ Entities) Reply {
	rec := Recommend(sess.Profile)
	sess.Recommendation = rec

	reply := Reply{
		Text:        FormatRecommendation(rec, sess.Profile),
		Suggestions: chipsFollowup,
	}
	if h.products != nil {
		products, err := h.products.Recommend(ctx, sess.Profile.Concerns, h.limit)
		if err != nil {
			slog.Warn("catalog lookup failed, returning no products", "session_id", sess.ID, "error", err)
		} else {
			reply.Products = products
		}
	}
	return reply
}

type followupHandler struct{}

func (followupHandler) Next() domain.State { return "" }

// Complete never holds: followup is terminal until an explicit reset.
func (followupHandler) Complete(_ *domain.Profile, _ string) bool { return false }

func (followupHandler) Respond(_ context.Context, sess *domain.Session, _ string, _ Entities) Reply {
	text := "I'm glad I could help! Ask me about any ingredient or step in your routine, or say \"start over\" for a fresh consultation."
	if sess.Recommendation == nil {
		text = analysisLeadIn
	}
	return Reply{Text: text, Suggestions: chipsFollowup}
}

// --- out-of-flow fallback ---

var ingredientInfo = map[string]string{
	"retinol":     "Retinol is a vitamin A derivative that speeds up cell turnover, softening fine lines and keeping pores clear. Start at 0.3% a few nights a week and build up slowly.",
	"vitamin_c":   "Vitamin C is an antioxidant that brightens skin and fades dark spots. Use it in the morning, under sunscreen, for the best results.",
	"niacinamide": "Niacinamide (vitamin B3) calms redness, regulates oil and strengthens the skin barrier. It plays well with almost every other ingredient.",
	"hyaluronic":  "Hyaluronic acid is a humectant that pulls water into the skin. Apply it to damp skin and seal it in with a moisturizer.",
	"salicylic":   "Salicylic acid (BHA) is oil-soluble, so it clears inside the pore. Great for breakouts and blackheads; don't combine with strong exfoliants.",
	"glycolic":    "Glycolic acid (AHA) exfoliates the skin surface to smooth texture and boost glow. Use at night and always wear SPF the next day.",
}

var questionWords = []string{"what", "explain", "tell me", "how", "?"}

// fallbackReply answers out-of-flow free text with canned replies keyed by
// keyword groups, restating the current question so the flow can continue.
// It only runs when the current state's slot was not filled by the message.
func fallbackReply(state domain.State, msg string, entities Entities) (Reply, bool) {
	lower := strings.ToLower(msg)

	if entities.Has(EntityIngredients) && containsAny(lower, questionWords) {
		var parts []string
		for _, label := range entities[EntityIngredients] {
			if info, ok := ingredientInfo[label]; ok {
				parts = append(parts, info)
			}
		}
		if len(parts) > 0 {
			return Reply{Text: strings.Join(parts, "\n\n") + "\n\n" + questionFor(state)}, true
		}
	}

	switch {
	case strings.Contains(lower, "help"):
		return Reply{Text: "I ask a few quick questions about your skin, then build a personalized routine with product picks. You can answer in your own words. " + questionFor(state)}, true
	case strings.Contains(lower, "recommend") || strings.Contains(lower, "which product") || strings.Contains(lower, "what product"):
		return Reply{Text: "I'll recommend specific products once I've learned a bit more about your skin. " + questionFor(state)}, true
	case strings.Contains(lower, "skip"):
		return Reply{Text: "No problem, we can come back to that later. " + questionFor(state)}, true
	}

	return Reply{}, false
}
