package engine

import (
	"github.com/apsara-ai/apsara-server/internal/domain"
)

// Recommend derives a complete routine from the profile via a fixed decision
// table. Pure and reproducible: the same profile always yields the same
// recommendation. Step numbers are assigned by position after omissions, so
// both routines stay contiguous from 1.
func Recommend(p *domain.Profile) *domain.Recommendation {
	var morning []domain.RoutineStep

	switch p.SkinType {
	case domain.SkinOily:
		morning = append(morning, domain.RoutineStep{
			ProductType:    "Cleanser",
			Recommendation: "Gel or foaming cleanser with salicylic acid",
			Ingredients:    []string{"salicylic acid", "tea tree", "niacinamide"},
			Avoid:          []string{"heavy oils", "comedogenic ingredients"},
		})
	case domain.SkinDry:
		morning = append(morning, domain.RoutineStep{
			ProductType:    "Cleanser",
			Recommendation: "Cream or milk cleanser",
			Ingredients:    []string{"ceramides", "hyaluronic acid", "glycerin"},
			Avoid:          []string{"sulfates", "alcohol"},
		})
	default:
		morning = append(morning, domain.RoutineStep{
			ProductType:    "Cleanser",
			Recommendation: "Gentle gel cleanser",
			Ingredients:    []string{"gentle surfactants", "antioxidants"},
			Avoid:          []string{"harsh sulfates"},
		})
	}

	// Treatment slot: one of acne, aging, pigmentation, in priority order.
	switch {
	case p.HasConcern("acne"):
		morning = append(morning, domain.RoutineStep{
			ProductType:    "Treatment",
			Recommendation: "BHA toner or serum",
			Ingredients:    []string{"salicylic acid 2%", "niacinamide"},
			Frequency:      "daily",
		})
	case p.HasConcern("aging") || p.HasConcern("wrinkles"):
		morning = append(morning, domain.RoutineStep{
			ProductType:    "Serum",
			Recommendation: "Vitamin C serum",
			Ingredients:    []string{"L-ascorbic acid 10-20%", "vitamin E", "ferulic acid"},
			Frequency:      "daily",
		})
	case p.HasConcern("pigmentation"):
		morning = append(morning, domain.RoutineStep{
			ProductType:    "Serum",
			Recommendation: "Brightening serum",
			Ingredients:    []string{"niacinamide 10%", "alpha arbutin", "kojic acid"},
			Frequency:      "daily",
		})
	}

	if p.SkinType == domain.SkinOily {
		morning = append(morning, domain.RoutineStep{
			ProductType:    "Moisturizer",
			Recommendation: "Lightweight gel moisturizer",
			Ingredients:    []string{"hyaluronic acid", "niacinamide"},
			Texture:        "gel or gel-cream",
		})
	} else {
		morning = append(morning, domain.RoutineStep{
			ProductType:    "Moisturizer",
			Recommendation: "Hydrating cream",
			Ingredients:    []string{"ceramides", "peptides", "hyaluronic acid"},
			Texture:        "cream",
		})
	}

	morning = append(morning, domain.RoutineStep{
		ProductType:    "Sunscreen",
		Recommendation: "Broad spectrum SPF 30+",
		Ingredients:    []string{"zinc oxide or chemical filters"},
		Notes:          "Essential for all skin types",
	})

	var evening []domain.RoutineStep
	switch p.AgeRange {
	case domain.Age30to40, domain.Age40to50, domain.Age50Plus:
		evening = append(evening, domain.RoutineStep{
			ProductType:    "Retinol",
			Recommendation: "Start with 0.3% retinol",
			Frequency:      "2-3 times per week initially",
			Notes:          "Build tolerance gradually",
		})
	}

	return &domain.Recommendation{
		MorningRoutine:   renumber(morning),
		EveningRoutine:   renumber(evening),
		WeeklyTreatments: weeklyTreatments(p),
	}
}

func renumber(steps []domain.RoutineStep) []domain.RoutineStep {
	for i := range steps {
		steps[i].Step = i + 1
	}
	return steps
}

func weeklyTreatments(p *domain.Profile) []domain.WeeklyTreatment {
	var treatments []domain.WeeklyTreatment
	if p.SkinType == domain.SkinOily || p.HasConcern("pores") {
		treatments = append(treatments, domain.WeeklyTreatment{
			Treatment: "Clay mask",
			Frequency: "1-2 times per week",
			Benefits:  "Deep cleansing and pore minimizing",
		})
	}
	if p.SkinType == domain.SkinDry || p.HasConcern("dehydration") {
		treatments = append(treatments, domain.WeeklyTreatment{
			Treatment: "Hydrating mask",
			Frequency: "2-3 times per week",
			Benefits:  "Intense hydration boost",
		})
	}
	if p.HasConcern("texture") || p.HasConcern("dullness") {
		treatments = append(treatments, domain.WeeklyTreatment{
			Treatment:   "Chemical exfoliant",
			Frequency:   "1-2 times per week",
			Benefits:    "Smooth texture and brighten skin",
			Ingredients: []string{"AHA (glycolic/lactic acid)"},
		})
	}
	return treatments
}
