// Package engine implements the consultation conversation engine: entity
// extraction from free text, profile accumulation, the state machine that
// walks the scripted questionnaire, and the rule-based routine recommender.
package engine

import (
	"regexp"
	"strings"
)

// Entity category keys used in the extraction result.
const (
	EntitySkinType    = "skin_type"
	EntityConcerns    = "concerns"
	EntityProducts    = "products"
	EntityIngredients = "ingredients"
	EntityAge         = "age"
	EntityAgeUnder    = "age_under"
	EntityAgeRange    = "age_range"
	EntityAgeDecade   = "age_decade"
)

// Entities maps an entity category to the canonical labels matched in one
// utterance, in first-seen order. Categories with no match are absent.
type Entities map[string][]string

// First returns the first label matched for a category, or "".
func (e Entities) First(category string) string {
	if v := e[category]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Has reports whether any label was matched for a category.
func (e Entities) Has(category string) bool {
	return len(e[category]) > 0
}

// dictionary maps canonical labels to their synonym phrases. Entry order is
// significant: the first matching label wins when a single value is taken.
type dictionary []struct {
	label    string
	synonyms []string
}

var skinTypeDict = dictionary{
	{"oily", []string{"oily", "greasy", "shiny", "sebum"}},
	{"dry", []string{"dry", "flaky", "dehydrated", "tight"}},
	{"combination", []string{"combination", "mixed", "combo", "t-zone"}},
	{"normal", []string{"normal", "balanced", "regular"}},
	{"sensitive", []string{"sensitive", "reactive", "irritated", "red"}},
}

var concernDict = dictionary{
	{"acne", []string{"acne", "pimples", "breakouts", "zits", "blackheads", "whiteheads"}},
	{"aging", []string{"wrinkles", "fine lines", "aging", "anti-aging", "crow's feet"}},
	{"pigmentation", []string{"dark spots", "hyperpigmentation", "melasma", "sun spots", "age spots"}},
	{"pores", []string{"large pores", "pores", "enlarged pores", "visible pores"}},
	{"redness", []string{"redness", "rosacea", "inflammation", "irritation"}},
	{"dullness", []string{"dull", "dullness", "lackluster", "tired skin"}},
	{"dark_circles", []string{"dark circles", "under eye", "eye bags", "puffy eyes"}},
	{"texture", []string{"texture", "rough", "bumpy", "uneven"}},
}

var productDict = dictionary{
	{"cleanser", []string{"cleanser", "wash", "cleansing", "face wash"}},
	{"moisturizer", []string{"moisturizer", "cream", "lotion", "hydrator"}},
	{"serum", []string{"serum", "treatment", "essence", "ampoule"}},
	{"sunscreen", []string{"sunscreen", "spf", "sun protection", "sunblock"}},
	{"toner", []string{"toner", "tonic", "astringent"}},
	{"exfoliant", []string{"exfoliant", "scrub", "peel", "aha", "bha"}},
	{"mask", []string{"mask", "face mask", "sheet mask"}},
	{"eye_cream", []string{"eye cream", "eye serum", "eye treatment"}},
}

var activeDict = dictionary{
	{"retinol", []string{"retinol", "retinoid", "retin-a", "tretinoin"}},
	{"vitamin_c", []string{"vitamin c", "ascorbic acid", "l-ascorbic"}},
	{"niacinamide", []string{"niacinamide", "vitamin b3"}},
	{"hyaluronic", []string{"hyaluronic acid", "sodium hyaluronate"}},
	{"salicylic", []string{"salicylic acid", "bha", "beta hydroxy"}},
	{"glycolic", []string{"glycolic acid", "aha", "alpha hydroxy"}},
}

// Age expressions like "25 years old", "under 20", "30-40" or "40s".
var agePatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{EntityAge, regexp.MustCompile(`\b(\d{1,2})\s*years?\s*old\b`)},
	{EntityAge, regexp.MustCompile(`\b(\d{1,2})\s*y/?o\b`)},
	{EntityAgeUnder, regexp.MustCompile(`\bunder\s*(\d{2})\b`)},
	{EntityAgeRange, regexp.MustCompile(`\b(\d{2})-(\d{2})\b`)},
	{EntityAgeDecade, regexp.MustCompile(`\b(\d{2})s\b`)},
}

// Extract scans an utterance against the synonym dictionaries and age
// patterns. It is a pure function: substring containment only, no ranking,
// no fuzzy matching, and no negation handling ("I don't have acne" still
// records acne — a known accuracy gap of the substring design).
func Extract(text string) Entities {
	lower := strings.ToLower(text)
	entities := Entities{}

	scan := func(category string, dict dictionary) {
		for _, entry := range dict {
			for _, syn := range entry.synonyms {
				if strings.Contains(lower, syn) {
					entities[category] = append(entities[category], entry.label)
					break
				}
			}
		}
	}
	scan(EntitySkinType, skinTypeDict)
	scan(EntityConcerns, concernDict)
	scan(EntityProducts, productDict)
	scan(EntityIngredients, activeDict)

	for _, p := range agePatterns {
		for _, m := range p.re.FindAllStringSubmatch(lower, -1) {
			entities[p.name] = append(entities[p.name], m[1:]...)
		}
	}

	return entities
}
