package domain

// Skin type labels form a closed set; extraction maps synonyms onto them.
const (
	SkinOily        = "oily"
	SkinDry         = "dry"
	SkinCombination = "combination"
	SkinNormal      = "normal"
	SkinSensitive   = "sensitive"
)

// Age bracket labels. Numeric ages are bucketed onto these.
const (
	AgeUnder20 = "under_20"
	Age20to30  = "20-30"
	Age30to40  = "30-40"
	Age40to50  = "40-50"
	Age50Plus  = "50+"
)

// Profile accumulates structured facts about the user within one session.
// Concerns and CurrentRoutine only grow during a session; SkinType and
// AgeRange are last-detected-wins.
type Profile struct {
	SkinType       string            `json:"skin_type,omitempty"`
	Concerns       []string          `json:"concerns"`
	AgeRange       string            `json:"age_range,omitempty"`
	CurrentRoutine []string          `json:"current_routine"`
	Lifestyle      map[string]string `json:"lifestyle"`
	Budget         string            `json:"budget,omitempty"`
	Allergies      []string          `json:"allergies"`
	Preferences    map[string]string `json:"preferences"`
}

// NewProfile creates an empty profile with non-nil collections.
func NewProfile() *Profile {
	return &Profile{
		Concerns:       []string{},
		CurrentRoutine: []string{},
		Lifestyle:      make(map[string]string),
		Allergies:      []string{},
		Preferences:    make(map[string]string),
	}
}

// AddConcerns unions labels into the concern set, preserving first-seen order.
func (p *Profile) AddConcerns(labels ...string) {
	p.Concerns = appendUnique(p.Concerns, labels)
}

// AddRoutineProducts unions labels into the current-routine set.
func (p *Profile) AddRoutineProducts(labels ...string) {
	p.CurrentRoutine = appendUnique(p.CurrentRoutine, labels)
}

// HasConcern reports whether the concern label has been recorded.
func (p *Profile) HasConcern(label string) bool {
	for _, c := range p.Concerns {
		if c == label {
			return true
		}
	}
	return false
}

// Complete reports whether enough of the profile is filled to recommend a
// routine: a skin type and at least one concern.
func (p *Profile) Complete() bool {
	return p.SkinType != "" && len(p.Concerns) > 0
}

func appendUnique(existing []string, labels []string) []string {
	for _, l := range labels {
		seen := false
		for _, e := range existing {
			if e == l {
				seen = true
				break
			}
		}
		if !seen {
			existing = append(existing, l)
		}
	}
	return existing
}
