package domain

// RoutineStep is one entry in a morning or evening routine. Step numbers are
// 1-based and contiguous within their list after optional steps are omitted.
type RoutineStep struct {
	Step           int      `json:"step"`
	ProductType    string   `json:"product_type"`
	Recommendation string   `json:"recommendation"`
	Ingredients    []string `json:"ingredients,omitempty"`
	Avoid          []string `json:"avoid,omitempty"`
	Frequency      string   `json:"frequency,omitempty"`
	Texture        string   `json:"texture,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// WeeklyTreatment is an occasional treatment outside the daily routine.
type WeeklyTreatment struct {
	Treatment   string   `json:"treatment"`
	Frequency   string   `json:"frequency"`
	Benefits    string   `json:"benefits"`
	Ingredients []string `json:"ingredients,omitempty"`
}

// Recommendation is a complete routine derived from a profile. It is
// recomputed from scratch, never mutated incrementally.
type Recommendation struct {
	MorningRoutine   []RoutineStep     `json:"morning_routine"`
	EveningRoutine   []RoutineStep     `json:"evening_routine"`
	WeeklyTreatments []WeeklyTreatment `json:"weekly_treatments"`
}
