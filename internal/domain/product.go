package domain

// Product is a catalog entry consumed read-only from the product store.
// Concern matching against a profile is by case-insensitive label equality.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Brand    string   `json:"brand"`
	Category string   `json:"category"`
	Concerns []string `json:"concerns"`
	URL      string   `json:"url,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
}

// Analysis is the output of the external skin scorer.
type Analysis struct {
	SkinType       string   `json:"skin_type"`
	Concerns       []string `json:"concerns"`
	Recommendation string   `json:"recommendations"`
}
