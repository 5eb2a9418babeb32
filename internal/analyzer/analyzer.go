// Package analyzer wraps the image-based skin scorer. The engine treats it
// as an opaque function from a stored image to a classification.
package analyzer

import (
	"context"

	"github.com/apsara-ai/apsara-server/internal/domain"
)

// Analyzer scores a stored skin image.
type Analyzer interface {
	Analyze(ctx context.Context, imagePath string) (*domain.Analysis, error)
}

// Fallback is the fixed low-confidence classification used when the scorer
// fails; the caller pairs it with a request for a clearer photo.
func Fallback() *domain.Analysis {
	return &domain.Analysis{
		SkinType:       domain.SkinCombination,
		Concerns:       []string{"dehydration"},
		Recommendation: "Use a gentle cleanser and a non-comedogenic moisturizer.",
	}
}
