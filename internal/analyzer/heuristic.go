package analyzer

import (
	"context"
	"fmt"
	"os"

	"github.com/apsara-ai/apsara-server/internal/domain"
)

// Heuristic is a local scorer that classifies from simple byte statistics of
// the stored image. It stands in when no remote scorer is configured and is
// deterministic: the same file always yields the same classification.
type Heuristic struct{}

// NewHeuristic creates the local scorer.
func NewHeuristic() *Heuristic { return &Heuristic{} }

// Analyze reads the image and maps its brightness and contrast proxies onto
// a skin type and concern set.
func (h *Heuristic) Analyze(_ context.Context, imagePath string) (*domain.Analysis, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image %s is empty", imagePath)
	}

	// Sample at a fixed stride so large files cost the same as small ones.
	stride := len(data)/4096 + 1
	var sum, count int64
	for i := 0; i < len(data); i += stride {
		sum += int64(data[i])
		count++
	}
	mean := sum / count

	var varSum int64
	for i := 0; i < len(data); i += stride {
		d := int64(data[i]) - mean
		varSum += d * d
	}
	variance := varSum / count

	analysis := &domain.Analysis{}
	switch {
	case mean < 90:
		analysis.SkinType = domain.SkinOily
		analysis.Recommendation = "Use a foaming cleanser and an oil-free moisturizer."
	case mean < 150:
		analysis.SkinType = domain.SkinCombination
		analysis.Recommendation = "Use a gentle cleanser and a non-comedogenic moisturizer."
	case mean < 200:
		analysis.SkinType = domain.SkinNormal
		analysis.Recommendation = "Keep a simple routine: cleanser, moisturizer and daily SPF."
	default:
		analysis.SkinType = domain.SkinDry
		analysis.Recommendation = "Use a cream cleanser and a rich moisturizer with ceramides."
	}

	switch {
	case variance > 6000:
		analysis.Concerns = []string{"texture", "acne"}
	case variance > 3000:
		analysis.Concerns = []string{"pores"}
	default:
		analysis.Concerns = []string{"dullness"}
	}

	return analysis, nil
}
