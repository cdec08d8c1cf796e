package candidate

import (
	"fmt"

	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

// Score weights for the six dimensions. They must sum to 1.0; ValidateWeights
// is asserted at package init and in tests.
const (
	weightGlobalFame         = 0.25
	weightCulturalImportance = 0.20
	weightVisitorPreference  = 0.25
	weightPhotoWorthiness    = 0.15
	weightUniqueness         = 0.10
	weightAccessibility      = 0.05
)

func init() {
	if err := ValidateWeights(); err != nil {
		panic(err)
	}
}

// ValidateWeights checks the composite-score weight invariant.
func ValidateWeights() error {
	total := weightGlobalFame + weightCulturalImportance + weightVisitorPreference +
		weightPhotoWorthiness + weightUniqueness + weightAccessibility
	// Untyped constant arithmetic, so the comparison is exact.
	if total != 1.0 {
		return fmt.Errorf("composite score weights sum to %v, want 1.0", total)
	}
	return nil
}

// CompositeScore computes the weighted 0-10 ranking value of a score vector.
func CompositeScore(scores types.ScoreVector) float64 {
	return scores.GlobalFame*weightGlobalFame +
		scores.CulturalImportance*weightCulturalImportance +
		scores.VisitorPreference*weightVisitorPreference +
		scores.PhotoWorthiness*weightPhotoWorthiness +
		scores.Uniqueness*weightUniqueness +
		scores.Accessibility*weightAccessibility
}
