package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

func TestValidateWeights(t *testing.T) {
	assert.NoError(t, ValidateWeights())
}

func TestCompositeScore_KnownValue(t *testing.T) {
	scores := types.ScoreVector{
		GlobalFame:         9.2,
		CulturalImportance: 9.0,
		VisitorPreference:  9.5,
		PhotoWorthiness:    9.8,
		Uniqueness:         9.3,
		Accessibility:      8.0,
	}

	// 9.2*0.25 + 9.0*0.20 + 9.5*0.25 + 9.8*0.15 + 9.3*0.10 + 8.0*0.05
	assert.InDelta(t, 9.275, CompositeScore(scores), 1e-9)
}

func TestCompositeScore_Range(t *testing.T) {
	vectors := []types.ScoreVector{
		{},
		{GlobalFame: 10, CulturalImportance: 10, VisitorPreference: 10, PhotoWorthiness: 10, Uniqueness: 10, Accessibility: 10},
		{GlobalFame: 3.5, CulturalImportance: 7.2, VisitorPreference: 1.0, PhotoWorthiness: 9.9, Uniqueness: 0.1, Accessibility: 5.5},
	}
	for _, v := range vectors {
		score := CompositeScore(v)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 10.0)
	}
}

func TestCompositeScore_UniformVectorEqualsScore(t *testing.T) {
	// Because the weights sum to 1.0, a uniform vector maps to itself.
	scores := types.ScoreVector{
		GlobalFame: 8, CulturalImportance: 8, VisitorPreference: 8,
		PhotoWorthiness: 8, Uniqueness: 8, Accessibility: 8,
	}
	assert.InDelta(t, 8.0, CompositeScore(scores), 1e-9)
}
