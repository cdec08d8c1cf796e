package planner

import (
	"sort"

	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

// SelectTopCandidates picks the highest-value candidates. Every tier-1
// candidate is included unconditionally: when tier-1 inventory alone exceeds
// targetCount, the result deliberately overrides the planner's ceiling.
func SelectTopCandidates(points []types.CandidatePoint, targetCount int) []types.CandidatePoint {
	sorted := make([]types.CandidatePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompositeScore > sorted[j].CompositeScore
	})

	var tier1, others []types.CandidatePoint
	for _, p := range sorted {
		if p.Tier == types.Tier1WorldFamous {
			tier1 = append(tier1, p)
		} else {
			others = append(others, p)
		}
	}

	remainingSlots := targetCount - len(tier1)
	if remainingSlots < 0 {
		remainingSlots = 0
	}
	if remainingSlots > len(others) {
		remainingSlots = len(others)
	}

	return append(tier1, others[:remainingSlots]...)
}
