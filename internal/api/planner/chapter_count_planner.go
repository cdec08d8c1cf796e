package planner

import (
	"log/slog"
	"math"

	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

const (
	// minChapterCount is a deliberate UX floor: a tour shorter than four
	// stops is not worth narrating, regardless of time pressure.
	minChapterCount = 4

	// cognitionCap follows the 7+-2 working-memory rule.
	cognitionCap = 8

	// minutesPerStop is the per-stop time budget used for the time constraint.
	minutesPerStop = 12
)

// baseCountByScale is the default stop count for each venue scale.
var baseCountByScale = map[types.VenueScale]int{
	types.ScaleWorldHeritage:   12,
	types.ScaleNationalMuseum:  9,
	types.ScaleMajorAttraction: 7,
	types.ScaleRegionalSite:    5,
	types.ScaleLocalAttraction: 4,
}

// PlanChapterCount derives the target number of main chapters from venue
// scale, must-see inventory, and the visit time budget. visitDurationMinutes
// of zero falls back to the profile's average visit duration.
func PlanChapterCount(logger *slog.Logger, profile types.VenueProfile, tier1Count, tier2Count, visitDurationMinutes int) int {
	baseCount := baseCountByScale[profile.Scale]
	if baseCount == 0 {
		baseCount = baseCountByScale[types.ScaleLocalAttraction]
	}

	mustSeeCount := tier1Count + int(math.Ceil(float64(tier2Count)*0.7))

	visitDuration := visitDurationMinutes
	if visitDuration <= 0 {
		visitDuration = profile.AverageVisitDuration
	}
	timeConstraint := visitDuration / minutesPerStop

	optimalCount := max(mustSeeCount, minChapterCount)
	optimalCount = min(optimalCount, baseCount, timeConstraint, cognitionCap)

	// The floor of four always applies, even when the time constraint would
	// push the count below it.
	if optimalCount < minChapterCount {
		optimalCount = minChapterCount
	}

	logger.Debug("planned chapter count",
		slog.String("scale", string(profile.Scale)),
		slog.Int("base_count", baseCount),
		slog.Int("must_see_count", mustSeeCount),
		slog.Int("time_constraint", timeConstraint),
		slog.Int("optimal_count", optimalCount))

	return optimalCount
}
