package planner

import (
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

func majorAttractionProfile() types.VenueProfile {
	return types.VenueProfile{
		Scale:                types.ScaleMajorAttraction,
		VenueType:            types.VenueMixed,
		AverageVisitDuration: 90,
	}
}

func TestPlanChapterCount_MajorAttractionScenario(t *testing.T) {
	// mustSee = 2 + ceil(3*0.7) = 5, time = floor(90/12) = 7,
	// optimal = min(max(5,4), 7, 7, 8) = 5.
	count := PlanChapterCount(slog.Default(), majorAttractionProfile(), 2, 3, 90)
	assert.Equal(t, 5, count)
}

func TestPlanChapterCount_FloorOfFourUnderTimePressure(t *testing.T) {
	// floor(30/12) = 2, but the planner never returns fewer than 4 stops.
	count := PlanChapterCount(slog.Default(), majorAttractionProfile(), 0, 0, 30)
	assert.Equal(t, 4, count)
}

func TestPlanChapterCount_Bounds(t *testing.T) {
	profiles := []types.VenueProfile{
		{Scale: types.ScaleWorldHeritage, AverageVisitDuration: 180},
		{Scale: types.ScaleNationalMuseum, AverageVisitDuration: 120},
		{Scale: types.ScaleMajorAttraction, AverageVisitDuration: 90},
		{Scale: types.ScaleRegionalSite, AverageVisitDuration: 60},
		{Scale: types.ScaleLocalAttraction, AverageVisitDuration: 45},
	}
	for _, profile := range profiles {
		for tier1 := 0; tier1 <= 6; tier1++ {
			for tier2 := 0; tier2 <= 6; tier2++ {
				for _, duration := range []int{0, 20, 60, 90, 240} {
					count := PlanChapterCount(slog.Default(), profile, tier1, tier2, duration)
					base := baseCountByScale[profile.Scale]
					assert.GreaterOrEqual(t, count, 4)
					assert.LessOrEqual(t, count, min(base, cognitionCap))
				}
			}
		}
	}
}

func TestPlanChapterCount_MonotonicInMustSee(t *testing.T) {
	profile := types.VenueProfile{Scale: types.ScaleWorldHeritage, AverageVisitDuration: 180}
	prev := 0
	for tier1 := 0; tier1 <= 10; tier1++ {
		count := PlanChapterCount(slog.Default(), profile, tier1, 0, 180)
		assert.GreaterOrEqual(t, count, prev, "tier1=%d", tier1)
		prev = count
	}
}

func TestPlanChapterCount_DefaultsToAverageVisitDuration(t *testing.T) {
	profile := types.VenueProfile{Scale: types.ScaleNationalMuseum, AverageVisitDuration: 120}
	// With no requested duration, floor(120/12)=10 applies instead of a zero
	// time constraint, leaving the cognition cap of 8 as the binding limit.
	assert.Equal(t, 8, PlanChapterCount(slog.Default(), profile, 9, 0, 0))
}

func point(name string, tier types.Tier, score, lat, lng float64) types.CandidatePoint {
	return types.CandidatePoint{
		ID:             uuid.New(),
		Name:           name,
		Tier:           tier,
		CompositeScore: score,
		Coordinates:    types.Coordinates{Lat: lat, Lng: lng},
	}
}

func TestSelectTopCandidates_MajorAttractionScenario(t *testing.T) {
	points := []types.CandidatePoint{
		point("T1 A", types.Tier1WorldFamous, 9.5, 0, 0),
		point("T1 B", types.Tier1WorldFamous, 9.1, 0, 0),
		point("T2 A", types.Tier2NationalTreasure, 8.8, 0, 0),
		point("T2 B", types.Tier2NationalTreasure, 8.2, 0, 0),
		point("T2 C", types.Tier2NationalTreasure, 7.9, 0, 0),
		point("T3 A", types.Tier3CrowdFavorite, 7.4, 0, 0),
		point("T3 B", types.Tier3CrowdFavorite, 6.0, 0, 0),
	}

	selected := SelectTopCandidates(points, 5)
	require.Len(t, selected, 5)

	names := make([]string, 0, len(selected))
	for _, p := range selected {
		names = append(names, p.Name)
	}
	// Both tier-1 points plus the three highest-scoring others.
	assert.ElementsMatch(t, []string{"T1 A", "T1 B", "T2 A", "T2 B", "T2 C"}, names)
}

func TestSelectTopCandidates_Tier1OverridesCeiling(t *testing.T) {
	points := []types.CandidatePoint{
		point("T1 A", types.Tier1WorldFamous, 9.5, 0, 0),
		point("T1 B", types.Tier1WorldFamous, 9.4, 0, 0),
		point("T1 C", types.Tier1WorldFamous, 9.3, 0, 0),
		point("T1 D", types.Tier1WorldFamous, 9.2, 0, 0),
		point("T2 A", types.Tier2NationalTreasure, 8.0, 0, 0),
	}

	selected := SelectTopCandidates(points, 3)
	// All four tier-1 candidates survive even though the target was 3.
	require.Len(t, selected, 4)
	for _, p := range selected {
		assert.Equal(t, types.Tier1WorldFamous, p.Tier)
	}
}

func TestSelectTopCandidates_TargetLargerThanInventory(t *testing.T) {
	points := []types.CandidatePoint{
		point("T2 A", types.Tier2NationalTreasure, 8.0, 0, 0),
		point("T3 A", types.Tier3CrowdFavorite, 6.0, 0, 0),
	}
	assert.Len(t, SelectTopCandidates(points, 10), 2)
}

func idMultiset(points []types.CandidatePoint) map[uuid.UUID]int {
	m := make(map[uuid.UUID]int)
	for _, p := range points {
		m[p.ID]++
	}
	return m
}

func TestOptimizeRoute_OutdoorIsPermutation(t *testing.T) {
	points := []types.CandidatePoint{
		point("A", types.Tier2NationalTreasure, 8.0, 37.5665, 126.9780),
		point("B", types.Tier1WorldFamous, 9.5, 37.5700, 126.9800),
		point("C", types.Tier3CrowdFavorite, 6.5, 37.5670, 126.9782),
		point("D", types.Tier3CrowdFavorite, 7.0, 37.5800, 126.9900),
	}

	route := OptimizeRoute(points, types.VenueOutdoor)
	require.Len(t, route, len(points))
	assert.Equal(t, idMultiset(points), idMultiset(route))

	// Starts at the highest composite score.
	assert.Equal(t, "B", route[0].Name)
	// Greedy nearest neighbor from B picks C (closest), then A, then D.
	assert.Equal(t, "C", route[1].Name)
	assert.Equal(t, "A", route[2].Name)
	assert.Equal(t, "D", route[3].Name)
}

func TestOptimizeRoute_IndoorFlowOrder(t *testing.T) {
	entrance := point("Entrance Hall", types.Tier3CrowdFavorite, 5.0, 0, 0)
	special := point("Special Exhibit", types.Tier2NationalTreasure, 8.0, 0, 0)
	mainHall := point("Main Hall", types.Tier1WorldFamous, 9.0, 0, 0)
	plain := point("East Wing", types.Tier3CrowdFavorite, 7.5, 0, 0)
	plainLow := point("West Wing", types.Tier3CrowdFavorite, 6.5, 0, 0)

	points := []types.CandidatePoint{plainLow, special, plain, mainHall, entrance}
	route := OptimizeRoute(points, types.VenueIndoor)

	require.Len(t, route, 5)
	assert.Equal(t, idMultiset(points), idMultiset(route))
	assert.Equal(t, "Entrance Hall", route[0].Name)
	assert.Equal(t, "Main Hall", route[1].Name)
	assert.Equal(t, "Special Exhibit", route[2].Name)
	// Default-priority stops keep composite order.
	assert.Equal(t, "East Wing", route[3].Name)
	assert.Equal(t, "West Wing", route[4].Name)
}

func TestOptimizeRoute_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, OptimizeRoute(nil, types.VenueOutdoor))

	single := []types.CandidatePoint{point("Only", types.Tier1WorldFamous, 9.0, 0, 0)}
	assert.Len(t, OptimizeRoute(single, types.VenueIndoor), 1)
}

func TestDistance(t *testing.T) {
	a := types.Coordinates{Lat: 37.5665, Lng: 126.9780}
	b := types.Coordinates{Lat: 37.5665, Lng: 126.9790}
	// 0.001 degrees of longitude at the approximation factor.
	assert.InDelta(t, 111.0, Distance(a, b), 0.5)
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}
