package planner

import (
	"math"
	"sort"
	"strings"

	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

// metersPerDegree is the rough lat/lng-to-meters factor used for short
// intra-venue distances.
const metersPerDegree = 111000

// indoorFlowPriority orders indoor stops by the natural viewing flow:
// entrance first, then main halls, then special and permanent exhibits.
var indoorFlowPriority = map[string]int{
	"entrance":  1,
	"lobby":     1,
	"main":      2,
	"central":   2,
	"grand":     3,
	"special":   4,
	"permanent": 5,
	"featured":  6,
}

const defaultFlowPriority = 99

// OptimizeRoute orders the selected candidates into a visit sequence. The
// result is always a permutation of the input.
func OptimizeRoute(points []types.CandidatePoint, venueType types.VenueType) []types.CandidatePoint {
	if len(points) <= 1 {
		return append([]types.CandidatePoint(nil), points...)
	}
	if venueType == types.VenueOutdoor {
		return nearestNeighborRoute(points)
	}
	return indoorFlowRoute(points)
}

// nearestNeighborRoute starts at the highest-composite point and greedily
// hops to the closest unvisited point. O(n^2), fine for n <= 12.
func nearestNeighborRoute(points []types.CandidatePoint) []types.CandidatePoint {
	remaining := append([]types.CandidatePoint(nil), points...)

	start := 0
	for i, p := range remaining {
		if p.CompositeScore > remaining[start].CompositeScore {
			start = i
		}
	}

	result := make([]types.CandidatePoint, 0, len(remaining))
	current := remaining[start]
	result = append(result, current)
	remaining = append(remaining[:start], remaining[start+1:]...)

	for len(remaining) > 0 {
		nearest := 0
		nearestDist := Distance(current.Coordinates, remaining[0].Coordinates)
		for i := 1; i < len(remaining); i++ {
			if d := Distance(current.Coordinates, remaining[i].Coordinates); d < nearestDist {
				nearest = i
				nearestDist = d
			}
		}
		current = remaining[nearest]
		result = append(result, current)
		remaining = append(remaining[:nearest], remaining[nearest+1:]...)
	}

	return result
}

// indoorFlowRoute stable-sorts by flow priority, ties broken by composite
// score descending.
func indoorFlowRoute(points []types.CandidatePoint) []types.CandidatePoint {
	result := append([]types.CandidatePoint(nil), points...)
	sort.SliceStable(result, func(i, j int) bool {
		fi := flowPriority(result[i])
		fj := flowPriority(result[j])
		if fi != fj {
			return fi < fj
		}
		return result[i].CompositeScore > result[j].CompositeScore
	})
	return result
}

func flowPriority(p types.CandidatePoint) int {
	name := strings.ToLower(p.Name + " " + p.Section)
	best := defaultFlowPriority
	for keyword, priority := range indoorFlowPriority {
		if strings.Contains(name, keyword) && priority < best {
			best = priority
		}
	}
	return best
}

// Distance approximates the distance in meters between two points that are
// close together, which holds within a single venue.
func Distance(a, b types.Coordinates) float64 {
	latDiff := b.Lat - a.Lat
	lngDiff := b.Lng - a.Lng
	return math.Sqrt(latDiff*latDiff+lngDiff*lngDiff) * metersPerDegree
}

// WalkTimeMinutes estimates walking time between two stops at 80 m/min.
func WalkTimeMinutes(a, b types.Coordinates) int {
	return int(math.Ceil(Distance(a, b) / 80))
}
