package candidate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

// mainLinePattern matches "1. name | location | score | minutes | type".
var mainLinePattern = regexp.MustCompile(`^\d+\.\s*([^|]+)\s*\|\s*([^|]+)\s*\|\s*([^|]+)\s*\|\s*([^|]+)\s*\|\s*(.+)$`)

var numberPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// parseMustSeeResponse parses the oracle's line-delimited analysis block into
// candidate points. An error means the sentinel markers were absent and the
// caller should use the fallback candidates.
func parseMustSeeResponse(responseText string) ([]types.CandidatePoint, error) {
	start := strings.Index(responseText, analysisStartMarker)
	end := strings.Index(responseText, analysisEndMarker)
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("analysis markers not found in oracle response")
	}

	block := responseText[start+len(analysisStartMarker) : end]
	var points []types.CandidatePoint

	for _, line := range strings.Split(block, "\n") {
		match := mainLinePattern.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}
		score := parseScore(match[3])
		points = append(points, newPoint(
			strings.TrimSpace(match[1]),
			strings.TrimSpace(match[2]),
			strings.TrimSpace(match[5]),
			score,
			parseDuration(match[4]),
		))
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no candidate lines parsed from oracle response")
	}
	return points, nil
}

// newPoint expands a single oracle importance score into the six-dimension
// vector. The oracle reports one number, so every dimension is seeded with it;
// richer sources provide full vectors directly.
func newPoint(name, section, pointType string, score float64, duration int) types.CandidatePoint {
	scores := types.ScoreVector{
		GlobalFame:         score,
		CulturalImportance: score,
		VisitorPreference:  score,
		PhotoWorthiness:    score,
		Uniqueness:         score,
		Accessibility:      score,
	}
	return types.CandidatePoint{
		ID:                uuid.New(),
		Name:              name,
		Section:           section,
		Tier:              tierForScore(score),
		Scores:            scores,
		CompositeScore:    CompositeScore(scores),
		PointType:         pointType,
		EstimatedDuration: duration,
	}
}

// tierForScore buckets an importance score into a tier.
func tierForScore(score float64) types.Tier {
	switch {
	case score >= 9.0:
		return types.Tier1WorldFamous
	case score >= 7.5:
		return types.Tier2NationalTreasure
	default:
		return types.Tier3CrowdFavorite
	}
}

// parseScore extracts a score and clamps it to [1, 10]; unparseable text
// degrades to a neutral 7.0.
func parseScore(text string) float64 {
	match := numberPattern.FindStringSubmatch(text)
	if match == nil {
		return 7.0
	}
	score, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 7.0
	}
	return clamp(score, 1, 10)
}

// parseDuration extracts viewing minutes clamped to [5, 60]; default 15.
func parseDuration(text string) int {
	match := numberPattern.FindStringSubmatch(text)
	if match == nil {
		return 15
	}
	minutes, err := strconv.Atoi(strings.SplitN(match[1], ".", 2)[0])
	if err != nil {
		return 15
	}
	if minutes < 5 {
		return 5
	}
	if minutes > 60 {
		return 60
	}
	return minutes
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
