package chapter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/FACorreiaa/go-tour-chapters/internal/api/planner"
	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

// introDistanceMeters approximates the walk from the entrance to the first
// stop when no entrance coordinates are known.
const introDistanceMeters = 100

// buildIntroChapter creates chapter 0. It sits at the first stop's
// coordinates as an entrance proxy and takes roughly a tenth of the venue's
// average visit.
func buildIntroChapter(placeName string, venueProfile types.VenueProfile, routed []types.CandidatePoint) types.Chapter {
	coords := types.Coordinates{}
	if len(routed) > 0 {
		coords = routed[0].Coordinates
	}

	duration := (venueProfile.AverageVisitDuration + 9) / 10
	if duration < 1 {
		duration = 1
	}

	return types.Chapter{
		ID:              0,
		Type:            types.ChapterIntroduction,
		Title:           fmt.Sprintf("%s visitor introduction", placeName),
		Content:         introContent(placeName, routed),
		Coordinates:     coords,
		DurationMinutes: duration,
	}
}

func introContent(placeName string, routed []types.CandidatePoint) string {
	var highlights []string
	for _, point := range routed {
		if point.Tier == types.Tier1WorldFamous {
			highlights = append(highlights, point.Name)
		}
	}

	content := fmt.Sprintf("Welcome to %s. This tour guides you through %d curated stops.",
		placeName, len(routed))
	if len(highlights) > 0 {
		content += fmt.Sprintf(" Highlights ahead: %s.", strings.Join(highlights, ", "))
	}
	return content
}

// buildMainChapters turns the validated, routed candidates into viewing-point
// chapters with navigation metadata relative to the previous stop.
func buildMainChapters(placeName string, validated []types.ValidatedCandidate) []types.Chapter {
	chapters := make([]types.Chapter, 0, len(validated))
	for i, v := range validated {
		scores := v.ValidationScores
		chapter := types.Chapter{
			ID:              i + 1,
			Type:            types.ChapterViewingPoint,
			Title:           v.Name,
			Content:         chapterContent(placeName, v.CandidatePoint),
			Coordinates:     v.Coordinates,
			DurationMinutes: audioMinutes(v.Tier),
			Priority:        priorityForTier(v.Tier),
			Validation:      &scores,
		}

		if i == 0 {
			chapter.DistanceMeters = introDistanceMeters
			chapter.WalkTimeMinutes = 2
		} else {
			prev := validated[i-1].Coordinates
			chapter.DistanceMeters = planner.Distance(prev, v.Coordinates)
			chapter.WalkTimeMinutes = planner.WalkTimeMinutes(prev, v.Coordinates)
		}

		chapters = append(chapters, chapter)
	}
	return chapters
}

func chapterContent(placeName string, point types.CandidatePoint) string {
	if point.Description != "" {
		return point.Description
	}
	if point.Section != "" {
		return fmt.Sprintf("%s, in the %s area of %s, is one of the signature stops of this tour.",
			point.Name, point.Section, placeName)
	}
	return fmt.Sprintf("%s is one of the signature stops of %s.", point.Name, placeName)
}

// audioMinutes estimates the narration length for a stop: one base minute
// scaled up for the more famous tiers, rounded up to whole minutes.
func audioMinutes(tier types.Tier) int {
	const baseSeconds = 60
	multiplier := 1.0
	switch tier {
	case types.Tier1WorldFamous:
		multiplier = 2.0
	case types.Tier2NationalTreasure:
		multiplier = 1.5
	}
	seconds := baseSeconds * multiplier
	return int(math.Ceil(seconds / 60))
}

func priorityForTier(tier types.Tier) types.Priority {
	switch tier {
	case types.Tier1WorldFamous:
		return types.PriorityMustSee
	case types.Tier2NationalTreasure:
		return types.PriorityHighlyRecommended
	default:
		return types.PriorityOptional
	}
}

// assembleStructure packs the surviving chapters into the final tour
// structure with its summary metadata.
func assembleStructure(intro types.Chapter, mains []types.Chapter, selected []types.CandidatePoint, generatedAt time.Time) types.ChapterStructure {
	total := intro.DurationMinutes
	for _, c := range mains {
		total += c.DurationMinutes + c.WalkTimeMinutes
	}

	return types.ChapterStructure{
		IntroChapter: intro,
		MainChapters: mains,
		Metadata: types.ChapterMetadata{
			TotalChapters:          len(mains) + 1,
			EstimatedTotalDuration: total,
			Difficulty:             assessDifficulty(selected),
			GeneratedAt:            generatedAt,
		},
	}
}

// assessDifficulty grades the tour by the mean accessibility of its tier-1
// and tier-2 points.
func assessDifficulty(candidates []types.CandidatePoint) types.Difficulty {
	sum, count := 0.0, 0
	for _, c := range candidates {
		if c.Tier == types.Tier1WorldFamous || c.Tier == types.Tier2NationalTreasure {
			sum += c.Scores.Accessibility
			count++
		}
	}
	if count == 0 {
		return types.DifficultyModerate
	}

	mean := sum / float64(count)
	switch {
	case mean >= 8:
		return types.DifficultyEasy
	case mean >= 6:
		return types.DifficultyModerate
	default:
		return types.DifficultyChallenging
	}
}
