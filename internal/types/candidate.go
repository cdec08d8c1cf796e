package types

import "github.com/google/uuid"

// Tier ranks a point of interest by global fame and importance. Tier-1 points
// are always included in the final tour.
type Tier string

const (
	Tier1WorldFamous      Tier = "tier1_worldFamous"
	Tier2NationalTreasure Tier = "tier2_nationalTreasure"
	Tier3CrowdFavorite    Tier = "tier3_crowdFavorite"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ScoreVector holds the six raw scoring dimensions of a candidate point,
// each on a 0-10 scale.
type ScoreVector struct {
	GlobalFame         float64 `json:"global_fame"`
	CulturalImportance float64 `json:"cultural_importance"`
	VisitorPreference  float64 `json:"visitor_preference"`
	PhotoWorthiness    float64 `json:"photo_worthiness"`
	Uniqueness         float64 `json:"uniqueness"`
	Accessibility      float64 `json:"accessibility"`
}

// CandidatePoint is a single point of interest proposed for inclusion in a tour.
type CandidatePoint struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	Section           string      `json:"section"`
	Coordinates       Coordinates `json:"coordinates"`
	Tier              Tier        `json:"tier"`
	Scores            ScoreVector `json:"scores"`
	CompositeScore    float64     `json:"composite_score"`
	Description       string      `json:"description"`
	PointType         string      `json:"point_type"`
	EstimatedDuration int         `json:"estimated_duration"` // minutes
}

// ValidationScores holds the three perspective scores plus their weighted
// combination: combined = visitor*0.30 + cultural*0.35 + local*0.35.
type ValidationScores struct {
	Cultural float64 `json:"cultural"`
	Visitor  float64 `json:"visitor"`
	Local    float64 `json:"local"`
	Combined float64 `json:"combined"`
}

// ValidatedCandidate is a CandidatePoint after multi-perspective validation.
type ValidatedCandidate struct {
	CandidatePoint
	ValidationScores ValidationScores `json:"validation_scores"`
	Confidence       float64          `json:"confidence"` // 0-1
}

// RealityVerificationResult is the immutable outcome of the layered reality
// check for a single chapter.
type RealityVerificationResult struct {
	IsReal      bool     `json:"is_real"`
	Confidence  float64  `json:"confidence"` // 0-1
	Reason      string   `json:"reason"`
	Details     string   `json:"details"`
	Evidences   []string `json:"evidences,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
