package types

import "time"

type ChapterType string

const (
	ChapterIntroduction ChapterType = "introduction"
	ChapterViewingPoint ChapterType = "viewing_point"
)

// Priority marks how strongly a visitor should be steered to a stop. It is
// derived from the candidate's tier.
type Priority string

const (
	PriorityMustSee           Priority = "must_see"
	PriorityHighlyRecommended Priority = "highly_recommended"
	PriorityOptional          Priority = "optional"
)

// Chapter is one narrated stop in the tour. Chapter 0 is the introduction,
// chapters 1..N are viewing points in visiting order.
type Chapter struct {
	ID              int               `json:"id"`
	Type            ChapterType       `json:"type"`
	Title           string            `json:"title"`
	Content         string            `json:"content"`
	Coordinates     Coordinates       `json:"coordinates"`
	DurationMinutes int               `json:"duration_minutes"`
	Priority        Priority          `json:"priority,omitempty"`
	WalkTimeMinutes int               `json:"walk_time_minutes,omitempty"`
	DistanceMeters  float64           `json:"distance_meters,omitempty"`
	Validation      *ValidationScores `json:"validation,omitempty"`
}

type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyModerate    Difficulty = "moderate"
	DifficultyChallenging Difficulty = "challenging"
)

// ChapterMetadata summarises an assembled tour.
type ChapterMetadata struct {
	TotalChapters          int        `json:"total_chapters"`
	EstimatedTotalDuration int        `json:"estimated_total_duration"` // minutes
	Difficulty             Difficulty `json:"difficulty"`
	GeneratedAt            time.Time  `json:"generated_at"`
}

// ChapterStructure is the full assembled tour: intro plus ordered main chapters.
type ChapterStructure struct {
	IntroChapter Chapter         `json:"intro_chapter"`
	MainChapters []Chapter       `json:"main_chapters"`
	Metadata     ChapterMetadata `json:"metadata"`
}

// VisitorProfile carries the optional personalisation hints of a request.
type VisitorProfile struct {
	Interests           []string `json:"interests,omitempty"`
	AgeGroup            string   `json:"age_group,omitempty"`
	KnowledgeLevel      string   `json:"knowledge_level,omitempty"`
	TourDurationMinutes int      `json:"tour_duration_minutes,omitempty"`
}

// TourRequest is the inbound request for a narrated tour.
type TourRequest struct {
	PlaceName            string          `json:"place_name"`
	Language             string          `json:"language"`
	VisitorProfile       *VisitorProfile `json:"visitor_profile,omitempty"`
	VisitDurationMinutes int             `json:"visit_duration_minutes,omitempty"`
}

// TourMetadata is returned alongside the chapters.
type TourMetadata struct {
	PlaceName      string     `json:"place_name"`
	TotalChapters  int        `json:"total_chapters"`
	TotalDuration  int        `json:"total_duration"` // minutes
	Difficulty     Difficulty `json:"difficulty,omitempty"`
	GeneratedAt    time.Time  `json:"generated_at"`
	QualityFilters []string   `json:"quality_filters"`
}

// TourResponse is the outbound response. The orchestrator never fails with an
// error to the caller: unrecoverable stage failures set Success=false and Error.
type TourResponse struct {
	Success       bool         `json:"success"`
	Chapters      []Chapter    `json:"chapters,omitempty"`
	Metadata      TourMetadata `json:"metadata"`
	AccuracyScore float64      `json:"accuracy_score"` // 0-1
	Error         string       `json:"error,omitempty"`
	CacheHit      bool         `json:"cache_hit,omitempty"`
}
