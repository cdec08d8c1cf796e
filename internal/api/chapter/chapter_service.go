package chapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-tour-chapters/app/observability/metrics"
	"github.com/FACorreiaa/go-tour-chapters/internal/api/candidate"
	"github.com/FACorreiaa/go-tour-chapters/internal/api/planner"
	"github.com/FACorreiaa/go-tour-chapters/internal/api/quality"
	"github.com/FACorreiaa/go-tour-chapters/internal/api/reality"
	"github.com/FACorreiaa/go-tour-chapters/internal/api/validation"
	"github.com/FACorreiaa/go-tour-chapters/internal/api/venue"
	"github.com/FACorreiaa/go-tour-chapters/internal/cache"
	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

// qualityFilters names the post-generation filters applied to every tour,
// reported in the response metadata.
var qualityFilters = []string{"existence_check", "deduplication", "diversity_ensure"}

var _ Service = (*ServiceImpl)(nil)

// Service runs the full tour pipeline for one request: classify the venue,
// fetch and rank candidates, plan and route the stops, validate and verify
// them, and assemble the final chapter list.
type Service interface {
	GenerateTour(ctx context.Context, req types.TourRequest) *types.TourResponse
}

type ServiceImpl struct {
	logger     *slog.Logger
	classifier venue.Classifier
	source     candidate.Source
	validator  validation.Service
	verifier   reality.Verifier
	store      cache.Store
	metrics    *metrics.AppMetrics
	now        func() time.Time
}

func NewService(
	classifier venue.Classifier,
	source candidate.Source,
	validator validation.Service,
	verifier reality.Verifier,
	store cache.Store,
	appMetrics *metrics.AppMetrics,
	logger *slog.Logger,
) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		classifier: classifier,
		source:     source,
		validator:  validator,
		verifier:   verifier,
		store:      store,
		metrics:    appMetrics,
		now:        time.Now,
	}
}

// GenerateTour never returns an error to the caller: unrecoverable stage
// failures produce a Success=false response, everything else degrades to a
// lower-confidence result.
func (s *ServiceImpl) GenerateTour(ctx context.Context, req types.TourRequest) *types.TourResponse {
	ctx, span := otel.Tracer("ChapterService").Start(ctx, "GenerateTour", trace.WithAttributes(
		attribute.String("place.name", req.PlaceName),
		attribute.String("language", req.Language),
	))
	defer span.End()

	if strings.TrimSpace(req.PlaceName) == "" {
		span.SetStatus(codes.Error, "empty place name")
		return failureResponse(req, "place name is required")
	}

	profile := types.VisitorProfile{}
	if req.VisitorProfile != nil {
		profile = *req.VisitorProfile
	}

	key := cache.Key(req.PlaceName, req.Language, profile, req.VisitDurationMinutes)
	if cached, ok := s.store.Get(key); ok {
		s.logger.InfoContext(ctx, "serving tour from cache", slog.String("place", req.PlaceName))
		if s.metrics != nil {
			s.metrics.CacheHitsTotal.Add(ctx, 1)
		}
		hit := *cached
		hit.CacheHit = true
		return &hit
	}
	if s.metrics != nil {
		s.metrics.CacheMissesTotal.Add(ctx, 1)
	}

	venueProfile := s.classifier.Classify(req.PlaceName)
	span.SetAttributes(
		attribute.String("venue.scale", string(venueProfile.Scale)),
		attribute.String("venue.type", string(venueProfile.VenueType)),
	)

	candidates, err := s.source.FetchCandidates(ctx, req.PlaceName, req.VisitorProfile)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "candidate fetch failed")
		s.logger.ErrorContext(ctx, "candidate fetch failed", slog.Any("error", err))
		return failureResponse(req, fmt.Sprintf("failed to gather candidates: %v", err))
	}
	if len(candidates) == 0 {
		span.SetStatus(codes.Error, "no candidates")
		return failureResponse(req, "no candidates found for this place")
	}

	tier1Count, tier2Count := countTiers(candidates)
	target := planner.PlanChapterCount(s.logger, venueProfile, tier1Count, tier2Count, req.VisitDurationMinutes)
	selected := planner.SelectTopCandidates(candidates, target)
	routed := planner.OptimizeRoute(selected, venueProfile.VenueType)

	validated, err := s.validator.ValidateCandidates(ctx, req.PlaceName, routed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return failureResponse(req, fmt.Sprintf("validation failed: %v", err))
	}

	intro := buildIntroChapter(req.PlaceName, venueProfile, routed)
	mains := buildMainChapters(req.PlaceName, validated)

	verifications := s.verifier.VerifyChapters(ctx, req.PlaceName, mains, reality.Options{})
	kept, keptReality := filterVerified(mains, verifications)
	rejected := len(mains) - len(kept)
	if rejected > 0 {
		s.logger.InfoContext(ctx, "chapters rejected by reality verification",
			slog.Int("rejected", rejected), slog.Int("kept", len(kept)))
		if s.metrics != nil {
			s.metrics.ChaptersRejectedTotal.Add(ctx, int64(rejected))
		}
	}
	if len(kept) == 0 {
		span.SetStatus(codes.Error, "all chapters rejected")
		return failureResponse(req, "no chapter passed reality verification")
	}

	kept = quality.Deduplicate(s.logger, kept, 0)
	kept = quality.EnsureDiversity(kept)
	renumber(kept)

	structure := assembleStructure(intro, kept, selected, s.now())
	response := &types.TourResponse{
		Success:  true,
		Chapters: append([]types.Chapter{structure.IntroChapter}, structure.MainChapters...),
		Metadata: types.TourMetadata{
			PlaceName:      req.PlaceName,
			TotalChapters:  structure.Metadata.TotalChapters,
			TotalDuration:  structure.Metadata.EstimatedTotalDuration,
			Difficulty:     structure.Metadata.Difficulty,
			GeneratedAt:    structure.Metadata.GeneratedAt,
			QualityFilters: qualityFilters,
		},
		AccuracyScore: accuracyScore(validated, keptReality),
	}

	s.store.Set(key, response)
	span.SetStatus(codes.Ok, "tour generated")
	s.logger.InfoContext(ctx, "tour generated",
		slog.String("place", req.PlaceName),
		slog.Int("chapters", response.Metadata.TotalChapters),
		slog.Float64("accuracy", response.AccuracyScore))
	return response
}

func failureResponse(req types.TourRequest, message string) *types.TourResponse {
	return &types.TourResponse{
		Success: false,
		Error:   message,
		Metadata: types.TourMetadata{
			PlaceName:   req.PlaceName,
			GeneratedAt: time.Now(),
		},
	}
}

func countTiers(candidates []types.CandidatePoint) (tier1, tier2 int) {
	for _, c := range candidates {
		switch c.Tier {
		case types.Tier1WorldFamous:
			tier1++
		case types.Tier2NationalTreasure:
			tier2++
		}
	}
	return tier1, tier2
}

// filterVerified keeps chapters that passed reality verification with enough
// confidence, returning the surviving reality confidences alongside.
func filterVerified(chapters []types.Chapter, verifications []types.RealityVerificationResult) ([]types.Chapter, []float64) {
	kept := make([]types.Chapter, 0, len(chapters))
	confidences := make([]float64, 0, len(chapters))
	for i, chapter := range chapters {
		v := verifications[i]
		if v.IsReal && v.Confidence > reality.InclusionThreshold {
			kept = append(kept, chapter)
			confidences = append(confidences, v.Confidence)
		}
	}
	return kept, confidences
}

func renumber(chapters []types.Chapter) {
	for i := range chapters {
		chapters[i].ID = i + 1
	}
}

// accuracyScore blends the validator's confidence with the reality
// verifier's: validation carries more weight because it scores quality, not
// just existence.
func accuracyScore(validated []types.ValidatedCandidate, realityConfidences []float64) float64 {
	meanValidation := 0.0
	if len(validated) > 0 {
		for _, v := range validated {
			meanValidation += v.Confidence
		}
		meanValidation /= float64(len(validated))
	}

	meanReality := 0.0
	if len(realityConfidences) > 0 {
		for _, c := range realityConfidences {
			meanReality += c
		}
		meanReality /= float64(len(realityConfidences))
	}

	return meanValidation*0.7 + meanReality*0.3
}
