package validation

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	generativeAI "github.com/FACorreiaa/go-tour-chapters/internal/api/generative_ai"
	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

const (
	perspectiveCultural = "cultural"
	perspectiveVisitor  = "visitor"
	perspectiveLocal    = "local"

	// fallbackConfidence is assigned when a candidate got no oracle scores
	// and had to stand in with its own composite score.
	fallbackConfidence = 0.7
)

var _ Service = (*ServiceImpl)(nil)

// Service cross-checks candidates from three evaluative perspectives and
// fuses the scores into a validated score with a confidence value.
type Service interface {
	ValidateCandidates(ctx context.Context, placeName string, candidates []types.CandidatePoint) ([]types.ValidatedCandidate, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	oracle generativeAI.Oracle
}

func NewService(oracle generativeAI.Oracle, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		oracle: oracle,
	}
}

// ValidateCandidates tries one batched oracle request first and falls back to
// three concurrent per-perspective requests when the batch cannot be parsed.
// It never fails outright: with no oracle at all, every candidate keeps its
// composite score at reduced confidence.
func (s *ServiceImpl) ValidateCandidates(ctx context.Context, placeName string, candidates []types.CandidatePoint) ([]types.ValidatedCandidate, error) {
	ctx, span := otel.Tracer("ValidationService").Start(ctx, "ValidateCandidates", trace.WithAttributes(
		attribute.String("place.name", placeName),
		attribute.Int("candidates.count", len(candidates)),
	))
	defer span.End()

	if len(candidates) == 0 {
		return nil, nil
	}

	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.2)}

	validations, err := s.batchValidate(ctx, placeName, candidates, config)
	if err == nil {
		span.SetStatus(codes.Ok, "batch validation succeeded")
		return s.combineBatch(candidates, validations), nil
	}

	span.RecordError(err)
	s.logger.WarnContext(ctx, "batch validation failed, falling back to per-perspective requests",
		slog.String("place", placeName), slog.Any("error", err))

	cultural, visitor, local := s.individualValidate(ctx, placeName, candidates, config)
	span.SetStatus(codes.Ok, "individual validation fallback completed")
	return s.combineIndividual(candidates, cultural, visitor, local), nil
}

func (s *ServiceImpl) batchValidate(ctx context.Context, placeName string, candidates []types.CandidatePoint, config *genai.GenerateContentConfig) ([]batchValidation, error) {
	response, err := s.oracle.GenerateResponse(ctx, getBatchValidationPrompt(placeName, candidates), config)
	if err != nil {
		return nil, err
	}
	return parseBatchResponse(generativeAI.ResponseText(response))
}

// individualValidate fans the three perspective requests out concurrently and
// joins all results. A failed perspective contributes an empty score map.
func (s *ServiceImpl) individualValidate(ctx context.Context, placeName string, candidates []types.CandidatePoint, config *genai.GenerateContentConfig) (cultural, visitor, local map[string]float64) {
	type perspectiveResult struct {
		perspective string
		scores      map[string]float64
	}

	var wg sync.WaitGroup
	resultCh := make(chan perspectiveResult, 3)

	for _, perspective := range []string{perspectiveCultural, perspectiveVisitor, perspectiveLocal} {
		wg.Add(1)
		go func(perspective string) {
			defer wg.Done()
			response, err := s.oracle.GenerateResponse(ctx, getPerspectivePrompt(placeName, candidates, perspective), config)
			if err != nil {
				s.logger.WarnContext(ctx, "perspective validation request failed",
					slog.String("perspective", perspective), slog.Any("error", err))
				resultCh <- perspectiveResult{perspective: perspective, scores: map[string]float64{}}
				return
			}
			resultCh <- perspectiveResult{
				perspective: perspective,
				scores:      parsePerspectiveResponse(generativeAI.ResponseText(response)),
			}
		}(perspective)
	}

	wg.Wait()
	close(resultCh)

	cultural, visitor, local = map[string]float64{}, map[string]float64{}, map[string]float64{}
	for result := range resultCh {
		switch result.perspective {
		case perspectiveCultural:
			cultural = result.scores
		case perspectiveVisitor:
			visitor = result.scores
		case perspectiveLocal:
			local = result.scores
		}
	}
	return cultural, visitor, local
}

func (s *ServiceImpl) combineBatch(candidates []types.CandidatePoint, validations []batchValidation) []types.ValidatedCandidate {
	validated := make([]types.ValidatedCandidate, 0, len(candidates))
	for _, c := range candidates {
		match, ok := findBatchValidation(validations, c.Name)
		if !ok {
			validated = append(validated, fallbackValidated(c))
			continue
		}
		cultural := scoreOrDefault(match.Cultural.Score, c.CompositeScore)
		visitor := scoreOrDefault(match.Visitor.Score, c.CompositeScore)
		local := scoreOrDefault(match.Local.Score, c.CompositeScore)
		validated = append(validated, newValidated(c, cultural, visitor, local))
	}
	return validated
}

func (s *ServiceImpl) combineIndividual(candidates []types.CandidatePoint, culturalScores, visitorScores, localScores map[string]float64) []types.ValidatedCandidate {
	validated := make([]types.ValidatedCandidate, 0, len(candidates))
	for _, c := range candidates {
		cultural, okCultural := matchName(culturalScores, c.Name)
		visitor, okVisitor := matchName(visitorScores, c.Name)
		local, okLocal := matchName(localScores, c.Name)

		if !okCultural && !okVisitor && !okLocal {
			validated = append(validated, fallbackValidated(c))
			continue
		}
		if !okCultural {
			cultural = c.CompositeScore
		}
		if !okVisitor {
			visitor = c.CompositeScore
		}
		if !okLocal {
			local = c.CompositeScore
		}
		validated = append(validated, newValidated(c, cultural, visitor, local))
	}
	return validated
}

func findBatchValidation(validations []batchValidation, candidateName string) (batchValidation, bool) {
	lowered := strings.ToLower(candidateName)
	for _, v := range validations {
		name := strings.ToLower(v.PointName)
		if name == lowered || strings.Contains(lowered, name) || strings.Contains(name, lowered) {
			return v, true
		}
	}
	return batchValidation{}, false
}

func scoreOrDefault(score, fallback float64) float64 {
	if score <= 0 {
		return fallback
	}
	return score
}

// newValidated applies the fixed perspective weights and the mean/consistency
// confidence formula.
func newValidated(c types.CandidatePoint, cultural, visitor, local float64) types.ValidatedCandidate {
	combined := visitor*0.30 + cultural*0.35 + local*0.35
	return types.ValidatedCandidate{
		CandidatePoint: c,
		ValidationScores: types.ValidationScores{
			Cultural: cultural,
			Visitor:  visitor,
			Local:    local,
			Combined: combined,
		},
		Confidence: scoreConfidence(cultural, visitor, local),
	}
}

// fallbackValidated stands an unmatched candidate in with its own composite
// score for all three perspectives at fixed reduced confidence.
func fallbackValidated(c types.CandidatePoint) types.ValidatedCandidate {
	return types.ValidatedCandidate{
		CandidatePoint: c,
		ValidationScores: types.ValidationScores{
			Cultural: c.CompositeScore,
			Visitor:  c.CompositeScore,
			Local:    c.CompositeScore,
			Combined: c.CompositeScore,
		},
		Confidence: fallbackConfidence,
	}
}

// scoreConfidence combines the score level with the consistency of the three
// perspectives: high divergence lowers confidence without rejecting.
func scoreConfidence(scores ...float64) float64 {
	mean := 0.0
	for _, score := range scores {
		mean += score
	}
	mean /= float64(len(scores))

	variance := 0.0
	for _, score := range scores {
		variance += (score - mean) * (score - mean)
	}
	variance /= float64(len(scores))

	consistency := 1 - variance/10
	if consistency < 0 {
		consistency = 0
	}
	return (mean/10)*0.7 + consistency*0.3
}
