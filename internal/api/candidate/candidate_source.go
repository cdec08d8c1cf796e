package candidate

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	generativeAI "github.com/FACorreiaa/go-tour-chapters/internal/api/generative_ai"
	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

var _ Source = (*OracleSource)(nil)

// Source produces candidate points for a place. Abstracted so tests can inject
// deterministic fixtures instead of oracle output.
type Source interface {
	FetchCandidates(ctx context.Context, placeName string, profile *types.VisitorProfile) ([]types.CandidatePoint, error)
}

// OracleSource asks the external oracle for must-see points and parses its
// line-delimited answer. Oracle errors and parse failures degrade to a small
// deterministic fallback set, never to an error.
type OracleSource struct {
	logger *slog.Logger
	oracle generativeAI.Oracle
}

func NewOracleSource(oracle generativeAI.Oracle, logger *slog.Logger) *OracleSource {
	return &OracleSource{
		logger: logger,
		oracle: oracle,
	}
}

func (s *OracleSource) FetchCandidates(ctx context.Context, placeName string, profile *types.VisitorProfile) ([]types.CandidatePoint, error) {
	ctx, span := otel.Tracer("CandidateSource").Start(ctx, "FetchCandidates", trace.WithAttributes(
		attribute.String("place.name", placeName),
	))
	defer span.End()

	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.3)}
	prompt := getMustSeePrompt(placeName, profile)

	response, err := s.oracle.GenerateResponse(ctx, prompt, config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "oracle request failed")
		s.logger.WarnContext(ctx, "oracle candidate request failed, using fallback candidates",
			slog.String("place", placeName), slog.Any("error", err))
		return fallbackCandidates(placeName), nil
	}

	txt := generativeAI.ResponseText(response)
	if txt == "" {
		s.logger.WarnContext(ctx, "empty oracle candidate response, using fallback candidates",
			slog.String("place", placeName))
		return fallbackCandidates(placeName), nil
	}

	points, err := parseMustSeeResponse(txt)
	if err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "failed to parse oracle candidate response, using fallback candidates",
			slog.String("place", placeName), slog.Any("error", err))
		return fallbackCandidates(placeName), nil
	}

	span.SetAttributes(attribute.Int("candidates.count", len(points)))
	span.SetStatus(codes.Ok, "candidates fetched")
	return points, nil
}

// fallbackCandidates is the documented fallback payload for this call site:
// two generic but plausible stops for any place.
func fallbackCandidates(placeName string) []types.CandidatePoint {
	landmark := newPoint(
		fmt.Sprintf("%s Main Landmark", placeName),
		"main area",
		"landmark",
		9.0,
		20,
	)
	landmark.Description = "The most famous and representative sight of the place."

	exhibit := newPoint(
		fmt.Sprintf("%s Central Exhibit", placeName),
		"central hall",
		"exhibition",
		8.5,
		15,
	)
	exhibit.Description = "The core exhibit most visitors come to see."

	return []types.CandidatePoint{landmark, exhibit}
}
