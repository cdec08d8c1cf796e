package reality

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	generativeAI "github.com/FACorreiaa/go-tour-chapters/internal/api/generative_ai"
	"github.com/FACorreiaa/go-tour-chapters/internal/textmetric"
	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

// fusion weights for the pattern, lookup, oracle and structural stages.
var stageWeights = [4]float64{0.3, 0.25, 0.3, 0.15}

// InclusionThreshold is the minimum fused confidence for an accepted chapter
// to stay in the final guide.
const InclusionThreshold = 0.6

// Options tune how deep a verification goes. FastMode stops after the
// obvious-fake check; SkipOracle runs every local stage but no oracle call.
type Options struct {
	FastMode   bool
	SkipOracle bool
}

var _ Verifier = (*VerifierImpl)(nil)

// Verifier decides whether generated chapters describe places that plausibly
// exist, layering local pattern checks with an oracle opinion.
type Verifier interface {
	VerifyChapter(ctx context.Context, placeName, chapterTitle, chapterContent string, opts Options) types.RealityVerificationResult
	VerifyChapters(ctx context.Context, placeName string, chapters []types.Chapter, opts Options) []types.RealityVerificationResult
}

type VerifierImpl struct {
	logger *slog.Logger
	oracle generativeAI.Oracle
}

func NewVerifier(oracle generativeAI.Oracle, logger *slog.Logger) *VerifierImpl {
	return &VerifierImpl{
		logger: logger,
		oracle: oracle,
	}
}

// VerifyChapter runs the staged check for one chapter. An obvious-fake match
// rejects immediately; otherwise the four stages run and their signed,
// weighted confidences are fused. Any stage that rejects with confidence
// above 0.8 wins outright.
func (v *VerifierImpl) VerifyChapter(ctx context.Context, placeName, chapterTitle, chapterContent string, opts Options) types.RealityVerificationResult {
	if result, fake := checkObviousFake(chapterTitle, chapterContent); fake {
		v.logger.DebugContext(ctx, "chapter rejected as obvious fake",
			slog.String("title", chapterTitle), slog.String("details", result.Details))
		return result
	}

	if opts.FastMode {
		return types.RealityVerificationResult{
			IsReal:     true,
			Confidence: 0.8,
			Reason:     "fast_mode_pass",
			Details:    "no obvious problems found",
		}
	}

	stages := []types.RealityVerificationResult{
		{IsReal: true, Confidence: 0.6, Reason: "pattern_pass", Details: "no suspicious patterns"},
		checkKnownPlaces(chapterTitle, placeName),
		v.oracleOpinion(ctx, placeName, chapterTitle, chapterContent, opts),
		checkStructuralConsistency(chapterTitle),
	}

	return fuseStages(stages)
}

// VerifyChapters fans the per-chapter checks out concurrently and joins all
// results in input order.
func (v *VerifierImpl) VerifyChapters(ctx context.Context, placeName string, chapters []types.Chapter, opts Options) []types.RealityVerificationResult {
	ctx, span := otel.Tracer("RealityVerifier").Start(ctx, "VerifyChapters", trace.WithAttributes(
		attribute.String("place.name", placeName),
		attribute.Int("chapters.count", len(chapters)),
		attribute.Bool("fast_mode", opts.FastMode),
	))
	defer span.End()

	results := make([]types.RealityVerificationResult, len(chapters))
	g, ctx := errgroup.WithContext(ctx)
	for i, chapter := range chapters {
		g.Go(func() error {
			results[i] = v.VerifyChapter(ctx, placeName, chapter.Title, chapter.Content, opts)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// checkObviousFake scans title and content for red-flag tokens. The second
// return value reports whether the chapter was rejected.
func checkObviousFake(chapterTitle, chapterContent string) (types.RealityVerificationResult, bool) {
	text := chapterTitle
	if chapterContent != "" {
		text += " " + chapterContent
	}

	var matches []string
	for _, pattern := range obviousFakePatterns {
		if m := pattern.FindString(text); m != "" {
			matches = append(matches, m)
		}
	}
	if len(matches) == 0 {
		return types.RealityVerificationResult{}, false
	}

	return types.RealityVerificationResult{
		IsReal:      false,
		Confidence:  0.95,
		Reason:      "obvious_fake",
		Details:     fmt.Sprintf("red-flag tokens found: %s", strings.Join(matches, ", ")),
		Suggestions: []string{"replace with a real sub-location"},
	}, true
}

// checkKnownPlaces matches the title against the venue's allow-list, then
// against generic tourist infrastructure. An unmatched title still passes,
// just with very little confidence to contribute.
func checkKnownPlaces(chapterTitle, placeName string) types.RealityVerificationResult {
	title := strings.ToLower(chapterTitle)

	for _, place := range knownPlacesFor(placeName) {
		known := strings.ToLower(place)
		if strings.Contains(title, known) || textmetric.Ratio(title, known) > 0.8 {
			return types.RealityVerificationResult{
				IsReal:     true,
				Confidence: 0.9,
				Reason:     "known_place",
				Details:    fmt.Sprintf("matches known sub-location: %s", place),
				Evidences:  []string{place},
			}
		}
	}

	for _, noun := range genericTouristNouns {
		if strings.Contains(title, noun) {
			return types.RealityVerificationResult{
				IsReal:     true,
				Confidence: 0.75,
				Reason:     "common_element",
				Details:    fmt.Sprintf("contains common venue element: %s", noun),
			}
		}
	}

	for _, spot := range genericActivitySpots {
		if strings.Contains(title, spot) {
			return types.RealityVerificationResult{
				IsReal:     true,
				Confidence: 0.65,
				Reason:     "common_activity",
				Details:    fmt.Sprintf("contains common activity spot: %s", spot),
			}
		}
	}

	return types.RealityVerificationResult{
		IsReal:     true,
		Confidence: 0.35,
		Reason:     "unverified",
		Details:    "not found in the known-place list",
	}
}

type oracleVerdict struct {
	Exists       bool     `json:"exists"`
	Confidence   float64  `json:"confidence"`
	Reasoning    string   `json:"reasoning"`
	Evidences    []string `json:"evidences"`
	Warnings     []string `json:"warnings"`
	Alternatives []string `json:"alternatives"`
}

var verdictBlockPattern = regexp.MustCompile(`(?s)\{.*\}`)

// oracleOpinion asks the oracle whether the place plausibly exists. Every
// failure mode is a conservative pass-through: a broken oracle must not veto
// chapters on its own.
func (v *VerifierImpl) oracleOpinion(ctx context.Context, placeName, chapterTitle, chapterContent string, opts Options) types.RealityVerificationResult {
	if opts.SkipOracle {
		return types.RealityVerificationResult{
			IsReal:     true,
			Confidence: 0.3,
			Reason:     "oracle_skipped",
			Details:    "oracle stage disabled by caller",
		}
	}

	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.1)}
	response, err := v.oracle.GenerateResponse(ctx, getExistenceCheckPrompt(placeName, chapterTitle, chapterContent), config)
	if err != nil {
		v.logger.WarnContext(ctx, "existence check request failed",
			slog.String("title", chapterTitle), slog.Any("error", err))
		return types.RealityVerificationResult{
			IsReal:      true,
			Confidence:  0.2,
			Reason:      "oracle_error",
			Details:     "existence check unavailable",
			Suggestions: []string{"verify manually"},
		}
	}

	block := verdictBlockPattern.FindString(generativeAI.ResponseText(response))
	var verdict oracleVerdict
	if block == "" || json.Unmarshal([]byte(block), &verdict) != nil {
		return types.RealityVerificationResult{
			IsReal:      true,
			Confidence:  0.3,
			Reason:      "oracle_parse_error",
			Details:     "could not parse the existence verdict",
			Suggestions: []string{"verify manually"},
		}
	}

	confidence := verdict.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return types.RealityVerificationResult{
		IsReal:      verdict.Exists,
		Confidence:  confidence,
		Reason:      "oracle_verified",
		Details:     verdict.Reasoning,
		Evidences:   verdict.Evidences,
		Warnings:    verdict.Warnings,
		Suggestions: verdict.Alternatives,
	}
}

// checkStructuralConsistency rejects titles that contradict themselves or
// carry implausibly exact timestamps.
func checkStructuralConsistency(chapterTitle string) types.RealityVerificationResult {
	title := strings.ToLower(chapterTitle)
	var issues, warnings []string

	if matches := exactTimestampPattern.FindAllString(chapterTitle, -1); len(matches) > 2 {
		issues = append(issues, "overly specific date/time information")
	}
	if roomNumberPattern.MatchString(chapterTitle) {
		warnings = append(warnings, "contains a specific room number")
	}
	for _, pair := range contradictoryPairs {
		if strings.Contains(title, pair[0]) && strings.Contains(title, pair[1]) {
			issues = append(issues, fmt.Sprintf("contradictory terms: %s and %s", pair[0], pair[1]))
		}
	}

	if len(issues) > 0 {
		return types.RealityVerificationResult{
			IsReal:      false,
			Confidence:  0.2,
			Reason:      "structural_inconsistency",
			Details:     strings.Join(issues, ", "),
			Suggestions: []string{"use a more general, consistent description"},
			Warnings:    warnings,
		}
	}

	confidence := 0.8
	if len(warnings) > 0 {
		confidence = 0.6
	}
	return types.RealityVerificationResult{
		IsReal:     true,
		Confidence: confidence,
		Reason:     "structural_consistent",
		Details:    "structural consistency passed",
		Warnings:   warnings,
	}
}

// fuseStages combines the four stage verdicts into one result. Each stage
// contributes its confidence, signed by its verdict and scaled by the stage
// weight; a confident rejection anywhere overrides the arithmetic.
func fuseStages(stages []types.RealityVerificationResult) types.RealityVerificationResult {
	for _, stage := range stages {
		if !stage.IsReal && stage.Confidence > 0.8 {
			return stage
		}
	}

	sum, totalWeight := 0.0, 0.0
	for i, stage := range stages {
		weight := 0.1
		if i < len(stageWeights) {
			weight = stageWeights[i]
		}
		if stage.IsReal {
			sum += stage.Confidence * weight
		} else {
			sum -= stage.Confidence * weight
		}
		totalWeight += weight
	}

	confidence := sum / totalWeight
	if confidence < 0 {
		confidence = -confidence
	}
	if confidence > 1 {
		confidence = 1
	}

	return types.RealityVerificationResult{
		IsReal:      sum > 0,
		Confidence:  confidence,
		Reason:      "combined_analysis",
		Details:     fmt.Sprintf("fused %d verification stages", len(stages)),
		Evidences:   mergeUnique(stages, func(r types.RealityVerificationResult) []string { return r.Evidences }),
		Warnings:    mergeUnique(stages, func(r types.RealityVerificationResult) []string { return r.Warnings }),
		Suggestions: mergeUnique(stages, func(r types.RealityVerificationResult) []string { return r.Suggestions }),
	}
}

func mergeUnique(stages []types.RealityVerificationResult, pick func(types.RealityVerificationResult) []string) []string {
	seen := make(map[string]struct{})
	var merged []string
	for _, stage := range stages {
		for _, item := range pick(stage) {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			merged = append(merged, item)
		}
	}
	return merged
}
