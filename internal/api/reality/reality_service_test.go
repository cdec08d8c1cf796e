package reality

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

// MockOracle is a mock implementation of the generativeAI.Oracle interface.
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, prompt, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.GenerateContentResponse), args.Error(1)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func TestVerifyChapterRejectsPlaceholder(t *testing.T) {
	oracle := new(MockOracle)
	v := NewVerifier(oracle, slog.Default())

	result := v.VerifyChapter(context.Background(), "Versailles", "Chapter about [TBD]", "", Options{})

	assert.False(t, result.IsReal)
	assert.GreaterOrEqual(t, result.Confidence, 0.95)
	assert.Equal(t, "obvious_fake", result.Reason)
	// the short-circuit means the oracle is never consulted
	oracle.AssertNotCalled(t, "GenerateResponse", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyChapterRejectsTestMarkers(t *testing.T) {
	v := NewVerifier(new(MockOracle), slog.Default())

	for _, title := range []string{"Sample Gallery", "Test Pavilion", "TODO rename this hall"} {
		result := v.VerifyChapter(context.Background(), "Louvre", title, "", Options{})
		assert.False(t, result.IsReal, title)
		assert.InDelta(t, 0.95, result.Confidence, 1e-9, title)
	}
}

func TestVerifyChapterFastMode(t *testing.T) {
	v := NewVerifier(new(MockOracle), slog.Default())

	result := v.VerifyChapter(context.Background(), "Versailles", "Hall of Mirrors", "", Options{FastMode: true})

	assert.True(t, result.IsReal)
	assert.InDelta(t, 0.8, result.Confidence, 1e-9)
	assert.Equal(t, "fast_mode_pass", result.Reason)
}

func TestVerifyChapterKnownPlace(t *testing.T) {
	v := NewVerifier(new(MockOracle), slog.Default())

	result := v.VerifyChapter(context.Background(), "Palace of Versailles", "The Hall of Mirrors", "", Options{SkipOracle: true})

	assert.True(t, result.IsReal)
	assert.Equal(t, "combined_analysis", result.Reason)
	// pattern 0.6*0.3 + lookup 0.9*0.25 + skipped oracle 0.3*0.3 + structural 0.8*0.15
	assert.InDelta(t, 0.615, result.Confidence, 1e-9)
	assert.Greater(t, result.Confidence, InclusionThreshold)
	assert.Contains(t, result.Evidences, "Hall of Mirrors")
}

func TestVerifyChapterGenericElement(t *testing.T) {
	result := checkKnownPlaces("Museum Entrance Plaza", "Somewhere New")
	assert.True(t, result.IsReal)
	assert.InDelta(t, 0.75, result.Confidence, 1e-9)
	assert.Equal(t, "common_element", result.Reason)
}

func TestVerifyChapterOracleRejection(t *testing.T) {
	oracle := new(MockOracle)
	oracle.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse(`{"exists": false, "confidence": 0.9, "reasoning": "no such chamber"}`), nil)
	v := NewVerifier(oracle, slog.Default())

	result := v.VerifyChapter(context.Background(), "Versailles", "Crystal Moon Chamber", "", Options{})

	// a confident oracle rejection overrides the fusion arithmetic
	assert.False(t, result.IsReal)
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
	assert.Equal(t, "oracle_verified", result.Reason)
	assert.Equal(t, "no such chamber", result.Details)
}

func TestVerifyChapterOracleParseFailure(t *testing.T) {
	oracle := new(MockOracle)
	oracle.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(textResponse("I am quite sure this place exists."), nil)
	v := NewVerifier(oracle, slog.Default())

	result := v.VerifyChapter(context.Background(), "Versailles", "Crystal Moon Chamber", "", Options{})

	// parse failure degrades to a conservative pass-through, not a rejection
	assert.True(t, result.IsReal)
	// pattern 0.6*0.3 + unverified 0.35*0.25 + parse error 0.3*0.3 + structural 0.8*0.15
	assert.InDelta(t, 0.4775, result.Confidence, 1e-9)
	assert.Less(t, result.Confidence, InclusionThreshold)
}

func TestVerifyChapterOracleError(t *testing.T) {
	oracle := new(MockOracle)
	oracle.On("GenerateResponse", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("oracle unavailable"))
	v := NewVerifier(oracle, slog.Default())

	result := v.VerifyChapter(context.Background(), "Versailles", "Crystal Moon Chamber", "", Options{})

	assert.True(t, result.IsReal)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestStructuralConsistency(t *testing.T) {
	contradictory := checkStructuralConsistency("Indoor and Outdoor Pavilion")
	assert.False(t, contradictory.IsReal)
	assert.Equal(t, "structural_inconsistency", contradictory.Reason)

	warned := checkStructuralConsistency("Exhibits in Room 4021")
	assert.True(t, warned.IsReal)
	assert.InDelta(t, 0.6, warned.Confidence, 1e-9)

	clean := checkStructuralConsistency("Grand Staircase")
	assert.True(t, clean.IsReal)
	assert.InDelta(t, 0.8, clean.Confidence, 1e-9)
}

func TestVerifyChaptersOrderAndRange(t *testing.T) {
	v := NewVerifier(new(MockOracle), slog.Default())
	chapters := []types.Chapter{
		{Title: "Hall of Mirrors"},
		{Title: "Broken [TBD] stop"},
		{Title: "Royal Chapel"},
	}

	results := v.VerifyChapters(context.Background(), "Versailles", chapters, Options{FastMode: true})

	require.Len(t, results, 3)
	assert.True(t, results[0].IsReal)
	assert.False(t, results[1].IsReal)
	assert.True(t, results[2].IsReal)
	for _, result := range results {
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
	}
}
