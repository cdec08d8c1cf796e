package chapter

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tour-chapters/internal/api/reality"
	"github.com/FACorreiaa/go-tour-chapters/internal/api/venue"
	"github.com/FACorreiaa/go-tour-chapters/internal/cache"
	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

// MockSource is a mock implementation of the candidate.Source interface.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) FetchCandidates(ctx context.Context, placeName string, profile *types.VisitorProfile) ([]types.CandidatePoint, error) {
	args := m.Called(ctx, placeName, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.CandidatePoint), args.Error(1)
}

// stubValidator passes every candidate through with a fixed confidence.
type stubValidator struct {
	confidence float64
}

func (v *stubValidator) ValidateCandidates(_ context.Context, _ string, candidates []types.CandidatePoint) ([]types.ValidatedCandidate, error) {
	validated := make([]types.ValidatedCandidate, 0, len(candidates))
	for _, c := range candidates {
		validated = append(validated, types.ValidatedCandidate{
			CandidatePoint: c,
			ValidationScores: types.ValidationScores{
				Cultural: c.CompositeScore,
				Visitor:  c.CompositeScore,
				Local:    c.CompositeScore,
				Combined: c.CompositeScore,
			},
			Confidence: v.confidence,
		})
	}
	return validated, nil
}

// stubVerifier accepts everything except listed titles.
type stubVerifier struct {
	confidence   float64
	rejectTitles map[string]bool
}

func (v *stubVerifier) VerifyChapter(_ context.Context, _, chapterTitle, _ string, _ reality.Options) types.RealityVerificationResult {
	if v.rejectTitles[chapterTitle] {
		return types.RealityVerificationResult{IsReal: false, Confidence: 0.95, Reason: "obvious_fake"}
	}
	return types.RealityVerificationResult{IsReal: true, Confidence: v.confidence, Reason: "known_place"}
}

func (v *stubVerifier) VerifyChapters(ctx context.Context, placeName string, chapters []types.Chapter, opts reality.Options) []types.RealityVerificationResult {
	results := make([]types.RealityVerificationResult, len(chapters))
	for i, chapter := range chapters {
		results[i] = v.VerifyChapter(ctx, placeName, chapter.Title, chapter.Content, opts)
	}
	return results
}

func fixtureCandidates() []types.CandidatePoint {
	points := []struct {
		name  string
		tier  types.Tier
		score float64
		lat   float64
	}{
		{"Grand Hall", types.Tier1WorldFamous, 9.5, 37.5790},
		{"Throne Pavilion", types.Tier1WorldFamous, 9.2, 37.5785},
		{"Lotus Pond", types.Tier2NationalTreasure, 8.8, 37.5781},
		{"Royal Archives", types.Tier2NationalTreasure, 8.5, 37.5777},
		{"Stone Bridge", types.Tier2NationalTreasure, 8.2, 37.5773},
		{"Court Kitchen", types.Tier3CrowdFavorite, 7.0, 37.5769},
		{"Side Gate", types.Tier3CrowdFavorite, 6.5, 37.5765},
	}

	candidates := make([]types.CandidatePoint, 0, len(points))
	for _, p := range points {
		candidates = append(candidates, types.CandidatePoint{
			Name:           p.name,
			Tier:           p.tier,
			CompositeScore: p.score,
			Coordinates:    types.Coordinates{Lat: p.lat, Lng: 126.9770},
			Scores:         types.ScoreVector{Accessibility: 8.5},
		})
	}
	return candidates
}

func newTestService(source *MockSource, verifier reality.Verifier) *ServiceImpl {
	return NewService(
		venue.NewClassifier(slog.Default()),
		source,
		&stubValidator{confidence: 0.9},
		verifier,
		cache.NewMemoryStore(0),
		nil,
		slog.Default(),
	)
}

func TestGenerateTourEndToEnd(t *testing.T) {
	source := new(MockSource)
	source.On("FetchCandidates", mock.Anything, "MajorAttractionX", mock.Anything).
		Return(fixtureCandidates(), nil)

	svc := newTestService(source, &stubVerifier{confidence: 0.9})
	generatedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return generatedAt }

	response := svc.GenerateTour(context.Background(), types.TourRequest{
		PlaceName:            "MajorAttractionX",
		Language:             "en",
		VisitDurationMinutes: 90,
	})

	require.True(t, response.Success)
	// 2 tier-1 + ceil(3*0.7) must-sees against base 7, time budget 90/12 and
	// the cognition ceiling give exactly 5 main stops
	require.Len(t, response.Chapters, 6)

	intro := response.Chapters[0]
	assert.Equal(t, 0, intro.ID)
	assert.Equal(t, types.ChapterIntroduction, intro.Type)
	assert.Equal(t, "MajorAttractionX visitor introduction", intro.Title)
	assert.Equal(t, 9, intro.DurationMinutes)
	assert.Contains(t, intro.Content, "Grand Hall")

	var mainTitles []string
	for i, chapter := range response.Chapters[1:] {
		assert.Equal(t, i+1, chapter.ID)
		assert.Equal(t, types.ChapterViewingPoint, chapter.Type)
		assert.NotEmpty(t, chapter.Priority)
		mainTitles = append(mainTitles, chapter.Title)
	}
	assert.ElementsMatch(t,
		[]string{"Grand Hall", "Throne Pavilion", "Lotus Pond", "Royal Archives", "Stone Bridge"},
		mainTitles)

	// navigation metadata: the first stop is a fixed short walk from the intro
	first := response.Chapters[1]
	assert.Equal(t, 2, first.WalkTimeMinutes)
	assert.InDelta(t, 100, first.DistanceMeters, 1e-9)

	assert.Equal(t, 6, response.Metadata.TotalChapters)
	assert.Equal(t, types.DifficultyEasy, response.Metadata.Difficulty)
	assert.Equal(t, generatedAt, response.Metadata.GeneratedAt)
	assert.ElementsMatch(t,
		[]string{"existence_check", "deduplication", "diversity_ensure"},
		response.Metadata.QualityFilters)

	// 0.7 * validation 0.9 + 0.3 * reality 0.9
	assert.InDelta(t, 0.9, response.AccuracyScore, 1e-9)
}

func TestGenerateTourCacheHit(t *testing.T) {
	source := new(MockSource)
	source.On("FetchCandidates", mock.Anything, "MajorAttractionX", mock.Anything).
		Return(fixtureCandidates(), nil).Once()

	svc := newTestService(source, &stubVerifier{confidence: 0.9})
	req := types.TourRequest{PlaceName: "MajorAttractionX", Language: "en", VisitDurationMinutes: 90}

	first := svc.GenerateTour(context.Background(), req)
	require.True(t, first.Success)
	assert.False(t, first.CacheHit)

	second := svc.GenerateTour(context.Background(), req)
	require.True(t, second.Success)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Metadata.TotalChapters, second.Metadata.TotalChapters)

	source.AssertExpectations(t)
}

func TestGenerateTourRejectedChaptersAreDropped(t *testing.T) {
	source := new(MockSource)
	source.On("FetchCandidates", mock.Anything, "MajorAttractionX", mock.Anything).
		Return(fixtureCandidates(), nil)

	verifier := &stubVerifier{confidence: 0.9, rejectTitles: map[string]bool{"Lotus Pond": true}}
	svc := newTestService(source, verifier)

	response := svc.GenerateTour(context.Background(), types.TourRequest{
		PlaceName:            "MajorAttractionX",
		VisitDurationMinutes: 90,
	})

	require.True(t, response.Success)
	for _, chapter := range response.Chapters {
		assert.NotEqual(t, "Lotus Pond", chapter.Title)
	}
	// main chapter IDs stay contiguous after the drop
	for i, chapter := range response.Chapters[1:] {
		assert.Equal(t, i+1, chapter.ID)
	}
}

func TestGenerateTourEmptyPlaceName(t *testing.T) {
	svc := newTestService(new(MockSource), &stubVerifier{confidence: 0.9})

	response := svc.GenerateTour(context.Background(), types.TourRequest{PlaceName: "  "})

	assert.False(t, response.Success)
	assert.NotEmpty(t, response.Error)
	assert.Empty(t, response.Chapters)
}

func TestGenerateTourAllChaptersRejected(t *testing.T) {
	source := new(MockSource)
	source.On("FetchCandidates", mock.Anything, "MajorAttractionX", mock.Anything).
		Return(fixtureCandidates(), nil)

	verifier := &stubVerifier{confidence: 0.9, rejectTitles: map[string]bool{
		"Grand Hall": true, "Throne Pavilion": true, "Lotus Pond": true,
		"Royal Archives": true, "Stone Bridge": true,
	}}
	svc := newTestService(source, verifier)

	response := svc.GenerateTour(context.Background(), types.TourRequest{
		PlaceName:            "MajorAttractionX",
		VisitDurationMinutes: 90,
	})

	assert.False(t, response.Success)
	assert.NotEmpty(t, response.Error)
}
