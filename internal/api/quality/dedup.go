// Package quality holds the post-generation filters that clean up an
// assembled chapter list: near-duplicate removal and type diversity.
package quality

import (
	"log/slog"
	"strings"

	"github.com/FACorreiaa/go-tour-chapters/internal/textmetric"
	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

// DefaultSimilarityThreshold is the similarity above which two chapters are
// treated as duplicates.
const DefaultSimilarityThreshold = 0.7

// ContentSimilarity scores how alike two chapter texts are, blending word
// overlap with character-level edit distance.
func ContentSimilarity(a, b string) float64 {
	jaccard := textmetric.JaccardWords(a, b)

	maxLen := max(len([]rune(a)), len([]rune(b)))
	levenshtein := 0.0
	if maxLen > 0 {
		levenshtein = 1 - float64(textmetric.Levenshtein(a, b))/float64(maxLen)
	}

	return jaccard*0.7 + levenshtein*0.3
}

// Deduplicate drops chapters that are near-duplicates of an earlier one.
// For each flagged pair the later member is removed; survivors keep their
// original relative order.
func Deduplicate(logger *slog.Logger, chapters []types.Chapter, threshold float64) []types.Chapter {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}

	texts := make([]string, len(chapters))
	for i, chapter := range chapters {
		texts[i] = chapterText(chapter)
	}

	dropped := make([]bool, len(chapters))
	for i := 0; i < len(chapters); i++ {
		if dropped[i] {
			continue
		}
		for j := i + 1; j < len(chapters); j++ {
			if dropped[j] {
				continue
			}
			similarity := ContentSimilarity(texts[i], texts[j])
			if similarity >= threshold {
				dropped[j] = true
				logger.Debug("dropping near-duplicate chapter",
					slog.String("kept", chapters[i].Title),
					slog.String("dropped", chapters[j].Title),
					slog.Float64("similarity", similarity))
			}
		}
	}

	survivors := make([]types.Chapter, 0, len(chapters))
	for i, chapter := range chapters {
		if !dropped[i] {
			survivors = append(survivors, chapter)
		}
	}
	return survivors
}

func chapterText(chapter types.Chapter) string {
	return strings.ToLower(strings.TrimSpace(chapter.Title + " " + chapter.Content))
}
