package quality

import (
	"strings"

	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

// typeBuckets map title keywords to a coarse chapter type tag, checked in
// order with first match winning.
var typeBuckets = []struct {
	tag      string
	keywords []string
}{
	{"exhibition", []string{"exhibit", "artwork", "gallery", "collection"}},
	{"architecture", []string{"building", "architecture", "facade", "tower"}},
	{"outdoor", []string{"garden", "outdoor", "park", "trail"}},
	{"activity", []string{"experience", "activity", "workshop", "hands-on"}},
}

func inferChapterTag(title string) string {
	lowered := strings.ToLower(title)
	for _, bucket := range typeBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(lowered, keyword) {
				return bucket.tag
			}
		}
	}
	return "general"
}

// EnsureDiversity breaks up runs of three same-tagged chapters by swapping
// the third with the nearest later chapter of a different tag. Best effort:
// when no later chapter differs, the run stays.
func EnsureDiversity(chapters []types.Chapter) []types.Chapter {
	result := make([]types.Chapter, len(chapters))
	copy(result, chapters)

	for i := 0; i+2 < len(result); i++ {
		tag := inferChapterTag(result[i].Title)
		if inferChapterTag(result[i+1].Title) != tag || inferChapterTag(result[i+2].Title) != tag {
			continue
		}

		for j := i + 3; j < len(result); j++ {
			if inferChapterTag(result[j].Title) != tag {
				result[i+2], result[j] = result[j], result[i+2]
				break
			}
		}
	}
	return result
}
