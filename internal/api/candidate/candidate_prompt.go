package candidate

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

const (
	analysisStartMarker = "**MUST_SEE_ANALYSIS_START**"
	analysisEndMarker   = "**MUST_SEE_ANALYSIS_END**"
)

func getMustSeePrompt(placeName string, profile *types.VisitorProfile) string {
	interests := "general"
	ageGroup := "30s"
	knowledge := "intermediate"
	duration := 90
	if profile != nil {
		if len(profile.Interests) > 0 {
			interests = strings.Join(profile.Interests, ", ")
		}
		if profile.AgeGroup != "" {
			ageGroup = profile.AgeGroup
		}
		if profile.KnowledgeLevel != "" {
			knowledge = profile.KnowledgeLevel
		}
		if profile.TourDurationMinutes > 0 {
			duration = profile.TourDurationMinutes
		}
	}

	return fmt.Sprintf(`
You are a worldwide tourism expert. Analyse %s and list, in priority order, the must-see points a visitor should not miss.

Visitor profile:
- Interests: %s
- Age group: %s
- Knowledge level: %s
- Available time: %d minutes

Respond ONLY in the following format:

%s

1. [point name] | [location/section] | [importance 1-10] | [viewing minutes] | [type]
2. [point name] | [location/section] | [importance 1-10] | [viewing minutes] | [type]
(continue...)

%s

Rules:
- Only mention places and facilities that actually exist.
- Never invent specific business or shop names.
- No speculative wording.
- Recommend 8-12 points, adjusted to the size of the place.`,
		placeName, interests, ageGroup, knowledge, duration,
		analysisStartMarker, analysisEndMarker)
}
