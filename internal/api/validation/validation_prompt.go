package validation

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

func candidateListing(candidates []types.CandidatePoint) string {
	lines := make([]string, 0, len(candidates))
	for i, c := range candidates {
		lines = append(lines, fmt.Sprintf("%d. %s (importance: %.1f)", i+1, c.Name, c.CompositeScore))
	}
	return strings.Join(lines, "\n")
}

// getBatchValidationPrompt asks for all three perspectives in one request.
func getBatchValidationPrompt(placeName string, candidates []types.CandidatePoint) string {
	return fmt.Sprintf(`
Evaluate the following must-see points of %s from three expert perspectives at once:

%s

Score each point from each perspective on a 1-10 scale and return ONLY this JSON:

{
  "validations": [
    {
      "pointName": "point name",
      "cultural": {"score": 8.5, "reason": "cultural value assessment"},
      "visitor": {"score": 9.0, "reason": "visitor satisfaction assessment"},
      "local": {"score": 7.5, "reason": "local recommendation assessment"}
    }
  ]
}

Criteria:
- cultural: historical significance, artistic meaning, scholarly value, preservation need
- visitor: visitor reviews, social-media popularity, revisit intent, accessibility
- local: local reputation, hidden value, best visiting conditions, distinctiveness`,
		placeName, candidateListing(candidates))
}

// getPerspectivePrompt is the per-perspective fallback request, answered as
// flat "name: score - note" lines.
func getPerspectivePrompt(placeName string, candidates []types.CandidatePoint, perspective string) string {
	criteria := map[string]string{
		perspectiveCultural: "historical significance, artistic meaning, scholarly value, preservation need",
		perspectiveVisitor:  "visitor reviews, social-media popularity, revisit intent, accessibility",
		perspectiveLocal:    "local reputation, hidden value, best visiting conditions, distinctiveness",
	}
	return fmt.Sprintf(`
Re-evaluate the following must-see points of %s from the %s perspective, scoring each 1-10:

%s

Criteria: %s
Output one line per point, exactly: [point name]: [score] - [one-line assessment]`,
		placeName, perspective, candidateListing(candidates), criteria[perspective])
}
