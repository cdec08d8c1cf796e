package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var jsonBlockPattern = regexp.MustCompile(`(?s)\{.*\}`)

// scoreLinePattern matches "point name: 8.5 - assessment" fallback lines.
var scoreLinePattern = regexp.MustCompile(`^([^:]+):\s*(\d+(?:\.\d+)?)`)

type perspectiveScore struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

type batchValidation struct {
	PointName string           `json:"pointName"`
	Cultural  perspectiveScore `json:"cultural"`
	Visitor   perspectiveScore `json:"visitor"`
	Local     perspectiveScore `json:"local"`
}

type batchValidationResponse struct {
	Validations []batchValidation `json:"validations"`
}

// parseBatchResponse extracts the JSON block from the oracle's batch answer.
// An error sends the caller down the per-perspective fallback path.
func parseBatchResponse(responseText string) ([]batchValidation, error) {
	jsonStr := strings.TrimPrefix(strings.TrimSuffix(strings.TrimSpace(responseText), "```"), "```json")
	match := jsonBlockPattern.FindString(jsonStr)
	if match == "" {
		return nil, fmt.Errorf("no JSON block in batch validation response")
	}

	var parsed batchValidationResponse
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse batch validation JSON: %w", err)
	}
	if len(parsed.Validations) == 0 {
		return nil, fmt.Errorf("batch validation response has no validations")
	}
	return parsed.Validations, nil
}

// parsePerspectiveResponse parses flat "name: score" lines from one
// perspective's fallback answer.
func parsePerspectiveResponse(responseText string) map[string]float64 {
	scores := make(map[string]float64)
	for _, line := range strings.Split(responseText, "\n") {
		match := scoreLinePattern.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}
		score, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			continue
		}
		name := strings.TrimSpace(strings.Trim(match[1], "[]*- "))
		scores[name] = score
	}
	return scores
}

// matchName finds a scored entry for a candidate by exact match first, then
// substring match in either direction.
func matchName(scores map[string]float64, candidateName string) (float64, bool) {
	if score, ok := scores[candidateName]; ok {
		return score, true
	}
	lowered := strings.ToLower(candidateName)
	for name, score := range scores {
		n := strings.ToLower(name)
		if strings.Contains(lowered, n) || strings.Contains(n, lowered) {
			return score, true
		}
	}
	return 0, false
}
