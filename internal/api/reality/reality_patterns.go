package reality

import "regexp"

// obviousFakePatterns are red flags that mark generated filler rather than a
// real sub-location: placeholder brackets, test/sample markers, and leftover
// editor tokens. A match rejects the chapter outright.
var obviousFakePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(example|sample|test|placeholder|dummy)\b`),
	regexp.MustCompile(`\b(XXX|YYY|ZZZ|TODO|FIXME)\b`),
	regexp.MustCompile(`(?i)\b(auto.?generated|machine.?generated|system.?generated)\b`),
	regexp.MustCompile(`\[[^\]]*\]`),
	regexp.MustCompile(`(?i)\b(imaginary|fictional|made.?up|non.?existent)\b`),
	regexp.MustCompile(`(?i)\b(somewhere|someplace|unnamed)\b`),
}

// contradictoryPairs are term pairs that cannot both describe one stop.
var contradictoryPairs = [][2]string{
	{"indoor", "outdoor"},
	{"basement", "rooftop"},
	{"entrance", "exit"},
}

// exactTimestampPattern matches over-specific dates and clock times. A real
// guide names a place, not a minute.
var exactTimestampPattern = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4}|\d{1,2}:\d{2}(:\d{2})?)\b`)

// roomNumberPattern flags suspiciously precise room designations.
var roomNumberPattern = regexp.MustCompile(`(?i)\broom\s+\d{3,}\b`)

// genericTouristNouns name infrastructure every sizeable venue has. Their
// presence is weak but positive evidence that the stop is real.
var genericTouristNouns = []string{
	"entrance", "exit", "ticket office", "parking", "restroom",
	"information desk", "cafe", "gift shop", "souvenir",
	"exhibition hall", "museum", "garden", "plaza", "square",
	"staircase", "bridge", "tower", "gate", "building",
}

// genericActivitySpots are vaguer venue features, worth slightly less
// confidence than the infrastructure nouns.
var genericActivitySpots = []string{
	"walking trail", "promenade", "viewing deck", "observation deck",
	"photo spot", "rest area", "bench", "fountain",
	"sculpture", "pond", "lake", "forest", "hill", "courtyard",
}
