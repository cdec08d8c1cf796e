package venue

import (
	"log/slog"
	"strings"

	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

var _ Classifier = (*ClassifierImpl)(nil)

// Classifier maps a free-form place name to a venue profile. Classification
// never fails: unmatched names degrade to the smallest scale.
type Classifier interface {
	Classify(placeName string) types.VenueProfile
}

// scaleRule is one ordered keyword rule. The first matching rule wins.
type scaleRule struct {
	scale    types.VenueScale
	keywords []string
}

// Ordered from largest to smallest scale so that e.g. "National Palace Museum"
// classifies as national rather than major.
var scaleRules = []scaleRule{
	{types.ScaleWorldHeritage, []string{"louvre", "versailles", "forbidden city", "vatican", "hermitage", "world heritage"}},
	{types.ScaleNationalMuseum, []string{"national", "state museum", "central museum"}},
	{types.ScaleMajorAttraction, []string{"palace", "cathedral", "temple", "basilica", "castle", "citadel", "major"}},
	{types.ScaleRegionalSite, []string{"regional", "municipal", "city museum", "county"}},
}

var indoorKeywords = []string{"museum", "gallery", "aquarium", "library", "exhibition"}
var outdoorKeywords = []string{"park", "garden", "market", "beach", "mountain", "trail", "island"}

// averageVisitMinutes by scale, used when the request carries no duration.
var averageVisitMinutes = map[types.VenueScale]int{
	types.ScaleWorldHeritage:   180,
	types.ScaleNationalMuseum:  120,
	types.ScaleMajorAttraction: 90,
	types.ScaleRegionalSite:    60,
	types.ScaleLocalAttraction: 45,
}

type ClassifierImpl struct {
	logger *slog.Logger
}

func NewClassifier(logger *slog.Logger) *ClassifierImpl {
	return &ClassifierImpl{logger: logger}
}

func (c *ClassifierImpl) Classify(placeName string) types.VenueProfile {
	name := strings.ToLower(placeName)

	scale := types.ScaleLocalAttraction
	for _, rule := range scaleRules {
		if containsAny(name, rule.keywords) {
			scale = rule.scale
			break
		}
	}

	venueType := types.VenueMixed
	if containsAny(name, indoorKeywords) {
		venueType = types.VenueIndoor
	} else if containsAny(name, outdoorKeywords) {
		venueType = types.VenueOutdoor
	}

	profile := types.VenueProfile{
		Scale:                scale,
		VenueType:            venueType,
		AverageVisitDuration: averageVisitMinutes[scale],
	}
	c.logger.Debug("classified venue",
		slog.String("place", placeName),
		slog.String("scale", string(profile.Scale)),
		slog.String("type", string(profile.VenueType)))
	return profile
}

func containsAny(name string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}
