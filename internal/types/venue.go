package types

// VenueScale is the coarse size classification of a place, from world-class
// heritage sites down to small local attractions.
type VenueScale string

const (
	ScaleWorldHeritage   VenueScale = "world_heritage"
	ScaleNationalMuseum  VenueScale = "national_museum"
	ScaleMajorAttraction VenueScale = "major_attraction"
	ScaleRegionalSite    VenueScale = "regional_site"
	ScaleLocalAttraction VenueScale = "local_attraction"
)

// VenueType describes the physical layout of a place, which drives the
// route optimisation strategy.
type VenueType string

const (
	VenueIndoor  VenueType = "indoor"
	VenueOutdoor VenueType = "outdoor"
	VenueMixed   VenueType = "mixed"
)

// VenueProfile is created once per request by the venue classifier and is
// read-only afterwards.
type VenueProfile struct {
	Scale                VenueScale `json:"scale"`
	VenueType            VenueType  `json:"venue_type"`
	AverageVisitDuration int        `json:"average_visit_duration"` // minutes
}
