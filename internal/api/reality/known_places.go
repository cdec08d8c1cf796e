package reality

import "strings"

// knownSubLocations is a static allow-list of real sub-locations for venues
// that show up often. Entries are matched case-insensitively, by substring or
// fuzzy similarity.
var knownSubLocations = map[string][]string{
	"gyeongbokgung": {
		"Gwanghwamun Gate", "Geunjeongjeon Hall", "Gyeonghoeru Pavilion",
		"Hyangwonjeong Pavilion", "Gangnyeongjeon Hall", "Gyotaejeon Hall",
		"Jagyeongjeon Hall", "Heungnyemun Gate", "Sujeongjeon Hall",
	},
	"changdeokgung": {
		"Donhwamun Gate", "Injeongjeon Hall", "Seonjeongjeon Hall",
		"Huijeongdang Hall", "Daejojeon Hall", "Secret Garden", "Nakseonjae",
	},
	"versailles": {
		"Hall of Mirrors", "Royal Chapel", "Grand Canal", "King's Grand Apartment",
		"Queen's Apartment", "Grand Trianon", "Petit Trianon", "Orangerie",
	},
	"louvre": {
		"Mona Lisa", "Venus de Milo", "Winged Victory", "Glass Pyramid",
		"Denon Wing", "Richelieu Wing", "Sully Wing", "Napoleon Apartments",
	},
	"british museum": {
		"Rosetta Stone", "Great Court", "Parthenon Galleries",
		"Egyptian Sculpture Gallery", "Reading Room",
	},
	"jeju": {
		"Seongsan Ilchulbong", "Manjanggul Cave", "Cheonjiyeon Falls",
		"Jeongbang Falls", "Seopjikoji", "Udo Island", "Hallasan",
	},
	"busan": {
		"Haeundae Beach", "Gwangalli Beach", "Gamcheon Culture Village",
		"Taejongdae", "Yongdusan Park", "Jagalchi Market",
	},
}

// knownPlacesFor returns the allow-list for a venue, matched by substring so
// "Palace of Versailles" still hits the "versailles" entry.
func knownPlacesFor(placeName string) []string {
	lowered := strings.ToLower(placeName)
	for key, places := range knownSubLocations {
		if strings.Contains(lowered, key) {
			return places
		}
	}
	return nil
}
