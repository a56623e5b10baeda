package entity

// MaxRecentCities bounds the recency history.
const MaxRecentCities = 5

type CitySearchResult struct {
	Name    string  `json:"name" gorm:"column:name"`
	Lat     float64 `json:"lat" gorm:"column:lat"`
	Lon     float64 `json:"lon" gorm:"column:lon"`
	Country string  `json:"country" gorm:"column:country"`
	State   string  `json:"state,omitempty" gorm:"column:state"`
}

// PushRecent puts city at the front of the recency list, dropping any entry with the same
// latitude and keeping at most MaxRecentCities entries. The input slice is not modified.
func PushRecent(recent []CitySearchResult, city CitySearchResult) []CitySearchResult {
	next := make([]CitySearchResult, 0, MaxRecentCities)
	next = append(next, city)
	for _, existing := range recent {
		if len(next) == MaxRecentCities {
			break
		}
		if existing.Lat == city.Lat {
			continue
		}
		next = append(next, existing)
	}
	return next
}
