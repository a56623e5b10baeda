package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func city(name string, lat float64) CitySearchResult {
	return CitySearchResult{Name: name, Lat: lat, Lon: lat / 2, Country: "XX"}
}

func TestPushRecentKeepsFiveMostRecentFirst(t *testing.T) {
	var recent []CitySearchResult
	for i, name := range []string{"A", "B", "C", "D", "E", "F"} {
		recent = PushRecent(recent, city(name, float64(i+1)))
	}

	names := make([]string, 0, len(recent))
	for _, c := range recent {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"F", "E", "D", "C", "B"}, names)
}

func TestPushRecentMovesReselectedCityToFront(t *testing.T) {
	recent := []CitySearchResult{city("C", 3), city("B", 2), city("A", 1)}

	recent = PushRecent(recent, city("A", 1))

	assert.Equal(t, []CitySearchResult{city("A", 1), city("C", 3), city("B", 2)}, recent)
}

func TestPushRecentDeduplicatesByLatitude(t *testing.T) {
	recent := []CitySearchResult{{Name: "London", Lat: 51.5074, Lon: -0.1278}}

	recent = PushRecent(recent, CitySearchResult{Name: "London, GB", Lat: 51.5074, Lon: -0.12})

	assert.Len(t, recent, 1)
	assert.Equal(t, "London, GB", recent[0].Name)
}

func TestPushRecentDoesNotModifyInput(t *testing.T) {
	recent := []CitySearchResult{city("A", 1), city("B", 2)}
	snapshot := append([]CitySearchResult(nil), recent...)

	_ = PushRecent(recent, city("B", 2))

	assert.Equal(t, snapshot, recent)
}
