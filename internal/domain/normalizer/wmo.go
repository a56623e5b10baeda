package normalizer

import "skynow-api/internal/domain/entity"

type wmoCondition struct {
	id          int
	main        string
	description string
	icon        string
}

// wmoConditions maps WMO weather interpretation codes to the OpenWeather condition scheme.
// Freezing drizzle and freezing rain share the ids of plain drizzle and rain.
var wmoConditions = map[int]wmoCondition{
	0:  {800, "Clear", "clear sky", "01"},
	1:  {801, "Clouds", "mainly clear", "02"},
	2:  {802, "Clouds", "partly cloudy", "03"},
	3:  {804, "Clouds", "overcast clouds", "04"},
	45: {741, "Fog", "fog", "50"},
	48: {741, "Fog", "depositing rime fog", "50"},
	51: {300, "Drizzle", "light drizzle", "09"},
	53: {301, "Drizzle", "drizzle", "09"},
	55: {302, "Drizzle", "dense drizzle", "09"},
	56: {300, "Drizzle", "light freezing drizzle", "09"},
	57: {301, "Drizzle", "dense freezing drizzle", "09"},
	61: {500, "Rain", "light rain", "10"},
	63: {501, "Rain", "moderate rain", "10"},
	65: {502, "Rain", "heavy rain", "10"},
	66: {511, "Rain", "light freezing rain", "13"},
	67: {511, "Rain", "heavy freezing rain", "13"},
	71: {600, "Snow", "light snow", "13"},
	73: {601, "Snow", "snow", "13"},
	75: {602, "Snow", "heavy snow", "13"},
	77: {600, "Snow", "snow grains", "13"},
	80: {520, "Rain", "light rain showers", "09"},
	81: {521, "Rain", "rain showers", "09"},
	82: {522, "Rain", "violent rain showers", "09"},
	85: {620, "Snow", "light snow showers", "13"},
	86: {621, "Snow", "heavy snow showers", "13"},
	95: {211, "Thunderstorm", "thunderstorm", "11"},
	96: {201, "Thunderstorm", "thunderstorm with slight hail", "11"},
	99: {202, "Thunderstorm", "thunderstorm with heavy hail", "11"},
}

// ConditionFromWMO translates a WMO code. Unknown codes map to clear sky; isDay picks the icon suffix.
func ConditionFromWMO(code int, isDay bool) entity.WeatherCondition {
	condition, ok := wmoConditions[code]
	if !ok {
		condition = wmoConditions[0]
	}

	suffix := "n"
	if isDay {
		suffix = "d"
	}

	return entity.WeatherCondition{
		ID:          condition.id,
		Main:        condition.main,
		Description: condition.description,
		Icon:        condition.icon + suffix,
	}
}
