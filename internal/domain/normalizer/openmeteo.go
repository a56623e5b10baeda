package normalizer

import (
	"fmt"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/failure"
	"skynow-api/internal/domain/model/external"
)

const feetToMeters = 0.3048

// normalizeOpenMeteo reads the index aligned series of an Open-Meteo payload. A series that is
// present must match the length of its time axis; an absent series is filled with placeholders.
func normalizeOpenMeteo(src OpenMeteoSource) (*entity.WeatherSnapshot, error) {
	payload := src.Payload
	switch {
	case payload == nil:
		return nil, malformed(KindOpenMeteo, "body")
	case payload.Current == nil:
		return nil, malformed(KindOpenMeteo, "current")
	case payload.Hourly == nil:
		return nil, malformed(KindOpenMeteo, "hourly")
	case payload.Daily == nil:
		return nil, malformed(KindOpenMeteo, "daily")
	}

	if err := checkHourlyLengths(payload.Hourly); err != nil {
		return nil, err
	}
	if err := checkDailyLengths(payload.Daily); err != nil {
		return nil, err
	}

	daily := openMeteoDaily(payload.Daily)
	current := openMeteoCurrent(payload.Current, visibilityScale(payload.CurrentUnits))
	if len(daily) > 0 {
		current.Sunrise = daily[0].Sunrise
		current.Sunset = daily[0].Sunset
	}

	return &entity.WeatherSnapshot{
		Lat:            payload.Latitude,
		Lon:            payload.Longitude,
		Timezone:       timezoneName(payload.Timezone, payload.UtcOffsetSeconds),
		TimezoneOffset: payload.UtcOffsetSeconds,
		Current:        current,
		Hourly:         openMeteoHourly(payload.Hourly, visibilityScale(payload.HourlyUnits)),
		Daily:          daily,
	}, nil
}

func openMeteoCurrent(current *external.OpenMeteoCurrent, scale float64) entity.CurrentWeather {
	temp := valueOr(current.Temperature, 0)
	isDay := current.IsDay == nil || *current.IsDay == 1

	return entity.CurrentWeather{
		Dt:         current.Time,
		Temp:       temp,
		FeelsLike:  valueOr(current.ApparentTemperature, temp),
		Pressure:   valueOr(current.PressureMsl, DefaultPressure),
		Humidity:   valueOr(current.RelativeHumidity, DefaultHumidity),
		DewPoint:   valueOr(current.DewPoint, temp),
		Uvi:        valueOr(current.UvIndex, DefaultUvi),
		Clouds:     valueOr(current.CloudCover, DefaultClouds),
		Visibility: scaledOr(current.Visibility, scale, DefaultVisibility),
		WindSpeed:  valueOr(current.WindSpeed, DefaultWindSpeed),
		WindDeg:    valueOr(current.WindDirection, DefaultWindDeg),
		Weather:    []entity.WeatherCondition{ConditionFromWMO(intOr(current.WeatherCode, 0), isDay)},
	}
}

func openMeteoHourly(hourly *external.OpenMeteoHourly, scale float64) []entity.HourlyWeather {
	result := make([]entity.HourlyWeather, 0, len(hourly.Time))
	for i, dt := range hourly.Time {
		temp := floatAt(hourly.Temperature, i, 0)
		isDay := intAt(hourly.IsDay, i, 1) == 1

		result = append(result, entity.HourlyWeather{
			Dt:         dt,
			Temp:       temp,
			FeelsLike:  floatAt(hourly.ApparentTemperature, i, temp),
			Pressure:   floatAt(hourly.PressureMsl, i, DefaultPressure),
			Humidity:   floatAt(hourly.RelativeHumidity, i, DefaultHumidity),
			DewPoint:   floatAt(hourly.DewPoint, i, temp),
			Uvi:        floatAt(hourly.UvIndex, i, DefaultUvi),
			Clouds:     floatAt(hourly.CloudCover, i, DefaultClouds),
			Visibility: scaledAt(hourly.Visibility, i, scale, DefaultVisibility),
			WindSpeed:  floatAt(hourly.WindSpeed, i, DefaultWindSpeed),
			WindDeg:    floatAt(hourly.WindDirection, i, DefaultWindDeg),
			Weather:    []entity.WeatherCondition{ConditionFromWMO(intAt(hourly.WeatherCode, i, 0), isDay)},
			Pop:        floatAt(hourly.PrecipitationProbability, i, DefaultPop*100) / 100,
		})
	}
	return result
}

func openMeteoDaily(daily *external.OpenMeteoDaily) []entity.DailyWeather {
	result := make([]entity.DailyWeather, 0, len(daily.Time))
	for i, dt := range daily.Time {
		minTemp := floatAt(daily.TemperatureMin, i, 0)
		maxTemp := floatAt(daily.TemperatureMax, i, minTemp)
		feelsMin := floatAt(daily.ApparentTemperatureMin, i, minTemp)
		feelsMax := floatAt(daily.ApparentTemperatureMax, i, maxTemp)

		result = append(result, entity.DailyWeather{
			Dt:      dt,
			Sunrise: int64At(daily.Sunrise, i, 0),
			Sunset:  int64At(daily.Sunset, i, 0),
			Temp: entity.DailyTemp{
				Day:   (minTemp + maxTemp) / 2,
				Min:   minTemp,
				Max:   maxTemp,
				Night: minTemp,
				Eve:   maxTemp,
				Morn:  minTemp,
			},
			FeelsLike: entity.DailyFeelsLike{
				Day:   feelsMax,
				Night: feelsMin,
				Eve:   feelsMax,
				Morn:  feelsMin,
			},
			Pressure:  DefaultPressure,
			Humidity:  DefaultHumidity,
			DewPoint:  minTemp,
			WindSpeed: floatAt(daily.WindSpeedMax, i, DefaultWindSpeed),
			WindDeg:   floatAt(daily.WindDirectionDominant, i, DefaultWindDeg),
			Weather:   []entity.WeatherCondition{ConditionFromWMO(intAt(daily.WeatherCode, i, 0), true)},
			Clouds:    DefaultClouds,
			Pop:       floatAt(daily.PrecipitationProbabilityMax, i, DefaultPop*100) / 100,
			Uvi:       floatAt(daily.UvIndexMax, i, DefaultUvi),
		})
	}
	return result
}

func checkHourlyLengths(hourly *external.OpenMeteoHourly) error {
	n := len(hourly.Time)
	series := map[string]int{
		"temperature_2m":            lenOrN(len(hourly.Temperature), hourly.Temperature == nil, n),
		"apparent_temperature":      lenOrN(len(hourly.ApparentTemperature), hourly.ApparentTemperature == nil, n),
		"relative_humidity_2m":      lenOrN(len(hourly.RelativeHumidity), hourly.RelativeHumidity == nil, n),
		"dew_point_2m":              lenOrN(len(hourly.DewPoint), hourly.DewPoint == nil, n),
		"precipitation_probability": lenOrN(len(hourly.PrecipitationProbability), hourly.PrecipitationProbability == nil, n),
		"weather_code":              lenOrN(len(hourly.WeatherCode), hourly.WeatherCode == nil, n),
		"is_day":                    lenOrN(len(hourly.IsDay), hourly.IsDay == nil, n),
		"cloud_cover":               lenOrN(len(hourly.CloudCover), hourly.CloudCover == nil, n),
		"pressure_msl":              lenOrN(len(hourly.PressureMsl), hourly.PressureMsl == nil, n),
		"visibility":                lenOrN(len(hourly.Visibility), hourly.Visibility == nil, n),
		"wind_speed_10m":            lenOrN(len(hourly.WindSpeed), hourly.WindSpeed == nil, n),
		"wind_direction_10m":        lenOrN(len(hourly.WindDirection), hourly.WindDirection == nil, n),
		"uv_index":                  lenOrN(len(hourly.UvIndex), hourly.UvIndex == nil, n),
	}
	return checkLengths("hourly", n, series)
}

func checkDailyLengths(daily *external.OpenMeteoDaily) error {
	n := len(daily.Time)
	series := map[string]int{
		"weather_code":                  lenOrN(len(daily.WeatherCode), daily.WeatherCode == nil, n),
		"temperature_2m_max":            lenOrN(len(daily.TemperatureMax), daily.TemperatureMax == nil, n),
		"temperature_2m_min":            lenOrN(len(daily.TemperatureMin), daily.TemperatureMin == nil, n),
		"apparent_temperature_max":      lenOrN(len(daily.ApparentTemperatureMax), daily.ApparentTemperatureMax == nil, n),
		"apparent_temperature_min":      lenOrN(len(daily.ApparentTemperatureMin), daily.ApparentTemperatureMin == nil, n),
		"sunrise":                       lenOrN(len(daily.Sunrise), daily.Sunrise == nil, n),
		"sunset":                        lenOrN(len(daily.Sunset), daily.Sunset == nil, n),
		"uv_index_max":                  lenOrN(len(daily.UvIndexMax), daily.UvIndexMax == nil, n),
		"precipitation_probability_max": lenOrN(len(daily.PrecipitationProbabilityMax), daily.PrecipitationProbabilityMax == nil, n),
		"wind_speed_10m_max":            lenOrN(len(daily.WindSpeedMax), daily.WindSpeedMax == nil, n),
		"wind_direction_10m_dominant":   lenOrN(len(daily.WindDirectionDominant), daily.WindDirectionDominant == nil, n),
	}
	return checkLengths("daily", n, series)
}

// visibilityScale converts visibility reported in feet to meters.
func visibilityScale(units map[string]string) float64 {
	if units["visibility"] == "ft" {
		return feetToMeters
	}
	return 1
}

// lenOrN treats an absent series as aligned.
func lenOrN(length int, absent bool, n int) int {
	if absent {
		return n
	}
	return length
}

func checkLengths(block string, n int, series map[string]int) error {
	for name, length := range series {
		if length != n {
			return fmt.Errorf("%w: %s.%s has %d values for %d timestamps",
				failure.ErrMalformedSource, block, name, length, n)
		}
	}
	return nil
}

func floatAt(series []*float64, i int, fallback float64) float64 {
	if i >= len(series) || series[i] == nil {
		return fallback
	}
	return *series[i]
}

func scaledAt(series []*float64, i int, scale, fallback float64) float64 {
	if i >= len(series) || series[i] == nil {
		return fallback
	}
	return *series[i] * scale
}

func scaledOr(value *float64, scale, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value * scale
}

func intAt(series []*int, i int, fallback int) int {
	if i >= len(series) || series[i] == nil {
		return fallback
	}
	return *series[i]
}

func int64At(series []*int64, i int, fallback int64) int64 {
	if i >= len(series) || series[i] == nil {
		return fallback
	}
	return *series[i]
}

func intOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

// timezoneName keeps the provider's zone name and falls back to the UTC offset form.
func timezoneName(name string, offset int) string {
	if name != "" {
		return name
	}
	return utcOffsetName(offset)
}
