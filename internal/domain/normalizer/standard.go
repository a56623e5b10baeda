package normalizer

import (
	"fmt"
	"math"
	"time"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/model/external"
)

// normalizeStandard merges the 2.5 current and forecast payloads. Fields the legacy API lacks
// are synthesized: dew point is approximated by the temperature, uvi is 0 and every day carries
// today's sunrise and sunset.
func normalizeStandard(src StandardSource) (*entity.WeatherSnapshot, error) {
	switch {
	case src.Current == nil:
		return nil, malformed(KindStandard, "current weather body")
	case src.Current.Main == nil:
		return nil, malformed(KindStandard, "current main block")
	case src.Forecast == nil || src.Forecast.List == nil:
		return nil, malformed(KindStandard, "forecast list")
	}

	current := src.Current
	offset := src.Forecast.City.Timezone
	if offset == 0 {
		offset = current.Timezone
	}

	return &entity.WeatherSnapshot{
		Lat:            current.Coord.Lat,
		Lon:            current.Coord.Lon,
		Timezone:       utcOffsetName(current.Timezone),
		TimezoneOffset: current.Timezone,
		Current:        standardCurrent(current),
		Hourly:         standardHourly(src.Forecast.List),
		Daily:          standardDaily(src.Forecast.List, offset, current.Sys.Sunrise, current.Sys.Sunset),
	}, nil
}

func standardCurrent(current *external.CurrentWeatherResponse) entity.CurrentWeather {
	return entity.CurrentWeather{
		Dt:         current.Dt,
		Sunrise:    current.Sys.Sunrise,
		Sunset:     current.Sys.Sunset,
		Temp:       current.Main.Temp,
		FeelsLike:  current.Main.FeelsLike,
		Pressure:   current.Main.Pressure,
		Humidity:   current.Main.Humidity,
		DewPoint:   current.Main.Temp,
		Uvi:        DefaultUvi,
		Clouds:     current.Clouds.All,
		Visibility: valueOr(current.Visibility, DefaultVisibility),
		WindSpeed:  current.Wind.Speed,
		WindDeg:    current.Wind.Deg,
		Weather:    conditions(current.Weather),
	}
}

func standardHourly(list []external.ForecastEntryDTO) []entity.HourlyWeather {
	hourly := make([]entity.HourlyWeather, 0, len(list))
	for _, item := range list {
		hourly = append(hourly, entity.HourlyWeather{
			Dt:         item.Dt,
			Temp:       item.Main.Temp,
			FeelsLike:  item.Main.FeelsLike,
			Pressure:   item.Main.Pressure,
			Humidity:   item.Main.Humidity,
			DewPoint:   item.Main.Temp,
			Uvi:        DefaultUvi,
			Clouds:     item.Clouds.All,
			Visibility: valueOr(item.Visibility, DefaultVisibility),
			WindSpeed:  item.Wind.Speed,
			WindDeg:    item.Wind.Deg,
			Weather:    conditions(item.Weather),
			Pop:        valueOr(item.Pop, DefaultPop),
		})
	}
	return hourly
}

// standardDaily groups entries by local calendar date. The first entry of a day supplies its
// condition, clouds, pop, pressure, humidity and wind; min and max keep extending over the day.
func standardDaily(list []external.ForecastEntryDTO, offset int, sunrise, sunset int64) []entity.DailyWeather {
	type bucket struct {
		first    external.ForecastEntryDTO
		min, max float64
	}

	var order []string
	buckets := make(map[string]*bucket)

	for _, item := range list {
		date := localDate(item.Dt, offset)
		day, ok := buckets[date]
		if !ok {
			buckets[date] = &bucket{first: item, min: item.Main.TempMin, max: item.Main.TempMax}
			order = append(order, date)
			continue
		}
		day.min = math.Min(day.min, item.Main.TempMin)
		day.max = math.Max(day.max, item.Main.TempMax)
	}

	daily := make([]entity.DailyWeather, 0, len(order))
	for _, date := range order {
		day := buckets[date]
		daily = append(daily, entity.DailyWeather{
			Dt:      day.first.Dt,
			Sunrise: sunrise,
			Sunset:  sunset,
			Temp: entity.DailyTemp{
				Day:   (day.min + day.max) / 2,
				Min:   day.min,
				Max:   day.max,
				Night: day.min,
				Eve:   day.max,
				Morn:  day.min,
			},
			FeelsLike: entity.DailyFeelsLike{
				Day:   day.max,
				Night: day.min,
				Eve:   day.max,
				Morn:  day.min,
			},
			Pressure:  day.first.Main.Pressure,
			Humidity:  day.first.Main.Humidity,
			WindSpeed: day.first.Wind.Speed,
			WindDeg:   day.first.Wind.Deg,
			Weather:   conditions(day.first.Weather),
			Clouds:    day.first.Clouds.All,
			Pop:       valueOr(day.first.Pop, DefaultPop),
			Uvi:       DefaultUvi,
		})
	}
	return daily
}

func conditions(dtos []external.WeatherConditionDTO) []entity.WeatherCondition {
	result := make([]entity.WeatherCondition, 0, len(dtos))
	for _, dto := range dtos {
		result = append(result, entity.WeatherCondition{
			ID:          dto.ID,
			Main:        dto.Main,
			Description: dto.Description,
			Icon:        dto.Icon,
		})
	}
	return result
}

func localDate(dt int64, offset int) string {
	return time.Unix(dt+int64(offset), 0).UTC().Format(time.DateOnly)
}

// utcOffsetName renders an offset in seconds as "UTC" or "UTC+hh:mm".
func utcOffsetName(offset int) string {
	if offset == 0 {
		return "UTC"
	}
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, offset/3600, (offset%3600)/60)
}
