package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/failure"
	"skynow-api/internal/domain/model/external"
)

const (
	// 2024-03-10 12:00:00 UTC
	noon = int64(1710072000)
	hour = int64(3600)
)

func ptr[T any](v T) *T { return &v }

func clearSky() []entity.WeatherCondition {
	return []entity.WeatherCondition{{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"}}
}

func oneCallPayload() *external.OneCallResponse {
	return &external.OneCallResponse{
		Lat:            51.5074,
		Lon:            -0.1278,
		Timezone:       "Europe/London",
		TimezoneOffset: 0,
		Current: &entity.CurrentWeather{
			Dt: noon, Sunrise: noon - 6*hour, Sunset: noon + 6*hour,
			Temp: 12.3, FeelsLike: 11.1, Pressure: 1012, Humidity: 81, DewPoint: 9.1,
			Uvi: 2.1, Clouds: 40, Visibility: 10000, WindSpeed: 4.6, WindDeg: 250,
			Weather: []entity.WeatherCondition{{ID: 802, Main: "Clouds", Description: "scattered clouds", Icon: "03d"}},
		},
		Hourly: []entity.HourlyWeather{
			{Dt: noon, Temp: 12.3, Humidity: 81, Clouds: 40, Weather: clearSky(), Pop: 0.1},
			{Dt: noon + hour, Temp: 12.9, Humidity: 78, Clouds: 35, Weather: clearSky(), Pop: 0.2},
		},
		Daily: []entity.DailyWeather{
			{
				Dt: noon, Sunrise: noon - 6*hour, Sunset: noon + 6*hour, MoonPhase: 0.5,
				Temp:      entity.DailyTemp{Day: 12, Min: 7, Max: 14, Night: 8, Eve: 11, Morn: 7},
				FeelsLike: entity.DailyFeelsLike{Day: 11, Night: 6, Eve: 10, Morn: 6},
				Pressure:  1012, Humidity: 70, Weather: clearSky(), Pop: 0.3, Uvi: 2.5,
			},
		},
	}
}

func forecastEntry(dt int64, tempMin, tempMax float64, code int) external.ForecastEntryDTO {
	return external.ForecastEntryDTO{
		Dt:      dt,
		Main:    external.MainDTO{Temp: (tempMin + tempMax) / 2, TempMin: tempMin, TempMax: tempMax, Pressure: 1010, Humidity: 60},
		Weather: []external.WeatherConditionDTO{{ID: code, Main: "Main", Description: "desc", Icon: "01d"}},
		Clouds:  external.CloudsDTO{All: 20},
		Wind:    external.WindDTO{Speed: 3, Deg: 90},
	}
}

func standardSource(list []external.ForecastEntryDTO) StandardSource {
	return StandardSource{
		Current: &external.CurrentWeatherResponse{
			Coord:   external.CoordDTO{Lat: 48.8566, Lon: 2.3522},
			Weather: []external.WeatherConditionDTO{{ID: 500, Main: "Rain", Description: "light rain", Icon: "10d"}},
			Main:    &external.MainDTO{Temp: 9, FeelsLike: 7, Pressure: 1005, Humidity: 90},
			Wind:    external.WindDTO{Speed: 5, Deg: 180},
			Clouds:  external.CloudsDTO{All: 75},
			Dt:      noon,
			Sys:     external.SysDTO{Country: "FR", Sunrise: noon - 5*hour, Sunset: noon + 5*hour},
		},
		Forecast: &external.ForecastResponse{List: list},
	}
}

func openMeteoPayload() *external.OpenMeteoResponse {
	return &external.OpenMeteoResponse{
		Latitude:         52.52,
		Longitude:        13.41,
		Timezone:         "Europe/Berlin",
		UtcOffsetSeconds: 3600,
		Current: &external.OpenMeteoCurrent{
			Time:        noon,
			Temperature: ptr(4.5),
			IsDay:       ptr(1),
			WeatherCode: ptr(61),
		},
		Hourly: &external.OpenMeteoHourly{
			Time:                     []int64{noon + hour, noon},
			Temperature:              []*float64{ptr(5.0), ptr(4.5)},
			WeatherCode:              []*int{ptr(3), ptr(0)},
			IsDay:                    []*int{ptr(0), ptr(1)},
			PrecipitationProbability: []*float64{ptr(25.0), nil},
		},
		Daily: &external.OpenMeteoDaily{
			Time:                        []int64{noon, noon + 24*hour},
			WeatherCode:                 []*int{ptr(999), ptr(95)},
			TemperatureMax:              []*float64{ptr(8.0), ptr(10.0)},
			TemperatureMin:              []*float64{ptr(1.0), ptr(2.0)},
			Sunrise:                     []*int64{ptr(noon - 5*hour), ptr(noon + 19*hour)},
			Sunset:                      []*int64{ptr(noon + 5*hour), ptr(noon + 29*hour)},
			PrecipitationProbabilityMax: []*float64{ptr(40.0), nil},
		},
	}
}

func assertConditionsPresent(t *testing.T, snapshot *entity.WeatherSnapshot) {
	t.Helper()
	assert.NotEmpty(t, snapshot.Current.Weather)
	for _, h := range snapshot.Hourly {
		assert.NotEmpty(t, h.Weather)
	}
	for _, d := range snapshot.Daily {
		assert.NotEmpty(t, d.Weather)
	}
}

func TestNormalizeOneCallIsPassThrough(t *testing.T) {
	payload := oneCallPayload()

	snapshot, err := Normalize(OneCallSource{Payload: payload}, entity.Metric)

	require.NoError(t, err)
	assert.Equal(t, entity.Metric, snapshot.Units)
	assert.Equal(t, payload.Lat, snapshot.Lat)
	assert.Equal(t, payload.Lon, snapshot.Lon)
	assert.Equal(t, payload.Timezone, snapshot.Timezone)
	assert.Equal(t, payload.TimezoneOffset, snapshot.TimezoneOffset)
	assert.Equal(t, *payload.Current, snapshot.Current)
	assert.Equal(t, payload.Hourly, snapshot.Hourly)
	assert.Equal(t, payload.Daily, snapshot.Daily)
}

func TestNormalizeOneCallFillsEmptyConditions(t *testing.T) {
	payload := oneCallPayload()
	payload.Current.Weather = nil
	payload.Hourly[1].Weather = []entity.WeatherCondition{}

	snapshot, err := Normalize(OneCallSource{Payload: payload}, entity.Imperial)

	require.NoError(t, err)
	assertConditionsPresent(t, snapshot)
	assert.Equal(t, DefaultCondition, snapshot.Current.Weather[0])
	assert.Equal(t, DefaultCondition, snapshot.Hourly[1].Weather[0])
}

func TestNormalizeOneCallRejectsMissingSeries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *external.OneCallResponse)
	}{
		{"current", func(p *external.OneCallResponse) { p.Current = nil }},
		{"hourly", func(p *external.OneCallResponse) { p.Hourly = nil }},
		{"daily", func(p *external.OneCallResponse) { p.Daily = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := oneCallPayload()
			tt.mutate(payload)

			snapshot, err := Normalize(OneCallSource{Payload: payload}, entity.Metric)

			assert.ErrorIs(t, err, failure.ErrMalformedSource)
			assert.Nil(t, snapshot)
		})
	}

	_, err := Normalize(OneCallSource{}, entity.Metric)
	assert.ErrorIs(t, err, failure.ErrMalformedSource)
}

func TestNormalizeStandardAggregatesDaysByLocalDate(t *testing.T) {
	day1 := noon - 12*hour // 2024-03-10 00:00 UTC
	day2 := day1 + 24*hour
	src := standardSource([]external.ForecastEntryDTO{
		forecastEntry(day1+3*hour, 10, 10, 800),
		forecastEntry(day1+6*hour, 15, 15, 500),
		forecastEntry(day1+9*hour, 8, 8, 500),
		forecastEntry(day2+3*hour, 20, 20, 600),
		forecastEntry(day2+6*hour, 5, 5, 600),
	})

	snapshot, err := Normalize(src, entity.Metric)

	require.NoError(t, err)
	require.Len(t, snapshot.Daily, 2)
	assert.Equal(t, 8.0, snapshot.Daily[0].Temp.Min)
	assert.Equal(t, 15.0, snapshot.Daily[0].Temp.Max)
	assert.Equal(t, 5.0, snapshot.Daily[1].Temp.Min)
	assert.Equal(t, 20.0, snapshot.Daily[1].Temp.Max)
	assert.Equal(t, day1+3*hour, snapshot.Daily[0].Dt)
	assert.Len(t, snapshot.Hourly, 5)
	assertConditionsPresent(t, snapshot)
}

func TestNormalizeStandardGroupsByCityLocalDate(t *testing.T) {
	midnight := noon - 12*hour // 2024-03-10 00:00 UTC
	entries := []external.ForecastEntryDTO{
		forecastEntry(midnight+19*hour, 10, 10, 800), // 14:00 local on the 10th
		forecastEntry(midnight+26*hour, 3, 3, 500),   // 21:00 local on the 10th, already the 11th in UTC
		forecastEntry(midnight+30*hour, 1, 1, 600),   // 01:00 local on the 11th
	}

	src := standardSource(entries)
	src.Forecast.City.Timezone = -5 * 3600

	snapshot, err := Normalize(src, entity.Metric)

	require.NoError(t, err)
	require.Len(t, snapshot.Daily, 2)
	assert.Equal(t, 3.0, snapshot.Daily[0].Temp.Min)
	assert.Equal(t, 10.0, snapshot.Daily[0].Temp.Max)
	assert.Equal(t, 800, snapshot.Daily[0].Weather[0].ID)
	assert.Equal(t, 1.0, snapshot.Daily[1].Temp.Min)
	assert.Equal(t, 1.0, snapshot.Daily[1].Temp.Max)
	assert.Equal(t, 600, snapshot.Daily[1].Weather[0].ID)
}

func TestNormalizeStandardFallsBackToCurrentTimezone(t *testing.T) {
	midnight := noon - 12*hour
	src := standardSource([]external.ForecastEntryDTO{
		forecastEntry(midnight+19*hour, 10, 10, 800),
		forecastEntry(midnight+26*hour, 3, 3, 500),
		forecastEntry(midnight+30*hour, 1, 1, 600),
	})
	src.Current.Timezone = -5 * 3600

	snapshot, err := Normalize(src, entity.Metric)

	require.NoError(t, err)
	require.Len(t, snapshot.Daily, 2)
	assert.Equal(t, 3.0, snapshot.Daily[0].Temp.Min)
	assert.Equal(t, 1.0, snapshot.Daily[1].Temp.Max)
}

func TestNormalizeStandardAcceptsEmptyForecastList(t *testing.T) {
	src := standardSource([]external.ForecastEntryDTO{})

	snapshot, err := Normalize(src, entity.Metric)

	require.NoError(t, err)
	assert.Empty(t, snapshot.Hourly)
	assert.Empty(t, snapshot.Daily)
	assertConditionsPresent(t, snapshot)
}

func TestNormalizeStandardFirstConditionWinsForTheDay(t *testing.T) {
	src := standardSource([]external.ForecastEntryDTO{
		forecastEntry(noon, 10, 12, 800),
		forecastEntry(noon+3*hour, 9, 11, 500),
	})

	snapshot, err := Normalize(src, entity.Metric)

	require.NoError(t, err)
	require.Len(t, snapshot.Daily, 1)
	assert.Equal(t, 800, snapshot.Daily[0].Weather[0].ID)
	assert.Equal(t, 9.0, snapshot.Daily[0].Temp.Min)
	assert.Equal(t, 12.0, snapshot.Daily[0].Temp.Max)
}

func TestNormalizeStandardDerivedFields(t *testing.T) {
	src := standardSource([]external.ForecastEntryDTO{
		forecastEntry(noon, 6, 14, 801),
	})
	src.Forecast.List[0].Pop = ptr(0.35)
	src.Current.Timezone = -10800

	snapshot, err := Normalize(src, entity.Metric)

	require.NoError(t, err)
	assert.Equal(t, "UTC-03:00", snapshot.Timezone)
	assert.Equal(t, -10800, snapshot.TimezoneOffset)

	current := snapshot.Current
	assert.Equal(t, current.Temp, current.DewPoint)
	assert.Equal(t, 0.0, current.Uvi)
	assert.Equal(t, DefaultVisibility, current.Visibility)

	day := snapshot.Daily[0]
	assert.Equal(t, entity.DailyTemp{Day: 10, Min: 6, Max: 14, Night: 6, Eve: 14, Morn: 6}, day.Temp)
	assert.Equal(t, entity.DailyFeelsLike{Day: 14, Night: 6, Eve: 14, Morn: 6}, day.FeelsLike)
	assert.Equal(t, current.Sunrise, day.Sunrise)
	assert.Equal(t, current.Sunset, day.Sunset)
	assert.Equal(t, 0.35, day.Pop)
	assert.Zero(t, day.MoonPhase)
	assert.Equal(t, 0.0, snapshot.Hourly[0].Uvi)
}

func TestNormalizeStandardDefaultsMissingPop(t *testing.T) {
	src := standardSource([]external.ForecastEntryDTO{forecastEntry(noon, 6, 14, 801)})

	snapshot, err := Normalize(src, entity.Metric)

	require.NoError(t, err)
	assert.Equal(t, 0.0, snapshot.Hourly[0].Pop)
	assert.Equal(t, 0.0, snapshot.Daily[0].Pop)
}

func TestNormalizeStandardRejectsMissingParts(t *testing.T) {
	_, err := Normalize(StandardSource{Forecast: &external.ForecastResponse{}}, entity.Metric)
	assert.ErrorIs(t, err, failure.ErrMalformedSource)

	src := standardSource(nil)
	_, err = Normalize(src, entity.Metric)
	assert.ErrorIs(t, err, failure.ErrMalformedSource)

	src = standardSource([]external.ForecastEntryDTO{forecastEntry(noon, 1, 2, 800)})
	src.Current.Main = nil
	_, err = Normalize(src, entity.Metric)
	assert.ErrorIs(t, err, failure.ErrMalformedSource)
}

func TestNormalizeStandardEmptyConditionsGetDefault(t *testing.T) {
	entry := forecastEntry(noon, 1, 2, 800)
	entry.Weather = nil
	src := standardSource([]external.ForecastEntryDTO{entry})
	src.Current.Weather = nil

	snapshot, err := Normalize(src, entity.Metric)

	require.NoError(t, err)
	assertConditionsPresent(t, snapshot)
	assert.Equal(t, DefaultCondition, snapshot.Daily[0].Weather[0])
}

func TestNormalizeOpenMeteo(t *testing.T) {
	snapshot, err := Normalize(OpenMeteoSource{Payload: openMeteoPayload()}, entity.Metric)

	require.NoError(t, err)
	assertConditionsPresent(t, snapshot)
	assert.Equal(t, "Europe/Berlin", snapshot.Timezone)
	assert.Equal(t, 3600, snapshot.TimezoneOffset)

	current := snapshot.Current
	assert.Equal(t, 500, current.Weather[0].ID)
	assert.Equal(t, "10d", current.Weather[0].Icon)
	assert.Equal(t, DefaultPressure, current.Pressure)
	assert.Equal(t, DefaultVisibility, current.Visibility)
	assert.Equal(t, 4.5, current.DewPoint)
	assert.Equal(t, noon-5*hour, current.Sunrise)

	require.Len(t, snapshot.Hourly, 2)
	assert.Equal(t, noon, snapshot.Hourly[0].Dt)
	assert.Equal(t, "01d", snapshot.Hourly[0].Weather[0].Icon)
	assert.Equal(t, 0.0, snapshot.Hourly[0].Pop)
	assert.Equal(t, "04n", snapshot.Hourly[1].Weather[0].Icon)
	assert.Equal(t, 0.25, snapshot.Hourly[1].Pop)

	require.Len(t, snapshot.Daily, 2)
	assert.Equal(t, 800, snapshot.Daily[0].Weather[0].ID)
	assert.Equal(t, "Clear", snapshot.Daily[0].Weather[0].Main)
	assert.Equal(t, 0.4, snapshot.Daily[0].Pop)
	assert.Equal(t, 0.0, snapshot.Daily[1].Pop)
	assert.Equal(t, 211, snapshot.Daily[1].Weather[0].ID)
	assert.Equal(t, 4.5, snapshot.Daily[0].Temp.Day)
	assert.Equal(t, snapshot.Daily[0].Temp.Min, snapshot.Daily[0].DewPoint)
}

func TestNormalizeOpenMeteoConvertsFeetVisibility(t *testing.T) {
	payload := openMeteoPayload()
	payload.CurrentUnits = map[string]string{"visibility": "ft"}
	payload.Current.Visibility = ptr(1000.0)

	snapshot, err := Normalize(OpenMeteoSource{Payload: payload}, entity.Imperial)

	require.NoError(t, err)
	assert.InDelta(t, 304.8, snapshot.Current.Visibility, 1e-9)
}

func TestNormalizeOpenMeteoRejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *external.OpenMeteoResponse)
	}{
		{"missing current", func(p *external.OpenMeteoResponse) { p.Current = nil }},
		{"missing hourly", func(p *external.OpenMeteoResponse) { p.Hourly = nil }},
		{"missing daily", func(p *external.OpenMeteoResponse) { p.Daily = nil }},
		{"short hourly series", func(p *external.OpenMeteoResponse) { p.Hourly.Temperature = []*float64{ptr(1.0)} }},
		{"long daily series", func(p *external.OpenMeteoResponse) { p.Daily.WeatherCode = []*int{ptr(0), ptr(1), ptr(2)} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := openMeteoPayload()
			tt.mutate(payload)

			snapshot, err := Normalize(OpenMeteoSource{Payload: payload}, entity.Metric)

			assert.ErrorIs(t, err, failure.ErrMalformedSource)
			assert.Nil(t, snapshot)
		})
	}
}

func TestConditionFromWMO(t *testing.T) {
	tests := []struct {
		code  int
		isDay bool
		want  entity.WeatherCondition
	}{
		{0, true, entity.WeatherCondition{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"}},
		{2, false, entity.WeatherCondition{ID: 802, Main: "Clouds", Description: "partly cloudy", Icon: "03n"}},
		{45, true, entity.WeatherCondition{ID: 741, Main: "Fog", Description: "fog", Icon: "50d"}},
		{57, true, entity.WeatherCondition{ID: 301, Main: "Drizzle", Description: "dense freezing drizzle", Icon: "09d"}},
		{67, false, entity.WeatherCondition{ID: 511, Main: "Rain", Description: "heavy freezing rain", Icon: "13n"}},
		{77, true, entity.WeatherCondition{ID: 600, Main: "Snow", Description: "snow grains", Icon: "13d"}},
		{82, true, entity.WeatherCondition{ID: 522, Main: "Rain", Description: "violent rain showers", Icon: "09d"}},
		{99, false, entity.WeatherCondition{ID: 202, Main: "Thunderstorm", Description: "thunderstorm with heavy hail", Icon: "11n"}},
		{999, true, entity.WeatherCondition{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"}},
		{-1, false, entity.WeatherCondition{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01n"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ConditionFromWMO(tt.code, tt.isDay), "code %d", tt.code)
	}
}

func TestUTCOffsetName(t *testing.T) {
	assert.Equal(t, "UTC", utcOffsetName(0))
	assert.Equal(t, "UTC+05:30", utcOffsetName(19800))
	assert.Equal(t, "UTC-03:00", utcOffsetName(-10800))
}
