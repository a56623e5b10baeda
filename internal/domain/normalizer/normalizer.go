package normalizer

import (
	"fmt"
	"sort"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/failure"
	"skynow-api/internal/domain/model/external"
	"skynow-api/pkg/util/numberutils"
)

// Kind identifies the upstream format of a Source.
type Kind string

const (
	KindOneCall   Kind = "onecall"
	KindStandard  Kind = "standard"
	KindOpenMeteo Kind = "openmeteo"
)

// Placeholders used when a source has no value for a field.
const (
	DefaultPressure   = 1013.25 // hPa, standard atmosphere
	DefaultHumidity   = 0.0
	DefaultClouds     = 0.0
	DefaultVisibility = 10000.0 // meters
	DefaultWindSpeed  = 0.0
	DefaultWindDeg    = 0.0
	DefaultUvi        = 0.0
	DefaultPop        = 0.0
)

// DefaultCondition is used for empty condition lists and unknown codes.
var DefaultCondition = entity.WeatherCondition{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"}

// Source is raw provider output. It is implemented only by OneCallSource, StandardSource and OpenMeteoSource.
type Source interface {
	Kind() Kind
	sealed()
}

// OneCallSource is a One Call 3.0 payload, already in the canonical shape.
type OneCallSource struct {
	Payload *external.OneCallResponse
}

// StandardSource pairs a 2.5 current weather payload with the 3-hour forecast for the same place.
type StandardSource struct {
	Current  *external.CurrentWeatherResponse
	Forecast *external.ForecastResponse
}

// OpenMeteoSource is an Open-Meteo forecast payload.
type OpenMeteoSource struct {
	Payload *external.OpenMeteoResponse
}

func (OneCallSource) Kind() Kind   { return KindOneCall }
func (StandardSource) Kind() Kind  { return KindStandard }
func (OpenMeteoSource) Kind() Kind { return KindOpenMeteo }

func (OneCallSource) sealed()   {}
func (StandardSource) sealed()  {}
func (OpenMeteoSource) sealed() {}

// Normalize converts source into a WeatherSnapshot whose numeric fields are in units.
// It fails with failure.ErrMalformedSource when a required series is missing; it never
// returns a partial snapshot. Normalize keeps no state and is safe for concurrent use.
func Normalize(source Source, units entity.UnitSystem) (*entity.WeatherSnapshot, error) {
	var (
		snapshot *entity.WeatherSnapshot
		err      error
	)

	switch src := source.(type) {
	case OneCallSource:
		snapshot, err = normalizeOneCall(src)
	case StandardSource:
		snapshot, err = normalizeStandard(src)
	case OpenMeteoSource:
		snapshot, err = normalizeOpenMeteo(src)
	default:
		return nil, fmt.Errorf("%w: unsupported source %T", failure.ErrMalformedSource, source)
	}
	if err != nil {
		return nil, err
	}

	snapshot.Units = units
	finalize(snapshot)
	return snapshot, nil
}

func malformed(kind Kind, field string) error {
	return fmt.Errorf("%w: %s payload has no %s", failure.ErrMalformedSource, kind, field)
}

// finalize enforces the shape shared by every variant: non-empty conditions, bounded
// percentages and series ordered by time.
func finalize(snapshot *entity.WeatherSnapshot) {
	snapshot.Current.Weather = conditionsOrDefault(snapshot.Current.Weather)
	snapshot.Current.Humidity = percent(snapshot.Current.Humidity)
	snapshot.Current.Clouds = percent(snapshot.Current.Clouds)

	for i := range snapshot.Hourly {
		hour := &snapshot.Hourly[i]
		hour.Weather = conditionsOrDefault(hour.Weather)
		hour.Humidity = percent(hour.Humidity)
		hour.Clouds = percent(hour.Clouds)
		hour.Pop = probability(hour.Pop)
	}
	for i := range snapshot.Daily {
		day := &snapshot.Daily[i]
		day.Weather = conditionsOrDefault(day.Weather)
		day.Humidity = percent(day.Humidity)
		day.Clouds = percent(day.Clouds)
		day.Pop = probability(day.Pop)
	}

	sort.SliceStable(snapshot.Hourly, func(i, j int) bool { return snapshot.Hourly[i].Dt < snapshot.Hourly[j].Dt })
	sort.SliceStable(snapshot.Daily, func(i, j int) bool { return snapshot.Daily[i].Dt < snapshot.Daily[j].Dt })
}

func conditionsOrDefault(conditions []entity.WeatherCondition) []entity.WeatherCondition {
	if len(conditions) == 0 {
		return []entity.WeatherCondition{DefaultCondition}
	}
	return conditions
}

func percent(value float64) float64 {
	return numberutils.Clamp(value, 0, 100)
}

func probability(value float64) float64 {
	return numberutils.Clamp(value, 0, 1)
}

func valueOr(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}
