package normalizer

import (
	"skynow-api/internal/domain/entity"
)

// normalizeOneCall validates the canonical payload and copies it.
func normalizeOneCall(src OneCallSource) (*entity.WeatherSnapshot, error) {
	payload := src.Payload
	switch {
	case payload == nil:
		return nil, malformed(KindOneCall, "body")
	case payload.Current == nil:
		return nil, malformed(KindOneCall, "current")
	case payload.Hourly == nil:
		return nil, malformed(KindOneCall, "hourly")
	case payload.Daily == nil:
		return nil, malformed(KindOneCall, "daily")
	}

	return &entity.WeatherSnapshot{
		Lat:            payload.Lat,
		Lon:            payload.Lon,
		Timezone:       payload.Timezone,
		TimezoneOffset: payload.TimezoneOffset,
		Current:        *payload.Current,
		Hourly:         append([]entity.HourlyWeather{}, payload.Hourly...),
		Daily:          append([]entity.DailyWeather{}, payload.Daily...),
	}, nil
}
