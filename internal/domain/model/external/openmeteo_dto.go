package external

// OpenMeteoResponse represents the response from the Open-Meteo forecast API requested with
// timeformat=unixtime. Series values are pointers because the provider sends null for gaps.
type OpenMeteoResponse struct {
	Latitude         float64           `json:"latitude"`
	Longitude        float64           `json:"longitude"`
	Timezone         string            `json:"timezone"`
	UtcOffsetSeconds int               `json:"utc_offset_seconds"`
	CurrentUnits     map[string]string `json:"current_units"`
	Current          *OpenMeteoCurrent `json:"current"`
	HourlyUnits      map[string]string `json:"hourly_units"`
	Hourly           *OpenMeteoHourly  `json:"hourly"`
	Daily            *OpenMeteoDaily   `json:"daily"`
}

type OpenMeteoCurrent struct {
	Time                int64    `json:"time"`
	Temperature         *float64 `json:"temperature_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	RelativeHumidity    *float64 `json:"relative_humidity_2m"`
	DewPoint            *float64 `json:"dew_point_2m"`
	IsDay               *int     `json:"is_day"`
	WeatherCode         *int     `json:"weather_code"`
	CloudCover          *float64 `json:"cloud_cover"`
	PressureMsl         *float64 `json:"pressure_msl"`
	Visibility          *float64 `json:"visibility"`
	WindSpeed           *float64 `json:"wind_speed_10m"`
	WindDirection       *float64 `json:"wind_direction_10m"`
	UvIndex             *float64 `json:"uv_index"`
}

type OpenMeteoHourly struct {
	Time                     []int64    `json:"time"`
	Temperature              []*float64 `json:"temperature_2m"`
	ApparentTemperature      []*float64 `json:"apparent_temperature"`
	RelativeHumidity         []*float64 `json:"relative_humidity_2m"`
	DewPoint                 []*float64 `json:"dew_point_2m"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	WeatherCode              []*int     `json:"weather_code"`
	IsDay                    []*int     `json:"is_day"`
	CloudCover               []*float64 `json:"cloud_cover"`
	PressureMsl              []*float64 `json:"pressure_msl"`
	Visibility               []*float64 `json:"visibility"`
	WindSpeed                []*float64 `json:"wind_speed_10m"`
	WindDirection            []*float64 `json:"wind_direction_10m"`
	UvIndex                  []*float64 `json:"uv_index"`
}

type OpenMeteoDaily struct {
	Time                        []int64    `json:"time"`
	WeatherCode                 []*int     `json:"weather_code"`
	TemperatureMax              []*float64 `json:"temperature_2m_max"`
	TemperatureMin              []*float64 `json:"temperature_2m_min"`
	ApparentTemperatureMax      []*float64 `json:"apparent_temperature_max"`
	ApparentTemperatureMin      []*float64 `json:"apparent_temperature_min"`
	Sunrise                     []*int64   `json:"sunrise"`
	Sunset                      []*int64   `json:"sunset"`
	UvIndexMax                  []*float64 `json:"uv_index_max"`
	PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
	WindSpeedMax                []*float64 `json:"wind_speed_10m_max"`
	WindDirectionDominant       []*float64 `json:"wind_direction_10m_dominant"`
}

// OpenMeteoErrorResponse is the body Open-Meteo sends with a 400
type OpenMeteoErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
