package entity

type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CurrentWeather struct {
	Dt         int64              `json:"dt"`
	Sunrise    int64              `json:"sunrise"`
	Sunset     int64              `json:"sunset"`
	Temp       float64            `json:"temp"`
	FeelsLike  float64            `json:"feels_like"`
	Pressure   float64            `json:"pressure"`
	Humidity   float64            `json:"humidity"`
	DewPoint   float64            `json:"dew_point"`
	Uvi        float64            `json:"uvi"`
	Clouds     float64            `json:"clouds"`
	Visibility float64            `json:"visibility"`
	WindSpeed  float64            `json:"wind_speed"`
	WindDeg    float64            `json:"wind_deg"`
	Weather    []WeatherCondition `json:"weather"`
}

type HourlyWeather struct {
	Dt         int64              `json:"dt"`
	Sunrise    int64              `json:"sunrise,omitempty"`
	Sunset     int64              `json:"sunset,omitempty"`
	Temp       float64            `json:"temp"`
	FeelsLike  float64            `json:"feels_like"`
	Pressure   float64            `json:"pressure"`
	Humidity   float64            `json:"humidity"`
	DewPoint   float64            `json:"dew_point"`
	Uvi        float64            `json:"uvi"`
	Clouds     float64            `json:"clouds"`
	Visibility float64            `json:"visibility"`
	WindSpeed  float64            `json:"wind_speed"`
	WindDeg    float64            `json:"wind_deg"`
	Weather    []WeatherCondition `json:"weather"`
	Pop        float64            `json:"pop"`
}

type DailyTemp struct {
	Day   float64 `json:"day"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

type DailyFeelsLike struct {
	Day   float64 `json:"day"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

type DailyWeather struct {
	Dt        int64              `json:"dt"`
	Sunrise   int64              `json:"sunrise"`
	Sunset    int64              `json:"sunset"`
	Moonrise  int64              `json:"moonrise"`
	Moonset   int64              `json:"moonset"`
	MoonPhase float64            `json:"moon_phase"`
	Temp      DailyTemp          `json:"temp"`
	FeelsLike DailyFeelsLike     `json:"feels_like"`
	Pressure  float64            `json:"pressure"`
	Humidity  float64            `json:"humidity"`
	DewPoint  float64            `json:"dew_point"`
	WindSpeed float64            `json:"wind_speed"`
	WindDeg   float64            `json:"wind_deg"`
	Weather   []WeatherCondition `json:"weather"`
	Clouds    float64            `json:"clouds"`
	Pop       float64            `json:"pop"`
	Uvi       float64            `json:"uvi"`
}

// WeatherSnapshot is the provider independent weather model. Every numeric field honours Units.
type WeatherSnapshot struct {
	Lat            float64         `json:"lat"`
	Lon            float64         `json:"lon"`
	Timezone       string          `json:"timezone"`
	TimezoneOffset int             `json:"timezone_offset"`
	Units          UnitSystem      `json:"units,omitempty"`
	Current        CurrentWeather  `json:"current"`
	Hourly         []HourlyWeather `json:"hourly"`
	Daily          []DailyWeather  `json:"daily"`
}
