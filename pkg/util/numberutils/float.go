package numberutils

import (
	"math"
	"strconv"
	"strings"
)

// IsFloat checks if the given string can be converted to a finite float64.
func IsFloat(str string) bool {
	_, err := ToFloatWithError(str)
	return err == nil
}

// ToFloatWithError converts the given string to a finite float64.
// NaN and infinities are rejected with strconv.ErrRange.
func ToFloatWithError(str string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: str, Err: strconv.ErrRange}
	}
	return value, nil
}

// ToFloatWithDefault converts the given string to a float64.
// If the string cannot be converted, it returns the provided default value.
func ToFloatWithDefault(str string, defaultVal float64) float64 {
	if value, err := ToFloatWithError(str); err == nil {
		return value
	}
	return defaultVal
}

// Round rounds value half away from zero to the given number of decimal places.
func Round(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// Clamp limits value to the closed interval [lower, upper].
func Clamp(value, lower, upper float64) float64 {
	return math.Max(lower, math.Min(upper, value))
}

// InRange reports whether value lies in the closed interval [lower, upper].
func InRange(value, lower, upper float64) bool {
	return value >= lower && value <= upper
}
