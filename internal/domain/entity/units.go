package entity

import (
	"fmt"
	"strings"
)

// UnitSystem selects the units of every numeric field in a snapshot.
// Metric: Celsius, m/s, hPa, meters. Imperial: Fahrenheit, mph, hPa, meters.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// ParseUnitSystem accepts metric or imperial in any case; an empty token means metric.
func ParseUnitSystem(token string) (UnitSystem, error) {
	switch UnitSystem(strings.ToLower(strings.TrimSpace(token))) {
	case "", Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	default:
		return "", fmt.Errorf("unknown unit system %q", token)
	}
}

func (u UnitSystem) String() string {
	return string(u)
}
