package utils

import "strings"

// WeatherImpact derives a signed demand impact percentage from a daily
// weather condition and high temperature. Used as a fallback when the sync
// job does not supply its own impact figure.
func WeatherImpact(condition string, tempMax float64) float64 {
	var impact float64

	switch strings.ToLower(condition) {
	case "sunny", "clear":
		impact = 10
	case "cloudy", "overcast":
		impact = 0
	case "rain", "drizzle", "showers":
		impact = -15
	case "storm", "thunderstorm":
		impact = -30
	case "snow":
		impact = -25
	default:
		impact = 0
	}

	// Extreme temperatures keep people home regardless of condition.
	if tempMax >= 35 {
		impact -= 10
	} else if tempMax <= 0 {
		impact -= 10
	}

	return impact
}
