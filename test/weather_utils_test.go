package main

import (
	"testing"

	"backhouse/utils"
)

func TestWeatherImpact(t *testing.T) {
	cases := []struct {
		condition string
		tempMax   float64
		want      float64
	}{
		{"sunny", 22, 10},
		{"Clear", 22, 10},
		{"cloudy", 18, 0},
		{"rain", 15, -15},
		{"thunderstorm", 20, -30},
		{"snow", -2, -35}, // snow plus freezing high
		{"sunny", 38, 0},  // heat wave offsets sunny
		{"anything", 20, 0},
	}

	for _, c := range cases {
		if got := utils.WeatherImpact(c.condition, c.tempMax); got != c.want {
			t.Fatalf("WeatherImpact(%q, %v) = %v; want %v", c.condition, c.tempMax, got, c.want)
		}
	}
}
