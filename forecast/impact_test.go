package forecast

import (
	"testing"
	"time"

	"backhouse/models"
)

func TestImpactCalendarAdditiveEvents(t *testing.T) {
	date := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	events := []models.ForecastEvent{
		{EventDate: date, Name: "Valentine's Day", Category: "holiday", ImpactPercent: 30},
		{EventDate: date, Name: "Wine promo", Category: "promotion", ImpactPercent: 10},
	}

	cal := BuildImpactCalendar(events, nil)
	if got := cal.EventImpact(date); got != 40 {
		t.Fatalf("expected additive event impact 40, got %v", got)
	}
	if got := cal.Combined(date); got != 40 {
		t.Fatalf("expected combined 40 with no weather, got %v", got)
	}
}

func TestImpactCalendarCombinesWeather(t *testing.T) {
	date := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	events := []models.ForecastEvent{
		{EventDate: date, Category: "reservation", ImpactPercent: 20},
	}
	weather := []models.WeatherDay{
		{Date: date, Condition: "rain", ImpactPercent: -15},
	}

	cal := BuildImpactCalendar(events, weather)
	if got := cal.Combined(date); got != 5 {
		t.Fatalf("expected 20 + (-15) = 5, got %v", got)
	}
	if got := cal.WeatherImpact(date); got != -15 {
		t.Fatalf("expected weather impact -15, got %v", got)
	}
}

func TestImpactCalendarAbsentDatesAreZero(t *testing.T) {
	cal := BuildImpactCalendar(nil, nil)
	someday := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := cal.Combined(someday); got != 0 {
		t.Fatalf("expected zero impact for unknown date, got %v", got)
	}
}

func TestImpactCalendarDuplicateWeatherLastWins(t *testing.T) {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	weather := []models.WeatherDay{
		{Date: date, ImpactPercent: 5},
		{Date: date, ImpactPercent: -10},
	}
	cal := BuildImpactCalendar(nil, weather)
	if got := cal.WeatherImpact(date); got != -10 {
		t.Fatalf("expected last weather entry to win, got %v", got)
	}
}

func TestImpactCalendarHasFlags(t *testing.T) {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	cal := BuildImpactCalendar(nil, nil)
	if cal.HasEventImpact() || cal.HasWeatherImpact() {
		t.Fatalf("empty calendar should report no impact")
	}

	// Zero-impact entries do not count as impact.
	cal = BuildImpactCalendar(
		[]models.ForecastEvent{{EventDate: date, ImpactPercent: 0}},
		[]models.WeatherDay{{Date: date, ImpactPercent: 0}},
	)
	if cal.HasEventImpact() || cal.HasWeatherImpact() {
		t.Fatalf("zero impacts should not set the flags")
	}

	cal = BuildImpactCalendar(
		[]models.ForecastEvent{{EventDate: date, ImpactPercent: 25}},
		[]models.WeatherDay{{Date: date, ImpactPercent: -5}},
	)
	if !cal.HasEventImpact() || !cal.HasWeatherImpact() {
		t.Fatalf("expected both impact flags set")
	}
}
