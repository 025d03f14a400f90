package forecast

import (
	"time"

	"backhouse/models"
)

const dateLayout = "2006-01-02"

// ImpactCalendar merges user-declared forecast events and external weather
// data into per-date signed impact percentages. Multiple events on one date
// are additive; at most one weather entry per date (last write wins).
// Dates outside the supplied data always resolve to zero.
type ImpactCalendar struct {
	eventImpact   map[string]float64
	weatherImpact map[string]float64
}

// BuildImpactCalendar indexes the supplied events and weather days by ISO date.
func BuildImpactCalendar(events []models.ForecastEvent, weather []models.WeatherDay) *ImpactCalendar {
	cal := &ImpactCalendar{
		eventImpact:   make(map[string]float64),
		weatherImpact: make(map[string]float64),
	}
	for _, ev := range events {
		cal.eventImpact[ev.EventDate.Format(dateLayout)] += ev.ImpactPercent
	}
	for _, w := range weather {
		cal.weatherImpact[w.Date.Format(dateLayout)] = w.ImpactPercent
	}
	return cal
}

// EventImpact returns the summed event impact percentage for a date.
func (cal *ImpactCalendar) EventImpact(date time.Time) float64 {
	return cal.eventImpact[date.Format(dateLayout)]
}

// WeatherImpact returns the weather impact percentage for a date.
func (cal *ImpactCalendar) WeatherImpact(date time.Time) float64 {
	return cal.weatherImpact[date.Format(dateLayout)]
}

// Combined returns the additive event + weather impact for a date.
func (cal *ImpactCalendar) Combined(date time.Time) float64 {
	return cal.EventImpact(date) + cal.WeatherImpact(date)
}

// HasEventImpact reports whether any calendar event carries a non-zero impact.
func (cal *ImpactCalendar) HasEventImpact() bool {
	for _, v := range cal.eventImpact {
		if v != 0 {
			return true
		}
	}
	return false
}

// HasWeatherImpact reports whether any weather day carries a non-zero impact.
func (cal *ImpactCalendar) HasWeatherImpact() bool {
	for _, v := range cal.weatherImpact {
		if v != 0 {
			return true
		}
	}
	return false
}
