// Package forecast implements the demand forecasting and ingredient
// requirement engine: it aggregates historical sales into day-of-week
// patterns, projects near-term dish demand from those patterns blended with
// calendar event and weather impacts, and expands the projection through
// recipe bills of materials into ingredient needs and supply risk.
//
// The engine is a pure function pipeline over already-materialized inputs.
// It performs no I/O, holds no state between calls, and is safe to invoke
// concurrently with different inputs. Callers are responsible for fetching
// fresh input collections and must not invoke it with partially loaded data.
package forecast

import (
	"time"

	"backhouse/models"
)

// DefaultHorizonDays is the horizon used when a caller does not specify one.
const DefaultHorizonDays = 3

// Inputs is the snapshot of externally owned collections a forecast is
// computed from.
type Inputs struct {
	Orders      []models.Order
	Recipes     []models.Recipe
	Ingredients []models.Ingredient
	Events      []models.ForecastEvent
	Weather     []models.WeatherDay
}

// Result is the forecast bundle returned to UI/API callers.
type Result struct {
	Dishes           []models.DishForecast          `json:"dishes"`
	Ingredients      []models.IngredientRequirement `json:"ingredients"`
	HasEventImpact   bool                           `json:"has_event_impact"`
	HasWeatherImpact bool                           `json:"has_weather_impact"`
}

// DayForecast buckets forecast output for a single calendar day, for
// calendar-style views.
type DayForecast struct {
	Date                string                         `json:"date"`
	Dishes              []models.DishForecast          `json:"dishes"`
	Ingredients         []models.IngredientRequirement `json:"ingredients"`
	HighRiskIngredients int                            `json:"high_risk_ingredients"`
}

// Run computes the full forecast over [start, start+horizonDays). It is the
// only entry point external code should call for aggregate results.
func Run(in Inputs, start time.Time, horizonDays int) Result {
	patterns := AggregatePatterns(in.Orders)
	cal := BuildImpactCalendar(in.Events, in.Weather)
	dishes := ProjectDemand(in.Recipes, patterns, cal, start, horizonDays, DefaultBaselines)

	return Result{
		Dishes:           dishes,
		Ingredients:      DeriveRequirements(dishes, in.Recipes, in.Ingredients),
		HasEventImpact:   cal.HasEventImpact(),
		HasWeatherImpact: cal.HasWeatherImpact(),
	}
}

// RunByDay computes an independent one-day forecast for each day in the
// horizon, additionally counting high-risk ingredients per day.
func RunByDay(in Inputs, start time.Time, horizonDays int) []DayForecast {
	patterns := AggregatePatterns(in.Orders)
	cal := BuildImpactCalendar(in.Events, in.Weather)

	days := make([]DayForecast, 0, horizonDays)
	for d := 0; d < horizonDays; d++ {
		day := start.AddDate(0, 0, d)
		dishes := ProjectDemand(in.Recipes, patterns, cal, day, 1, DefaultBaselines)
		ingredients := DeriveRequirements(dishes, in.Recipes, in.Ingredients)

		highRisk := 0
		for _, req := range ingredients {
			if req.RiskLevel == RiskHigh {
				highRisk++
			}
		}

		days = append(days, DayForecast{
			Date:                day.Format(dateLayout),
			Dishes:              dishes,
			Ingredients:         ingredients,
			HighRiskIngredients: highRisk,
		})
	}

	return days
}
