package forecast

import (
	"math"
	"sort"
	"time"

	"backhouse/models"
)

// Defaults holds the base-demand fallbacks used when a dish has no sales
// history for a weekday. The values are heuristics carried over from the
// original product; tune per deployment rather than editing call sites.
type Defaults struct {
	Mains      float64
	Appetizers float64
	Other      float64
}

// DefaultBaselines are the stock cold-start predictions per category.
var DefaultBaselines = Defaults{Mains: 8, Appetizers: 6, Other: 4}

const (
	coldStartConfidence = 40
	maxConfidence       = 95
)

func (d Defaults) forCategory(category string) float64 {
	switch category {
	case "Mains":
		return d.Mains
	case "Appetizers":
		return d.Appetizers
	default:
		return d.Other
	}
}

// ProjectDemand predicts, for each active recipe, the total quantity expected
// to sell over [start, start+horizonDays). Each day's base prediction comes
// from the dish's weekday sales pattern, falling back to the category default
// when no history exists, and is then adjusted by the date's combined
// event+weather impact. Negative adjusted predictions clamp to zero.
// Dishes whose horizon total rounds to zero are excluded. Output is sorted by
// predicted quantity, highest first.
func ProjectDemand(recipes []models.Recipe, patterns []models.SalesPattern, cal *ImpactCalendar, start time.Time, horizonDays int, defaults Defaults) []models.DishForecast {
	dishes := make([]models.DishForecast, 0, len(recipes))
	if horizonDays <= 0 {
		return dishes
	}

	idx := patternIndex(patterns)

	for _, recipe := range recipes {
		if !recipe.IsActive {
			continue
		}

		var totalAdjusted, totalConfidence, totalEvent, totalWeather float64
		for d := 0; d < horizonDays; d++ {
			day := start.AddDate(0, 0, d)
			dayOfWeek := int(day.Weekday())

			var basePrediction, dayConfidence float64
			if pattern, ok := idx[recipe.ID][dayOfWeek]; ok {
				basePrediction = pattern.AvgQuantity
				dayConfidence = math.Min(maxConfidence, 50+float64(pattern.SampleSize)*5)
			} else {
				basePrediction = defaults.forCategory(recipe.Category)
				dayConfidence = coldStartConfidence
			}

			adjusted := basePrediction * (1 + cal.Combined(day)/100)
			if adjusted < 0 {
				adjusted = 0
			}

			totalAdjusted += adjusted
			totalConfidence += dayConfidence
			totalEvent += cal.EventImpact(day)
			totalWeather += cal.WeatherImpact(day)
		}

		predicted := int(math.Round(totalAdjusted))
		if predicted <= 0 {
			continue
		}

		dish := models.DishForecast{
			RecipeID:          recipe.ID,
			DishName:          recipe.Name,
			Category:          recipe.Category,
			PredictedQuantity: predicted,
			ConfidenceScore:   int(math.Round(totalConfidence / float64(horizonDays))),
			MenuPrice:         recipe.MenuPrice,
		}
		if v := math.Round(totalEvent / float64(horizonDays)); v != 0 {
			dish.EventImpactPct = &v
		}
		if v := math.Round(totalWeather / float64(horizonDays)); v != 0 {
			dish.WeatherImpactPct = &v
		}
		dishes = append(dishes, dish)
	}

	sort.SliceStable(dishes, func(i, j int) bool {
		return dishes[i].PredictedQuantity > dishes[j].PredictedQuantity
	})

	return dishes
}
