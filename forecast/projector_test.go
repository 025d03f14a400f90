package forecast

import (
	"testing"
	"time"

	"backhouse/models"
)

var (
	monday     = time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)  // a Monday
	nextMonday = time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC) // the Monday after
)

func burgerRecipe() models.Recipe {
	return models.Recipe{ID: "burger", Name: "Burger", Category: "Mains", MenuPrice: 12.5, IsActive: true}
}

// One historical Monday sale of 10 burgers, one-day horizon on the next
// Monday, no impacts: prediction matches the historical average and
// confidence is 50 + 1*5.
func TestProjectSingleMondayHistory(t *testing.T) {
	orders := []models.Order{
		orderOn(monday, models.OrderItem{RecipeID: strPtr("burger"), DishName: "Burger", Quantity: 10}),
	}
	patterns := AggregatePatterns(orders)
	cal := BuildImpactCalendar(nil, nil)

	dishes := ProjectDemand([]models.Recipe{burgerRecipe()}, patterns, cal, nextMonday, 1, DefaultBaselines)
	if len(dishes) != 1 {
		t.Fatalf("expected 1 dish forecast, got %d", len(dishes))
	}
	if dishes[0].PredictedQuantity != 10 {
		t.Fatalf("expected predicted quantity 10, got %d", dishes[0].PredictedQuantity)
	}
	if dishes[0].ConfidenceScore != 55 {
		t.Fatalf("expected confidence 55, got %d", dishes[0].ConfidenceScore)
	}
	if dishes[0].EventImpactPct != nil || dishes[0].WeatherImpactPct != nil {
		t.Fatalf("expected no impact percentages surfaced")
	}
}

// Same as above, plus a +20%% event on the forecast date: 10 * 1.20 = 12.
func TestProjectEventImpact(t *testing.T) {
	orders := []models.Order{
		orderOn(monday, models.OrderItem{RecipeID: strPtr("burger"), DishName: "Burger", Quantity: 10}),
	}
	patterns := AggregatePatterns(orders)
	cal := BuildImpactCalendar([]models.ForecastEvent{
		{EventDate: nextMonday, Name: "Football final", Category: "special", ImpactPercent: 20},
	}, nil)

	dishes := ProjectDemand([]models.Recipe{burgerRecipe()}, patterns, cal, nextMonday, 1, DefaultBaselines)
	if len(dishes) != 1 {
		t.Fatalf("expected 1 dish forecast, got %d", len(dishes))
	}
	if dishes[0].PredictedQuantity != 12 {
		t.Fatalf("expected predicted quantity 12, got %d", dishes[0].PredictedQuantity)
	}
	if dishes[0].EventImpactPct == nil || *dishes[0].EventImpactPct != 20 {
		t.Fatalf("expected surfaced event impact of 20, got %v", dishes[0].EventImpactPct)
	}
}

// A dish with no history falls back to its category default with low
// confidence rather than being omitted.
func TestProjectColdStartDefaults(t *testing.T) {
	cal := BuildImpactCalendar(nil, nil)
	recipes := []models.Recipe{
		{ID: "steak", Name: "Steak", Category: "Mains", IsActive: true},
		{ID: "bruschetta", Name: "Bruschetta", Category: "Appetizers", IsActive: true},
		{ID: "tiramisu", Name: "Tiramisu", Category: "Desserts", IsActive: true},
	}

	dishes := ProjectDemand(recipes, nil, cal, nextMonday, 1, DefaultBaselines)
	if len(dishes) != 3 {
		t.Fatalf("expected 3 forecasts, got %d", len(dishes))
	}

	byID := make(map[string]models.DishForecast)
	for _, d := range dishes {
		byID[d.RecipeID] = d
	}
	if byID["steak"].PredictedQuantity != 8 {
		t.Fatalf("expected Mains default 8, got %d", byID["steak"].PredictedQuantity)
	}
	if byID["bruschetta"].PredictedQuantity != 6 {
		t.Fatalf("expected Appetizers default 6, got %d", byID["bruschetta"].PredictedQuantity)
	}
	if byID["tiramisu"].PredictedQuantity != 4 {
		t.Fatalf("expected fallback default 4, got %d", byID["tiramisu"].PredictedQuantity)
	}
	for _, d := range dishes {
		if d.ConfidenceScore != 40 {
			t.Fatalf("expected cold-start confidence 40 for %s, got %d", d.DishName, d.ConfidenceScore)
		}
	}
}

// A combined impact below -100%% clamps the day to zero; if the whole horizon
// rounds to zero, the dish disappears from the output.
func TestProjectNegativeImpactClampsToZero(t *testing.T) {
	orders := []models.Order{
		orderOn(monday, models.OrderItem{RecipeID: strPtr("burger"), DishName: "Burger", Quantity: 10}),
	}
	patterns := AggregatePatterns(orders)
	cal := BuildImpactCalendar(
		[]models.ForecastEvent{{EventDate: nextMonday, Category: "custom", ImpactPercent: -100}},
		[]models.WeatherDay{{Date: nextMonday, Condition: "storm", ImpactPercent: -50}},
	)

	dishes := ProjectDemand([]models.Recipe{burgerRecipe()}, patterns, cal, nextMonday, 1, DefaultBaselines)
	if len(dishes) != 0 {
		t.Fatalf("expected clamped-to-zero dish to be excluded, got %d forecasts", len(dishes))
	}
}

func TestProjectZeroHorizon(t *testing.T) {
	cal := BuildImpactCalendar(nil, nil)
	dishes := ProjectDemand([]models.Recipe{burgerRecipe()}, nil, cal, nextMonday, 0, DefaultBaselines)
	if len(dishes) != 0 {
		t.Fatalf("expected empty result for zero horizon, got %d", len(dishes))
	}
}

func TestProjectSkipsInactiveRecipes(t *testing.T) {
	cal := BuildImpactCalendar(nil, nil)
	recipes := []models.Recipe{
		{ID: "retired", Name: "Retired Dish", Category: "Mains", IsActive: false},
	}
	dishes := ProjectDemand(recipes, nil, cal, nextMonday, 3, DefaultBaselines)
	if len(dishes) != 0 {
		t.Fatalf("inactive recipes must not be forecast, got %d", len(dishes))
	}
}

func TestProjectConfidenceCapped(t *testing.T) {
	var orders []models.Order
	// 12 Mondays of history pushes 50 + 12*5 past the cap.
	for i := 0; i < 12; i++ {
		orders = append(orders, orderOn(monday.AddDate(0, 0, -7*i),
			models.OrderItem{RecipeID: strPtr("burger"), Quantity: 10}))
	}
	patterns := AggregatePatterns(orders)
	cal := BuildImpactCalendar(nil, nil)

	dishes := ProjectDemand([]models.Recipe{burgerRecipe()}, patterns, cal, nextMonday, 1, DefaultBaselines)
	if len(dishes) != 1 {
		t.Fatalf("expected 1 forecast, got %d", len(dishes))
	}
	if dishes[0].ConfidenceScore != 95 {
		t.Fatalf("expected confidence capped at 95, got %d", dishes[0].ConfidenceScore)
	}
}

func TestProjectSortedByPredictedQuantity(t *testing.T) {
	cal := BuildImpactCalendar(nil, nil)
	recipes := []models.Recipe{
		{ID: "dessert", Name: "Dessert", Category: "Desserts", IsActive: true},
		{ID: "main", Name: "Main", Category: "Mains", IsActive: true},
		{ID: "app", Name: "App", Category: "Appetizers", IsActive: true},
	}
	dishes := ProjectDemand(recipes, nil, cal, nextMonday, 2, DefaultBaselines)
	for i := 1; i < len(dishes); i++ {
		if dishes[i].PredictedQuantity > dishes[i-1].PredictedQuantity {
			t.Fatalf("output not sorted descending at index %d", i)
		}
	}
}

func TestProjectNeverNegative(t *testing.T) {
	orders := []models.Order{
		orderOn(monday, models.OrderItem{RecipeID: strPtr("burger"), Quantity: 3}),
	}
	patterns := AggregatePatterns(orders)
	cal := BuildImpactCalendar([]models.ForecastEvent{
		{EventDate: nextMonday, ImpactPercent: -500},
		{EventDate: nextMonday.AddDate(0, 0, 1), ImpactPercent: -500},
		{EventDate: nextMonday.AddDate(0, 0, 2), ImpactPercent: 400},
	}, nil)

	dishes := ProjectDemand([]models.Recipe{burgerRecipe()}, patterns, cal, nextMonday, 3, DefaultBaselines)
	for _, d := range dishes {
		if d.PredictedQuantity < 0 {
			t.Fatalf("predicted quantity must never be negative, got %d", d.PredictedQuantity)
		}
	}
}
