package models

// SalesPattern holds the historical average quantity sold for a dish on a
// given weekday (0=Sunday..6=Saturday). Recomputed on demand from the full
// order history; never persisted.
type SalesPattern struct {
	RecipeID      string  `json:"recipe_id"`
	DayOfWeek     int     `json:"day_of_week"`
	AvgQuantity   float64 `json:"avg_quantity"`
	TotalQuantity float64 `json:"total_quantity"`
	SampleSize    int     `json:"sample_size"`
}

// DishForecast is the projected demand for a single dish over the forecast
// horizon. EventImpactPct and WeatherImpactPct are only set when non-zero.
type DishForecast struct {
	RecipeID          string   `json:"recipe_id"`
	DishName          string   `json:"dish_name"`
	Category          string   `json:"category"`
	PredictedQuantity int      `json:"predicted_quantity"`
	ConfidenceScore   int      `json:"confidence_score"`
	MenuPrice         float64  `json:"menu_price"`
	EventImpactPct    *float64 `json:"event_impact_pct,omitempty"`
	WeatherImpactPct  *float64 `json:"weather_impact_pct,omitempty"`
}

// RecipeContribution records how much of an ingredient's needed quantity a
// single forecasted dish accounts for.
type RecipeContribution struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// IngredientRequirement is the total quantity of an ingredient needed to
// cover the forecast, with its supply risk against current stock.
type IngredientRequirement struct {
	IngredientID        string               `json:"ingredient_id"`
	Name                string               `json:"name"`
	Unit                string               `json:"unit"`
	CurrentStock        float64              `json:"current_stock"`
	NeededQuantity      float64              `json:"needed_quantity"`
	CoveragePct         float64              `json:"coverage_pct"`
	RiskLevel           string               `json:"risk_level"`
	ContributingRecipes []RecipeContribution `json:"contributing_recipes"`
}
