package forecast

import (
	"reflect"
	"testing"

	"backhouse/models"

	"github.com/stretchr/testify/assert"
)

func sampleInputs() Inputs {
	return Inputs{
		Orders: []models.Order{
			orderOn(monday, models.OrderItem{RecipeID: strPtr("burger"), DishName: "Burger", Quantity: 10}),
			orderOn(monday.AddDate(0, 0, 1), models.OrderItem{RecipeID: strPtr("burger"), DishName: "Burger", Quantity: 4}),
		},
		Recipes: []models.Recipe{
			{
				ID: "burger", Name: "Burger", Category: "Mains", MenuPrice: 12.5, IsActive: true,
				Ingredients: []models.RecipeIngredient{
					{RecipeID: "burger", IngredientID: "patty", Quantity: 1, Unit: "pcs"},
					{RecipeID: "burger", IngredientID: "bun", Quantity: 1, Unit: "pcs"},
				},
			},
			{
				ID: "salad", Name: "House Salad", Category: "Appetizers", MenuPrice: 7, IsActive: true,
				Ingredients: []models.RecipeIngredient{
					{RecipeID: "salad", IngredientID: "lettuce", Quantity: 0.2, Unit: "kg"},
				},
			},
		},
		Ingredients: []models.Ingredient{
			{ID: "patty", Name: "Beef patty", Unit: "pcs", CurrentStock: 4},
			{ID: "bun", Name: "Bun", Unit: "pcs", CurrentStock: 50},
			{ID: "lettuce", Name: "Lettuce", Unit: "kg", CurrentStock: 3},
		},
		Events: []models.ForecastEvent{
			{EventDate: nextMonday, Name: "Live music", Category: "special", ImpactPercent: 20},
		},
		Weather: []models.WeatherDay{
			{Date: nextMonday.AddDate(0, 0, 1), Condition: "rain", ImpactPercent: -10},
		},
	}
}

func TestRunProducesBundle(t *testing.T) {
	res := Run(sampleInputs(), nextMonday, 3)

	assert.True(t, res.HasEventImpact)
	assert.True(t, res.HasWeatherImpact)
	assert.NotEmpty(t, res.Dishes)
	assert.NotEmpty(t, res.Ingredients)

	for _, d := range res.Dishes {
		if d.PredictedQuantity <= 0 {
			t.Fatalf("dish %s has non-positive prediction %d", d.DishName, d.PredictedQuantity)
		}
	}
	for _, ing := range res.Ingredients {
		if ing.NeededQuantity < 0 {
			t.Fatalf("ingredient %s has negative need", ing.Name)
		}
		assert.Equal(t, RiskLevel(ing.CoveragePct), ing.RiskLevel)
	}
}

// Identical inputs always yield identical output; the pipeline holds no
// hidden state.
func TestRunIdempotent(t *testing.T) {
	in := sampleInputs()
	first := Run(in, nextMonday, 3)
	for i := 0; i < 3; i++ {
		if got := Run(in, nextMonday, 3); !reflect.DeepEqual(first, got) {
			t.Fatalf("run %d differed from first run", i)
		}
	}
}

func TestRunZeroHorizon(t *testing.T) {
	res := Run(sampleInputs(), nextMonday, 0)
	assert.Empty(t, res.Dishes)
	assert.Empty(t, res.Ingredients)
}

func TestRunEmptyInputs(t *testing.T) {
	res := Run(Inputs{}, nextMonday, DefaultHorizonDays)
	assert.Empty(t, res.Dishes)
	assert.Empty(t, res.Ingredients)
	assert.False(t, res.HasEventImpact)
	assert.False(t, res.HasWeatherImpact)
}

func TestRunByDayBucketsPerDate(t *testing.T) {
	days := RunByDay(sampleInputs(), nextMonday, 3)
	if len(days) != 3 {
		t.Fatalf("expected 3 day buckets, got %d", len(days))
	}

	for i, day := range days {
		wantDate := nextMonday.AddDate(0, 0, i).Format("2006-01-02")
		assert.Equal(t, wantDate, day.Date)

		highRisk := 0
		for _, ing := range day.Ingredients {
			if ing.RiskLevel == RiskHigh {
				highRisk++
			}
		}
		assert.Equal(t, highRisk, day.HighRiskIngredients)
	}
}

// The Monday bucket sees the +20% event: 4 patties in stock against a
// predicted 12 burgers is high risk.
func TestRunByDayReflectsImpacts(t *testing.T) {
	days := RunByDay(sampleInputs(), nextMonday, 1)
	if len(days) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(days))
	}

	var burger *models.DishForecast
	for i := range days[0].Dishes {
		if days[0].Dishes[i].RecipeID == "burger" {
			burger = &days[0].Dishes[i]
		}
	}
	if burger == nil {
		t.Fatalf("expected burger forecast in Monday bucket")
	}
	assert.Equal(t, 12, burger.PredictedQuantity)

	var patty *models.IngredientRequirement
	for i := range days[0].Ingredients {
		if days[0].Ingredients[i].IngredientID == "patty" {
			patty = &days[0].Ingredients[i]
		}
	}
	if patty == nil {
		t.Fatalf("expected patty requirement in Monday bucket")
	}
	assert.Equal(t, 12.0, patty.NeededQuantity)
	assert.Equal(t, RiskHigh, patty.RiskLevel)
	assert.True(t, days[0].HighRiskIngredients >= 1)
}
