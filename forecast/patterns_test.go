package forecast

import (
	"reflect"
	"testing"
	"time"

	"backhouse/models"
)

func strPtr(s string) *string { return &s }

func orderOn(date time.Time, items ...models.OrderItem) models.Order {
	return models.Order{ID: "ord-" + date.Format("20060102"), OrderDate: date, Items: items}
}

func TestAggregatePatternsAverages(t *testing.T) {
	monday := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC) // a Monday
	nextMonday := monday.AddDate(0, 0, 7)

	orders := []models.Order{
		orderOn(monday, models.OrderItem{RecipeID: strPtr("burger"), DishName: "Burger", Quantity: 10}),
		orderOn(nextMonday, models.OrderItem{RecipeID: strPtr("burger"), DishName: "Burger", Quantity: 6}),
	}

	patterns := AggregatePatterns(orders)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(patterns))
	}

	p := patterns[0]
	if p.RecipeID != "burger" || p.DayOfWeek != 1 {
		t.Fatalf("unexpected pattern key: %+v", p)
	}
	if p.SampleSize != 2 {
		t.Fatalf("expected sample size 2, got %d", p.SampleSize)
	}
	if p.TotalQuantity != 16 {
		t.Fatalf("expected total 16, got %v", p.TotalQuantity)
	}
	if p.AvgQuantity != 8 {
		t.Fatalf("expected avg 8 (total/count exactly), got %v", p.AvgQuantity)
	}
}

func TestAggregatePatternsSeparatesWeekdays(t *testing.T) {
	monday := time.Date(2025, 1, 6, 18, 30, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	orders := []models.Order{
		orderOn(monday, models.OrderItem{RecipeID: strPtr("soup"), Quantity: 4}),
		orderOn(tuesday, models.OrderItem{RecipeID: strPtr("soup"), Quantity: 2}),
	}

	patterns := AggregatePatterns(orders)
	if len(patterns) != 2 {
		t.Fatalf("expected one pattern per weekday, got %d", len(patterns))
	}
	for _, p := range patterns {
		if p.SampleSize != 1 {
			t.Fatalf("expected sample size 1 for %+v", p)
		}
	}
}

func TestAggregatePatternsSkipsUnresolvableDishes(t *testing.T) {
	monday := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		orderOn(monday,
			models.OrderItem{RecipeID: nil, DishName: "Off-menu special", Quantity: 3},
			models.OrderItem{RecipeID: strPtr(""), DishName: "Unknown", Quantity: 2},
			models.OrderItem{RecipeID: strPtr("burger"), DishName: "Burger", Quantity: 5},
		),
	}

	patterns := AggregatePatterns(orders)
	if len(patterns) != 1 {
		t.Fatalf("expected only the resolvable line to aggregate, got %d patterns", len(patterns))
	}
	if patterns[0].RecipeID != "burger" {
		t.Fatalf("unexpected recipe: %s", patterns[0].RecipeID)
	}
}

func TestAggregatePatternsEmptyHistory(t *testing.T) {
	if patterns := AggregatePatterns(nil); len(patterns) != 0 {
		t.Fatalf("expected empty result for empty history, got %d entries", len(patterns))
	}
}

func TestAggregatePatternsDeterministic(t *testing.T) {
	base := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)
	var orders []models.Order
	for i := 0; i < 14; i++ {
		orders = append(orders,
			orderOn(base.AddDate(0, 0, i),
				models.OrderItem{RecipeID: strPtr("burger"), Quantity: i + 1},
				models.OrderItem{RecipeID: strPtr("soup"), Quantity: 2},
			),
		)
	}

	first := AggregatePatterns(orders)
	for i := 0; i < 5; i++ {
		if got := AggregatePatterns(orders); !reflect.DeepEqual(first, got) {
			t.Fatalf("aggregation not deterministic on run %d", i)
		}
	}
}
