package forecast

import (
	"sort"

	"backhouse/models"
)

// AggregatePatterns turns the full order history into per-dish, per-weekday
// sales patterns. Every line item of every order contributes; line items
// without a resolvable recipe ID are skipped. A dish/weekday combination with
// no recorded sales has no entry.
func AggregatePatterns(orders []models.Order) []models.SalesPattern {
	type key struct {
		recipeID  string
		dayOfWeek int
	}

	totals := make(map[key]*models.SalesPattern)
	for _, order := range orders {
		dayOfWeek := int(order.OrderDate.Weekday())
		for _, item := range order.Items {
			if item.RecipeID == nil || *item.RecipeID == "" {
				continue
			}
			k := key{recipeID: *item.RecipeID, dayOfWeek: dayOfWeek}
			p, ok := totals[k]
			if !ok {
				p = &models.SalesPattern{RecipeID: k.recipeID, DayOfWeek: k.dayOfWeek}
				totals[k] = p
			}
			p.TotalQuantity += float64(item.Quantity)
			p.SampleSize++
		}
	}

	patterns := make([]models.SalesPattern, 0, len(totals))
	for _, p := range totals {
		p.AvgQuantity = p.TotalQuantity / float64(p.SampleSize)
		patterns = append(patterns, *p)
	}

	// Map iteration order is random; keep the output deterministic.
	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].RecipeID != patterns[j].RecipeID {
			return patterns[i].RecipeID < patterns[j].RecipeID
		}
		return patterns[i].DayOfWeek < patterns[j].DayOfWeek
	})

	return patterns
}

// patternIndex builds a lookup from (recipeID, weekday) to its pattern.
func patternIndex(patterns []models.SalesPattern) map[string]map[int]models.SalesPattern {
	idx := make(map[string]map[int]models.SalesPattern)
	for _, p := range patterns {
		byDay, ok := idx[p.RecipeID]
		if !ok {
			byDay = make(map[int]models.SalesPattern)
			idx[p.RecipeID] = byDay
		}
		byDay[p.DayOfWeek] = p
	}
	return idx
}
