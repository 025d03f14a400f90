package forecast

import (
	"sort"

	"backhouse/models"
)

// Risk levels for ingredient coverage.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

var riskRank = map[string]int{RiskHigh: 0, RiskMedium: 1, RiskLow: 2}

// RiskLevel classifies a coverage percentage. Boundary values land in the
// safer bucket: exactly 50 is medium, exactly 80 is low.
func RiskLevel(coveragePct float64) string {
	switch {
	case coveragePct < 50:
		return RiskHigh
	case coveragePct < 80:
		return RiskMedium
	default:
		return RiskLow
	}
}

// CoveragePct computes stock coverage against needed quantity. Zero demand
// means full coverage by convention, never a division by zero.
func CoveragePct(currentStock, neededQuantity float64) float64 {
	if neededQuantity <= 0 {
		return 100
	}
	return currentStock / neededQuantity * 100
}

// DeriveRequirements expands forecasted dish quantities through each recipe's
// bill of materials into total ingredient quantities needed, and classifies
// each ingredient's supply risk against current stock. Ingredients with no
// contributing forecasted dish are omitted. Output is sorted by risk (high
// first), ties broken by descending needed quantity.
func DeriveRequirements(dishes []models.DishForecast, recipes []models.Recipe, ingredients []models.Ingredient) []models.IngredientRequirement {
	recipeByID := make(map[string]models.Recipe, len(recipes))
	for _, r := range recipes {
		recipeByID[r.ID] = r
	}
	ingredientByID := make(map[string]models.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		ingredientByID[ing.ID] = ing
	}

	reqs := make(map[string]*models.IngredientRequirement)
	var order []string

	for _, dish := range dishes {
		recipe, ok := recipeByID[dish.RecipeID]
		if !ok {
			continue
		}
		for _, line := range recipe.Ingredients {
			needed := line.Quantity * float64(dish.PredictedQuantity)

			req, ok := reqs[line.IngredientID]
			if !ok {
				req = &models.IngredientRequirement{
					IngredientID: line.IngredientID,
					Unit:         line.Unit,
				}
				// Stock is read once from the ingredient record, not
				// re-fetched per recipe.
				if ing, found := ingredientByID[line.IngredientID]; found {
					req.Name = ing.Name
					req.Unit = ing.Unit
					req.CurrentStock = ing.CurrentStock
				} else if line.IngredientName != nil {
					req.Name = *line.IngredientName
				}
				reqs[line.IngredientID] = req
				order = append(order, line.IngredientID)
			}

			req.NeededQuantity += needed
			req.ContributingRecipes = append(req.ContributingRecipes, models.RecipeContribution{
				Name:     dish.DishName,
				Quantity: needed,
			})
		}
	}

	out := make([]models.IngredientRequirement, 0, len(order))
	for _, id := range order {
		req := reqs[id]
		req.CoveragePct = CoveragePct(req.CurrentStock, req.NeededQuantity)
		req.RiskLevel = RiskLevel(req.CoveragePct)
		out = append(out, *req)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if riskRank[out[i].RiskLevel] != riskRank[out[j].RiskLevel] {
			return riskRank[out[i].RiskLevel] < riskRank[out[j].RiskLevel]
		}
		return out[i].NeededQuantity > out[j].NeededQuantity
	})

	return out
}
