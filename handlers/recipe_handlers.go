package handlers

import (
	"context"
	"log"

	"backhouse/database"
	"backhouse/models"
	"backhouse/utils"

	"github.com/gofiber/fiber/v2"
)

// RecipeInput defines the body for creating or updating a recipe.
type RecipeInput struct {
	RestaurantID string                    `json:"restaurantId"`
	Name         string                    `json:"name"`
	Category     string                    `json:"category"`
	MenuPrice    float64                   `json:"menuPrice"`
	YieldAmount  float64                   `json:"yieldAmount"`
	YieldUnit    string                    `json:"yieldUnit"`
	IsActive     *bool                     `json:"isActive,omitempty"`
	Ingredients  []models.RecipeIngredient `json:"ingredients"`
}

// HandleCreateRecipe creates a recipe with its bill of materials.
func HandleCreateRecipe(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var input RecipeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if input.RestaurantID == "" || input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "restaurantId and name are required"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	query := `
		INSERT INTO recipes (restaurant_id, name, category, menu_price, yield_amount, yield_unit, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	var recipe models.Recipe
	recipe.RestaurantID = input.RestaurantID
	recipe.Name = input.Name
	recipe.Category = input.Category
	recipe.MenuPrice = input.MenuPrice
	recipe.YieldAmount = input.YieldAmount
	recipe.YieldUnit = input.YieldUnit
	recipe.IsActive = isActive

	if err := tx.QueryRow(ctx, query, input.RestaurantID, input.Name, input.Category, input.MenuPrice, input.YieldAmount, input.YieldUnit, isActive).Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt); err != nil {
		log.Printf("Error creating recipe: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create recipe"})
	}

	for _, line := range input.Ingredients {
		lineQuery := `
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, unit)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.Exec(ctx, lineQuery, recipe.ID, line.IngredientID, line.Quantity, line.Unit); err != nil {
			log.Printf("Error creating recipe ingredient: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create recipe ingredient"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to commit transaction"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": recipe})
}

// HandleListRecipes lists recipes for a restaurant with their ingredient lines.
func HandleListRecipes(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	restaurantID := c.Query("restaurantId")
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	offset := (page - 1) * pageSize
	activeOnly := c.QueryBool("activeOnly", false)

	query := `
		SELECT id, restaurant_id, name, category, menu_price, yield_amount, yield_unit, is_active, created_at, updated_at
		FROM recipes
		WHERE restaurant_id = $1
	`
	args := []interface{}{restaurantID}
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY name LIMIT $2 OFFSET $3"
	args = append(args, pageSize, offset)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing recipes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve recipes"})
	}
	defer rows.Close()

	recipes := make([]models.Recipe, 0)
	for rows.Next() {
		var r models.Recipe
		if err := rows.Scan(&r.ID, &r.RestaurantID, &r.Name, &r.Category, &r.MenuPrice, &r.YieldAmount, &r.YieldUnit, &r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
			log.Printf("Error scanning recipe: %v", err)
			continue
		}
		r.Ingredients, err = fetchRecipeIngredients(ctx, r.ID)
		if err != nil {
			log.Printf("Error fetching ingredients for recipe %s: %v", r.ID, err)
			r.Ingredients = []models.RecipeIngredient{}
		}
		recipes = append(recipes, r)
	}

	var totalItems int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM recipes WHERE restaurant_id = $1", restaurantID).Scan(&totalItems); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count recipes"})
	}

	response := models.PaginatedRecipesResponse{
		Items:      recipes,
		Pagination: *utils.CreatePagination(totalItems, page, pageSize),
	}
	return c.JSON(fiber.Map{"status": "success", "data": response})
}

// HandleGetRecipeByID retrieves a single recipe with its bill of materials.
func HandleGetRecipeByID(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	recipeID := c.Params("recipeId")

	query := `
		SELECT id, restaurant_id, name, category, menu_price, yield_amount, yield_unit, is_active, created_at, updated_at
		FROM recipes
		WHERE id = $1
	`
	var r models.Recipe
	if err := db.QueryRow(ctx, query, recipeID).Scan(&r.ID, &r.RestaurantID, &r.Name, &r.Category, &r.MenuPrice, &r.YieldAmount, &r.YieldUnit, &r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Recipe not found"})
	}

	var err error
	r.Ingredients, err = fetchRecipeIngredients(ctx, r.ID)
	if err != nil {
		log.Printf("Error fetching recipe ingredients: %v", err)
		r.Ingredients = []models.RecipeIngredient{}
	}

	return c.JSON(fiber.Map{"status": "success", "data": r})
}

// HandleUpdateRecipe replaces a recipe's fields and bill of materials.
func HandleUpdateRecipe(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	recipeID := c.Params("recipeId")

	var input RecipeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	query := `
		UPDATE recipes
		SET name = $1, category = $2, menu_price = $3, yield_amount = $4, yield_unit = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING id, restaurant_id, name, category, menu_price, yield_amount, yield_unit, is_active, created_at, updated_at
	`
	var r models.Recipe
	if err := tx.QueryRow(ctx, query, input.Name, input.Category, input.MenuPrice, input.YieldAmount, input.YieldUnit, isActive, recipeID).Scan(
		&r.ID, &r.RestaurantID, &r.Name, &r.Category, &r.MenuPrice, &r.YieldAmount, &r.YieldUnit, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		log.Printf("Error updating recipe: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Recipe not found"})
	}

	// Replace the bill of materials wholesale.
	if _, err := tx.Exec(ctx, "DELETE FROM recipe_ingredients WHERE recipe_id = $1", recipeID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update recipe ingredients"})
	}
	for _, line := range input.Ingredients {
		if _, err := tx.Exec(ctx,
			"INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, unit) VALUES ($1, $2, $3, $4)",
			recipeID, line.IngredientID, line.Quantity, line.Unit); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update recipe ingredients"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to commit transaction"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": r})
}

// HandleSetRecipeActive toggles whether a recipe participates in menus and
// forecasting.
func HandleSetRecipeActive(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	recipeID := c.Params("recipeId")

	var body struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	tag, err := db.Exec(ctx, "UPDATE recipes SET is_active = $1, updated_at = NOW() WHERE id = $2", body.IsActive, recipeID)
	if err != nil {
		log.Printf("Error setting recipe status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update recipe status"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Recipe not found"})
	}

	return c.JSON(fiber.Map{"status": "success"})
}

// fetchRecipeIngredients loads the bill of materials for a recipe, joined
// with ingredient names for display.
func fetchRecipeIngredients(ctx context.Context, recipeID string) ([]models.RecipeIngredient, error) {
	db := database.GetDB()

	query := `
		SELECT ri.id, ri.recipe_id, ri.ingredient_id, ri.quantity, ri.unit, i.name
		FROM recipe_ingredients ri
		JOIN ingredients i ON ri.ingredient_id = i.id
		WHERE ri.recipe_id = $1
	`
	rows, err := db.Query(ctx, query, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]models.RecipeIngredient, 0)
	for rows.Next() {
		var line models.RecipeIngredient
		if err := rows.Scan(&line.ID, &line.RecipeID, &line.IngredientID, &line.Quantity, &line.Unit, &line.IngredientName); err != nil {
			log.Printf("Error scanning recipe ingredient: %v", err)
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// fetchActiveRecipes loads the active recipes with bills of materials for
// forecasting.
func fetchActiveRecipes(ctx context.Context, restaurantID string) ([]models.Recipe, error) {
	db := database.GetDB()

	query := `
		SELECT id, restaurant_id, name, category, menu_price, yield_amount, yield_unit, is_active
		FROM recipes
		WHERE restaurant_id = $1 AND is_active = true
		ORDER BY name
	`
	rows, err := db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var r models.Recipe
		if err := rows.Scan(&r.ID, &r.RestaurantID, &r.Name, &r.Category, &r.MenuPrice, &r.YieldAmount, &r.YieldUnit, &r.IsActive); err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recipes {
		lines, err := fetchRecipeIngredients(ctx, recipes[i].ID)
		if err != nil {
			return nil, err
		}
		recipes[i].Ingredients = lines
	}
	return recipes, nil
}
