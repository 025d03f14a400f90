package handlers

import (
	"context"
	"log"

	"backhouse/database"
	"backhouse/models"
	"backhouse/utils"

	"github.com/gofiber/fiber/v2"
)

// IngredientInput defines the body for creating or updating an ingredient.
type IngredientInput struct {
	RestaurantID      string   `json:"restaurantId"`
	Name              string   `json:"name"`
	Unit              string   `json:"unit"`
	CurrentStock      float64  `json:"currentStock"`
	UnitCost          float64  `json:"unitCost"`
	LowStockThreshold *float64 `json:"lowStockThreshold,omitempty"`
	VendorID          *string  `json:"vendorId,omitempty"`
}

// HandleCreateIngredient adds an ingredient to the master inventory.
func HandleCreateIngredient(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var input IngredientInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if input.RestaurantID == "" || input.Name == "" || input.Unit == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "restaurantId, name and unit are required"})
	}

	query := `
		INSERT INTO ingredients (restaurant_id, name, unit, current_stock, unit_cost, low_stock_threshold, vendor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, restaurant_id, name, unit, current_stock, unit_cost, low_stock_threshold, vendor_id, is_archived, created_at, updated_at
	`
	var ing models.Ingredient
	err := db.QueryRow(ctx, query, input.RestaurantID, input.Name, input.Unit, input.CurrentStock, input.UnitCost, input.LowStockThreshold, input.VendorID).Scan(
		&ing.ID, &ing.RestaurantID, &ing.Name, &ing.Unit, &ing.CurrentStock, &ing.UnitCost,
		&ing.LowStockThreshold, &ing.VendorID, &ing.IsArchived, &ing.CreatedAt, &ing.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating ingredient: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create ingredient"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": ing})
}

// HandleListIngredients lists the inventory for a restaurant.
func HandleListIngredients(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	restaurantID := c.Query("restaurantId")
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 50)
	offset := (page - 1) * pageSize
	lowStockOnly := c.QueryBool("lowStock", false)

	query := `
		SELECT id, restaurant_id, name, unit, current_stock, unit_cost, low_stock_threshold, vendor_id, is_archived, created_at, updated_at
		FROM ingredients
		WHERE restaurant_id = $1 AND is_archived = false
	`
	if lowStockOnly {
		query += " AND low_stock_threshold IS NOT NULL AND current_stock < low_stock_threshold"
	}
	query += " ORDER BY name LIMIT $2 OFFSET $3"

	rows, err := db.Query(ctx, query, restaurantID, pageSize, offset)
	if err != nil {
		log.Printf("Error listing ingredients: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve ingredients"})
	}
	defer rows.Close()

	ingredients := make([]models.Ingredient, 0)
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.RestaurantID, &ing.Name, &ing.Unit, &ing.CurrentStock, &ing.UnitCost, &ing.LowStockThreshold, &ing.VendorID, &ing.IsArchived, &ing.CreatedAt, &ing.UpdatedAt); err != nil {
			log.Printf("Error scanning ingredient: %v", err)
			continue
		}
		ingredients = append(ingredients, ing)
	}

	var totalItems int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM ingredients WHERE restaurant_id = $1 AND is_archived = false", restaurantID).Scan(&totalItems); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count ingredients"})
	}

	response := models.PaginatedIngredientsResponse{
		Items:      ingredients,
		Pagination: *utils.CreatePagination(totalItems, page, pageSize),
	}
	return c.JSON(fiber.Map{"status": "success", "data": response})
}

// HandleUpdateIngredient updates an ingredient's master fields.
func HandleUpdateIngredient(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	ingredientID := c.Params("ingredientId")

	var input IngredientInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	query := `
		UPDATE ingredients
		SET name = $1, unit = $2, unit_cost = $3, low_stock_threshold = $4, vendor_id = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id, restaurant_id, name, unit, current_stock, unit_cost, low_stock_threshold, vendor_id, is_archived, created_at, updated_at
	`
	var ing models.Ingredient
	err := db.QueryRow(ctx, query, input.Name, input.Unit, input.UnitCost, input.LowStockThreshold, input.VendorID, ingredientID).Scan(
		&ing.ID, &ing.RestaurantID, &ing.Name, &ing.Unit, &ing.CurrentStock, &ing.UnitCost,
		&ing.LowStockThreshold, &ing.VendorID, &ing.IsArchived, &ing.CreatedAt, &ing.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error updating ingredient: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Ingredient not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": ing})
}

// AdjustStockInput defines the body for a manual stock adjustment.
type AdjustStockInput struct {
	QuantityChanged float64 `json:"quantityChanged"`
	MovementType    string  `json:"movementType"` // stock_in, stock_out, waste, correction
	Reason          *string `json:"reason,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// HandleAdjustStock changes an ingredient's stock and logs the movement.
func HandleAdjustStock(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	ingredientID := c.Params("ingredientId")
	userID, _ := c.Locals("userID").(string)

	var input AdjustStockInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	var newQuantity float64
	err = tx.QueryRow(ctx, `
		UPDATE ingredients
		SET current_stock = GREATEST(current_stock + $1, 0), updated_at = NOW()
		WHERE id = $2
		RETURNING current_stock
	`, input.QuantityChanged, ingredientID).Scan(&newQuantity)
	if err != nil {
		log.Printf("Error adjusting stock: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Ingredient not found"})
	}

	movementQuery := `
		INSERT INTO stock_movements (ingredient_id, user_id, movement_type, quantity_changed, new_quantity, reason, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, movement_date
	`
	var movement models.StockMovement
	movement.IngredientID = ingredientID
	movement.UserID = userID
	movement.MovementType = input.MovementType
	movement.QuantityChanged = input.QuantityChanged
	movement.NewQuantity = newQuantity
	movement.Reason = input.Reason
	movement.Notes = input.Notes

	if err := tx.QueryRow(ctx, movementQuery, ingredientID, userID, input.MovementType, input.QuantityChanged, newQuantity, input.Reason, input.Notes).Scan(&movement.ID, &movement.MovementDate); err != nil {
		log.Printf("Error logging stock movement: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to log stock movement"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to commit transaction"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": movement})
}

// HandleArchiveIngredient soft-deletes an ingredient from the inventory.
func HandleArchiveIngredient(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	ingredientID := c.Params("ingredientId")

	tag, err := db.Exec(ctx, "UPDATE ingredients SET is_archived = true, updated_at = NOW() WHERE id = $1", ingredientID)
	if err != nil {
		log.Printf("Error archiving ingredient: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to archive ingredient"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Ingredient not found"})
	}

	return c.JSON(fiber.Map{"status": "success"})
}

// fetchIngredients loads the non-archived inventory for forecasting.
func fetchIngredients(ctx context.Context, restaurantID string) ([]models.Ingredient, error) {
	db := database.GetDB()

	query := `
		SELECT id, restaurant_id, name, unit, current_stock, unit_cost
		FROM ingredients
		WHERE restaurant_id = $1 AND is_archived = false
	`
	rows, err := db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []models.Ingredient
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.RestaurantID, &ing.Name, &ing.Unit, &ing.CurrentStock, &ing.UnitCost); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}
