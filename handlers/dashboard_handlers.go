package handlers

import (
	"context"
	"log"

	"backhouse/database"
	"backhouse/models"

	"github.com/gofiber/fiber/v2"
)

// HandleGetDashboardSummary fetches summary data for the back-of-house
// dashboard.
func HandleGetDashboardSummary(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	restaurantID := c.Query("restaurantId")
	if restaurantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "restaurantId is required"})
	}

	var summary models.DashboardSummary

	// 1. Total Sales Revenue
	err := db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE restaurant_id = $1
	`, restaurantID).Scan(&summary.TotalSalesRevenue)
	if err != nil {
		log.Printf("Error fetching total sales revenue: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch total sales revenue"})
	}

	// 2. Number of Orders
	err = db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM orders
		WHERE restaurant_id = $1
	`, restaurantID).Scan(&summary.NumberOfOrders)
	if err != nil {
		log.Printf("Error fetching number of orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch number of orders"})
	}

	// 3. Average Order Value
	if summary.NumberOfOrders > 0 {
		summary.AverageOrderValue = summary.TotalSalesRevenue / summary.NumberOfOrders
	} else {
		summary.AverageOrderValue = 0
	}

	// 4. Inventory value and low-stock count
	err = db.QueryRow(ctx, `
		SELECT COALESCE(SUM(current_stock * unit_cost), 0),
		       COUNT(*) FILTER (WHERE low_stock_threshold IS NOT NULL AND current_stock < low_stock_threshold)
		FROM ingredients
		WHERE restaurant_id = $1 AND is_archived = false
	`, restaurantID).Scan(&summary.InventoryValue, &summary.LowStockIngredients)
	if err != nil {
		log.Printf("Error fetching inventory summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch inventory summary"})
	}

	// 5. Top Selling Dishes
	rows, err := db.Query(ctx, `
		SELECT
			COALESCE(i.recipe_id, ''),
			i.dish_name,
			COALESCE(SUM(i.quantity), 0) AS quantity_sold,
			COALESCE(SUM(i.subtotal), 0) AS revenue
		FROM orders o
		JOIN order_items i ON o.id = i.order_id
		WHERE o.restaurant_id = $1
		GROUP BY i.recipe_id, i.dish_name
		ORDER BY revenue DESC
		LIMIT 5
	`, restaurantID)
	if err != nil {
		log.Printf("Error fetching top selling dishes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch top selling dishes"})
	}
	defer rows.Close()

	dishes := []models.DishSummary{}
	for rows.Next() {
		var d models.DishSummary
		if err := rows.Scan(&d.RecipeID, &d.DishName, &d.QuantitySold, &d.Revenue); err != nil {
			log.Printf("Error scanning top dish row: %v", err)
			continue
		}
		dishes = append(dishes, d)
	}
	summary.TopSellingDishes = dishes

	return c.JSON(summary)
}
