package handlers

import (
	"context"
	"log"

	"backhouse/database"
	"backhouse/models"
	"backhouse/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateOrderInput defines the expected input for recording a completed order.
type CreateOrderInput struct {
	RestaurantID string             `json:"restaurantId"`
	Items        []models.OrderItem `json:"items"`
	Notes        *string            `json:"notes,omitempty"`
}

// HandleCreateOrder records a completed sale with its dish line items.
// Orders are append-only; there is no update or delete surface.
func HandleCreateOrder(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var input CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	if input.RestaurantID == "" || len(input.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "restaurantId and at least one item are required"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	// Calculate total amount
	var totalAmount float64
	for _, item := range input.Items {
		totalAmount += item.Subtotal
	}

	orderQuery := `
		INSERT INTO orders (restaurant_id, total_amount, notes)
		VALUES ($1, $2, $3)
		RETURNING id, order_date, created_at, updated_at
	`
	var order models.Order
	order.RestaurantID = input.RestaurantID
	order.TotalAmount = totalAmount
	order.Notes = input.Notes

	if err := tx.QueryRow(ctx, orderQuery, input.RestaurantID, totalAmount, input.Notes).Scan(&order.ID, &order.OrderDate, &order.CreatedAt, &order.UpdatedAt); err != nil {
		log.Printf("Error creating order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create order"})
	}

	for _, item := range input.Items {
		itemQuery := `
			INSERT INTO order_items (order_id, recipe_id, dish_name, quantity, price_at_sale, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.Exec(ctx, itemQuery, order.ID, item.RecipeID, item.DishName, item.Quantity, item.PriceAtSale, item.Subtotal); err != nil {
			log.Printf("Error creating order item: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create order item"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to commit transaction"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": order})
}

// HandleListOrders lists the order history for a restaurant, newest first.
func HandleListOrders(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	restaurantID := c.Query("restaurantId")
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	offset := (page - 1) * pageSize

	query := `
		SELECT id, restaurant_id, order_date, total_amount, notes, created_at, updated_at
		FROM orders
		WHERE restaurant_id = $1
		ORDER BY order_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := db.Query(ctx, query, restaurantID, pageSize, offset)
	if err != nil {
		log.Printf("❌ [ORDERS] Error listing orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve orders"})
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(&order.ID, &order.RestaurantID, &order.OrderDate, &order.TotalAmount, &order.Notes, &order.CreatedAt, &order.UpdatedAt); err != nil {
			log.Printf("❌ [ORDERS] Error scanning order: %v", err)
			continue
		}
		order.Items, err = fetchOrderItems(ctx, order.ID)
		if err != nil {
			log.Printf("⚠️ [ORDERS] Error fetching items for order %s: %v", order.ID, err)
			order.Items = []models.OrderItem{}
		}
		orders = append(orders, order)
	}

	var totalItems int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE restaurant_id = $1", restaurantID).Scan(&totalItems); err != nil {
		log.Printf("❌ [ORDERS] Error counting orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count orders"})
	}

	response := models.PaginatedOrdersResponse{
		Items:      orders,
		Pagination: *utils.CreatePagination(totalItems, page, pageSize),
	}

	return c.JSON(fiber.Map{"status": "success", "data": response})
}

// fetchOrderItems loads the dish lines for a single order.
func fetchOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	db := database.GetDB()

	query := `
		SELECT id, order_id, recipe_id, dish_name, quantity, price_at_sale, subtotal
		FROM order_items
		WHERE order_id = $1
	`
	rows, err := db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.OrderItem, 0)
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.RecipeID, &item.DishName, &item.Quantity, &item.PriceAtSale, &item.Subtotal); err != nil {
			log.Printf("⚠️ [ORDERS] Error scanning order item: %v", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// fetchOrderHistory loads the complete order history (all dates) for
// forecasting. No date filter: every historical order contributes to the
// day-of-week patterns.
func fetchOrderHistory(ctx context.Context, restaurantID string) ([]models.Order, error) {
	db := database.GetDB()

	query := `
		SELECT o.id, o.restaurant_id, o.order_date,
		       i.id, i.recipe_id, i.dish_name, i.quantity
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.restaurant_id = $1
		ORDER BY o.order_date
	`
	rows, err := db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	var current *models.Order
	for rows.Next() {
		var order models.Order
		var item models.OrderItem
		if err := rows.Scan(&order.ID, &order.RestaurantID, &order.OrderDate,
			&item.ID, &item.RecipeID, &item.DishName, &item.Quantity); err != nil {
			return nil, err
		}
		item.OrderID = order.ID

		if current == nil || current.ID != order.ID {
			orders = append(orders, order)
			current = &orders[len(orders)-1]
		}
		current.Items = append(current.Items, item)
	}
	return orders, rows.Err()
}
