package handlers

import (
	"context"
	"log"

	"backhouse/database"
	"backhouse/models"
	"backhouse/utils"

	"github.com/gofiber/fiber/v2"
)

// CreatePurchaseOrderInput defines the body for placing a purchase order.
type CreatePurchaseOrderInput struct {
	RestaurantID string                     `json:"restaurantId"`
	VendorID     string                     `json:"vendorId"`
	Notes        *string                    `json:"notes,omitempty"`
	Items        []models.PurchaseOrderItem `json:"items"`
}

// HandleCreatePurchaseOrder creates a draft purchase order with a generated
// PO-YYYY-NNNN number.
func HandleCreatePurchaseOrder(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var input CreatePurchaseOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if input.RestaurantID == "" || input.VendorID == "" || len(input.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "restaurantId, vendorId and at least one item are required"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	orderNumber, err := utils.GeneratePurchaseOrderNumber(ctx, tx)
	if err != nil {
		log.Printf("Error generating PO number: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate order number"})
	}

	var totalAmount float64
	for i := range input.Items {
		input.Items[i].Subtotal = input.Items[i].Quantity * input.Items[i].UnitCost
		totalAmount += input.Items[i].Subtotal
	}

	query := `
		INSERT INTO purchase_orders (restaurant_id, vendor_id, order_number, status, total_amount, notes)
		VALUES ($1, $2, $3, 'draft', $4, $5)
		RETURNING id, order_date, created_at, updated_at
	`
	var po models.PurchaseOrder
	po.RestaurantID = input.RestaurantID
	po.VendorID = input.VendorID
	po.OrderNumber = orderNumber
	po.Status = "draft"
	po.TotalAmount = totalAmount
	po.Notes = input.Notes

	if err := tx.QueryRow(ctx, query, input.RestaurantID, input.VendorID, orderNumber, totalAmount, input.Notes).Scan(&po.ID, &po.OrderDate, &po.CreatedAt, &po.UpdatedAt); err != nil {
		log.Printf("Error creating purchase order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create purchase order"})
	}

	for _, item := range input.Items {
		itemQuery := `
			INSERT INTO purchase_order_items (purchase_order_id, ingredient_id, quantity, unit, unit_cost, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.Exec(ctx, itemQuery, po.ID, item.IngredientID, item.Quantity, item.Unit, item.UnitCost, item.Subtotal); err != nil {
			log.Printf("Error creating purchase order item: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create purchase order item"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to commit transaction"})
	}

	po.Items = input.Items
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": po})
}

// HandleListPurchaseOrders lists purchase orders, newest first.
func HandleListPurchaseOrders(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	restaurantID := c.Query("restaurantId")
	status := c.Query("status")
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	offset := (page - 1) * pageSize

	query := `
		SELECT po.id, po.restaurant_id, po.vendor_id, po.order_number, po.status, po.total_amount,
		       po.order_date, po.received_at, po.notes, po.created_at, po.updated_at, v.name
		FROM purchase_orders po
		JOIN vendors v ON po.vendor_id = v.id
		WHERE po.restaurant_id = $1
	`
	args := []interface{}{restaurantID}
	if status != "" {
		query += " AND po.status = $2 ORDER BY po.order_date DESC LIMIT $3 OFFSET $4"
		args = append(args, status, pageSize, offset)
	} else {
		query += " ORDER BY po.order_date DESC LIMIT $2 OFFSET $3"
		args = append(args, pageSize, offset)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing purchase orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve purchase orders"})
	}
	defer rows.Close()

	orders := make([]models.PurchaseOrder, 0)
	for rows.Next() {
		var po models.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.RestaurantID, &po.VendorID, &po.OrderNumber, &po.Status, &po.TotalAmount,
			&po.OrderDate, &po.ReceivedAt, &po.Notes, &po.CreatedAt, &po.UpdatedAt, &po.VendorName); err != nil {
			log.Printf("Error scanning purchase order: %v", err)
			continue
		}
		orders = append(orders, po)
	}

	var totalItems int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM purchase_orders WHERE restaurant_id = $1", restaurantID).Scan(&totalItems); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count purchase orders"})
	}

	response := models.PaginatedPurchaseOrdersResponse{
		Items:      orders,
		Pagination: *utils.CreatePagination(totalItems, page, pageSize),
	}
	return c.JSON(fiber.Map{"status": "success", "data": response})
}

// HandleUpdatePurchaseOrderStatus moves a PO through its lifecycle:
// draft, sent, then received or cancelled. Receiving a PO bumps ingredient
// stock by the ordered quantities.
func HandleUpdatePurchaseOrderStatus(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	poID := c.Params("poId")

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	valid := map[string]bool{"draft": true, "sent": true, "received": true, "cancelled": true}
	if !valid[body.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid status"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	var currentStatus string
	if err := tx.QueryRow(ctx, "SELECT status FROM purchase_orders WHERE id = $1", poID).Scan(&currentStatus); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Purchase order not found"})
	}
	if currentStatus == "received" || currentStatus == "cancelled" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Purchase order is already finalized"})
	}

	if body.Status == "received" {
		// Stock in every ordered line.
		rows, err := tx.Query(ctx, "SELECT ingredient_id, quantity FROM purchase_order_items WHERE purchase_order_id = $1", poID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load purchase order items"})
		}
		type line struct {
			ingredientID string
			quantity     float64
		}
		var lines []line
		for rows.Next() {
			var l line
			if err := rows.Scan(&l.ingredientID, &l.quantity); err != nil {
				rows.Close()
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to scan purchase order item"})
			}
			lines = append(lines, l)
		}
		rows.Close()

		for _, l := range lines {
			if _, err := tx.Exec(ctx,
				"UPDATE ingredients SET current_stock = current_stock + $1, updated_at = NOW() WHERE id = $2",
				l.quantity, l.ingredientID); err != nil {
				log.Printf("Error stocking in ingredient %s: %v", l.ingredientID, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update ingredient stock"})
			}
		}

		if _, err := tx.Exec(ctx, "UPDATE purchase_orders SET status = 'received', received_at = NOW(), updated_at = NOW() WHERE id = $1", poID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update purchase order"})
		}
	} else {
		if _, err := tx.Exec(ctx, "UPDATE purchase_orders SET status = $1, updated_at = NOW() WHERE id = $2", body.Status, poID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update purchase order"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to commit transaction"})
	}

	return c.JSON(fiber.Map{"status": "success"})
}
