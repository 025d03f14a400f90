package handlers

import (
	"context"
	"log"

	"backhouse/database"
	"backhouse/models"
	"backhouse/utils"

	"github.com/gofiber/fiber/v2"
)

// VendorInput defines the body for creating or updating a vendor.
type VendorInput struct {
	RestaurantID string  `json:"restaurantId"`
	Name         string  `json:"name"`
	ContactName  *string `json:"contactName,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
	Address      *string `json:"address,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// HandleCreateVendor creates a new vendor.
func HandleCreateVendor(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var input VendorInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if input.RestaurantID == "" || input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "restaurantId and name are required"})
	}

	query := `
		INSERT INTO vendors (restaurant_id, name, contact_name, contact_email, contact_phone, address, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, restaurant_id, name, contact_name, contact_email, contact_phone, address, notes, created_at, updated_at
	`
	var v models.Vendor
	err := db.QueryRow(ctx, query, input.RestaurantID, input.Name, input.ContactName, input.ContactEmail, input.ContactPhone, input.Address, input.Notes).Scan(
		&v.ID, &v.RestaurantID, &v.Name, &v.ContactName, &v.ContactEmail, &v.ContactPhone, &v.Address, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating vendor: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create vendor"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": v})
}

// HandleListVendors lists vendors for a restaurant.
func HandleListVendors(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	restaurantID := c.Query("restaurantId")
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	offset := (page - 1) * pageSize

	query := `
		SELECT id, restaurant_id, name, contact_name, contact_email, contact_phone, address, notes, created_at, updated_at
		FROM vendors
		WHERE restaurant_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := db.Query(ctx, query, restaurantID, pageSize, offset)
	if err != nil {
		log.Printf("Error listing vendors: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve vendors"})
	}
	defer rows.Close()

	vendors := make([]models.Vendor, 0)
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.RestaurantID, &v.Name, &v.ContactName, &v.ContactEmail, &v.ContactPhone, &v.Address, &v.Notes, &v.CreatedAt, &v.UpdatedAt); err != nil {
			log.Printf("Error scanning vendor: %v", err)
			continue
		}
		vendors = append(vendors, v)
	}

	var totalItems int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM vendors WHERE restaurant_id = $1", restaurantID).Scan(&totalItems); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count vendors"})
	}

	response := models.PaginatedVendorsResponse{
		Data:       vendors,
		Pagination: *utils.CreatePagination(totalItems, page, pageSize),
	}
	return c.JSON(fiber.Map{"status": "success", "data": response})
}

// HandleUpdateVendor updates an existing vendor.
func HandleUpdateVendor(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	vendorID := c.Params("vendorId")

	var input VendorInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	query := `
		UPDATE vendors
		SET name = $1, contact_name = $2, contact_email = $3, contact_phone = $4, address = $5, notes = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING id, restaurant_id, name, contact_name, contact_email, contact_phone, address, notes, created_at, updated_at
	`
	var v models.Vendor
	err := db.QueryRow(ctx, query, input.Name, input.ContactName, input.ContactEmail, input.ContactPhone, input.Address, input.Notes, vendorID).Scan(
		&v.ID, &v.RestaurantID, &v.Name, &v.ContactName, &v.ContactEmail, &v.ContactPhone, &v.Address, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error updating vendor: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Vendor not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": v})
}

// HandleDeleteVendor removes a vendor.
func HandleDeleteVendor(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	vendorID := c.Params("vendorId")

	tag, err := db.Exec(ctx, "DELETE FROM vendors WHERE id = $1", vendorID)
	if err != nil {
		log.Printf("Error deleting vendor: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete vendor"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Vendor not found"})
	}

	return c.JSON(fiber.Map{"status": "success"})
}
