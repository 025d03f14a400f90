package handlers

import (
	"log"
	"os"

	"backhouse/database"
	"backhouse/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// HandleInitializeOwner creates the first owner account and its restaurant
// if none exists. Guarded by an init token so it can stay exposed on fresh
// deployments.
func HandleInitializeOwner(c *fiber.Ctx) error {
	initToken := os.Getenv("INIT_TOKEN")
	if initToken == "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "INIT_TOKEN not configured",
		})
	}

	providedToken := c.Get("X-Init-Token")
	// Log masked token attempts for debugging (do not log full token)
	maskToken := func(t string) string {
		if len(t) <= 8 {
			return "****"
		}
		return t[:4] + "..." + t[len(t)-4:]
	}

	if providedToken != initToken {
		log.Printf("Init attempt with invalid token: %s", maskToken(providedToken))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid initialization token",
		})
	}

	var req struct {
		Name           string `json:"name"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		RestaurantName string `json:"restaurant_name"`
	}

	if err := c.BodyParser(&req); err != nil {
		log.Printf("Init request body parse error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}

	var existingCount int
	err := database.GetDB().QueryRow(c.Context(),
		"SELECT COUNT(*) FROM users WHERE email = $1", req.Email).Scan(&existingCount)
	if err != nil {
		log.Printf("Database error checking email uniqueness: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
		})
	}

	if existingCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "error",
			"message": "User with this email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Error processing password",
		})
	}

	tx, err := database.GetDB().Begin(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to start transaction"})
	}
	defer tx.Rollback(c.Context())

	var restaurantID string
	err = tx.QueryRow(c.Context(),
		`INSERT INTO restaurants (name, is_active) VALUES ($1, true) RETURNING id`,
		req.RestaurantName,
	).Scan(&restaurantID)
	if err != nil {
		log.Printf("Error creating restaurant: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error creating restaurant"})
	}

	var user models.User
	err = tx.QueryRow(c.Context(),
		`INSERT INTO users (name, email, password_hash, role, is_active, restaurant_id)
		 VALUES ($1, $2, $3, 'owner', true, $4)
		 RETURNING id, name, email, role, is_active, restaurant_id, created_at, updated_at`,
		req.Name, req.Email, string(hashedPassword), restaurantID,
	).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.IsActive,
		&user.RestaurantID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating owner user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error creating owner user"})
	}

	if err := tx.Commit(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to commit transaction"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Owner account created successfully",
		"data":    user,
	})
}
