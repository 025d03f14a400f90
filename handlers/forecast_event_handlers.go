package handlers

import (
	"context"
	"log"
	"time"

	"backhouse/database"
	"backhouse/models"

	"github.com/gofiber/fiber/v2"
)

var validEventCategories = map[string]bool{
	"holiday":     true,
	"special":     true,
	"reservation": true,
	"weather":     true,
	"promotion":   true,
	"custom":      true,
}

// ForecastEventInput defines the body for creating or updating a forecast event.
type ForecastEventInput struct {
	RestaurantID  string  `json:"restaurantId"`
	EventDate     string  `json:"eventDate"` // YYYY-MM-DD
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	ImpactPercent float64 `json:"impactPercent"`
	IsRecurring   bool    `json:"isRecurring"`
	Notes         *string `json:"notes,omitempty"`
}

// HandleCreateForecastEvent declares a calendar event that shifts expected demand.
func HandleCreateForecastEvent(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var input ForecastEventInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if input.RestaurantID == "" || input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "restaurantId and name are required"})
	}
	if !validEventCategories[input.Category] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid event category"})
	}

	eventDate, err := time.Parse("2006-01-02", input.EventDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "eventDate must be YYYY-MM-DD"})
	}

	query := `
		INSERT INTO forecast_events (restaurant_id, event_date, name, category, impact_percent, is_recurring, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, restaurant_id, event_date, name, category, impact_percent, is_recurring, notes, created_at, updated_at
	`
	var ev models.ForecastEvent
	err = db.QueryRow(ctx, query, input.RestaurantID, eventDate, input.Name, input.Category, input.ImpactPercent, input.IsRecurring, input.Notes).Scan(
		&ev.ID, &ev.RestaurantID, &ev.EventDate, &ev.Name, &ev.Category, &ev.ImpactPercent, &ev.IsRecurring, &ev.Notes, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating forecast event: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create forecast event"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": ev})
}

// HandleListForecastEvents lists events within a date range.
func HandleListForecastEvents(c *fiber.Ctx) error {
	ctx := context.Background()

	restaurantID := c.Query("restaurantId")
	startDate := c.Query("startDate", time.Now().Format("2006-01-02"))
	endDate := c.Query("endDate", time.Now().AddDate(0, 1, 0).Format("2006-01-02"))

	events, err := fetchForecastEvents(ctx, restaurantID, startDate, endDate)
	if err != nil {
		log.Printf("Error listing forecast events: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve forecast events"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": events})
}

// HandleUpdateForecastEvent updates an existing forecast event.
func HandleUpdateForecastEvent(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	eventID := c.Params("eventId")

	var input ForecastEventInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if !validEventCategories[input.Category] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid event category"})
	}

	eventDate, err := time.Parse("2006-01-02", input.EventDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "eventDate must be YYYY-MM-DD"})
	}

	query := `
		UPDATE forecast_events
		SET event_date = $1, name = $2, category = $3, impact_percent = $4, is_recurring = $5, notes = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING id, restaurant_id, event_date, name, category, impact_percent, is_recurring, notes, created_at, updated_at
	`
	var ev models.ForecastEvent
	err = db.QueryRow(ctx, query, eventDate, input.Name, input.Category, input.ImpactPercent, input.IsRecurring, input.Notes, eventID).Scan(
		&ev.ID, &ev.RestaurantID, &ev.EventDate, &ev.Name, &ev.Category, &ev.ImpactPercent, &ev.IsRecurring, &ev.Notes, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error updating forecast event: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Forecast event not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": ev})
}

// HandleDeleteForecastEvent removes a forecast event.
func HandleDeleteForecastEvent(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	eventID := c.Params("eventId")

	tag, err := db.Exec(ctx, "DELETE FROM forecast_events WHERE id = $1", eventID)
	if err != nil {
		log.Printf("Error deleting forecast event: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete forecast event"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Forecast event not found"})
	}

	return c.JSON(fiber.Map{"status": "success"})
}

// fetchForecastEvents loads events intersecting [startDate, endDate].
func fetchForecastEvents(ctx context.Context, restaurantID, startDate, endDate string) ([]models.ForecastEvent, error) {
	db := database.GetDB()

	query := `
		SELECT id, restaurant_id, event_date, name, category, impact_percent, is_recurring, notes, created_at, updated_at
		FROM forecast_events
		WHERE restaurant_id = $1 AND event_date BETWEEN $2 AND $3
		ORDER BY event_date
	`
	rows, err := db.Query(ctx, query, restaurantID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.ForecastEvent, 0)
	for rows.Next() {
		var ev models.ForecastEvent
		if err := rows.Scan(&ev.ID, &ev.RestaurantID, &ev.EventDate, &ev.Name, &ev.Category, &ev.ImpactPercent, &ev.IsRecurring, &ev.Notes, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
