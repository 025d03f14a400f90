package handlers

import (
	"context"
	"log"
	"time"

	"backhouse/forecast"

	"github.com/gofiber/fiber/v2"
)

// loadForecastInputs fetches the five input collections the engine needs.
// Any fetch failure aborts the forecast: the engine is never run on partial
// data.
func loadForecastInputs(ctx context.Context, restaurantID string, start time.Time, horizonDays int) (forecast.Inputs, error) {
	var in forecast.Inputs
	var err error

	in.Orders, err = fetchOrderHistory(ctx, restaurantID)
	if err != nil {
		return in, err
	}

	in.Recipes, err = fetchActiveRecipes(ctx, restaurantID)
	if err != nil {
		return in, err
	}

	in.Ingredients, err = fetchIngredients(ctx, restaurantID)
	if err != nil {
		return in, err
	}

	startDate := start.Format("2006-01-02")
	endDate := start.AddDate(0, 0, horizonDays).Format("2006-01-02")

	in.Events, err = fetchForecastEvents(ctx, restaurantID, startDate, endDate)
	if err != nil {
		return in, err
	}

	in.Weather, err = fetchWeatherDays(ctx, restaurantID, startDate, endDate)
	if err != nil {
		return in, err
	}

	return in, nil
}

// HandleGetForecast computes the demand forecast and ingredient requirements
// over the requested horizon.
// GET /api/v1/forecast?restaurantId=...&days=3
func HandleGetForecast(c *fiber.Ctx) error {
	ctx := context.Background()

	restaurantID := c.Query("restaurantId")
	if restaurantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "restaurantId is required"})
	}
	horizonDays := c.QueryInt("days", forecast.DefaultHorizonDays)
	if horizonDays < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "days must not be negative"})
	}

	start := startOfDay(time.Now())

	in, err := loadForecastInputs(ctx, restaurantID, start, horizonDays)
	if err != nil {
		log.Printf("❌ [FORECAST] Failed to load inputs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load forecast inputs"})
	}

	result := forecast.Run(in, start, horizonDays)

	log.Printf("📈 [FORECAST] restaurant=%s horizon=%dd dishes=%d ingredients=%d", restaurantID, horizonDays, len(result.Dishes), len(result.Ingredients))

	return c.JSON(fiber.Map{"status": "success", "data": result})
}

// HandleGetForecastByDay computes per-day forecast buckets for calendar views.
// GET /api/v1/forecast/by-day?restaurantId=...&days=3
func HandleGetForecastByDay(c *fiber.Ctx) error {
	ctx := context.Background()

	restaurantID := c.Query("restaurantId")
	if restaurantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "restaurantId is required"})
	}
	horizonDays := c.QueryInt("days", forecast.DefaultHorizonDays)
	if horizonDays < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "days must not be negative"})
	}

	start := startOfDay(time.Now())

	in, err := loadForecastInputs(ctx, restaurantID, start, horizonDays)
	if err != nil {
		log.Printf("❌ [FORECAST] Failed to load inputs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load forecast inputs"})
	}

	days := forecast.RunByDay(in, start, horizonDays)

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"days": days}})
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
