package handlers

import (
	"context"
	"log"
	"time"

	"backhouse/database"
	"backhouse/models"
	"backhouse/utils"

	"github.com/gofiber/fiber/v2"
)

// WeatherDayInput is one day of synced weather data. The impact percentage
// may be supplied by the sync job; when omitted it is derived from the
// condition and temperature.
type WeatherDayInput struct {
	Date          string   `json:"date"` // YYYY-MM-DD
	TempMin       float64  `json:"tempMin"`
	TempMax       float64  `json:"tempMax"`
	Condition     string   `json:"condition"`
	ImpactPercent *float64 `json:"impactPercent,omitempty"`
}

// HandleSyncWeather upserts a batch of daily weather observations. The core
// forecast never calls a weather provider itself; an external sync job posts
// already-fetched data here.
func HandleSyncWeather(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var body struct {
		RestaurantID string            `json:"restaurantId"`
		Days         []WeatherDayInput `json:"days"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if body.RestaurantID == "" || len(body.Days) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "restaurantId and days are required"})
	}

	query := `
		INSERT INTO weather_days (restaurant_id, date, temp_min, temp_max, condition, impact_percent)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (restaurant_id, date)
		DO UPDATE SET temp_min = $3, temp_max = $4, condition = $5, impact_percent = $6
	`
	for _, day := range body.Days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "date must be YYYY-MM-DD"})
		}

		impact := utils.WeatherImpact(day.Condition, day.TempMax)
		if day.ImpactPercent != nil {
			impact = *day.ImpactPercent
		}

		if _, err := db.Exec(ctx, query, body.RestaurantID, date, day.TempMin, day.TempMax, day.Condition, impact); err != nil {
			log.Printf("Error upserting weather day %s: %v", day.Date, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to store weather data"})
		}
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Weather data synced"})
}

// HandleListWeather returns the stored weather days for a date range.
func HandleListWeather(c *fiber.Ctx) error {
	ctx := context.Background()

	restaurantID := c.Query("restaurantId")
	startDate := c.Query("startDate", time.Now().Format("2006-01-02"))
	endDate := c.Query("endDate", time.Now().AddDate(0, 0, 7).Format("2006-01-02"))

	days, err := fetchWeatherDays(ctx, restaurantID, startDate, endDate)
	if err != nil {
		log.Printf("Error listing weather days: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve weather data"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": days})
}

// fetchWeatherDays loads the stored weather observations for [startDate, endDate].
func fetchWeatherDays(ctx context.Context, restaurantID, startDate, endDate string) ([]models.WeatherDay, error) {
	db := database.GetDB()

	query := `
		SELECT date, temp_min, temp_max, condition, impact_percent
		FROM weather_days
		WHERE restaurant_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`
	rows, err := db.Query(ctx, query, restaurantID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]models.WeatherDay, 0)
	for rows.Next() {
		var day models.WeatherDay
		if err := rows.Scan(&day.Date, &day.TempMin, &day.TempMax, &day.Condition, &day.ImpactPercent); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}
