package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"backhouse/config"
	"backhouse/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const menuParseModel = "gemini-2.5-flash-lite"

// HandleParseMenu extracts structured recipe drafts from pasted menu text
// (or a menu photo) using the Gemini API. Nothing is persisted; the client
// confirms drafts into real recipes.
// POST /api/v1/ai/parse-menu
func HandleParseMenu(c *fiber.Ctx) error {
	var body models.MenuParseRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}

	if body.MenuText == "" && body.ImageData == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "menu_text or image_data is required",
		})
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to initialize AI client",
		})
	}
	defer client.Close()

	model := client.GenerativeModel(menuParseModel)

	prompt := []genai.Part{genai.Text(constructMenuParsePrompt(body.MenuText))}

	if body.ImageData != "" {
		// Extract image format and data from a base64 data URL.
		parts := strings.Split(body.ImageData, ";base64,")
		if len(parts) != 2 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid image data format"})
		}

		mimeTypeParts := strings.Split(strings.TrimPrefix(parts[0], "data:"), "/")
		if len(mimeTypeParts) != 2 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid image mime type"})
		}
		imageFormat := mimeTypeParts[1]

		imageData, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Failed to decode image data"})
		}

		prompt = append(prompt, genai.ImageData(imageFormat, imageData))
	}

	resp, err := model.GenerateContent(ctx, prompt...)
	if err != nil {
		log.Printf("Error from Gemini API: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to parse menu",
		})
	}

	parsed, err := parseMenuResponse(resp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "success", "data": parsed})
}

// constructMenuParsePrompt builds the extraction prompt for the Gemini API.
func constructMenuParsePrompt(menuText string) string {
	jsonFormat := `{"recipes":[{"name":"string","category":"Mains|Appetizers|Desserts|Drinks|Other","menu_price":number,"ingredients":[{"name":"string","quantity":number,"unit":"string"}]}],"notes":"string"}`

	return fmt.Sprintf(`
        You are an expert restaurant menu analyst. Extract every dish from the
        menu below into structured recipe drafts. Guess reasonable per-portion
        ingredient quantities in metric units when they are not stated.

        **Menu:**
        %s

        **Required Output:**
        You must provide a single, minified JSON object with the following exact structure. Do not include any markdown formatting, backticks, or explanatory text before or after the JSON object.

        %s
    `, menuText, jsonFormat)
}

func extractJSON(rawString string) string {
	start := strings.Index(rawString, "{")
	end := strings.LastIndex(rawString, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return rawString[start : end+1]
}

// parseMenuResponse parses the JSON from Gemini into recipe drafts.
func parseMenuResponse(resp *genai.GenerateContentResponse) (*models.MenuParseResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content received from AI")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}

	if text == "" {
		return nil, fmt.Errorf("no text content received from AI")
	}

	jsonStr := extractJSON(text)
	if jsonStr == "" {
		log.Printf("Could not extract JSON from Gemini response: %s", text)
		return nil, fmt.Errorf("failed to parse AI response format")
	}

	var parsed models.MenuParseResponse
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		log.Printf("Error parsing Gemini JSON: %v\nRaw JSON: %s", err, jsonStr)
		return nil, fmt.Errorf("failed to parse AI menu data")
	}

	return &parsed, nil
}
