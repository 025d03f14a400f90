package models

// MenuParseRequest defines the body for the AI menu parsing endpoint.
// ImageData, when present, is a base64 data URL ("data:image/png;base64,...").
type MenuParseRequest struct {
	MenuText  string `json:"menu_text"`
	ImageData string `json:"image_data,omitempty"`
}

// RecipeDraftIngredient is an ingredient line guessed by the AI parser.
type RecipeDraftIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// RecipeDraft is a recipe candidate extracted from a menu by the AI parser.
// Drafts are returned to the client for confirmation; nothing is persisted.
type RecipeDraft struct {
	Name        string                  `json:"name"`
	Category    string                  `json:"category"`
	MenuPrice   float64                 `json:"menu_price"`
	Ingredients []RecipeDraftIngredient `json:"ingredients"`
}

// MenuParseResponse is the structured result of an AI menu parse.
type MenuParseResponse struct {
	Recipes []RecipeDraft `json:"recipes"`
	Notes   string        `json:"notes,omitempty"`
}
