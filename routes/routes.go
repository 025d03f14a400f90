package routes

import (
	"backhouse/handlers"
	"backhouse/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Bootstrap & Authentication ---
	api.Post("/init", handlers.HandleInitializeOwner)
	auth := api.Group("/auth")
	auth.Post("/login", handlers.HandleLogin)

	// --- User Management ---
	users := api.Group("/users", middleware.Authenticate, middleware.OwnerRequired)
	users.Post("/", handlers.HandleCreateUser)

	// --- Sales (order history) ---
	orders := api.Group("/orders", middleware.Authenticate)
	orders.Post("/", handlers.HandleCreateOrder)
	orders.Get("/", handlers.HandleListOrders)

	// --- Recipes ---
	recipes := api.Group("/recipes", middleware.Authenticate)
	recipes.Get("/", handlers.HandleListRecipes)
	recipes.Get("/:recipeId", handlers.HandleGetRecipeByID)
	recipes.Post("/", middleware.ManagerRequired, handlers.HandleCreateRecipe)
	recipes.Put("/:recipeId", middleware.ManagerRequired, handlers.HandleUpdateRecipe)
	recipes.Put("/:recipeId/status", middleware.ManagerRequired, handlers.HandleSetRecipeActive)

	// --- Inventory ---
	ingredients := api.Group("/ingredients", middleware.Authenticate)
	ingredients.Get("/", handlers.HandleListIngredients)
	ingredients.Post("/", middleware.ManagerRequired, handlers.HandleCreateIngredient)
	ingredients.Put("/:ingredientId", middleware.ManagerRequired, handlers.HandleUpdateIngredient)
	ingredients.Post("/:ingredientId/adjust-stock", handlers.HandleAdjustStock)
	ingredients.Delete("/:ingredientId", middleware.ManagerRequired, handlers.HandleArchiveIngredient)

	// --- Vendors & Purchase Orders ---
	vendors := api.Group("/vendors", middleware.Authenticate, middleware.ManagerRequired)
	vendors.Get("/", handlers.HandleListVendors)
	vendors.Post("/", handlers.HandleCreateVendor)
	vendors.Put("/:vendorId", handlers.HandleUpdateVendor)
	vendors.Delete("/:vendorId", handlers.HandleDeleteVendor)

	purchaseOrders := api.Group("/purchase-orders", middleware.Authenticate, middleware.ManagerRequired)
	purchaseOrders.Get("/", handlers.HandleListPurchaseOrders)
	purchaseOrders.Post("/", handlers.HandleCreatePurchaseOrder)
	purchaseOrders.Put("/:poId/status", handlers.HandleUpdatePurchaseOrderStatus)

	// --- Forecast Calendar & Weather ---
	events := api.Group("/forecast-events", middleware.Authenticate)
	events.Get("/", handlers.HandleListForecastEvents)
	events.Post("/", handlers.HandleCreateForecastEvent)
	events.Put("/:eventId", handlers.HandleUpdateForecastEvent)
	events.Delete("/:eventId", handlers.HandleDeleteForecastEvent)

	weather := api.Group("/weather", middleware.Authenticate)
	weather.Get("/", handlers.HandleListWeather)
	weather.Post("/sync", handlers.HandleSyncWeather)

	// --- Forecast ---
	forecast := api.Group("/forecast", middleware.Authenticate)
	forecast.Get("/", handlers.HandleGetForecast)
	forecast.Get("/by-day", handlers.HandleGetForecastByDay)

	// --- Dashboard ---
	dashboard := api.Group("/dashboard", middleware.Authenticate)
	dashboard.Get("/summary", handlers.HandleGetDashboardSummary)

	// --- AI Menu Parsing ---
	ai := api.Group("/ai", middleware.Authenticate)
	ai.Post("/parse-menu", handlers.HandleParseMenu)
}
