package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Core Models ---

// User represents a back-of-house user (Owner, Manager, or Staff).
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	RestaurantID *string   `json:"restaurant_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Restaurant represents a single restaurant using the service.
type Restaurant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ingredient represents a stocked item in the master inventory.
type Ingredient struct {
	ID                string    `json:"id"`
	RestaurantID      string    `json:"restaurant_id"`
	Name              string    `json:"name"`
	Unit              string    `json:"unit"`
	CurrentStock      float64   `json:"current_stock"`
	UnitCost          float64   `json:"unit_cost"`
	LowStockThreshold *float64  `json:"low_stock_threshold,omitempty"`
	VendorID          *string   `json:"vendor_id,omitempty"`
	IsArchived        bool      `json:"is_archived"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RecipeIngredient is a single line in a recipe's bill of materials.
type RecipeIngredient struct {
	ID             string  `json:"id"`
	RecipeID       string  `json:"recipe_id"`
	IngredientID   string  `json:"ingredient_id"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	IngredientName *string `json:"ingredient_name,omitempty"`
}

// Recipe represents a sellable dish with its bill of materials.
type Recipe struct {
	ID           string             `json:"id"`
	RestaurantID string             `json:"restaurant_id"`
	Name         string             `json:"name"`
	Category     string             `json:"category"`
	MenuPrice    float64            `json:"menu_price"`
	YieldAmount  float64            `json:"yield_amount"`
	YieldUnit    string             `json:"yield_unit"`
	IsActive     bool               `json:"is_active"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Ingredients  []RecipeIngredient `json:"ingredients,omitempty"`
}

// StockMovement logs any change in an ingredient's stock quantity.
type StockMovement struct {
	ID              string    `json:"id"`
	IngredientID    string    `json:"ingredient_id"`
	UserID          string    `json:"user_id"`
	MovementType    string    `json:"movement_type"`
	QuantityChanged float64   `json:"quantity_changed"`
	NewQuantity     float64   `json:"new_quantity"`
	Reason          *string   `json:"reason,omitempty"`
	MovementDate    time.Time `json:"movement_date"`
	Notes           *string   `json:"notes,omitempty"`
}

// Vendor supplies ingredients to the restaurant.
type Vendor struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	ContactName  *string   `json:"contact_name,omitempty"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PurchaseOrderItem is an individual line within a PurchaseOrder.
type PurchaseOrderItem struct {
	ID              string  `json:"id"`
	PurchaseOrderID string  `json:"purchase_order_id"`
	IngredientID    string  `json:"ingredient_id"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	UnitCost        float64 `json:"unit_cost"`
	Subtotal        float64 `json:"subtotal"`
	IngredientName  *string `json:"ingredient_name,omitempty"`
}

// PurchaseOrder represents an order placed with a vendor.
type PurchaseOrder struct {
	ID           string              `json:"id"`
	RestaurantID string              `json:"restaurant_id"`
	VendorID     string              `json:"vendor_id"`
	OrderNumber  string              `json:"order_number"`
	Status       string              `json:"status"`
	TotalAmount  float64             `json:"total_amount"`
	OrderDate    time.Time           `json:"order_date"`
	ReceivedAt   *time.Time          `json:"received_at,omitempty"`
	Notes        *string             `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Items        []PurchaseOrderItem `json:"items,omitempty"`
	VendorName   *string             `json:"vendor_name,omitempty"`
}

// OrderItem is an individual dish line within a completed Order.
type OrderItem struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	RecipeID    *string `json:"recipe_id,omitempty"`
	DishName    string  `json:"dish_name"`
	Quantity    int     `json:"quantity"`
	PriceAtSale float64 `json:"price_at_sale"`
	Subtotal    float64 `json:"subtotal"`
}

// Order represents a single completed sale. Orders are append-only: they are
// the source of truth for historical demand and are never mutated.
type Order struct {
	ID           string      `json:"id"`
	RestaurantID string      `json:"restaurant_id"`
	OrderDate    time.Time   `json:"order_date"`
	TotalAmount  float64     `json:"total_amount"`
	Notes        *string     `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Items        []OrderItem `json:"items,omitempty"`
}

// ForecastEvent is a user-declared calendar entry that shifts expected demand.
// Category is one of: holiday, special, reservation, weather, promotion, custom.
type ForecastEvent struct {
	ID            string    `json:"id"`
	RestaurantID  string    `json:"restaurant_id"`
	EventDate     time.Time `json:"event_date"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	ImpactPercent float64   `json:"impact_percent"`
	IsRecurring   bool      `json:"is_recurring"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// WeatherDay is an external daily weather observation with a precomputed
// signed demand impact percentage. Read-only input to the forecast.
type WeatherDay struct {
	Date          time.Time `json:"date"`
	TempMin       float64   `json:"temp_min"`
	TempMax       float64   `json:"temp_max"`
	Condition     string    `json:"condition"`
	ImpactPercent float64   `json:"impact_percent"`
}

// --- API Request/Response Structs ---

// CreateUserRequest defines the body for creating a new user.
type CreateUserRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	RestaurantID *string `json:"restaurant_id,omitempty"`
}

// DashboardSummary defines the structure for the back-of-house dashboard.
type DashboardSummary struct {
	TotalSalesRevenue   float64       `json:"total_sales_revenue"`
	NumberOfOrders      float64       `json:"number_of_orders"`
	AverageOrderValue   float64       `json:"average_order_value"`
	InventoryValue      float64       `json:"inventory_value"`
	LowStockIngredients int           `json:"low_stock_ingredients"`
	TopSellingDishes    []DishSummary `json:"top_selling_dishes"`
}

// DishSummary represents a summary of a single dish's performance.
type DishSummary struct {
	RecipeID     string  `json:"recipe_id"`
	DishName     string  `json:"dish_name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// --- Paginated Responses ---

// Pagination details for paginated responses.
type Pagination struct {
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

// PaginatedOrdersResponse for sales history.
type PaginatedOrdersResponse struct {
	Items      []Order    `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// PaginatedRecipesResponse for recipes.
type PaginatedRecipesResponse struct {
	Items      []Recipe   `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// PaginatedIngredientsResponse for inventory items.
type PaginatedIngredientsResponse struct {
	Items      []Ingredient `json:"items"`
	Pagination Pagination   `json:"pagination"`
}

// PaginatedVendorsResponse for vendors.
type PaginatedVendorsResponse struct {
	Data       []Vendor   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// PaginatedPurchaseOrdersResponse for purchase orders.
type PaginatedPurchaseOrdersResponse struct {
	Items      []PurchaseOrder `json:"items"`
	Pagination Pagination      `json:"pagination"`
}
