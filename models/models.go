package models

import (
	"time"
)

// --- Core Models ---

// Branch represents a single restaurant location.
type Branch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tag categorizes meals (e.g. "grill", "vegan", "dessert").
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Meal represents an item on the menu.
type Meal struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IsAvailable bool      `json:"is_available"`
	Tags        []Tag     `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkingDay is the per-weekday opening configuration, administered
// through the dashboard. Name may be an Arabic or English weekday name.
type WorkingDay struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartHour string    `json:"startHour"`
	EndHour   string    `json:"endHour"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScheduleStatus is the derived open/closed status for the current moment.
// Never persisted; recomputed on every query.
type ScheduleStatus struct {
	Start  *string `json:"start"`
	End    *string `json:"end"`
	IsOpen bool    `json:"isOpen"`
	Window string  `json:"window"`
}

// CartItem is a single line in a customer's cart.
type CartItem struct {
	ID       string  `json:"id"`
	MealID   string  `json:"mealId"`
	MealName string  `json:"mealName"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// Cart is the customer's current cart with server-computed totals.
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
	Total  float64    `json:"total"`
}

// Order represents a checkout that was handed to the payment provider.
type Order struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"order_number"`
	UserID          string    `json:"user_id"`
	BranchID        *string   `json:"branch_id,omitempty"`
	TotalAmount     float64   `json:"total_amount"`
	Status          string    `json:"status"` // pending, paid, cancelled
	StripeSessionID *string   `json:"stripe_session_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Reservation represents a table reservation tied to a customer's order.
type Reservation struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	UserID      string    `json:"user_id"`
	BranchID    string    `json:"branch_id"`
	OrderID     *string   `json:"order_id,omitempty"`
	PartySize   int       `json:"party_size"`
	ReservedFor time.Time `json:"reserved_for"`
	Status      string    `json:"status"` // pending, confirmed, cancelled, seated
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Employee links a user account to a branch assignment and payroll data.
type Employee struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BranchID  string    `json:"branch_id"`
	Position  string    `json:"position"`
	Salary    float64   `json:"salary"`
	HiredAt   time.Time `json:"hired_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      *User     `json:"user,omitempty"`
}

// --- Request Bodies ---

type CreateWorkingDayRequest struct {
	Name      string `json:"name"`
	StartHour string `json:"startHour"`
	EndHour   string `json:"endHour"`
	IsActive  *bool  `json:"isActive"`
}

type CreateMealRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	ImageURL    *string  `json:"image_url"`
	IsAvailable *bool    `json:"is_available"`
	TagIDs      []string `json:"tag_ids"`
}

type AddCartItemRequest struct {
	MealID   string `json:"mealId"`
	Quantity int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CreateReservationRequest struct {
	BranchID    string    `json:"branch_id"`
	PartySize   int       `json:"party_size"`
	ReservedFor time.Time `json:"reserved_for"`
}

type CreateBranchRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type CreateEmployeeRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	BranchID string  `json:"branch_id"`
	Position string  `json:"position"`
	Salary   float64 `json:"salary"`
}
