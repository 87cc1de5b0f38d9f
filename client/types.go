package client

import "encoding/json"

// envelope is the standard success wrapper used by every API response.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// TokenPair holds the access and refresh tokens returned by the login endpoint.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// User is a platform user as returned by the admin endpoints.
// Senders and carriers share this shape and are told apart by Role.
type User struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Phone        string  `json:"phone"`
	Role         string  `json:"role"`
	Status       string  `json:"status"`
	ProfileImage *string `json:"profileImage,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

// DashboardStats contains the aggregate figures shown on the admin dashboard.
type DashboardStats struct {
	TotalSenders      int     `json:"totalSenders"`
	TotalCarriers     int     `json:"totalCarriers"`
	TotalDeliveries   int     `json:"totalDeliveries"`
	PendingDeliveries int     `json:"pendingDeliveries"`
	TotalTransactions int     `json:"totalTransactions"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

// Transaction is a payment record tied to a delivery.
type Transaction struct {
	ID        string  `json:"id"`
	Reference string  `json:"reference"`
	UserID    string  `json:"userId"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

// Roles accepted by the user listing endpoints.
const (
	RoleSender  = "SENDER"
	RoleCarrier = "CARRIER"
)
