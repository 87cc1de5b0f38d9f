package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
)

// DashboardStats fetches the aggregate figures for the admin dashboard.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.Get(ctx, "/admin/dashboard", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListUsers fetches one page of platform users. An empty role returns
// users of every role.
func (c *Client) ListUsers(ctx context.Context, role string, page, limit int) ([]User, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be at least 1, got %d", page)
	}
	if limit < 1 {
		return nil, fmt.Errorf("limit must be a positive integer, got %d", limit)
	}

	query := url.Values{}
	if role != "" {
		query.Set("role", role)
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var users []User
	if err := c.Get(ctx, "/admin/users?"+query.Encode(), &users); err != nil {
		return nil, err
	}
	log.Info().Int("count", len(users)).Int("page", page).Msg("Fetched users page")
	return users, nil
}

// GetUser fetches a single user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID must not be empty")
	}
	var user User
	if err := c.Get(ctx, "/admin/users/"+url.PathEscape(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListTransactions fetches one page of transactions.
func (c *Client) ListTransactions(ctx context.Context, page, limit int) ([]Transaction, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be at least 1, got %d", page)
	}
	if limit < 1 {
		return nil, fmt.Errorf("limit must be a positive integer, got %d", limit)
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var transactions []Transaction
	if err := c.Get(ctx, "/admin/transactions?"+query.Encode(), &transactions); err != nil {
		return nil, err
	}
	log.Info().Int("count", len(transactions)).Int("page", page).Msg("Fetched transactions page")
	return transactions, nil
}

// SetGuarantorVerified toggles the guarantor verification flag on a carrier.
func (c *Client) SetGuarantorVerified(ctx context.Context, carrierID string, verified bool) error {
	if carrierID == "" {
		return fmt.Errorf("carrier ID must not be empty")
	}
	endpoint := "/admin/carrier/" + url.PathEscape(carrierID) + "/guarantor-details"
	return c.Patch(ctx, endpoint, map[string]bool{"verified": verified}, nil)
}

// SetVehicleVerified toggles the vehicle verification flag on a carrier.
func (c *Client) SetVehicleVerified(ctx context.Context, carrierID string, verified bool) error {
	if carrierID == "" {
		return fmt.Errorf("carrier ID must not be empty")
	}
	endpoint := "/admin/carrier/" + url.PathEscape(carrierID) + "/vehicle-details"
	return c.Patch(ctx, endpoint, map[string]bool{"verified": verified}, nil)
}
