package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// loginTimeout bounds the credential exchange.
const loginTimeout = 10 * time.Second

// AuthClient performs the credential exchange against the platform's auth
// endpoints. It implements the auth package's Exchanger contract.
type AuthClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// PerformLogin exchanges a phone number and password for a token pair.
// A rejected login surfaces as an *APIError so callers can tell a 401
// apart from other failures.
func (a *AuthClient) PerformLogin(ctx context.Context, phone, password string) (string, string, error) {
	payload, err := json.Marshal(map[string]string{
		"phone":    phone,
		"password": password,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to encode login request: %w", err)
	}

	loginCtx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	url := strings.TrimRight(a.BaseURL, "/") + "/auth/login"
	req, err := http.NewRequestWithContext(loginCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpClient := a.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: loginTimeout}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Login request failed")
		return "", "", &TransportError{Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug().Int("status", resp.StatusCode).Msg("Login rejected")
		return "", "", &APIError{Status: resp.StatusCode, Body: body}
	}

	var result struct {
		Data TokenPair `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", "", &DecodeError{Err: err}
	}
	if result.Data.AccessToken == "" || result.Data.RefreshToken == "" {
		return "", "", fmt.Errorf("login response contained an incomplete token pair")
	}

	log.Info().Msg("Login exchange successful")
	return result.Data.AccessToken, result.Data.RefreshToken, nil
}
