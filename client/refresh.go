package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const (
	// refreshTimeout bounds the refresh exchange so a hung token endpoint
	// cannot stall every queued request indefinitely.
	refreshTimeout = 10 * time.Second

	// expirySkew is how close to expiry an access token may get before it
	// is refreshed eagerly instead of waiting for the 401.
	expirySkew = 30 * time.Second
)

// refreshAccessToken performs the refresh exchange at most once across all
// concurrent callers. Whoever arrives while an exchange is in flight waits
// for the same result. A rejected exchange is terminal for the session.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	stale := c.session.AccessToken()
	v, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		// A refresh that completed while this caller was queued has already
		// produced a fresh token; hand that out instead of exchanging again.
		if current := c.session.AccessToken(); current != "" && current != stale {
			return current, nil
		}

		refreshCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
		defer cancel()

		log.Info().Msg("Access token rejected or expiring, refreshing...")
		accessToken, err := PerformTokenRefresh(refreshCtx, c.httpClient, c.baseURL, c.session.RefreshToken())
		if err != nil {
			log.Error().Err(err).Msg("Token refresh failed")
			return nil, fmt.Errorf("%v: %w", err, ErrSessionExpired)
		}

		if err := c.session.SetAccessToken(accessToken); err != nil {
			return nil, fmt.Errorf("failed to save refreshed token: %w", err)
		}
		log.Info().Msg("Token refreshed and saved successfully.")
		return accessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// PerformTokenRefresh exchanges the refresh token for a new access token.
// The refresh token itself is not rotated by this endpoint.
func PerformTokenRefresh(ctx context.Context, httpClient *http.Client, baseURL, refreshToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/auth/refresh", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create token refresh request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+refreshToken)

	if httpClient == nil {
		httpClient = &http.Client{Timeout: refreshTimeout}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to post token refresh request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token refresh response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("token refresh failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse token refresh response: %w", err)
	}
	if result.Data.AccessToken == "" {
		return "", fmt.Errorf("token refresh response contained no access token")
	}

	return result.Data.AccessToken, nil
}

// tokenNearExpiry reports whether the access token is a JWT whose exp claim
// falls within the skew window. Opaque tokens and tokens without an exp
// claim are never considered near expiry; the 401 path covers those.
func tokenNearExpiry(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().Add(expirySkew).After(exp.Time)
}
