package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// SessionSource provides the tokens attached to outgoing requests and
// receives the replacement access token after a refresh exchange.
type SessionSource interface {
	AccessToken() string
	RefreshToken() string
	SetAccessToken(token string) error
}

// Client issues authenticated requests against the SoftDrop API.
// All refresh coordination lives here: the refresh exchange is installed
// once per Client, and concurrent callers hitting 401 share a single
// in-flight exchange instead of racing their own.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	session      SessionSource
	refreshGroup singleflight.Group
}

// New creates a Client for the given base URL. The session source may be
// nil for unauthenticated use (e.g. login itself).
func New(baseURL string, session SessionSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    session,
	}
}

// BaseURL returns the base URL this client dispatches against.
func (c *Client) BaseURL() string { return c.baseURL }

// Get issues a GET request and decodes the enveloped response into out.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.doJSON(ctx, http.MethodGet, endpoint, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, endpoint string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPost, endpoint, payload, out)
}

// Patch issues a PATCH request with a JSON body and decodes the response into out.
func (c *Client) Patch(ctx context.Context, endpoint string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPatch, endpoint, payload, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, endpoint string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPut, endpoint, payload, out)
}

// doJSON marshals the payload, dispatches the request, and decodes the
// enveloped response body into out (which may be nil to discard it).
func (c *Client) doJSON(ctx context.Context, method, endpoint string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	data, err := c.Do(ctx, method, endpoint, body, "application/json")
	if err != nil {
		return err
	}
	return decodeEnvelope(data, out)
}

// Do dispatches a request with the current access token attached. On a 401
// it performs the shared refresh exchange and replays the request exactly
// once with the new token; any further 401 is returned to the caller.
func (c *Client) Do(ctx context.Context, method, endpoint string, body []byte, contentType string) ([]byte, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint must not be empty")
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	token := c.authToken(ctx)
	data, err := c.send(ctx, method, endpoint, body, contentType, token)
	if err == nil {
		return data, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		return nil, err
	}
	if c.session == nil || c.session.RefreshToken() == "" {
		return nil, err
	}

	// Another request may have refreshed while this one was in flight;
	// replay with the current token instead of exchanging again.
	if current := c.session.AccessToken(); current != "" && current != token {
		log.Debug().Str("method", method).Str("endpoint", endpoint).Msg("Replaying request with already-refreshed token")
		return c.send(ctx, method, endpoint, body, contentType, current)
	}

	newToken, refreshErr := c.refreshAccessToken(ctx)
	if refreshErr != nil {
		return nil, refreshErr
	}

	log.Debug().Str("method", method).Str("endpoint", endpoint).Msg("Replaying request with refreshed token")
	return c.send(ctx, method, endpoint, body, contentType, newToken)
}

// authToken returns the access token to attach to the next request,
// refreshing eagerly when the token is a JWT that is about to expire.
func (c *Client) authToken(ctx context.Context) string {
	if c.session == nil {
		return ""
	}
	token := c.session.AccessToken()
	if token == "" || c.session.RefreshToken() == "" {
		return token
	}
	if tokenNearExpiry(token) {
		if fresh, err := c.refreshAccessToken(ctx); err == nil {
			return fresh
		}
		// Fall back to the stale token; the 401 path handles the rest.
	}
	return token
}

// send performs a single HTTP round trip and classifies the outcome.
func (c *Client) send(ctx context.Context, method, endpoint string, body []byte, contentType, token string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("Failed to create HTTP request object")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType == "" {
		contentType = "application/json"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Debug().Str("method", method).Str("url", req.URL.String()).Msg("Sending HTTP request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, &TransportError{Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("Failed to close response body")
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("url", req.URL.String()).Msg("Failed to read response body")
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug().Str("method", method).Str("url", req.URL.String()).Int("status", resp.StatusCode).Msg("HTTP request returned non-OK status")
		return nil, &APIError{Status: resp.StatusCode, Body: data}
	}

	log.Debug().Str("method", method).Str("url", req.URL.String()).Int("status", resp.StatusCode).Msg("HTTP request successful")
	return data, nil
}

// decodeEnvelope unwraps the {"data": ...} envelope into out. A response
// without the envelope is decoded directly.
func decodeEnvelope(data []byte, out any) error {
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return &DecodeError{Err: err}
	}

	payload := []byte(env.Data)
	if len(payload) == 0 {
		payload = data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
