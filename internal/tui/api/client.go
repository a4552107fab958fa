// Package api is the HTTP client the TUI talks to the server with.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"reelhub/pkg/models"
)

// Client handles HTTP API communication
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken sets the authentication token
func (c *Client) SetToken(token string) {
	c.token = token
}

// doRequest performs an HTTP request with common handling
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// decodeAPIResponse decodes the APIResponse envelope and unmarshals the data
// field into target
func decodeAPIResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !apiResp.Success {
		if apiResp.Error != "" {
			return fmt.Errorf("%s", apiResp.Error)
		}
		return fmt.Errorf("request failed")
	}

	if target != nil && len(apiResp.Data) > 0 {
		if err := json.Unmarshal(apiResp.Data, target); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

// Auth endpoints

// Register creates a new user account
func (c *Client) Register(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	resp, err := c.doRequest(ctx, "POST", "/auth/register", body)
	if err != nil {
		return nil, err
	}

	var result models.LoginResponse
	if err := decodeAPIResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login authenticates with username and password
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	resp, err := c.doRequest(ctx, "POST", "/auth/login", body)
	if err != nil {
		return nil, err
	}

	var result models.LoginResponse
	if err := decodeAPIResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Leaderboard endpoints

// GetLeaderboard retrieves the ranked leaderboard for a window and challenge
// filter
func (c *Client) GetLeaderboard(ctx context.Context, window, challenge string) (*models.LeaderboardResponse, error) {
	params := url.Values{}
	params.Set("window", window)
	params.Set("challenge", challenge)

	resp, err := c.doRequest(ctx, "GET", "/leaderboard?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var result models.LeaderboardResponse
	if err := decodeAPIResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Gamification endpoints

// GetSummary retrieves the caller's stats summary
func (c *Client) GetSummary(ctx context.Context) (*models.GamificationSummary, error) {
	resp, err := c.doRequest(ctx, "GET", "/gamification/summary", nil)
	if err != nil {
		return nil, err
	}

	var result models.GamificationSummary
	if err := decodeAPIResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAchievements retrieves the achievement catalog with unlock state
func (c *Client) GetAchievements(ctx context.Context) ([]models.AchievementStatus, error) {
	resp, err := c.doRequest(ctx, "GET", "/gamification/achievements", nil)
	if err != nil {
		return nil, err
	}

	var result []models.AchievementStatus
	if err := decodeAPIResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}
