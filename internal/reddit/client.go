// Package reddit implements the upstream listing client: anonymous or OAuth
// client-credentials access, rate limited, with an optional Redis response
// cache.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"reelhub/pkg/config"
	"reelhub/pkg/logger"
)

// tokenCache holds the OAuth bearer token and its expiry. It is owned by the
// client instance - never package-level state - and refreshed lazily with a
// safety margin.
type tokenCache struct {
	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// expiryMargin refreshes tokens slightly early so in-flight requests never
// carry a token that expires mid-call.
const expiryMargin = 30 * time.Second

// Client fetches subreddit listings from Reddit.
type Client struct {
	cfg     config.RedditConfig
	http    *http.Client
	limiter *rate.Limiter
	token   *tokenCache
	cache   *ListingCache // nil when caching is disabled
}

// NewClient creates an upstream client. cache may be nil.
func NewClient(cfg config.RedditConfig, cache *ListingCache) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 1
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(perSec), burst),
		token:   &tokenCache{},
		cache:   cache,
	}
}

// oauthEnabled reports whether client-credentials access is configured.
func (c *Client) oauthEnabled() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

// HotListing fetches one page of a subreddit's hot listing and returns the
// raw Reddit-native JSON. after may be empty for the first page.
func (c *Client) HotListing(ctx context.Context, subreddit, after string) ([]byte, error) {
	pageSize := c.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	cacheKey := fmt.Sprintf("listing:%s:%s", subreddit, after)
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, cacheKey); ok {
			return body, nil
		}
	}

	base := c.cfg.BaseURL
	if c.oauthEnabled() {
		base = c.cfg.OAuthBaseURL
	}
	listingURL := fmt.Sprintf("%s/r/%s/hot.json?limit=%d&raw_json=1", base, url.PathEscape(subreddit), pageSize)
	if after != "" {
		listingURL += "&after=" + url.QueryEscape(after)
	}

	body, err := c.get(ctx, listingURL)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(ctx, cacheKey, body)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	if c.oauthEnabled() {
		token, err := c.bearer(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.Upstream(rawURL, resp.StatusCode, int(time.Since(start).Milliseconds()), false)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit api returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}
	return body, nil
}

// bearer returns a valid access token, refreshing it when expired or absent.
func (c *Client) bearer(ctx context.Context) (string, error) {
	c.token.mu.Lock()
	defer c.token.mu.Unlock()

	if c.token.accessToken != "" && time.Now().Before(c.token.expiresAt.Add(-expiryMargin)) {
		return c.token.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty token")
	}

	c.token.accessToken = payload.AccessToken
	c.token.expiresAt = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)

	logger.Infof("Refreshed upstream OAuth token, valid for %ds", payload.ExpiresIn)
	return c.token.accessToken, nil
}
