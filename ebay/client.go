package ebay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	// Sandbox URLs
	SandboxTokenURL   = "https://api.sandbox.ebay.com/identity/v1/oauth2/token"
	SandboxAPIBaseURL = "https://api.sandbox.ebay.com"

	// Production URLs
	ProductionTokenURL   = "https://api.ebay.com/identity/v1/oauth2/token"
	ProductionAPIBaseURL = "https://api.ebay.com"

	// ScopeSellInventory covers inventory item and offer management.
	ScopeSellInventory = "https://api.ebay.com/oauth/api_scope/sell.inventory"

	inventoryBasePath = "/sell/inventory/v1"

	// tokenEarlyExpiry refreshes the cached access token five minutes
	// before the vendor-reported expiry.
	tokenEarlyExpiry = 5 * time.Minute

	// defaultMinInterval is the minimum spacing between outbound calls.
	defaultMinInterval = 100 * time.Millisecond
)

// APIError is a non-2xx marketplace response, with the response body
// captured for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ebay API error (status %d): %s", e.StatusCode, e.Body)
}

// Config holds eBay API credentials and client settings.
type Config struct {
	ClientID     string
	ClientSecret string
	Sandbox      bool

	// MinRequestInterval overrides the default 100ms request spacing
	// when positive.
	MinRequestInterval time.Duration

	// BaseURL and TokenURL replace the environment-derived endpoints
	// when non-empty.
	BaseURL  string
	TokenURL string
}

// Client is an authenticated, rate-limited Sell Inventory API client.
// It is not safe for concurrent use; callers issue one request at a time.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a client for the sandbox or production environment.
// Tokens are obtained with the client-credentials grant (client id and
// secret as HTTP Basic auth) and cached until shortly before expiry.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	tokenURL := cfg.TokenURL
	baseURL := cfg.BaseURL
	if tokenURL == "" {
		if cfg.Sandbox {
			tokenURL = SandboxTokenURL
		} else {
			tokenURL = ProductionTokenURL
		}
	}
	if baseURL == "" {
		if cfg.Sandbox {
			baseURL = SandboxAPIBaseURL
		} else {
			baseURL = ProductionAPIBaseURL
		}
	}

	interval := cfg.MinRequestInterval
	if interval <= 0 {
		interval = defaultMinInterval
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{ScopeSellInventory},
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	authCtx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	tokens := oauth2.ReuseTokenSourceWithExpiry(nil, creds.TokenSource(authCtx), tokenEarlyExpiry)

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		logger:     logger,
	}
}

// BaseURL returns the API base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Authenticate fetches an access token without issuing an inventory call.
func (c *Client) Authenticate() error {
	if _, err := c.tokens.Token(); err != nil {
		return fmt.Errorf("ebay authentication failed: %w", err)
	}
	return nil
}

// Do performs one call against the Sell Inventory API. The token is
// resolved first so an authentication failure surfaces before any
// request; the throttle then enforces the minimum request spacing.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return fmt.Errorf("unsupported HTTP method: %s", method)
	}

	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("ebay authentication failed: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("throttle wait: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+inventoryBasePath+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("ebay api request",
		zap.String("method", method),
		zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("ebay api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBytes)))
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBytes)}
	}

	if out != nil && len(respBytes) > 0 {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
