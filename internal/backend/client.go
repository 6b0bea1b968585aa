package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
)

// Client is the remote AIFinverse REST backend. All substantive business
// logic (alert generation, preference storage, watchlist limits, auth) lives
// behind this interface; this repository only calls it.
type Client interface {
	GetUser(ctx context.Context, userID string) (*UserRecord, error)
	UpdatePreference(ctx context.Context, email string, market models.Market, strategy, action string) error
	RegisterPreferences(ctx context.Context, email string, markets, strategies []string) error
	GetCompanies(ctx context.Context, market models.Market) ([]models.WatchlistEntry, error)
	UpdateWatchlist(ctx context.Context, userID string, market models.Market, companies []models.WatchlistEntry) error
	RemoveWatchlistCompany(ctx context.Context, userID string, market models.Market, companyName string) error
	GetLiveAlerts(ctx context.Context, market models.Market) ([]LiveAlert, error)
	Subscribe(ctx context.Context, email string) error
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
}

// HTTPClient implements Client over HTTPS with a JSON convention
type HTTPClient struct {
	client  *resty.Client
	baseURL string
}

// NewHTTPClient creates a new backend client
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		client:  resty.New().SetTimeout(timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// marketPath lowercases a market for use in URL paths
func marketPath(market models.Market) string {
	return strings.ToLower(string(market))
}

// checkResponse maps a resty result into the client error taxonomy: a
// transport failure wraps ErrConnection, a non-2xx status becomes an APIError
// carrying the backend's structured detail when the body has one.
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return nil
	}
	if code == http.StatusNotFound {
		return fmt.Errorf("%w: status %d", ErrNotFound, code)
	}
	var envelope errorEnvelope
	if jsonErr := json.Unmarshal(resp.Body(), &envelope); jsonErr == nil {
		if msg := envelope.message(); msg != "" {
			return NewAPIError(code, msg)
		}
	}
	return NewAPIError(code, "")
}

// GetUser fetches the user record including per-market strategies, watchlists
// and market-active flags
func (c *HTTPClient) GetUser(ctx context.Context, userID string) (*UserRecord, error) {
	var user UserRecord
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&user).
		Get(fmt.Sprintf("%s/users/%s", c.baseURL, userID))
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return &user, nil
}

// UpdatePreference adds or removes a single strategy for a market
func (c *HTTPClient) UpdatePreference(ctx context.Context, email string, market models.Market, strategy, action string) error {
	payload := map[string]interface{}{
		"email":    email,
		"market":   string(market),
		"strategy": strategy,
		"action":   action,
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Put(fmt.Sprintf("%s/update/preferences", c.baseURL))
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("update preference %q (%s): %w", strategy, action, err)
	}
	return nil
}

// RegisterPreferences pushes the strategy selection staged at registration
func (c *HTTPClient) RegisterPreferences(ctx context.Context, email string, markets, strategies []string) error {
	payload := map[string]interface{}{
		"email":      email,
		"markets":    markets,
		"strategies": strategies,
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(fmt.Sprintf("%s/register/preferences", c.baseURL))
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("register preferences: %w", err)
	}
	return nil
}

// GetCompanies fetches the selectable company list for a market
func (c *HTTPClient) GetCompanies(ctx context.Context, market models.Market) ([]models.WatchlistEntry, error) {
	var companies []models.WatchlistEntry
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&companies).
		Get(fmt.Sprintf("%s/companies/%s", c.baseURL, marketPath(market)))
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("get companies for %s: %w", market, err)
	}
	return companies, nil
}

// UpdateWatchlist sends a batch of companies to add to a market's watchlist
func (c *HTTPClient) UpdateWatchlist(ctx context.Context, userID string, market models.Market, companies []models.WatchlistEntry) error {
	payload := map[string]interface{}{
		"user_id":   userID,
		"market":    string(market),
		"companies": companies,
		"action":    "add",
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(fmt.Sprintf("%s/watchlist/update", c.baseURL))
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("update watchlist for %s: %w", market, err)
	}
	return nil
}

// RemoveWatchlistCompany removes a single company from a market's watchlist
// via the market-specific modify endpoint
func (c *HTTPClient) RemoveWatchlistCompany(ctx context.Context, userID string, market models.Market, companyName string) error {
	payload := map[string]interface{}{
		"user_id":   userID,
		"companies": []string{companyName},
		"action":    "remove",
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(fmt.Sprintf("%s/watchlist/modify/%s", c.baseURL, marketPath(market)))
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("remove %q from %s watchlist: %w", companyName, market, err)
	}
	return nil
}

// GetLiveAlerts fetches the live momentum alert feed for a market
func (c *HTTPClient) GetLiveAlerts(ctx context.Context, market models.Market) ([]LiveAlert, error) {
	var alerts []LiveAlert
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&alerts).
		Get(fmt.Sprintf("%s/alerts/live/%s", c.baseURL, marketPath(market)))
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("get live alerts for %s: %w", market, err)
	}
	return alerts, nil
}

// Subscribe captures a newsletter email
func (c *HTTPClient) Subscribe(ctx context.Context, email string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"email": email}).
		Post(fmt.Sprintf("%s/subscribe", c.baseURL))
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("subscribe %s: %w", email, err)
	}
	return nil
}

// Register creates an account
func (c *HTTPClient) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	var result RegisterResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post(fmt.Sprintf("%s/register", c.baseURL))
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("register %s: %w", req.Email, err)
	}
	return &result, nil
}

// Login obtains a session token
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var result LoginResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&result).
		Post(fmt.Sprintf("%s/login", c.baseURL))
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("login %s: %w", email, err)
	}
	return &result, nil
}
