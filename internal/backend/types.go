package backend

import (
	"strings"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
)

// MarketPreference is the per-market activation flag on a user record
type MarketPreference struct {
	IsActive bool `json:"is_active"`
}

// MarketAlerts is the per-market alert configuration on a user record
type MarketAlerts struct {
	IsActive   bool     `json:"is_active"`
	Strategies []string `json:"strategies"`
}

// UserRecord is the backend's user document. The backend owns this schema;
// only the fields this service reads are mapped.
type UserRecord struct {
	UserID            string                      `json:"user_id"`
	Email             string                      `json:"email"`
	Market            string                      `json:"market"` // market chosen at registration
	MarketPreferences map[string]MarketPreference `json:"market_preferences,omitempty"`
	IndiaAlerts       *MarketAlerts               `json:"india_alerts,omitempty"`
	USAlerts          *MarketAlerts               `json:"us_alerts,omitempty"`
	IndiaWatchlist    []models.WatchlistEntry     `json:"india_watchlist,omitempty"`
	USWatchlist       []models.WatchlistEntry     `json:"us_watchlist,omitempty"`
}

// AlertsFor returns the alert sub-object for a page market, or nil
func (u *UserRecord) AlertsFor(market models.Market) *MarketAlerts {
	switch market {
	case models.MarketIndia:
		return u.IndiaAlerts
	case models.MarketUS:
		return u.USAlerts
	}
	return nil
}

// WatchlistFor returns the watchlist for a page market
func (u *UserRecord) WatchlistFor(market models.Market) []models.WatchlistEntry {
	switch market {
	case models.MarketIndia:
		return u.IndiaWatchlist
	case models.MarketUS:
		return u.USWatchlist
	}
	return nil
}

// MarketActive reports whether the record marks market as active for the
// user. The record carries several redundant signals; they are consulted in
// order: the market_preferences flag, the per-market alerts flag, then the
// registered market itself.
func (u *UserRecord) MarketActive(market models.Market) bool {
	if pref, ok := u.MarketPreferences[strings.ToLower(string(market))]; ok {
		return pref.IsActive
	}
	if alerts := u.AlertsFor(market); alerts != nil {
		return alerts.IsActive
	}
	registered, err := models.ParseMarket(u.Market)
	if err != nil {
		return false
	}
	return registered.Includes(market)
}

// LiveAlert is one record from the live momentum feed
type LiveAlert struct {
	Symbol        string   `json:"symbol"`
	Price         string   `json:"price,omitempty"`
	PercentChange float64  `json:"percent_change"`
	RSI           *float64 `json:"rsi,omitempty"`
	Timestamp     int64    `json:"timestamp"` // unix seconds
	Date          string   `json:"date,omitempty"`
	NewsURL       string   `json:"news_url,omitempty"`
	ChartURL      string   `json:"chart_url,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// RegisterRequest is the account creation payload
type RegisterRequest struct {
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Market     string   `json:"market"`
	Strategies []string `json:"strategies,omitempty"`
}

// RegisterResponse is the account creation result
type RegisterResponse struct {
	UserID string `json:"user_id"`
}

// LoginResponse is the session token issued by the backend
type LoginResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// errorEnvelope is the backend's structured error body
type errorEnvelope struct {
	Detail  string `json:"detail,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// message returns the first populated field of the envelope
func (e *errorEnvelope) message() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Message != "":
		return e.Message
	default:
		return e.Error
	}
}
