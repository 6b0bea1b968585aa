package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestGetUser(t *testing.T) {
	t.Run("Parses the user record", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/u1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"user_id": "u1",
				"email": "u1@example.com",
				"market": "India",
				"india_alerts": {"is_active": true, "strategies": ["Momentum Riders"]},
				"india_watchlist": [{"company_name": "Reliance", "base_symbol": "RELIANCE"}]
			}`))
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, 5*time.Second)
		user, err := client.GetUser(context.Background(), "u1")
		assert.NoError(t, err)
		assert.Equal(t, "u1", user.UserID)
		assert.NotNil(t, user.IndiaAlerts)
		assert.Equal(t, []string{"Momentum Riders"}, user.IndiaAlerts.Strategies)
		assert.Len(t, user.IndiaWatchlist, 1)
	})

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, 5*time.Second)
		_, err := client.GetUser(context.Background(), "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Unreachable server maps to ErrConnection", func(t *testing.T) {
		client := NewHTTPClient("http://127.0.0.1:1", 500*time.Millisecond)
		_, err := client.GetUser(context.Background(), "u1")
		assert.ErrorIs(t, err, ErrConnection)
		assert.Equal(t, ConnectionFailureMessage, UserMessage(err))
	})
}

func TestUpdatePreference(t *testing.T) {
	t.Run("Sends the add payload", func(t *testing.T) {
		var captured map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/update/preferences", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, 5*time.Second)
		err := client.UpdatePreference(context.Background(), "u1@example.com", models.MarketIndia, "Mean Reversion", "add")
		assert.NoError(t, err)
		assert.Equal(t, "u1@example.com", captured["email"])
		assert.Equal(t, "India", captured["market"])
		assert.Equal(t, "Mean Reversion", captured["strategy"])
		assert.Equal(t, "add", captured["action"])
	})

	t.Run("Structured 4xx detail becomes the API error message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail": "strategy already active"}`))
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, 5*time.Second)
		err := client.UpdatePreference(context.Background(), "u1@example.com", models.MarketIndia, "Mean Reversion", "add")
		assert.Error(t, err)

		var apiErr *APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.Equal(t, "strategy already active", apiErr.Message)
		assert.Equal(t, "strategy already active", UserMessage(err))
	})

	t.Run("Unstructured failure yields the generic message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, 5*time.Second)
		err := client.UpdatePreference(context.Background(), "u1@example.com", models.MarketUS, "Volume Surge", "remove")
		assert.Error(t, err)
		assert.Equal(t, GenericFailureMessage, UserMessage(err))
	})
}

func TestGetLiveAlerts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alerts/live/us", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"symbol": "AAPL", "percent_change": 3.2, "timestamp": 1756700000}]`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	alerts, err := client.GetLiveAlerts(context.Background(), models.MarketUS)
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Equal(t, "AAPL", alerts[0].Symbol)
	assert.Nil(t, alerts[0].RSI)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, GenericFailureMessage, UserMessage(errors.New("anything")))
	assert.Equal(t, "quota exceeded", UserMessage(NewAPIError(429, "quota exceeded")))
}

func TestMarketActive(t *testing.T) {
	t.Run("Market preference flag takes precedence", func(t *testing.T) {
		user := &UserRecord{
			Market:            "India",
			MarketPreferences: map[string]MarketPreference{"india": {IsActive: false}},
			IndiaAlerts:       &MarketAlerts{IsActive: true},
		}
		assert.False(t, user.MarketActive(models.MarketIndia))
	})

	t.Run("Alerts flag consulted next", func(t *testing.T) {
		user := &UserRecord{
			Market:   "US",
			USAlerts: &MarketAlerts{IsActive: true},
		}
		assert.True(t, user.MarketActive(models.MarketUS))
	})

	t.Run("Registered market is the fallback", func(t *testing.T) {
		user := &UserRecord{Market: "Both"}
		assert.True(t, user.MarketActive(models.MarketIndia))
		assert.True(t, user.MarketActive(models.MarketUS))

		user = &UserRecord{Market: "US"}
		assert.False(t, user.MarketActive(models.MarketIndia))
	})

	t.Run("Unparseable registration is inactive", func(t *testing.T) {
		user := &UserRecord{Market: "Mars"}
		assert.False(t, user.MarketActive(models.MarketIndia))
	})
}
