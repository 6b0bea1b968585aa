package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/backend"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestResolverTiers(t *testing.T) {
	t.Run("Backend tier wins and mirrors into cache", func(t *testing.T) {
		prefStore := store.NewMemoryStore()
		client := &fakeBackend{
			user: &backend.UserRecord{
				UserID: "u1",
				Email:  "u1@example.com",
				Market: "India",
				IndiaAlerts: &backend.MarketAlerts{
					IsActive:   true,
					Strategies: []string{models.StrategyMomentumRiders, models.StrategyMeanReversion},
				},
				IndiaWatchlist: []models.WatchlistEntry{{CompanyName: "Reliance", BaseSymbol: "RELIANCE"}},
			},
		}
		resolver := NewResolverService(client, prefStore, 1000)

		res := resolver.Resolve(context.Background(), "u1", models.MarketIndia)
		assert.Equal(t, TierBackend, res.Tier)
		assert.Equal(t, MismatchMatched, res.Mismatch)
		assert.Equal(t, []string{models.StrategyMomentumRiders, models.StrategyMeanReversion}, res.Strategies)
		assert.NotNil(t, res.User)

		cached, ok := store.GetStrategies(prefStore, "u1", models.MarketIndia)
		assert.True(t, ok)
		assert.Equal(t, res.Strategies, cached)

		watchlist, ok := store.GetWatchlist(prefStore, "u1", models.MarketIndia)
		assert.True(t, ok)
		assert.Len(t, watchlist, 1)
	})

	t.Run("Cache tier answers when backend is down", func(t *testing.T) {
		prefStore := store.NewMemoryStore()
		assert.NoError(t, store.SetStrategies(prefStore, "u1", models.MarketUS, []string{models.StrategyVolumeSurge}))
		client := &fakeBackend{userErr: errors.New("connection refused")}
		resolver := NewResolverService(client, prefStore, 1000)

		res := resolver.Resolve(context.Background(), "u1", models.MarketUS)
		assert.Equal(t, TierCache, res.Tier)
		assert.Equal(t, MismatchUnchecked, res.Mismatch)
		assert.Equal(t, []string{models.StrategyVolumeSurge}, res.Strategies)
	})

	t.Run("Malformed cache content falls through silently", func(t *testing.T) {
		prefStore := store.NewMemoryStore()
		assert.NoError(t, prefStore.Set("strategies:u1:US", "{not json"))
		client := &fakeBackend{userErr: errors.New("connection refused")}
		resolver := NewResolverService(client, prefStore, 1000)

		assert.NotPanics(t, func() {
			res := resolver.Resolve(context.Background(), "u1", models.MarketUS)
			assert.Equal(t, TierEmpty, res.Tier)
			assert.Empty(t, res.Strategies)
		})
	})

	t.Run("Staging tier pushes upstream and clears the flag", func(t *testing.T) {
		prefStore := store.NewMemoryStore()
		staged := &models.RegistrationStaging{
			UserID:     "u2",
			Email:      "u2@example.com",
			Market:     models.MarketBoth,
			Strategies: []string{models.StrategyBreakoutHunters},
		}
		assert.NoError(t, store.SetStaging(prefStore, staged))
		client := &fakeBackend{userErr: errors.New("connection refused")}
		resolver := NewResolverService(client, prefStore, 1000)

		res := resolver.Resolve(context.Background(), "u2", models.MarketIndia)
		assert.Equal(t, TierStaging, res.Tier)
		assert.Equal(t, []string{models.StrategyBreakoutHunters}, res.Strategies)
		assert.Equal(t, 1, client.registerPrefCalls)

		// Flag cleared, strategies mirrored: next resolve hits the cache.
		_, stillStaged := store.GetStaging(prefStore, "u2")
		assert.False(t, stillStaged)
		res = resolver.Resolve(context.Background(), "u2", models.MarketIndia)
		assert.Equal(t, TierCache, res.Tier)
	})

	t.Run("Staging push failure is not fatal", func(t *testing.T) {
		prefStore := store.NewMemoryStore()
		staged := &models.RegistrationStaging{
			UserID:     "u3",
			Email:      "u3@example.com",
			Market:     models.MarketUS,
			Strategies: []string{models.StrategyRSIExtremes},
		}
		assert.NoError(t, store.SetStaging(prefStore, staged))
		client := &fakeBackend{
			userErr:         errors.New("connection refused"),
			registerPrefErr: errors.New("backend rejected"),
		}
		resolver := NewResolverService(client, prefStore, 1000)

		res := resolver.Resolve(context.Background(), "u3", models.MarketUS)
		assert.Equal(t, TierStaging, res.Tier)
		assert.Equal(t, []string{models.StrategyRSIExtremes}, res.Strategies)
	})

	t.Run("Staging for another market does not apply", func(t *testing.T) {
		prefStore := store.NewMemoryStore()
		staged := &models.RegistrationStaging{
			UserID:     "u4",
			Email:      "u4@example.com",
			Market:     models.MarketIndia,
			Strategies: []string{models.StrategyMeanReversion},
		}
		assert.NoError(t, store.SetStaging(prefStore, staged))
		client := &fakeBackend{userErr: errors.New("connection refused")}
		resolver := NewResolverService(client, prefStore, 1000)

		res := resolver.Resolve(context.Background(), "u4", models.MarketUS)
		assert.Equal(t, TierEmpty, res.Tier)
		assert.Empty(t, res.Strategies)
	})

	t.Run("Empty tier is not an error", func(t *testing.T) {
		prefStore := store.NewMemoryStore()
		client := &fakeBackend{userErr: errors.New("connection refused")}
		resolver := NewResolverService(client, prefStore, 1000)

		res := resolver.Resolve(context.Background(), "unknown", models.MarketIndia)
		assert.Equal(t, TierEmpty, res.Tier)
		assert.NotNil(t, res.Strategies)
		assert.Empty(t, res.Strategies)
	})
}

func TestMarketMismatchGuard(t *testing.T) {
	t.Run("Inactive market preference signals mismatch", func(t *testing.T) {
		prefStore := store.NewMemoryStore()
		client := &fakeBackend{
			user: &backend.UserRecord{
				UserID: "u1",
				Market: "US",
				MarketPreferences: map[string]backend.MarketPreference{
					"india": {IsActive: false},
				},
				IndiaAlerts: &backend.MarketAlerts{
					IsActive:   true,
					Strategies: []string{models.StrategyMomentumRiders},
				},
			},
		}
		resolver := NewResolverService(client, prefStore, 1500)

		res := resolver.Resolve(context.Background(), "u1", models.MarketIndia)
		assert.Equal(t, MismatchMismatched, res.Mismatch)
		assert.Empty(t, res.Strategies)
		assert.NotNil(t, res.Advisory)
		assert.Equal(t, models.MarketUS, res.Advisory.SuggestedMarket)
		assert.Equal(t, "/live-alerts-us", res.Advisory.RedirectTo)
		assert.Equal(t, 1500, res.Advisory.DelayMS)
	})

	t.Run("Registered market containment matches without flags", func(t *testing.T) {
		prefStore := store.NewMemoryStore()
		client := &fakeBackend{
			user: &backend.UserRecord{
				UserID: "u1",
				Market: "Both",
			},
		}
		resolver := NewResolverService(client, prefStore, 1000)

		res := resolver.Resolve(context.Background(), "u1", models.MarketUS)
		assert.Equal(t, MismatchMatched, res.Mismatch)
		assert.Nil(t, res.Advisory)
	})

	t.Run("Undetermined registration suggests the registration flow", func(t *testing.T) {
		prefStore := store.NewMemoryStore()
		client := &fakeBackend{
			user: &backend.UserRecord{UserID: "u1", Market: ""},
		}
		resolver := NewResolverService(client, prefStore, 1000)

		res := resolver.Resolve(context.Background(), "u1", models.MarketIndia)
		assert.Equal(t, MismatchMismatched, res.Mismatch)
		assert.NotNil(t, res.Advisory)
		assert.Equal(t, "/registration", res.Advisory.RedirectTo)
	})

	t.Run("Dismissal is advisory only, preference data untouched", func(t *testing.T) {
		prefStore := store.NewMemoryStore()
		assert.NoError(t, store.SetStrategies(prefStore, "u1", models.MarketIndia, []string{models.StrategyMeanReversion}))
		client := &fakeBackend{
			user: &backend.UserRecord{UserID: "u1", Market: "US"},
		}
		resolver := NewResolverService(client, prefStore, 1000)

		res := resolver.Resolve(context.Background(), "u1", models.MarketIndia)
		assert.Equal(t, MismatchMismatched, res.Mismatch)

		cached, ok := store.GetStrategies(prefStore, "u1", models.MarketIndia)
		assert.True(t, ok)
		assert.Equal(t, []string{models.StrategyMeanReversion}, cached)
	})
}
