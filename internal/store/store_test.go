package store

import (
	"testing"
	"time"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMemoryStore(t *testing.T) {
	t.Run("Get after Set", func(t *testing.T) {
		s := NewMemoryStore()
		assert.NoError(t, s.Set("k", "v"))
		value, ok := s.Get("k")
		assert.True(t, ok)
		assert.Equal(t, "v", value)
	})

	t.Run("Missing key is a miss, not an error", func(t *testing.T) {
		s := NewMemoryStore()
		_, ok := s.Get("missing")
		assert.False(t, ok)
	})

	t.Run("Expired entries read as misses", func(t *testing.T) {
		s := NewMemoryStore()
		assert.NoError(t, s.SetWithTTL("k", "v", -time.Second))
		_, ok := s.Get("k")
		assert.False(t, ok)
	})

	t.Run("Delete and Clear", func(t *testing.T) {
		s := NewMemoryStore()
		assert.NoError(t, s.Set("a", "1"))
		assert.NoError(t, s.Set("b", "2"))
		assert.NoError(t, s.Delete("a"))
		_, ok := s.Get("a")
		assert.False(t, ok)
		assert.NoError(t, s.Clear())
		_, ok = s.Get("b")
		assert.False(t, ok)
	})

	t.Run("SweepExpired reports removed entries", func(t *testing.T) {
		s := NewMemoryStore()
		assert.NoError(t, s.SetWithTTL("old", "v", -time.Second))
		assert.NoError(t, s.Set("keep", "v"))
		removed, err := s.SweepExpired()
		assert.NoError(t, err)
		assert.Equal(t, 1, removed)
		_, ok := s.Get("keep")
		assert.True(t, ok)
	})
}

func TestTypedHelpers(t *testing.T) {
	t.Run("Strategies round-trip per user and market", func(t *testing.T) {
		s := NewMemoryStore()
		assert.NoError(t, SetStrategies(s, "u1", models.MarketIndia, []string{models.StrategyMeanReversion}))

		strategies, ok := GetStrategies(s, "u1", models.MarketIndia)
		assert.True(t, ok)
		assert.Equal(t, []string{models.StrategyMeanReversion}, strategies)

		_, ok = GetStrategies(s, "u1", models.MarketUS)
		assert.False(t, ok)
	})

	t.Run("Malformed cache content is discarded as a miss", func(t *testing.T) {
		s := NewMemoryStore()
		assert.NoError(t, s.Set("strategies:u1:India", "{broken"))
		_, ok := GetStrategies(s, "u1", models.MarketIndia)
		assert.False(t, ok)

		assert.NoError(t, s.Set("watchlist:u1:India", "[42]"))
		_, ok = GetWatchlist(s, "u1", models.MarketIndia)
		assert.False(t, ok)
	})

	t.Run("Watchlist round-trip", func(t *testing.T) {
		s := NewMemoryStore()
		entries := []models.WatchlistEntry{{CompanyName: "Reliance", BaseSymbol: "RELIANCE"}}
		assert.NoError(t, SetWatchlist(s, "u1", models.MarketIndia, entries))

		got, ok := GetWatchlist(s, "u1", models.MarketIndia)
		assert.True(t, ok)
		assert.Equal(t, entries, got)
	})

	t.Run("Staging set and clear", func(t *testing.T) {
		s := NewMemoryStore()
		staging := &models.RegistrationStaging{
			UserID:     "u1",
			Email:      "u1@example.com",
			Market:     models.MarketBoth,
			Strategies: []string{models.StrategyBreakoutHunters},
		}
		assert.NoError(t, SetStaging(s, staging))

		got, ok := GetStaging(s, "u1")
		assert.True(t, ok)
		assert.Equal(t, models.MarketBoth, got.Market)

		assert.NoError(t, ClearStaging(s, "u1"))
		_, ok = GetStaging(s, "u1")
		assert.False(t, ok)
	})

	t.Run("Profile round-trip", func(t *testing.T) {
		s := NewMemoryStore()
		profile := &models.UserPreferenceRecord{UserID: "u1", Email: "u1@example.com", Market: models.MarketUS}
		assert.NoError(t, SetProfile(s, profile))

		got, ok := GetProfile(s, "u1")
		assert.True(t, ok)
		assert.Equal(t, models.MarketUS, got.Market)
	})

	t.Run("Shared article carries a short TTL", func(t *testing.T) {
		s := NewMemoryStore()
		article := &models.SharedArticle{ArticleID: "a1", Title: "Markets Weekly", SharedAt: time.Now()}
		assert.NoError(t, SetSharedArticle(s, article))

		got, ok := GetSharedArticle(s)
		assert.True(t, ok)
		assert.Equal(t, "a1", got.ArticleID)
	})

	t.Run("Companies round-trip per market", func(t *testing.T) {
		s := NewMemoryStore()
		companies := []models.WatchlistEntry{{CompanyName: "Apple Inc", BaseSymbol: "AAPL"}}
		assert.NoError(t, SetCompanies(s, models.MarketUS, companies))

		got, ok := GetCompanies(s, models.MarketUS)
		assert.True(t, ok)
		assert.Equal(t, companies, got)
	})
}
