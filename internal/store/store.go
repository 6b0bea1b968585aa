package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
)

// SharedArticleTTL bounds the shared-article pointer used to deep-link a
// newsletter article across a redirect hop
const SharedArticleTTL = 60 * time.Second

// PreferenceStore is the local preference cache. It mirrors state whose
// authoritative copy lives in the remote backend; entries are best-effort
// with no freshness guarantee. Implementations must treat a missing key as a
// miss, not an error.
type PreferenceStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	SetWithTTL(key, value string, ttl time.Duration) error
	Delete(key string) error
	Clear() error

	// SweepExpired removes entries past their expiry and reports how many
	// were dropped. Backends with native expiry may report zero.
	SweepExpired() (int, error)
}

// Cache key layout. Keys are flat strings so any KV backend can serve them.
func strategiesKey(userID string, market models.Market) string {
	return fmt.Sprintf("strategies:%s:%s", userID, market)
}

func watchlistKey(userID string, market models.Market) string {
	return fmt.Sprintf("watchlist:%s:%s", userID, market)
}

func profileKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

func stagingKey(userID string) string {
	return fmt.Sprintf("staging:%s", userID)
}

func companiesKey(market models.Market) string {
	return fmt.Sprintf("companies:%s", market)
}

const sharedArticleKey = "shared_article"

// GetStrategies reads the cached strategy list for a user and market.
// Malformed cache content is silently discarded and reported as a miss so
// resolution can fall through to the next source.
func GetStrategies(s PreferenceStore, userID string, market models.Market) ([]string, bool) {
	raw, ok := s.Get(strategiesKey(userID, market))
	if !ok {
		return nil, false
	}
	var strategies []string
	if err := json.Unmarshal([]byte(raw), &strategies); err != nil {
		return nil, false
	}
	return strategies, true
}

// SetStrategies mirrors a resolved strategy list into the cache
func SetStrategies(s PreferenceStore, userID string, market models.Market, strategies []string) error {
	data, err := json.Marshal(strategies)
	if err != nil {
		return fmt.Errorf("failed to marshal strategies: %w", err)
	}
	return s.Set(strategiesKey(userID, market), string(data))
}

// GetWatchlist reads the cached watchlist snapshot for a user and market
func GetWatchlist(s PreferenceStore, userID string, market models.Market) ([]models.WatchlistEntry, bool) {
	raw, ok := s.Get(watchlistKey(userID, market))
	if !ok {
		return nil, false
	}
	var entries []models.WatchlistEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// SetWatchlist mirrors a watchlist snapshot into the cache
func SetWatchlist(s PreferenceStore, userID string, market models.Market, entries []models.WatchlistEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal watchlist: %w", err)
	}
	return s.Set(watchlistKey(userID, market), string(data))
}

// GetProfile reads the cached user profile summary
func GetProfile(s PreferenceStore, userID string) (*models.UserPreferenceRecord, bool) {
	raw, ok := s.Get(profileKey(userID))
	if !ok {
		return nil, false
	}
	var profile models.UserPreferenceRecord
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

// SetProfile mirrors a user profile summary into the cache
func SetProfile(s PreferenceStore, profile *models.UserPreferenceRecord) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return s.Set(profileKey(profile.UserID), string(data))
}

// GetStaging reads the fresh-registration staging record, if one is pending
func GetStaging(s PreferenceStore, userID string) (*models.RegistrationStaging, bool) {
	raw, ok := s.Get(stagingKey(userID))
	if !ok {
		return nil, false
	}
	var staging models.RegistrationStaging
	if err := json.Unmarshal([]byte(raw), &staging); err != nil {
		return nil, false
	}
	return &staging, true
}

// SetStaging stores the strategy selection captured at registration
func SetStaging(s PreferenceStore, staging *models.RegistrationStaging) error {
	data, err := json.Marshal(staging)
	if err != nil {
		return fmt.Errorf("failed to marshal staging: %w", err)
	}
	return s.Set(stagingKey(staging.UserID), string(data))
}

// ClearStaging drops the fresh-registration flag after the staged strategies
// have been consumed
func ClearStaging(s PreferenceStore, userID string) error {
	return s.Delete(stagingKey(userID))
}

// GetCompanies reads the cached selectable-company list for a market
func GetCompanies(s PreferenceStore, market models.Market) ([]models.WatchlistEntry, bool) {
	raw, ok := s.Get(companiesKey(market))
	if !ok {
		return nil, false
	}
	var companies []models.WatchlistEntry
	if err := json.Unmarshal([]byte(raw), &companies); err != nil {
		return nil, false
	}
	return companies, true
}

// SetCompanies caches the selectable-company list for a market
func SetCompanies(s PreferenceStore, market models.Market, companies []models.WatchlistEntry) error {
	data, err := json.Marshal(companies)
	if err != nil {
		return fmt.Errorf("failed to marshal companies: %w", err)
	}
	return s.Set(companiesKey(market), string(data))
}

// GetSharedArticle reads the transient shared-article pointer
func GetSharedArticle(s PreferenceStore) (*models.SharedArticle, bool) {
	raw, ok := s.Get(sharedArticleKey)
	if !ok {
		return nil, false
	}
	var article models.SharedArticle
	if err := json.Unmarshal([]byte(raw), &article); err != nil {
		return nil, false
	}
	return &article, true
}

// SetSharedArticle stores the shared-article pointer with its short TTL
func SetSharedArticle(s PreferenceStore, article *models.SharedArticle) error {
	data, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("failed to marshal shared article: %w", err)
	}
	return s.SetWithTTL(sharedArticleKey, string(data), SharedArticleTTL)
}
