package services

import (
	"context"
	"log"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/backend"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/store"
)

// ProfileView is the profile page payload: per-market strategies and
// watchlists plus the registration summary
type ProfileView struct {
	UserID          string                  `json:"user_id"`
	Email           string                  `json:"email"`
	Market          models.Market           `json:"market"`
	IndiaStrategies []string                `json:"india_strategies"`
	USStrategies    []string                `json:"us_strategies"`
	IndiaWatchlist  []models.WatchlistEntry `json:"india_watchlist"`
	USWatchlist     []models.WatchlistEntry `json:"us_watchlist"`
	FromCache       bool                    `json:"from_cache"`
}

// ProfileService builds the profile page from the backend record, degrading
// to cached state when the backend is unreachable
type ProfileService struct {
	backend backend.Client
	store   store.PreferenceStore
}

// NewProfileService creates a new profile service
func NewProfileService(client backend.Client, prefStore store.PreferenceStore) *ProfileService {
	return &ProfileService{backend: client, store: prefStore}
}

// Profile fetches the user's profile. A backend failure falls back to the
// cached profile summary; only a miss on both paths is an error.
func (s *ProfileService) Profile(ctx context.Context, userID string) (*ProfileView, error) {
	user, err := s.backend.GetUser(ctx, userID)
	if err != nil {
		log.Printf("Profile: backend lookup failed for user %s, trying cache: %v", userID, err)
		return s.cachedProfile(userID, err)
	}

	view := &ProfileView{
		UserID:          user.UserID,
		Email:           user.Email,
		Market:          models.Market(user.Market),
		IndiaStrategies: []string{},
		USStrategies:    []string{},
		IndiaWatchlist:  user.IndiaWatchlist,
		USWatchlist:     user.USWatchlist,
	}
	if view.UserID == "" {
		view.UserID = userID
	}
	if view.IndiaWatchlist == nil {
		view.IndiaWatchlist = []models.WatchlistEntry{}
	}
	if view.USWatchlist == nil {
		view.USWatchlist = []models.WatchlistEntry{}
	}
	if user.IndiaAlerts != nil {
		view.IndiaStrategies = user.IndiaAlerts.Strategies
	}
	if user.USAlerts != nil {
		view.USStrategies = user.USAlerts.Strategies
	}

	s.mirror(userID, view)
	return view, nil
}

// mirror writes the fetched profile into the cache for later offline-ish reads
func (s *ProfileService) mirror(userID string, view *ProfileView) {
	profile := &models.UserPreferenceRecord{
		UserID: view.UserID,
		Email:  view.Email,
		Market: view.Market,
	}
	if err := store.SetProfile(s.store, profile); err != nil {
		log.Printf("Profile: failed to cache profile for user %s: %v", userID, err)
	}
	if err := store.SetStrategies(s.store, userID, models.MarketIndia, view.IndiaStrategies); err != nil {
		log.Printf("Profile: failed to cache India strategies for user %s: %v", userID, err)
	}
	if err := store.SetStrategies(s.store, userID, models.MarketUS, view.USStrategies); err != nil {
		log.Printf("Profile: failed to cache US strategies for user %s: %v", userID, err)
	}
	if err := store.SetWatchlist(s.store, userID, models.MarketIndia, view.IndiaWatchlist); err != nil {
		log.Printf("Profile: failed to cache India watchlist for user %s: %v", userID, err)
	}
	if err := store.SetWatchlist(s.store, userID, models.MarketUS, view.USWatchlist); err != nil {
		log.Printf("Profile: failed to cache US watchlist for user %s: %v", userID, err)
	}
}

// cachedProfile rebuilds a best-effort view from the local cache
func (s *ProfileService) cachedProfile(userID string, cause error) (*ProfileView, error) {
	profile, ok := store.GetProfile(s.store, userID)
	if !ok {
		return nil, cause
	}
	view := &ProfileView{
		UserID:          profile.UserID,
		Email:           profile.Email,
		Market:          profile.Market,
		IndiaStrategies: []string{},
		USStrategies:    []string{},
		IndiaWatchlist:  []models.WatchlistEntry{},
		USWatchlist:     []models.WatchlistEntry{},
		FromCache:       true,
	}
	if strategies, ok := store.GetStrategies(s.store, userID, models.MarketIndia); ok {
		view.IndiaStrategies = strategies
	}
	if strategies, ok := store.GetStrategies(s.store, userID, models.MarketUS); ok {
		view.USStrategies = strategies
	}
	if watchlist, ok := store.GetWatchlist(s.store, userID, models.MarketIndia); ok {
		view.IndiaWatchlist = watchlist
	}
	if watchlist, ok := store.GetWatchlist(s.store, userID, models.MarketUS); ok {
		view.USWatchlist = watchlist
	}
	return view, nil
}
