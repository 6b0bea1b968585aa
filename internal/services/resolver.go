package services

import (
	"context"
	"log"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/backend"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/store"
)

// ResolutionTier identifies which fallback source produced the strategy list
type ResolutionTier string

const (
	TierBackend ResolutionTier = "backend"
	TierCache   ResolutionTier = "cache"
	TierStaging ResolutionTier = "staging"
	TierEmpty   ResolutionTier = "empty"
)

// MismatchState is the market-access guard state for a page load
type MismatchState string

const (
	MismatchUnchecked  MismatchState = "unchecked"
	MismatchMatched    MismatchState = "matched"
	MismatchMismatched MismatchState = "mismatched"
)

// MismatchAdvisory describes the dismissible banner offered when the page's
// market does not match the user's registered market. Purely advisory; the
// backend remains the access-control authority.
type MismatchAdvisory struct {
	SuggestedMarket models.Market `json:"suggested_market,omitempty"`
	RedirectTo      string        `json:"redirect_to"`
	DelayMS         int           `json:"delay_ms"`
}

// Resolution is the outcome of resolving active strategies for one page load
type Resolution struct {
	Market     models.Market       `json:"market"`
	Strategies []string            `json:"strategies"`
	Tier       ResolutionTier      `json:"tier"`
	Mismatch   MismatchState       `json:"mismatch"`
	Advisory   *MismatchAdvisory   `json:"advisory,omitempty"`
	User       *backend.UserRecord `json:"-"` // set only when the backend tier answered
}

// ResolverService determines the authoritative set of active strategies for a
// user and market by walking the fallback tiers: backend record, local cache,
// fresh-registration staging, empty.
type ResolverService struct {
	backend       backend.Client
	store         store.PreferenceStore
	bannerDelayMS int
}

// NewResolverService creates a new resolver service
func NewResolverService(client backend.Client, prefStore store.PreferenceStore, bannerDelayMS int) *ResolverService {
	if bannerDelayMS <= 0 {
		bannerDelayMS = 1000
	}
	return &ResolverService{
		backend:       client,
		store:         prefStore,
		bannerDelayMS: bannerDelayMS,
	}
}

// Resolve produces the active strategy list for (userID, market). Network
// failures at any tier fall through to the next source and are never surfaced
// to the caller; an empty result means "no alerts configured", not an error.
func (s *ResolverService) Resolve(ctx context.Context, userID string, market models.Market) *Resolution {
	res := &Resolution{
		Market:     market,
		Strategies: []string{},
		Tier:       TierEmpty,
		Mismatch:   MismatchUnchecked,
	}

	// Tier 1: remote backend record
	user, err := s.backend.GetUser(ctx, userID)
	if err != nil {
		log.Printf("Resolver: backend lookup failed for user %s, falling through: %v", userID, err)
	} else {
		if !user.MarketActive(market) {
			res.Mismatch = MismatchMismatched
			res.Advisory = s.advisoryFor(user, market)
			return res
		}
		res.Mismatch = MismatchMatched
		res.User = user

		if alerts := user.AlertsFor(market); alerts != nil && len(alerts.Strategies) > 0 {
			res.Strategies = alerts.Strategies
			res.Tier = TierBackend
			s.mirror(userID, market, user, alerts.Strategies)
			return res
		}
	}

	// Tier 2: local cache
	if cached, ok := store.GetStrategies(s.store, userID, market); ok {
		res.Strategies = cached
		res.Tier = TierCache
		return res
	}

	// Tier 3: fresh-registration staging
	if staging, ok := store.GetStaging(s.store, userID); ok && staging.Market.Includes(market) {
		res.Strategies = staging.Strategies
		res.Tier = TierStaging

		// Push the staged selection upstream; failure is logged, not fatal.
		if err := s.backend.RegisterPreferences(ctx, staging.Email,
			[]string{string(staging.Market)}, staging.Strategies); err != nil {
			log.Printf("Resolver: failed to push staged preferences for user %s: %v", userID, err)
		}
		if err := store.SetStrategies(s.store, userID, market, staging.Strategies); err != nil {
			log.Printf("Resolver: failed to mirror staged strategies for user %s: %v", userID, err)
		}
		if err := store.ClearStaging(s.store, userID); err != nil {
			log.Printf("Resolver: failed to clear staging for user %s: %v", userID, err)
		}
		return res
	}

	// Tier 4: nothing configured
	return res
}

// mirror writes a successful backend resolution into the local cache
func (s *ResolverService) mirror(userID string, market models.Market, user *backend.UserRecord, strategies []string) {
	if err := store.SetStrategies(s.store, userID, market, strategies); err != nil {
		log.Printf("Resolver: failed to mirror strategies for user %s: %v", userID, err)
	}
	if watchlist := user.WatchlistFor(market); watchlist != nil {
		if err := store.SetWatchlist(s.store, userID, market, watchlist); err != nil {
			log.Printf("Resolver: failed to mirror watchlist for user %s: %v", userID, err)
		}
	}
	profile := &models.UserPreferenceRecord{
		UserID:           user.UserID,
		Email:            user.Email,
		Market:           models.Market(user.Market),
		ActiveStrategies: strategies,
	}
	if profile.UserID == "" {
		profile.UserID = userID
	}
	if err := store.SetProfile(s.store, profile); err != nil {
		log.Printf("Resolver: failed to mirror profile for user %s: %v", userID, err)
	}
}

// advisoryFor builds the banner payload for a mismatched page: redirect to
// the market the user actually registered for, or to registration when that
// cannot be determined.
func (s *ResolverService) advisoryFor(user *backend.UserRecord, pageMarket models.Market) *MismatchAdvisory {
	advisory := &MismatchAdvisory{
		RedirectTo: "/registration",
		DelayMS:    s.bannerDelayMS,
	}
	registered, err := models.ParseMarket(user.Market)
	if err != nil {
		return advisory
	}
	switch registered {
	case models.MarketIndia, models.MarketUS:
		advisory.SuggestedMarket = registered
		advisory.RedirectTo = PageRouteFor(registered)
	case models.MarketBoth:
		// Both covers every page market; a mismatch here means the flags
		// disagree with the registration. Suggest the other page.
		for _, m := range models.PageMarkets() {
			if m != pageMarket {
				advisory.SuggestedMarket = m
				advisory.RedirectTo = PageRouteFor(m)
			}
		}
	}
	return advisory
}

// PageRouteFor returns the alerts page route for a market
func PageRouteFor(market models.Market) string {
	switch market {
	case models.MarketIndia:
		return "/live-alerts-india"
	case models.MarketUS:
		return "/live-alerts-us"
	}
	return "/registration"
}
