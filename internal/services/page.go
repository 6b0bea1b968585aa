package services

import (
	"context"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/store"
)

// AlertsPage is everything an alerts page needs for one render: the resolved
// strategies, the watchlist, the recent window and the date-grouped archive,
// plus the market-mismatch advisory when one applies.
type AlertsPage struct {
	Market     models.Market           `json:"market"`
	Strategies []string                `json:"strategies"`
	Tier       ResolutionTier          `json:"tier"`
	Mismatch   MismatchState           `json:"mismatch"`
	Advisory   *MismatchAdvisory       `json:"advisory,omitempty"`
	Watchlist  []models.WatchlistEntry `json:"watchlist"`
	Recent     []models.AlertRecord    `json:"recent"`
	Archive    []models.ArchiveGroup   `json:"archive"`
}

// AlertPageService orchestrates a page load: resolve strategies, gather the
// watchlist, build the candidate catalog and partition it for display
type AlertPageService struct {
	resolver        *ResolverService
	catalog         *CatalogService
	store           store.PreferenceStore
	recentWindow    int
	archivePageSize int
}

// NewAlertPageService creates a new alert page service
func NewAlertPageService(resolver *ResolverService, catalog *CatalogService, prefStore store.PreferenceStore, recentWindow, archivePageSize int) *AlertPageService {
	if recentWindow <= 0 {
		recentWindow = DefaultRecentWindow
	}
	if archivePageSize <= 0 {
		archivePageSize = DefaultArchivePageSize
	}
	return &AlertPageService{
		resolver:        resolver,
		catalog:         catalog,
		store:           prefStore,
		recentWindow:    recentWindow,
		archivePageSize: archivePageSize,
	}
}

// BuildPage assembles the alerts page for a user and market. Every failure
// path degrades to an empty or partially populated page, never an error.
func (s *AlertPageService) BuildPage(ctx context.Context, userID string, market models.Market) *AlertsPage {
	resolution := s.resolver.Resolve(ctx, userID, market)

	page := &AlertsPage{
		Market:     market,
		Strategies: resolution.Strategies,
		Tier:       resolution.Tier,
		Mismatch:   resolution.Mismatch,
		Advisory:   resolution.Advisory,
		Watchlist:  []models.WatchlistEntry{},
		Recent:     []models.AlertRecord{},
		Archive:    []models.ArchiveGroup{},
	}
	if resolution.Mismatch == MismatchMismatched {
		return page
	}

	page.Watchlist = s.watchlistFor(resolution, userID, market)

	catalog := s.catalog.BuildCatalog(ctx, market, resolution.Strategies)
	partitioned := PartitionAlerts(catalog, models.WatchlistSymbols(page.Watchlist), s.recentWindow)
	page.Recent = partitioned.Recent
	page.Archive = partitioned.Archive
	return page
}

// ArchiveView applies the archive text search and the flattened pagination on
// top of a fresh page build. Search narrows the paginated listing too; the
// recent window is unaffected by either.
func (s *AlertPageService) ArchiveView(ctx context.Context, userID string, market models.Market, query string, pageNum int) ArchivePage {
	page := s.BuildPage(ctx, userID, market)
	archive := SearchArchive(page.Archive, query)
	return PaginateArchive(archive, pageNum, s.archivePageSize)
}

// watchlistFor prefers the backend record fetched during resolution, falling
// back to the cached snapshot
func (s *AlertPageService) watchlistFor(resolution *Resolution, userID string, market models.Market) []models.WatchlistEntry {
	if resolution.User != nil {
		if watchlist := resolution.User.WatchlistFor(market); watchlist != nil {
			return watchlist
		}
	}
	if cached, ok := store.GetWatchlist(s.store, userID, market); ok {
		return cached
	}
	return []models.WatchlistEntry{}
}
