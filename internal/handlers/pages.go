package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/backend"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/config"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/services"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/store"
)

// Global handler instance
var globalHandler *PageHandler

// PageHandler serves the page routes: alerts pages, profile, watchlist,
// newsletter and registration
type PageHandler struct {
	pageService       *services.AlertPageService
	mutationService   *services.MutationService
	resolverService   *services.ResolverService
	profileService    *services.ProfileService
	newsletterService *services.NewsletterService
	accountService    *services.AccountService
	backend           backend.Client
	store             store.PreferenceStore
}

// NewPageHandler creates a new page handler wired to the given backend client
// and preference store
func NewPageHandler(client backend.Client, prefStore store.PreferenceStore, cfg *config.AlertsConfig) *PageHandler {
	recentWindow := services.DefaultRecentWindow
	archivePageSize := services.DefaultArchivePageSize
	bannerDelay := 1000
	if cfg != nil {
		recentWindow = cfg.RecentWindow
		archivePageSize = cfg.ArchivePageSize
		bannerDelay = cfg.MismatchBannerDelayMS
	}

	resolver := services.NewResolverService(client, prefStore, bannerDelay)
	catalog := services.NewCatalogService(client)

	return &PageHandler{
		pageService:       services.NewAlertPageService(resolver, catalog, prefStore, recentWindow, archivePageSize),
		mutationService:   services.NewMutationService(client, prefStore),
		resolverService:   resolver,
		profileService:    services.NewProfileService(client, prefStore),
		newsletterService: services.NewNewsletterService(client, prefStore),
		accountService:    services.NewAccountService(client, prefStore),
		backend:           client,
		store:             prefStore,
	}
}

// SetGlobalHandler sets the global handler instance
func SetGlobalHandler(handler *PageHandler) {
	globalHandler = handler
}

// GetGlobalHandler returns the global handler instance
func GetGlobalHandler() *PageHandler {
	return globalHandler
}

// marketFromParam parses the :market path segment. Only the page markets are
// valid here; "both" is a registration value, not a page.
func marketFromParam(c *gin.Context) (models.Market, bool) {
	switch strings.ToLower(c.Param("market")) {
	case "india":
		return models.MarketIndia, true
	case "us":
		return models.MarketUS, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "market must be 'india' or 'us'"})
	return "", false
}

// requireUserID reads the user_id query parameter
func requireUserID(c *gin.Context) (string, bool) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id parameter is required"})
		return "", false
	}
	return userID, true
}

// GetAlertsPage renders the alerts page payload for a market
func (h *PageHandler) GetAlertsPage(c *gin.Context) {
	market, ok := marketFromParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	page := h.pageService.BuildPage(c.Request.Context(), userID, market)
	c.JSON(http.StatusOK, page)
}

// GetArchive serves the searched, paginated archive listing
func (h *PageHandler) GetArchive(c *gin.Context) {
	market, ok := marketFromParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	pageNum, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	query := c.Query("query")

	archive := h.pageService.ArchiveView(c.Request.Context(), userID, market, query, pageNum)
	c.JSON(http.StatusOK, archive)
}

// addStrategiesRequest is the add-strategies payload
type addStrategiesRequest struct {
	UserID     string   `json:"user_id" binding:"required"`
	Email      string   `json:"email" binding:"required,email"`
	Strategies []string `json:"strategies" binding:"required,min=1"`
}

// AddStrategies merges new strategies into the user's active set and returns
// the refreshed page so the display reflects the new strategy set
func (h *PageHandler) AddStrategies(c *gin.Context) {
	market, ok := marketFromParam(c)
	if !ok {
		return
	}
	var req addStrategiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	for _, name := range req.Strategies {
		if !models.IsValidStrategy(name) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown strategy: " + name})
			return
		}
	}

	ctx := c.Request.Context()
	resolution := h.resolverService.Resolve(ctx, req.UserID, market)
	merged, failures := h.mutationService.AddStrategies(ctx, req.UserID, req.Email, market, resolution.Strategies, req.Strategies)

	response := gin.H{
		"strategies": merged,
		"page":       h.pageService.BuildPage(ctx, req.UserID, market),
	}
	if len(failures) > 0 {
		response["warnings"] = failures
	}
	c.JSON(http.StatusOK, response)
}

// removeStrategyRequest is the remove-strategy payload. Confirm carries the
// user's answer to the removal prompt.
type removeStrategyRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Confirm bool   `json:"confirm"`
}

// RemoveStrategy removes a single strategy after explicit confirmation
func (h *PageHandler) RemoveStrategy(c *gin.Context) {
	market, ok := marketFromParam(c)
	if !ok {
		return
	}
	strategy := c.Param("strategy")
	var req removeStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	resolution := h.resolverService.Resolve(ctx, req.UserID, market)
	updated, err := h.mutationService.RemoveStrategy(ctx, req.UserID, req.Email, market,
		resolution.Strategies, strategy, func(string) bool { return req.Confirm })
	if err == services.ErrRemovalNotConfirmed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Removal requires confirmation"})
		return
	}
	if err != nil {
		log.Printf("Failed to remove strategy %q for user %s: %v", strategy, req.UserID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"strategies": updated,
		"page":       h.pageService.BuildPage(ctx, req.UserID, market),
	})
}

// GetWatchlist returns the user's watchlist for a market
func (h *PageHandler) GetWatchlist(c *gin.Context) {
	market, ok := marketFromParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	watchlist := h.mutationService.CurrentWatchlist(c.Request.Context(), userID, market)
	c.JSON(http.StatusOK, gin.H{
		"market":    market,
		"watchlist": watchlist,
		"remaining": models.MaxWatchlistEntries - len(watchlist),
	})
}

// addWatchlistRequest is the watchlist add-batch payload
type addWatchlistRequest struct {
	UserID    string                  `json:"user_id" binding:"required"`
	Companies []models.WatchlistEntry `json:"companies" binding:"required,min=1"`
}

// AddWatchlistCompanies adds a batch of companies to the market's watchlist
func (h *PageHandler) AddWatchlistCompanies(c *gin.Context) {
	market, ok := marketFromParam(c)
	if !ok {
		return
	}
	var req addWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	current := h.mutationService.CurrentWatchlist(ctx, req.UserID, market)
	updated, err := h.mutationService.AddWatchlistCompanies(ctx, req.UserID, market, current, req.Companies)
	if err != nil {
		if limitErr, isLimit := err.(*services.WatchlistLimitError); isLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": limitErr.Error()})
			return
		}
		log.Printf("Failed to add watchlist companies for user %s: %v", req.UserID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"market":    market,
		"watchlist": updated,
		"remaining": models.MaxWatchlistEntries - len(updated),
	})
}

// removeWatchlistRequest identifies the user removing a company
type removeWatchlistRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// RemoveWatchlistCompany removes one company by display name
func (h *PageHandler) RemoveWatchlistCompany(c *gin.Context) {
	market, ok := marketFromParam(c)
	if !ok {
		return
	}
	companyName := c.Param("company")
	var req removeWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	current := h.mutationService.CurrentWatchlist(ctx, req.UserID, market)
	updated, err := h.mutationService.RemoveWatchlistCompany(ctx, req.UserID, market, current, companyName)
	if err != nil {
		log.Printf("Failed to remove %q from watchlist for user %s: %v", companyName, req.UserID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"market":    market,
		"watchlist": updated,
		"remaining": models.MaxWatchlistEntries - len(updated),
	})
}

// GetCompanies lists the selectable companies for a market: backend first,
// cached list next, the built-in sample universe as the last resort
func (h *PageHandler) GetCompanies(c *gin.Context) {
	market, ok := marketFromParam(c)
	if !ok {
		return
	}

	companies, err := h.backend.GetCompanies(c.Request.Context(), market)
	if err != nil {
		log.Printf("Company list fetch failed for %s, serving fallback: %v", market, err)
		if cached, found := store.GetCompanies(h.store, market); found {
			companies = cached
		} else {
			companies = services.SampleCompanies(market)
		}
	} else {
		if err := store.SetCompanies(h.store, market, companies); err != nil {
			log.Printf("Failed to cache companies for %s: %v", market, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"market":    market,
		"companies": companies,
	})
}
