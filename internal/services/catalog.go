package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/backend"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
)

// neutralRSI is the placeholder used when the live feed omits an RSI reading
const neutralRSI = 50

// CatalogService assembles the candidate alert catalog for a page load. The
// Momentum Riders strategy draws from the live backend feed; every other
// strategy draws from the static sample catalog.
type CatalogService struct {
	backend backend.Client
	now     func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(client backend.Client) *CatalogService {
	return &CatalogService{
		backend: client,
		now:     time.Now,
	}
}

// BuildCatalog produces the unified candidate catalog for the given active
// strategies. A live feed failure degrades to an empty momentum contribution
// rather than failing the whole catalog.
func (s *CatalogService) BuildCatalog(ctx context.Context, market models.Market, activeStrategies []string) []models.AlertRecord {
	catalog := make([]models.AlertRecord, 0)
	for _, strategy := range activeStrategies {
		if strategy == models.StrategyMomentumRiders {
			live, err := s.backend.GetLiveAlerts(ctx, market)
			if err != nil {
				log.Printf("Catalog: live feed unavailable for %s: %v", market, err)
				continue
			}
			for _, alert := range live {
				catalog = append(catalog, MapLiveAlert(alert))
			}
			continue
		}
		catalog = append(catalog, SampleAlerts(market, strategy, s.now())...)
	}
	return catalog
}

// MapLiveAlert converts a live feed record into an AlertRecord, defaulting
// missing numeric fields to neutral placeholders
func MapLiveAlert(alert backend.LiveAlert) models.AlertRecord {
	price := alert.Price
	if price == "" {
		price = "N/A"
	}
	rsi := float64(neutralRSI)
	if alert.RSI != nil {
		rsi = *alert.RSI
	}
	timestamp := time.Unix(alert.Timestamp, 0).UTC()
	date := alert.Date
	if date == "" {
		date = timestamp.Format("2006-01-02")
	}
	description := alert.Description
	if description == "" {
		description = fmt.Sprintf("%s momentum signal on %s", models.StrategyMomentumRiders, alert.Symbol)
	}
	return models.AlertRecord{
		Stock:         alert.Symbol,
		StrategyType:  models.StrategyMomentumRiders,
		Price:         price,
		PercentChange: alert.PercentChange,
		RSIValue:      rsi,
		RSIStatus:     models.RSIStatusFor(rsi),
		Timestamp:     timestamp,
		Date:          date,
		NewsURL:       alert.NewsURL,
		ChartURL:      alert.ChartURL,
		Description:   description,
	}
}
