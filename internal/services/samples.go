package services

import (
	"fmt"
	"time"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
)

// Static sample catalog. Every strategy except Momentum Riders is served from
// this fabricated set; records are regenerated per load relative to "now" so
// the recent window always has content to show.

var sampleTickers = map[models.Market][]string{
	models.MarketIndia: {"RELIANCE", "TCS", "INFY", "HDFCBANK", "TATAMOTORS", "ICICIBANK"},
	models.MarketUS:    {"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "NVDA"},
}

var samplePrices = map[models.Market][]string{
	models.MarketIndia: {"2841.55", "3912.10", "1498.25", "1672.40", "948.75", "1089.30"},
	models.MarketUS:    {"227.48", "415.22", "166.85", "183.10", "244.67", "121.35"},
}

// sampleProfile shapes the fabricated numbers per strategy
type sampleProfile struct {
	rsiBase     float64
	rsiStep     float64
	changeBase  float64
	description string
}

var sampleProfiles = map[string]sampleProfile{
	models.StrategyMeanReversion:   {rsiBase: 24, rsiStep: 3, changeBase: -2.4, description: "Price stretched below its 20-day mean"},
	models.StrategyBreakoutHunters: {rsiBase: 63, rsiStep: 2, changeBase: 3.1, description: "Range breakout on above-average volume"},
	models.StrategyGoldenCrossover: {rsiBase: 58, rsiStep: 4, changeBase: 1.8, description: "50-day average crossed above the 200-day"},
	models.StrategyRSIExtremes:     {rsiBase: 72, rsiStep: 4, changeBase: 2.6, description: "RSI pushed into an extreme zone"},
	models.StrategyVolumeSurge:     {rsiBase: 55, rsiStep: 5, changeBase: 4.2, description: "Volume spiked to 3x the trailing average"},
}

// SampleAlerts generates the static sample records for one strategy and
// market, timestamped relative to now. Unknown strategies produce nothing.
func SampleAlerts(market models.Market, strategy string, now time.Time) []models.AlertRecord {
	profile, ok := sampleProfiles[strategy]
	if !ok {
		return nil
	}
	tickers := sampleTickers[market]
	prices := samplePrices[market]
	if len(tickers) == 0 {
		return nil
	}

	alerts := make([]models.AlertRecord, 0, len(tickers)*2)
	for i, ticker := range tickers {
		rsi := profile.rsiBase + float64(i)*profile.rsiStep
		change := profile.changeBase + float64(i)*0.4

		// One fresh record and one older record per ticker, so both the
		// recent window and the archive have material.
		offsets := []time.Duration{
			time.Duration(2+i*3) * time.Hour,
			time.Duration(30+i*26) * time.Hour,
		}
		for _, offset := range offsets {
			timestamp := now.Add(-offset).UTC()
			alerts = append(alerts, models.AlertRecord{
				Stock:         ticker,
				StrategyType:  strategy,
				Price:         prices[i],
				PercentChange: change,
				RSIValue:      rsi,
				RSIStatus:     models.RSIStatusFor(rsi),
				Timestamp:     timestamp,
				Date:          timestamp.Format("2006-01-02"),
				ChartURL:      fmt.Sprintf("https://www.tradingview.com/chart/?symbol=%s", ticker),
				Description:   fmt.Sprintf("%s: %s", ticker, profile.description),
			})
		}
	}
	return alerts
}

// SampleCompanies returns the fallback selectable-company list for a market,
// used when both the backend and the cache have nothing
func SampleCompanies(market models.Market) []models.WatchlistEntry {
	tickers := sampleTickers[market]
	companies := make([]models.WatchlistEntry, 0, len(tickers))
	for _, ticker := range tickers {
		companies = append(companies, models.WatchlistEntry{
			CompanyName: ticker,
			BaseSymbol:  ticker,
		})
	}
	return companies
}
