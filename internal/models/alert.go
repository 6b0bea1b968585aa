package models

import "time"

// RSIStatus classifies an RSI reading
type RSIStatus string

const (
	RSIOverbought RSIStatus = "OVERBOUGHT"
	RSIOversold   RSIStatus = "OVERSOLD"
	RSINeutral    RSIStatus = "NEUTRAL"
)

// RSIStatusFor derives the status for an RSI value (overbought at 70 and
// above, oversold at 30 and below)
func RSIStatusFor(rsi float64) RSIStatus {
	switch {
	case rsi >= 70:
		return RSIOverbought
	case rsi <= 30:
		return RSIOversold
	default:
		return RSINeutral
	}
}

// AlertRecord represents a single strategy alert shown on an alerts page.
// Records are ephemeral and rebuilt on every request; nothing here is
// persisted.
type AlertRecord struct {
	Stock         string    `json:"stock"`
	StrategyType  string    `json:"strategy_type"`
	Price         string    `json:"price"` // display value, "N/A" when the feed omits it
	PercentChange float64   `json:"percent_change"`
	RSIValue      float64   `json:"rsi_value"`
	RSIStatus     RSIStatus `json:"rsi_status"`
	Timestamp     time.Time `json:"timestamp"`
	Date          string    `json:"date"` // calendar date embedded per record, YYYY-MM-DD
	NewsURL       string    `json:"news_url,omitempty"`
	ChartURL      string    `json:"chart_url,omitempty"`
	Description   string    `json:"description,omitempty"`
}

// ArchiveGroup holds the alerts for one calendar date beyond the recent window
type ArchiveGroup struct {
	Date   string        `json:"date"`
	Alerts []AlertRecord `json:"alerts"`
}
