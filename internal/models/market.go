package models

import "fmt"

// Market represents a trading region scope
type Market string

const (
	MarketIndia Market = "India"
	MarketUS    Market = "US"
	MarketBoth  Market = "Both" // registration-only value, never a page scope
)

// ParseMarket parses a market string (case-sensitive, as stored by the backend)
func ParseMarket(s string) (Market, error) {
	switch Market(s) {
	case MarketIndia, MarketUS, MarketBoth:
		return Market(s), nil
	default:
		return "", fmt.Errorf("unknown market: %q", s)
	}
}

// PageMarkets returns the markets that have their own alerts page
func PageMarkets() []Market {
	return []Market{MarketIndia, MarketUS}
}

// Includes reports whether a user registered for m has access to target.
// "Both" covers both page markets.
func (m Market) Includes(target Market) bool {
	if m == MarketBoth {
		return target == MarketIndia || target == MarketUS
	}
	return m == target
}
