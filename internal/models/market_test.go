package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMarket(t *testing.T) {
	t.Run("Accepts the three registered values", func(t *testing.T) {
		for _, name := range []string{"India", "US", "Both"} {
			market, err := ParseMarket(name)
			assert.NoError(t, err)
			assert.Equal(t, Market(name), market)
		}
	})

	t.Run("Rejects unknown and wrongly-cased values", func(t *testing.T) {
		for _, name := range []string{"", "india", "usa", "Europe"} {
			_, err := ParseMarket(name)
			assert.Error(t, err, name)
		}
	})
}

func TestMarketIncludes(t *testing.T) {
	assert.True(t, MarketIndia.Includes(MarketIndia))
	assert.False(t, MarketIndia.Includes(MarketUS))
	assert.True(t, MarketBoth.Includes(MarketIndia))
	assert.True(t, MarketBoth.Includes(MarketUS))
	assert.False(t, MarketBoth.Includes(MarketBoth))
}

func TestPageMarkets(t *testing.T) {
	markets := PageMarkets()
	assert.Equal(t, []Market{MarketIndia, MarketUS}, markets)
	assert.NotContains(t, markets, MarketBoth)
}
