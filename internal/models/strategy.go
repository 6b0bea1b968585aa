package models

// Strategy names a user can subscribe to per market. Only Momentum Riders is
// backed by the live feed; the rest are served from the sample catalog.
const (
	StrategyMomentumRiders  = "Momentum Riders"
	StrategyMeanReversion   = "Mean Reversion"
	StrategyBreakoutHunters = "Breakout Hunters"
	StrategyGoldenCrossover = "Golden Crossover"
	StrategyRSIExtremes     = "RSI Extremes"
	StrategyVolumeSurge     = "Volume Surge"
)

// AllStrategies lists every strategy offered at registration, in display order.
var AllStrategies = []string{
	StrategyMomentumRiders,
	StrategyMeanReversion,
	StrategyBreakoutHunters,
	StrategyGoldenCrossover,
	StrategyRSIExtremes,
	StrategyVolumeSurge,
}

// IsValidStrategy reports whether name is one of the offered strategies
func IsValidStrategy(name string) bool {
	for _, s := range AllStrategies {
		if s == name {
			return true
		}
	}
	return false
}

// MergeStrategies unions additions into current, preserving first-seen order
// and dropping duplicates. The inputs are not modified.
func MergeStrategies(current, additions []string) []string {
	merged := make([]string, 0, len(current)+len(additions))
	seen := make(map[string]bool, len(current)+len(additions))
	for _, s := range current {
		if !seen[s] {
			seen[s] = true
			merged = append(merged, s)
		}
	}
	for _, s := range additions {
		if !seen[s] {
			seen[s] = true
			merged = append(merged, s)
		}
	}
	return merged
}

// ContainsStrategy reports whether name is present in strategies
func ContainsStrategy(strategies []string, name string) bool {
	for _, s := range strategies {
		if s == name {
			return true
		}
	}
	return false
}
