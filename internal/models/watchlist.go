package models

// MaxWatchlistEntries is the per-market watchlist ceiling. Enforced here as a
// courtesy check; the backend applies its own limit and remains authoritative.
const MaxWatchlistEntries = 20

// WatchlistEntry represents one company on a per-market watchlist. CompanyName
// is the unique key for add/remove operations, not the ticker.
type WatchlistEntry struct {
	CompanyName string `json:"company_name"`
	BaseSymbol  string `json:"base_symbol"`
}

// WatchlistSymbols extracts the ticker set from a watchlist
func WatchlistSymbols(entries []WatchlistEntry) map[string]bool {
	symbols := make(map[string]bool, len(entries))
	for _, e := range entries {
		symbols[e.BaseSymbol] = true
	}
	return symbols
}

// ContainsCompany reports whether entries already holds companyName
func ContainsCompany(entries []WatchlistEntry, companyName string) bool {
	for _, e := range entries {
		if e.CompanyName == companyName {
			return true
		}
	}
	return false
}
