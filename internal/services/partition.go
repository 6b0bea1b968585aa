package services

import (
	"sort"
	"strings"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
)

// DefaultRecentWindow is the number of newest alerts shown outside the archive
const DefaultRecentWindow = 10

// DefaultArchivePageSize is the page size of the flattened archive listing
const DefaultArchivePageSize = 5

// Partitioned holds the two display lists for an alerts page
type Partitioned struct {
	Recent  []models.AlertRecord  `json:"recent"`
	Archive []models.ArchiveGroup `json:"archive"`
}

// PartitionAlerts filters a candidate catalog down to watchlisted tickers,
// sorts by recency and splits the result into the recent window and the
// date-grouped archive. An empty watchlist yields an empty result: alerts are
// meaningless without a watchlist context.
func PartitionAlerts(candidates []models.AlertRecord, watchlistSymbols map[string]bool, recentWindow int) Partitioned {
	if recentWindow <= 0 {
		recentWindow = DefaultRecentWindow
	}

	filtered := make([]models.AlertRecord, 0, len(candidates))
	for _, alert := range candidates {
		if watchlistSymbols[alert.Stock] {
			filtered = append(filtered, alert)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})

	result := Partitioned{
		Recent:  []models.AlertRecord{},
		Archive: []models.ArchiveGroup{},
	}
	if len(filtered) <= recentWindow {
		result.Recent = filtered
		return result
	}

	result.Recent = filtered[:recentWindow]
	result.Archive = groupByDate(filtered[recentWindow:])
	return result
}

// groupByDate buckets alerts by their embedded calendar date, preserving the
// incoming order inside each group, with groups sorted newest-date-first
func groupByDate(alerts []models.AlertRecord) []models.ArchiveGroup {
	byDate := make(map[string][]models.AlertRecord)
	dates := make([]string, 0)
	for _, alert := range alerts {
		if _, seen := byDate[alert.Date]; !seen {
			dates = append(dates, alert.Date)
		}
		byDate[alert.Date] = append(byDate[alert.Date], alert)
	}

	// Dates are YYYY-MM-DD, so lexicographic descending is newest-first.
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	groups := make([]models.ArchiveGroup, 0, len(dates))
	for _, date := range dates {
		groups = append(groups, models.ArchiveGroup{Date: date, Alerts: byDate[date]})
	}
	return groups
}

// SearchArchive re-filters archive groups by a case-insensitive ticker
// substring. The recent window is never touched; an empty query returns the
// archive unchanged.
func SearchArchive(archive []models.ArchiveGroup, query string) []models.ArchiveGroup {
	query = strings.TrimSpace(query)
	if query == "" {
		return archive
	}
	needle := strings.ToLower(query)

	filtered := make([]models.ArchiveGroup, 0, len(archive))
	for _, group := range archive {
		matches := make([]models.AlertRecord, 0, len(group.Alerts))
		for _, alert := range group.Alerts {
			if strings.Contains(strings.ToLower(alert.Stock), needle) {
				matches = append(matches, alert)
			}
		}
		if len(matches) > 0 {
			filtered = append(filtered, models.ArchiveGroup{Date: group.Date, Alerts: matches})
		}
	}
	return filtered
}

// ArchivePage is one page of the flattened archive listing
type ArchivePage struct {
	Alerts     []models.AlertRecord `json:"alerts"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	Total      int                  `json:"total"`
	TotalPages int                  `json:"total_pages"`
}

// PaginateArchive flattens the grouped archive into a date-descending listing
// and returns the requested page. Pages are 1-based; out-of-range pages come
// back empty rather than erroring.
func PaginateArchive(archive []models.ArchiveGroup, page, pageSize int) ArchivePage {
	if pageSize <= 0 {
		pageSize = DefaultArchivePageSize
	}
	if page <= 0 {
		page = 1
	}

	flattened := make([]models.AlertRecord, 0)
	for _, group := range archive {
		flattened = append(flattened, group.Alerts...)
	}
	sort.SliceStable(flattened, func(i, j int) bool {
		return flattened[i].Date > flattened[j].Date
	})

	total := len(flattened)
	totalPages := (total + pageSize - 1) / pageSize

	result := ArchivePage{
		Alerts:     []models.AlertRecord{},
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
	start := (page - 1) * pageSize
	if start >= total {
		return result
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	result.Alerts = flattened[start:end]
	return result
}
