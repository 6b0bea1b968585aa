package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/backend"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/store"
)

// ErrRemovalNotConfirmed is returned when the user declines the removal prompt
var ErrRemovalNotConfirmed = errors.New("removal not confirmed")

// ConfirmFunc asks the user to confirm a destructive action. Keeping this a
// callback keeps the coordinator free of any UI dialog dependency.
type ConfirmFunc func(prompt string) bool

// WatchlistLimitError rejects a watchlist add batch that would exceed the
// per-market ceiling. Remaining says how many more entries may be added.
type WatchlistLimitError struct {
	Market    models.Market
	Remaining int
}

func (e *WatchlistLimitError) Error() string {
	if e.Remaining <= 0 {
		return fmt.Sprintf("Your %s watchlist is full (%d companies max).", e.Market, models.MaxWatchlistEntries)
	}
	return fmt.Sprintf("You can add only %d more companies to your %s watchlist.", e.Remaining, e.Market)
}

// MutationService applies add/remove operations for strategies and watchlist
// symbols, keeping the local cache in step with the remote backend. Strategy
// adds are optimistic; removals and watchlist changes go remote-first.
type MutationService struct {
	backend backend.Client
	store   store.PreferenceStore
}

// NewMutationService creates a new mutation service
func NewMutationService(client backend.Client, prefStore store.PreferenceStore) *MutationService {
	return &MutationService{backend: client, store: prefStore}
}

// AddStrategies merges additions into the active set, persists the merged set
// locally, then issues one remote add call per new strategy. Remote failures
// are logged and returned as messages but never roll back the optimistic
// local state.
func (s *MutationService) AddStrategies(ctx context.Context, userID, email string, market models.Market, current, additions []string) ([]string, []string) {
	newOnes := make([]string, 0, len(additions))
	for _, name := range additions {
		if !models.ContainsStrategy(current, name) && !models.ContainsStrategy(newOnes, name) {
			newOnes = append(newOnes, name)
		}
	}
	if len(newOnes) == 0 {
		return current, nil
	}

	merged := models.MergeStrategies(current, newOnes)
	if err := store.SetStrategies(s.store, userID, market, merged); err != nil {
		log.Printf("Mutation: failed to cache merged strategies for user %s: %v", userID, err)
	}

	// One call per strategy; the backend has no batch add.
	var failures []string
	for _, name := range newOnes {
		if err := s.backend.UpdatePreference(ctx, email, market, name, "add"); err != nil {
			log.Printf("Mutation: remote add of %q failed for user %s: %v", name, userID, err)
			failures = append(failures, backend.UserMessage(err))
		}
	}
	return merged, failures
}

// RemoveStrategy removes one strategy after explicit confirmation. Removing a
// strategy that is not active is a no-op with no remote call. The remote call
// goes first; local state changes only when it succeeds.
func (s *MutationService) RemoveStrategy(ctx context.Context, userID, email string, market models.Market, current []string, name string, confirm ConfirmFunc) ([]string, error) {
	if !models.ContainsStrategy(current, name) {
		return current, nil
	}
	if confirm == nil || !confirm(fmt.Sprintf("Remove %q from your %s alerts?", name, market)) {
		return current, ErrRemovalNotConfirmed
	}

	if err := s.backend.UpdatePreference(ctx, email, market, name, "remove"); err != nil {
		return current, err
	}

	updated := make([]string, 0, len(current)-1)
	for _, strategy := range current {
		if strategy != name {
			updated = append(updated, strategy)
		}
	}
	if err := store.SetStrategies(s.store, userID, market, updated); err != nil {
		log.Printf("Mutation: failed to cache strategies after removal for user %s: %v", userID, err)
	}
	return updated, nil
}

// AddWatchlistCompanies adds a batch of companies to a market's watchlist.
// Companies already present are silently dropped from the batch; a batch that
// would push the list past the ceiling is rejected whole with no remote call.
func (s *MutationService) AddWatchlistCompanies(ctx context.Context, userID string, market models.Market, current, additions []models.WatchlistEntry) ([]models.WatchlistEntry, error) {
	newOnes := make([]models.WatchlistEntry, 0, len(additions))
	for _, entry := range additions {
		if models.ContainsCompany(current, entry.CompanyName) || models.ContainsCompany(newOnes, entry.CompanyName) {
			continue
		}
		newOnes = append(newOnes, entry)
	}
	if len(newOnes) == 0 {
		return current, nil
	}

	if len(current)+len(newOnes) > models.MaxWatchlistEntries {
		return current, &WatchlistLimitError{
			Market:    market,
			Remaining: models.MaxWatchlistEntries - len(current),
		}
	}

	if err := s.backend.UpdateWatchlist(ctx, userID, market, newOnes); err != nil {
		return current, err
	}

	updated := append(append([]models.WatchlistEntry{}, current...), newOnes...)
	if err := store.SetWatchlist(s.store, userID, market, updated); err != nil {
		log.Printf("Mutation: failed to cache watchlist for user %s: %v", userID, err)
	}
	return updated, nil
}

// CurrentWatchlist returns the watchlist to mutate against: the backend
// record when reachable, the cached snapshot otherwise
func (s *MutationService) CurrentWatchlist(ctx context.Context, userID string, market models.Market) []models.WatchlistEntry {
	if user, err := s.backend.GetUser(ctx, userID); err == nil {
		if watchlist := user.WatchlistFor(market); watchlist != nil {
			if err := store.SetWatchlist(s.store, userID, market, watchlist); err != nil {
				log.Printf("Mutation: failed to cache watchlist for user %s: %v", userID, err)
			}
			return watchlist
		}
	} else {
		log.Printf("Mutation: backend lookup failed for user %s, using cached watchlist: %v", userID, err)
	}
	if cached, ok := store.GetWatchlist(s.store, userID, market); ok {
		return cached
	}
	return []models.WatchlistEntry{}
}

// RemoveWatchlistCompany removes one company by display name. Removing a
// company that is not on the list is a no-op with no remote call.
func (s *MutationService) RemoveWatchlistCompany(ctx context.Context, userID string, market models.Market, current []models.WatchlistEntry, companyName string) ([]models.WatchlistEntry, error) {
	if !models.ContainsCompany(current, companyName) {
		return current, nil
	}

	if err := s.backend.RemoveWatchlistCompany(ctx, userID, market, companyName); err != nil {
		return current, err
	}

	updated := make([]models.WatchlistEntry, 0, len(current)-1)
	for _, entry := range current {
		if entry.CompanyName != companyName {
			updated = append(updated, entry)
		}
	}
	if err := store.SetWatchlist(s.store, userID, market, updated); err != nil {
		log.Printf("Mutation: failed to cache watchlist after removal for user %s: %v", userID, err)
	}
	return updated, nil
}
