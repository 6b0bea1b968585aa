package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/backend"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/store"
)

// JobScheduler runs the background maintenance jobs: refreshing the cached
// per-market company lists and sweeping expired cache entries
type JobScheduler struct {
	cron    *cron.Cron
	backend backend.Client
	store   store.PreferenceStore
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(client backend.Client, prefStore store.PreferenceStore) *JobScheduler {
	return &JobScheduler{
		cron:    cron.New(),
		backend: client,
		store:   prefStore,
	}
}

// Start registers the jobs with their cron specs and starts the scheduler
func (s *JobScheduler) Start(companyRefreshSpec, sweepSpec string) error {
	if _, err := s.cron.AddFunc(companyRefreshSpec, s.RefreshCompanies); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(sweepSpec, s.SweepExpired); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Job scheduler started (company refresh %q, sweep %q)", companyRefreshSpec, sweepSpec)
	return nil
}

// Stop stops the scheduler, waiting for running jobs to finish
func (s *JobScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RefreshCompanies re-caches the selectable-company list for each page market
func (s *JobScheduler) RefreshCompanies() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, market := range models.PageMarkets() {
		companies, err := s.backend.GetCompanies(ctx, market)
		if err != nil {
			log.Printf("Jobs: company refresh failed for %s: %v", market, err)
			continue
		}
		if err := store.SetCompanies(s.store, market, companies); err != nil {
			log.Printf("Jobs: failed to cache companies for %s: %v", market, err)
		}
	}
}

// SweepExpired drops cache entries past their expiry
func (s *JobScheduler) SweepExpired() {
	removed, err := s.store.SweepExpired()
	if err != nil {
		log.Printf("Jobs: cache sweep failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Jobs: swept %d expired cache entries", removed)
	}
}
