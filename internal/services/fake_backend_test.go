package services

import (
	"context"
	"fmt"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/backend"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
)

// fakeBackend is a configurable backend.Client used across service tests.
// Calls are recorded so tests can assert that an operation did or did not
// reach the remote side.
type fakeBackend struct {
	user    *backend.UserRecord
	userErr error

	liveAlerts []backend.LiveAlert
	liveErr    error

	updateErr         error
	updateCalls       []string // "strategy/action"
	registerPrefCalls int
	registerPrefErr   error

	companies    []models.WatchlistEntry
	companiesErr error

	watchlistErr         error
	watchlistAddCalls    int
	watchlistRemoveErr   error
	watchlistRemoveCalls []string

	subscribeErr error
	registerResp *backend.RegisterResponse
	registerErr  error
	loginResp    *backend.LoginResponse
	loginErr     error
}

func (f *fakeBackend) GetUser(ctx context.Context, userID string) (*backend.UserRecord, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	if f.user == nil {
		return nil, fmt.Errorf("%w: no user configured", backend.ErrNotFound)
	}
	return f.user, nil
}

func (f *fakeBackend) UpdatePreference(ctx context.Context, email string, market models.Market, strategy, action string) error {
	f.updateCalls = append(f.updateCalls, strategy+"/"+action)
	return f.updateErr
}

func (f *fakeBackend) RegisterPreferences(ctx context.Context, email string, markets, strategies []string) error {
	f.registerPrefCalls++
	return f.registerPrefErr
}

func (f *fakeBackend) GetCompanies(ctx context.Context, market models.Market) ([]models.WatchlistEntry, error) {
	return f.companies, f.companiesErr
}

func (f *fakeBackend) UpdateWatchlist(ctx context.Context, userID string, market models.Market, companies []models.WatchlistEntry) error {
	f.watchlistAddCalls++
	return f.watchlistErr
}

func (f *fakeBackend) RemoveWatchlistCompany(ctx context.Context, userID string, market models.Market, companyName string) error {
	f.watchlistRemoveCalls = append(f.watchlistRemoveCalls, companyName)
	return f.watchlistRemoveErr
}

func (f *fakeBackend) GetLiveAlerts(ctx context.Context, market models.Market) ([]backend.LiveAlert, error) {
	return f.liveAlerts, f.liveErr
}

func (f *fakeBackend) Subscribe(ctx context.Context, email string) error {
	return f.subscribeErr
}

func (f *fakeBackend) Register(ctx context.Context, req *backend.RegisterRequest) (*backend.RegisterResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	if f.registerResp != nil {
		return f.registerResp, nil
	}
	return &backend.RegisterResponse{UserID: "user-1"}, nil
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*backend.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.loginResp != nil {
		return f.loginResp, nil
	}
	return &backend.LoginResponse{UserID: "user-1", Token: "token-1"}, nil
}
