package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/backend"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/store"
)

// AccountService handles registration and login against the backend. The
// strategy selection made at registration is staged locally so the first
// alerts page load can resolve it even before the backend record settles.
type AccountService struct {
	backend backend.Client
	store   store.PreferenceStore
}

// NewAccountService creates a new account service
func NewAccountService(client backend.Client, prefStore store.PreferenceStore) *AccountService {
	return &AccountService{backend: client, store: prefStore}
}

// Register creates the account and stages the selected strategies under the
// fresh-registration flag
func (s *AccountService) Register(ctx context.Context, req *backend.RegisterRequest) (*models.RegistrationStaging, error) {
	market, err := models.ParseMarket(req.Market)
	if err != nil {
		return nil, err
	}

	strategies := make([]string, 0, len(req.Strategies))
	for _, name := range req.Strategies {
		if models.IsValidStrategy(name) {
			strategies = append(strategies, name)
		}
	}
	req.Strategies = strategies

	resp, err := s.backend.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	userID := resp.UserID
	if userID == "" {
		// Backend occasionally answers without an id; mint one so the local
		// cache still has a stable key.
		userID = uuid.NewString()
	}

	staging := &models.RegistrationStaging{
		UserID:     userID,
		Email:      req.Email,
		Market:     market,
		Strategies: strategies,
		StagedAt:   time.Now(),
	}
	if err := store.SetStaging(s.store, staging); err != nil {
		log.Printf("Account: failed to stage registration for user %s: %v", userID, err)
	}

	profile := &models.UserPreferenceRecord{
		UserID: userID,
		Email:  req.Email,
		Market: market,
	}
	if err := store.SetProfile(s.store, profile); err != nil {
		log.Printf("Account: failed to cache profile for user %s: %v", userID, err)
	}
	return staging, nil
}

// Login obtains a session token from the backend
func (s *AccountService) Login(ctx context.Context, email, password string) (*backend.LoginResponse, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	return s.backend.Login(ctx, email, password)
}
