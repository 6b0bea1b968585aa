package services

import (
	"context"
	"time"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/backend"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/store"
)

// NewsletterService handles newsletter email capture and the transient
// shared-article pointer used to deep-link an article across a redirect hop
type NewsletterService struct {
	backend backend.Client
	store   store.PreferenceStore
}

// NewNewsletterService creates a new newsletter service
func NewNewsletterService(client backend.Client, prefStore store.PreferenceStore) *NewsletterService {
	return &NewsletterService{backend: client, store: prefStore}
}

// Subscribe captures a newsletter email with the backend
func (s *NewsletterService) Subscribe(ctx context.Context, email string) error {
	return s.backend.Subscribe(ctx, email)
}

// ShareArticle stores the shared-article pointer. It expires on its own after
// store.SharedArticleTTL.
func (s *NewsletterService) ShareArticle(articleID, title string) error {
	return store.SetSharedArticle(s.store, &models.SharedArticle{
		ArticleID: articleID,
		Title:     title,
		SharedAt:  time.Now(),
	})
}

// SharedArticle reads the pending shared-article pointer, if it has not
// expired yet
func (s *NewsletterService) SharedArticle() (*models.SharedArticle, bool) {
	return store.GetSharedArticle(s.store)
}
