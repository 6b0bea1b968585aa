package models

import "time"

// UserPreferenceRecord is the reconciled view of a user's alert preferences
// for one market. The authoritative copy lives in the remote backend; local
// copies are best-effort mirrors with last-writer-wins semantics.
type UserPreferenceRecord struct {
	UserID           string   `json:"user_id"`
	Email            string   `json:"email"`
	Market           Market   `json:"market"`
	ActiveStrategies []string `json:"active_strategies"`
}

// RegistrationStaging holds the strategy selection captured at registration,
// kept locally until the first resolve pushes it to the backend.
type RegistrationStaging struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Market     Market    `json:"market"`
	Strategies []string  `json:"strategies"`
	StagedAt   time.Time `json:"staged_at"`
}

// SharedArticle is a transient pointer used to deep-link a newsletter article
// across a redirect hop. Expires shortly after creation.
type SharedArticle struct {
	ArticleID string    `json:"article_id"`
	Title     string    `json:"title,omitempty"`
	SharedAt  time.Time `json:"shared_at"`
}

// CacheEntry backs the sqlite preference cache. Value holds JSON; ExpiresAt
// is nil for entries that never expire.
type CacheEntry struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Key       string     `json:"key" gorm:"uniqueIndex;size:255"`
	Value     string     `json:"value" gorm:"type:text"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
