package store

import (
	"fmt"
	"time"

	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/models"
	"gorm.io/gorm"
)

// SQLiteStore persists cache entries in the application database
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore creates a store backed by the given gorm database
func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the value for key, treating expired entries as misses
func (s *SQLiteStore) Get(key string) (string, bool) {
	var entry models.CacheEntry
	if err := s.db.Where("key = ?", key).First(&entry).Error; err != nil {
		return "", false
	}
	if entry.ExpiresAt != nil && time.Now().After(*entry.ExpiresAt) {
		return "", false
	}
	return entry.Value, true
}

// Set stores a value with no expiry
func (s *SQLiteStore) Set(key, value string) error {
	return s.upsert(key, value, nil)
}

// SetWithTTL stores a value that expires after ttl
func (s *SQLiteStore) SetWithTTL(key, value string, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl)
	return s.upsert(key, value, &expiresAt)
}

func (s *SQLiteStore) upsert(key, value string, expiresAt *time.Time) error {
	var entry models.CacheEntry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		entry = models.CacheEntry{
			Key:       key,
			Value:     value,
			ExpiresAt: expiresAt,
		}
		return s.db.Create(&entry).Error
	} else if err != nil {
		return fmt.Errorf("failed to query cache entry: %w", err)
	}

	entry.Value = value
	entry.ExpiresAt = expiresAt
	return s.db.Save(&entry).Error
}

// Delete removes an entry by key
func (s *SQLiteStore) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&models.CacheEntry{}).Error
}

// Clear removes every cache entry
func (s *SQLiteStore) Clear() error {
	return s.db.Where("1 = 1").Delete(&models.CacheEntry{}).Error
}

// SweepExpired deletes entries past their expiry
func (s *SQLiteStore) SweepExpired() (int, error) {
	result := s.db.Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Delete(&models.CacheEntry{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}
