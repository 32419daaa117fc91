package database

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateEntry is one persisted key/value pair. Values are JSON documents; the
// fixed key set (books, borrowedBooks, users, activeUser, settings) mirrors
// the payload shape the remote endpoint speaks.
type StateEntry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName keeps the table name stable across gorm naming strategies.
func (StateEntry) TableName() string {
	return "state_entries"
}

// StateStore persists JSON values under string keys.
type StateStore struct {
	db *gorm.DB
}

// NewStateStore migrates the state table and returns a store bound to db.
func NewStateStore(db *gorm.DB) (*StateStore, error) {
	if err := db.AutoMigrate(&StateEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate state table: %w", err)
	}
	return &StateStore{db: db}, nil
}

// SaveJSON marshals v and upserts it under key.
func (s *StateStore) SaveJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	entry := StateEntry{Key: key, Value: string(data), UpdatedAt: time.Now()}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// LoadJSON unmarshals the value stored under key into out. The first result
// is false when the key has never been written.
func (s *StateStore) LoadJSON(key string, out any) (bool, error) {
	var entry StateEntry
	err := s.db.First(&entry, "`key` = ?", key).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(entry.Value), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}
