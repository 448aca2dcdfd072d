package models

import "time"

// StoredRecord is one saved match record within a named store. The full
// record lives in Payload as JSON; the other columns are copies for ordering
// and lookups.
type StoredRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	StoreKey  string `gorm:"size:64;not null;index:idx_store_position,priority:1"`
	Position  int    `gorm:"not null;index:idx_store_position,priority:2"`
	RecordKey string `gorm:"size:32;not null;index"`
	Event     string `gorm:"size:128"`
	Match     string `gorm:"size:32"`
	Team      string `gorm:"size:32;index"`
	Alliance  string `gorm:"size:8"`
	Payload   string `gorm:"type:text;not null"`
	SavedAt   time.Time
}
